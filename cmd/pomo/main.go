// Package main is the entry point for the pomo application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/charmbracelet/log"

	"pomo/internal/config"
	"pomo/internal/notify"
	"pomo/internal/storage"
	"pomo/internal/timer"
	"pomo/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `pomo - A pomodoro timer for your terminal

USAGE:
    pomo [OPTIONS]
    pomo <command> [ARGS]

COMMANDS:
    backup           Create a backup of all data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Generate a daily focus report (Markdown)
    export --weekly  Generate a weekly report
    export -f json   Output report as JSON

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    pomo is a keyboard-driven pomodoro timer with task tracking and
    session history. Work sessions, breaks, streaks, and a daily goal
    all live in one terminal interface.

KEYBINDINGS:
    Global:
        Tab          Cycle views (timer, dashboard, settings)
        1, 2, 3      Jump to a specific view
        ?            Show help overlay
        q            Quit

    Timer:
        Space        Start/pause
        r            Reset current phase
        n            Skip to next phase
        m            Switch between pomodoro and timer mode
        c            Set custom duration (timer mode)

    Tasks:
        j/k, ↓/↑     Navigate
        a            Add task
        e            Edit task
        d            Toggle done
        x            Delete task
        Enter        Focus task for the next pomodoro
        X            Clear completed tasks

    Settings:
        j/k          Navigate
        h/l, ←/→     Adjust value

DATA STORAGE:
    All data is stored in ~/.pomo/ as plain JSON files:
        tasks.json     - Your tasks
        sessions.json  - Session history and streaks
        config.json    - Timer settings

CONFIGURATION:
    Optional config file: ~/.config/pomo/config.yaml
    Overrides the data directory, theme colors, and key bindings.

EXAMPLES:
    # Start the app
    pomo

    # Create a backup
    pomo backup

    # Restore from the most recent backup
    pomo restore --latest

    # Generate this week's report as JSON
    pomo export --weekly --format json

    # Show version
    pomo --version
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("pomo version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg.GetDataDir())
	defer closeLog()

	gateway, warnings := storage.NewGateway(store)
	for _, w := range warnings {
		// Defaults are already in place; tell the user what happened.
		logger.Warn("load problem", "err", w)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", w)
	}

	styles := ui.NewStylesFromTheme(&cfg.Theme)
	engine := ui.NewEngine(timer.SystemClock(), gateway.Settings())
	notifier := notify.New()

	// Flush on panic so an in-flight session is not lost. Bubble Tea
	// restores the terminal itself before the panic propagates.
	defer func() {
		if r := recover(); r != nil {
			gateway.Flush()
			fmt.Fprintf(os.Stderr, "panic: %v\n\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	runErr := ui.Run(gateway, engine, notifier, logger, styles, &cfg.Keys)

	// Terminal is restored at this point; write out anything pending.
	for _, err := range gateway.Flush() {
		logger.Error("final flush failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error saving data: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", runErr)
		os.Exit(1)
	}
}

// newLogger opens pomo.log in the data directory. The TUI owns the
// terminal, so diagnostics go to a file. Falls back to a discarded
// logger if the file cannot be opened.
func newLogger(dataDir string) (*log.Logger, func()) {
	path := filepath.Join(dataDir, "pomo.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		logger := log.New(os.Stderr)
		logger.SetLevel(log.FatalLevel)
		return logger, func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "pomo",
	})
	return logger, func() { _ = f.Close() }
}
