// This file contains the main App model which coordinates the views and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"pomo/internal/config"
	"pomo/internal/notify"
	"pomo/internal/storage"
	"pomo/internal/timer"
)

// ViewID identifies each top-level view.
type ViewID int

const (
	ViewTimer ViewID = iota
	ViewDashboard
	ViewSettings
)

// tickInterval drives the engine and the flush loop. Completion timing
// comes from accumulated elapsed time, so the exact cadence only
// affects display smoothness.
const tickInterval = 100 * time.Millisecond

// App is the main application model.
type App struct {
	gateway  *storage.Gateway
	engine   *timer.Engine
	notifier notify.Notifier
	logger   *log.Logger
	styles   *Styles

	timerPane    *TimerPane
	taskPane     *TaskPane
	dashboard    *DashboardPane
	settingsPane *SettingsPane
	helpOverlay  *HelpOverlay

	activeView ViewID
	showHelp   bool
	width      int
	height     int
	quitting   bool

	status      string
	statusErr   bool
	statusUntil time.Time

	activeTaskName string

	keys      GlobalKeyMap
	timerKeys TimerKeyMap
	helpKeys  HelpKeyMap
}

// NewApp creates the application model. The engine starts in the mode
// and with the durations from the persisted settings.
func NewApp(gateway *storage.Gateway, engine *timer.Engine, notifier notify.Notifier, logger *log.Logger, styles *Styles, keyCfg *config.KeysConfig) *App {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}

	return &App{
		gateway:      gateway,
		engine:       engine,
		notifier:     notifier,
		logger:       logger,
		styles:       styles,
		timerPane:    NewTimerPane(engine, styles, keyCfg),
		taskPane:     NewTaskPane(gateway, styles, keyCfg),
		dashboard:    NewDashboardPane(gateway, styles),
		settingsPane: NewSettingsPane(gateway, styles, keyCfg),
		helpOverlay:  NewHelpOverlay(styles),
		activeView:   ViewTimer,
		keys:         NewGlobalKeyMap(keyCfg),
		timerKeys:    NewTimerKeyMap(keyCfg),
		helpKeys:     DefaultHelpKeyMap(),
	}
}

// tickMsg is sent on every timer tick.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the tick loop.
func (a *App) Init() tea.Cmd {
	return tickCmd()
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return a, a.onTick()

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.timerPane.SetSize(msg.Width)
		a.taskPane.SetSize(msg.Width, msg.Height/2)
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.settingsPane.SetSize(msg.Width)
		a.helpOverlay.SetSize(msg.Width, msg.Height)
		return a, nil

	case taskPickedMsg:
		return a, a.onTaskPicked(msg)

	case taskDeletedMsg:
		a.engine.DetachTask(msg.id)
		if a.engine.TaskID() == "" {
			a.activeTaskName = ""
			a.timerPane.SetActiveTaskName("")
			a.taskPane.SetActiveTask("")
		}
		return a, nil

	case durationSetMsg:
		if msg.err != nil {
			a.SetStatus(msg.err.Error(), true)
		} else {
			a.SetStatus(fmt.Sprintf("Duration set to %s", formatClock(a.engine.CustomDuration())), false)
		}
		return a, nil

	case settingsChangedMsg:
		a.engine.ApplyConfig(engineConfig(a.gateway.Settings()))
		return a, nil

	case settingsErrMsg:
		a.SetStatus(msg.err.Error(), true)
		return a, nil

	case notifySentMsg:
		if msg.err != nil {
			a.logger.Warn("notification failed", "err", msg.err)
		}
		return a, nil

	case tea.KeyMsg:
		return a.onKey(msg)
	}

	return a, nil
}

// onTick advances the engine, records any completed phase, flushes
// pending writes, and expires stale status messages.
func (a *App) onTick() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}

	if ev := a.engine.Tick(); ev != nil {
		if cmd := a.onPhaseEvent(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	for _, err := range a.gateway.MaybeFlush() {
		a.logger.Error("save failed", "err", err)
		a.SetStatus("Save failed: "+err.Error(), true)
	}

	if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
		a.status = ""
		a.statusErr = false
		a.statusUntil = time.Time{}
	}

	return tea.Batch(cmds...)
}

// onPhaseEvent records a finished or aborted phase and fires the
// completion notification.
func (a *App) onPhaseEvent(ev *timer.Event) tea.Cmd {
	a.gateway.Sessions().Record(
		ev.At, ev.Phase.SessionType(), ev.Phase.Subtype(), ev.Planned, ev.Completed, ev.TaskID)
	a.gateway.MarkDirty(storage.EntitySessions)

	if ev.Completed && ev.Phase == timer.PhaseWork && ev.TaskID != "" {
		a.gateway.Tasks().IncrementPomodoros(ev.TaskID)
		a.gateway.MarkDirty(storage.EntityTasks)
	}

	a.logger.Info("phase ended",
		"phase", ev.Phase.String(), "completed", ev.Completed, "elapsed", ev.Elapsed)

	settings := a.gateway.Settings()
	if ev.Notify && settings.NotificationsEnabled {
		title, message := notificationText(ev.Phase, a.engine.Phase())
		return notifyCmd(a.notifier, title, message, settings.SoundEnabled)
	}
	return nil
}

// notificationText builds the completion notification for the ended
// phase and the phase that follows it.
func notificationText(ended, next timer.Phase) (string, string) {
	if ended.IsBreak() {
		return "Break over", "Time to focus."
	}
	if next.IsBreak() {
		return "Work session complete", fmt.Sprintf("Time for a %s.", strings.ToLower(next.String()))
	}
	return "Timer finished", "Countdown complete."
}

func (a *App) onTaskPicked(msg taskPickedMsg) tea.Cmd {
	if msg.id == "" {
		a.engine.DetachTask(a.engine.TaskID())
		a.activeTaskName = ""
		a.SetStatus("Task unfocused", false)
	} else {
		a.engine.AttachTask(msg.id)
		a.activeTaskName = msg.name
		a.SetStatus("Focusing: "+msg.name, false)
	}
	a.timerPane.SetActiveTaskName(a.activeTaskName)
	a.taskPane.SetActiveTask(a.engine.TaskID())
	return nil
}

func (a *App) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	// Text inputs swallow all keys while open.
	if a.taskPane.IsEditing() {
		return a, a.taskPane.Update(msg)
	}
	if a.timerPane.IsEntering() {
		return a, a.timerPane.Update(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.NextView):
		a.activeView = (a.activeView + 1) % 3
		return a, nil

	case key.Matches(msg, a.keys.View1):
		a.activeView = ViewTimer
		return a, nil

	case key.Matches(msg, a.keys.View2):
		a.activeView = ViewDashboard
		return a, nil

	case key.Matches(msg, a.keys.View3):
		a.activeView = ViewSettings
		return a, nil
	}

	switch a.activeView {
	case ViewTimer:
		return a, a.onTimerKey(msg)
	case ViewSettings:
		return a, a.settingsPane.Update(msg)
	}
	return a, nil
}

// onTimerKey handles timer controls; anything else goes to the task list.
func (a *App) onTimerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.timerKeys.Toggle):
		if a.engine.Running() {
			a.engine.Pause()
		} else {
			a.engine.Start()
		}
		return nil

	case key.Matches(msg, a.timerKeys.Reset):
		if ev := a.engine.Reset(); ev != nil {
			return a.onPhaseEvent(ev)
		}
		return nil

	case key.Matches(msg, a.timerKeys.Skip):
		ev := a.engine.Skip()
		a.SetStatus("Skipped to "+a.engine.Phase().String(), false)
		if ev != nil {
			return a.onPhaseEvent(ev)
		}
		return nil

	case key.Matches(msg, a.timerKeys.SwitchMode):
		a.engine.SwitchMode()
		a.SetStatus(a.engine.Mode().String()+" mode", false)
		return nil

	case key.Matches(msg, a.timerKeys.SetDuration):
		if a.engine.Mode() != timer.ModeTimer {
			a.SetStatus("Custom duration only applies in timer mode", true)
			return nil
		}
		return a.timerPane.StartEntering()
	}

	return a.taskPane.Update(msg)
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n\n")

	switch a.activeView {
	case ViewTimer:
		b.WriteString(a.timerPane.View())
		b.WriteString("\n")
		b.WriteString(a.taskPane.View())
	case ViewDashboard:
		b.WriteString(a.dashboard.View())
	case ViewSettings:
		b.WriteString(a.settingsPane.View())
	}

	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render("🍅 pomo")
	view := ""
	switch a.activeView {
	case ViewTimer:
		view = "timer"
	case ViewDashboard:
		view = "dashboard"
	case ViewSettings:
		view = "settings"
	}
	return title + "  " + a.styles.ModeStyle.Render(view)
}

func (a *App) renderStatusBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	switch a.activeView {
	case ViewTimer:
		return a.styles.RenderHelp(
			"space", "start/pause",
			"r", "reset",
			"n", "skip",
			"m", "mode",
			"tab", "view",
			"?", "help",
		)
	case ViewDashboard:
		return a.styles.RenderHelp("tab", "view", "?", "help", "q", "quit")
	case ViewSettings:
		return a.styles.RenderHelp("h/l", "adjust", "j/k", "navigate", "tab", "view")
	}
	return ""
}

// SetStatus sets a transient status message.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// engineConfig maps the persisted settings onto the engine configuration.
func engineConfig(s storage.Settings) timer.Config {
	return timer.Config{
		WorkDuration:            s.WorkDuration(),
		ShortBreakDuration:      s.ShortBreakDuration(),
		LongBreakDuration:       s.LongBreakDuration(),
		SessionsBeforeLongBreak: s.SessionsBeforeLongBreak,
		AutoStartBreaks:         s.AutoStartBreaks,
	}
}

// NewEngine builds the timer engine from persisted settings, honoring
// the configured default mode.
func NewEngine(clock timer.Clock, s storage.Settings) *timer.Engine {
	engine := timer.New(clock, engineConfig(s))
	if s.DefaultMode == "timer" {
		engine.SwitchMode()
	}
	return engine
}

// Run starts the Bubble Tea program.
func Run(gateway *storage.Gateway, engine *timer.Engine, notifier notify.Notifier, logger *log.Logger, styles *Styles, keyCfg *config.KeysConfig) error {
	app := NewApp(gateway, engine, notifier, logger, styles, keyCfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
