// Package config handles application configuration loading and defaults.
// Configuration is loaded from XDG-compliant paths (typically
// ~/.config/pomo/config.yaml). Timer settings live in the data directory
// and are managed by the storage package; this file covers only the
// machine-local concerns: data location, colors, and key bindings.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"pomo/internal/fsutil"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.pomo)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`
}

// ThemeConfig defines color settings.
type ThemeConfig struct {
	// Primary color for the active timer and focused elements (hex)
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights and completed work (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Break color for break phases (hex)
	Break string `yaml:"break,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts. Each field accepts
// a comma-separated list of key bindings, e.g. "q,ctrl+c".
type KeysConfig struct {
	// Global keys
	Quit     string `yaml:"quit,omitempty"`      // default: "q,ctrl+c"
	Help     string `yaml:"help,omitempty"`      // default: "?"
	NextView string `yaml:"next_view,omitempty"` // default: "tab"
	View1    string `yaml:"view_1,omitempty"`    // default: "1"
	View2    string `yaml:"view_2,omitempty"`    // default: "2"
	View3    string `yaml:"view_3,omitempty"`    // default: "3"

	// Navigation keys
	Up   string `yaml:"up,omitempty"`   // default: "k,up"
	Down string `yaml:"down,omitempty"` // default: "j,down"

	// Timer keys
	ToggleTimer string `yaml:"toggle_timer,omitempty"` // default: "space"
	ResetTimer  string `yaml:"reset_timer,omitempty"`  // default: "r"
	SkipPhase   string `yaml:"skip_phase,omitempty"`   // default: "n"
	SwitchMode  string `yaml:"switch_mode,omitempty"`  // default: "m"
	SetDuration string `yaml:"set_duration,omitempty"` // default: "c"

	// Task keys
	AddTask    string `yaml:"add_task,omitempty"`    // default: "a"
	EditTask   string `yaml:"edit_task,omitempty"`   // default: "e"
	ToggleTask string `yaml:"toggle_task,omitempty"` // default: "d"
	DeleteTask string `yaml:"delete_task,omitempty"` // default: "x"
	PickTask   string `yaml:"pick_task,omitempty"`   // default: "enter"
	ClearDone  string `yaml:"clear_done,omitempty"`  // default: "X"

	// Settings keys
	StepDown string `yaml:"step_down,omitempty"` // default: "h,left"
	StepUp   string `yaml:"step_up,omitempty"`   // default: "l,right"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary: "#E06C75", // Tomato
			Accent:  "#98C379", // Green
			Muted:   "#5C6370", // Gray
			Break:   "#61AFEF", // Blue
		},
		Keys: KeysConfig{
			// Empty strings mean use built-in defaults
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pomo"
	}
	return filepath.Join(home, ".pomo")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pomo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pomo")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults. If no
// config file exists, returns the default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}
	cfg.mergeNonEmpty(&userCfg)
	return cfg, nil
}

// mergeNonEmpty applies non-empty string values from other to c. Every
// field here is a string, so absence and empty are the same thing.
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	if other.Theme.Primary != "" {
		c.Theme.Primary = other.Theme.Primary
	}
	if other.Theme.Accent != "" {
		c.Theme.Accent = other.Theme.Accent
	}
	if other.Theme.Muted != "" {
		c.Theme.Muted = other.Theme.Muted
	}
	if other.Theme.Break != "" {
		c.Theme.Break = other.Theme.Break
	}

	mergeKeys := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	mergeKeys(&c.Keys.Quit, other.Keys.Quit)
	mergeKeys(&c.Keys.Help, other.Keys.Help)
	mergeKeys(&c.Keys.NextView, other.Keys.NextView)
	mergeKeys(&c.Keys.View1, other.Keys.View1)
	mergeKeys(&c.Keys.View2, other.Keys.View2)
	mergeKeys(&c.Keys.View3, other.Keys.View3)
	mergeKeys(&c.Keys.Up, other.Keys.Up)
	mergeKeys(&c.Keys.Down, other.Keys.Down)
	mergeKeys(&c.Keys.ToggleTimer, other.Keys.ToggleTimer)
	mergeKeys(&c.Keys.ResetTimer, other.Keys.ResetTimer)
	mergeKeys(&c.Keys.SkipPhase, other.Keys.SkipPhase)
	mergeKeys(&c.Keys.SwitchMode, other.Keys.SwitchMode)
	mergeKeys(&c.Keys.SetDuration, other.Keys.SetDuration)
	mergeKeys(&c.Keys.AddTask, other.Keys.AddTask)
	mergeKeys(&c.Keys.EditTask, other.Keys.EditTask)
	mergeKeys(&c.Keys.ToggleTask, other.Keys.ToggleTask)
	mergeKeys(&c.Keys.DeleteTask, other.Keys.DeleteTask)
	mergeKeys(&c.Keys.PickTask, other.Keys.PickTask)
	mergeKeys(&c.Keys.ClearDone, other.Keys.ClearDone)
	mergeKeys(&c.Keys.StepDown, other.Keys.StepDown)
	mergeKeys(&c.Keys.StepUp, other.Keys.StepUp)
	mergeKeys(&c.Keys.Confirm, other.Keys.Confirm)
	mergeKeys(&c.Keys.Cancel, other.Keys.Cancel)
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0644)
}

// GetDataDir returns the resolved data directory, expanding a leading ~.
func (c *Config) GetDataDir() string {
	dir := c.DataDir
	if dir == "" {
		dir = defaultDataDir()
	}
	if strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[2:])
		}
	}
	return dir
}
