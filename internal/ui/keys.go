// Package ui provides the terminal user interface for pomo.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and customization.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"pomo/internal/config"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextView key.Binding
	View1    key.Binding
	View2    key.Binding
	View3    key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		NextView: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextView, "tab")...),
			key.WithHelp("tab", "next view"),
		),
		View1: key.NewBinding(
			key.WithKeys(parseKeys(cfg.View1, "1")...),
			key.WithHelp("1", "timer"),
		),
		View2: key.NewBinding(
			key.WithKeys(parseKeys(cfg.View2, "2")...),
			key.WithHelp("2", "dashboard"),
		),
		View3: key.NewBinding(
			key.WithKeys(parseKeys(cfg.View3, "3")...),
			key.WithHelp("3", "settings"),
		),
	}
}

// TimerKeyMap defines keys for controlling the timer.
type TimerKeyMap struct {
	Toggle      key.Binding
	Reset       key.Binding
	Skip        key.Binding
	SwitchMode  key.Binding
	SetDuration key.Binding
}

// NewTimerKeyMap creates timer key bindings from config.
func NewTimerKeyMap(cfg *config.KeysConfig) TimerKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return TimerKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleTimer, " ")...),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ResetTimer, "r")...),
			key.WithHelp("r", "reset"),
		),
		Skip: key.NewBinding(
			key.WithKeys(parseKeys(cfg.SkipPhase, "n")...),
			key.WithHelp("n", "skip"),
		),
		SwitchMode: key.NewBinding(
			key.WithKeys(parseKeys(cfg.SwitchMode, "m")...),
			key.WithHelp("m", "mode"),
		),
		SetDuration: key.NewBinding(
			key.WithKeys(parseKeys(cfg.SetDuration, "c")...),
			key.WithHelp("c", "duration"),
		),
	}
}

// ShortHelp returns the short help for the timer (implements help.KeyMap).
func (k TimerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Skip, k.SwitchMode}
}

// FullHelp returns the full help for the timer (implements help.KeyMap).
func (k TimerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Skip},
		{k.SwitchMode, k.SetDuration},
	}
}

// TaskKeyMap defines keys for the task list.
type TaskKeyMap struct {
	Add       key.Binding
	Edit      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Pick      key.Binding
	ClearDone key.Binding
	Up        key.Binding
	Down      key.Binding
}

// NewTaskKeyMap creates task key bindings from config.
func NewTaskKeyMap(cfg *config.KeysConfig) TaskKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return TaskKeyMap{
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.AddTask, "a")...),
			key.WithHelp("a", "add task"),
		),
		Edit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.EditTask, "e")...),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleTask, "d")...),
			key.WithHelp("d", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.DeleteTask, "x")...),
			key.WithHelp("x", "delete"),
		),
		Pick: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PickTask, "enter")...),
			key.WithHelp("enter", "focus task"),
		),
		ClearDone: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ClearDone, "X")...),
			key.WithHelp("X", "clear done"),
		),
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
	}
}

// SettingsKeyMap defines keys for the settings view.
type SettingsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	StepDown key.Binding
	StepUp   key.Binding
}

// NewSettingsKeyMap creates settings key bindings from config.
func NewSettingsKeyMap(cfg *config.KeysConfig) SettingsKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return SettingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		StepDown: key.NewBinding(
			key.WithKeys(parseKeys(cfg.StepDown, "h", "left")...),
			key.WithHelp("h/←", "decrease"),
		),
		StepUp: key.NewBinding(
			key.WithKeys(parseKeys(cfg.StepUp, "l", "right")...),
			key.WithHelp("l/→", "increase"),
		),
	}
}

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
