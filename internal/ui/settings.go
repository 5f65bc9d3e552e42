package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pomo/internal/config"
	"pomo/internal/storage"
)

// settingField identifies one editable row in the settings view.
type settingField int

const (
	fieldWorkDuration settingField = iota
	fieldShortBreak
	fieldLongBreak
	fieldSessionsBeforeLong
	fieldAutoStartBreaks
	fieldNotifications
	fieldSound
	fieldDailyGoal
	fieldCount
)

// settingsChangedMsg is emitted after a successful edit so the app can
// push the new configuration into the engine.
type settingsChangedMsg struct{}

// settingsErrMsg reports a rejected or failed settings edit.
type settingsErrMsg struct {
	err error
}

// SettingsPane edits the persisted timer settings. Values step with
// h/l and every change validates and saves synchronously; a rejected
// value never sticks.
type SettingsPane struct {
	gateway *storage.Gateway
	styles  *Styles

	cursor settingField
	width  int

	keys SettingsKeyMap
}

// NewSettingsPane creates the settings pane.
func NewSettingsPane(gateway *storage.Gateway, styles *Styles, keyCfg *config.KeysConfig) *SettingsPane {
	return &SettingsPane{
		gateway: gateway,
		styles:  styles,
		keys:    NewSettingsKeyMap(keyCfg),
	}
}

// SetSize sets the pane width.
func (p *SettingsPane) SetSize(width int) {
	p.width = width
}

// Update handles navigation and value stepping.
func (p *SettingsPane) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, p.keys.Down):
		if p.cursor < fieldCount-1 {
			p.cursor++
		}
	case key.Matches(keyMsg, p.keys.StepDown):
		return p.step(-1)
	case key.Matches(keyMsg, p.keys.StepUp):
		return p.step(+1)
	}
	return nil
}

// step adjusts the selected field and persists the result.
func (p *SettingsPane) step(delta int) tea.Cmd {
	s := p.gateway.Settings()

	switch p.cursor {
	case fieldWorkDuration:
		s.WorkDurationMins += delta * 5
	case fieldShortBreak:
		s.ShortBreakMins += delta
	case fieldLongBreak:
		s.LongBreakMins += delta * 5
	case fieldSessionsBeforeLong:
		s.SessionsBeforeLongBreak += delta
	case fieldAutoStartBreaks:
		s.AutoStartBreaks = !s.AutoStartBreaks
	case fieldNotifications:
		s.NotificationsEnabled = !s.NotificationsEnabled
	case fieldSound:
		s.SoundEnabled = !s.SoundEnabled
	case fieldDailyGoal:
		s.DailyGoalPomodoros += delta
	}

	if err := p.gateway.UpdateSettings(s); err != nil {
		return func() tea.Msg { return settingsErrMsg{err: err} }
	}
	return func() tea.Msg { return settingsChangedMsg{} }
}

// View renders the settings list.
func (p *SettingsPane) View() string {
	var b strings.Builder
	s := p.gateway.Settings()

	b.WriteString(p.styles.PaneTitleStyle.Render("Settings"))
	b.WriteString("\n")

	rows := []struct {
		field settingField
		label string
		value string
	}{
		{fieldWorkDuration, "Work duration", fmt.Sprintf("%d min", s.WorkDurationMins)},
		{fieldShortBreak, "Short break", fmt.Sprintf("%d min", s.ShortBreakMins)},
		{fieldLongBreak, "Long break", fmt.Sprintf("%d min", s.LongBreakMins)},
		{fieldSessionsBeforeLong, "Sessions before long break", fmt.Sprintf("%d", s.SessionsBeforeLongBreak)},
		{fieldAutoStartBreaks, "Auto-start breaks", onOff(s.AutoStartBreaks)},
		{fieldNotifications, "Notifications", onOff(s.NotificationsEnabled)},
		{fieldSound, "Notification sound", onOff(s.SoundEnabled)},
		{fieldDailyGoal, "Daily goal", fmt.Sprintf("%d pomodoros", s.DailyGoalPomodoros)},
	}

	for _, row := range rows {
		cursor := "  "
		labelStyle := p.styles.SettingLabelStyle
		if row.field == p.cursor {
			cursor = p.styles.SettingSelectedStyle.Render("> ")
			labelStyle = p.styles.SettingSelectedStyle
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n",
			cursor,
			labelStyle.Render(fmt.Sprintf("%-28s", row.label)),
			p.styles.SettingValueStyle.Render(row.value)))
	}

	b.WriteString("\n")
	b.WriteString(p.styles.RenderHelp("h/l", "adjust", "j/k", "navigate"))
	b.WriteString("\n")
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
