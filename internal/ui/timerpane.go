package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pomo/internal/config"
	"pomo/internal/timer"
)

// TimerPane renders the countdown, phase, cycle progress, and the
// custom duration entry. Timer control keys are handled by the App so
// phase events get recorded in one place; this pane owns only display
// state and the duration input.
type TimerPane struct {
	engine *timer.Engine
	styles *Styles

	entering bool
	input    textinput.Model

	activeTaskName string
	width          int

	keys      TimerKeyMap
	inputKeys InputKeyMap
}

// NewTimerPane creates the timer pane bound to an engine.
func NewTimerPane(engine *timer.Engine, styles *Styles, keyCfg *config.KeysConfig) *TimerPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "minutes (1-180)"
	ti.CharLimit = 3
	ti.Width = 20

	return &TimerPane{
		engine:    engine,
		styles:    styles,
		input:     ti,
		keys:      NewTimerKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetSize sets the pane width.
func (p *TimerPane) SetSize(width int) {
	p.width = width
}

// SetActiveTaskName sets the task name shown under the clock.
func (p *TimerPane) SetActiveTaskName(name string) {
	p.activeTaskName = name
}

// IsEntering reports whether the duration input is open.
func (p *TimerPane) IsEntering() bool {
	return p.entering
}

// StartEntering opens the custom duration input.
func (p *TimerPane) StartEntering() tea.Cmd {
	p.entering = true
	p.input.SetValue("")
	return p.input.Focus()
}

// Update handles the duration input while it is open.
func (p *TimerPane) Update(msg tea.Msg) tea.Cmd {
	if !p.entering {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, p.inputKeys.Confirm):
			raw := strings.TrimSpace(p.input.Value())
			p.entering = false
			p.input.Blur()
			mins, err := strconv.Atoi(raw)
			if err != nil {
				return func() tea.Msg {
					return durationSetMsg{err: fmt.Errorf("not a number: %q", raw)}
				}
			}
			err = p.engine.SetCustomDuration(time.Duration(mins) * time.Minute)
			return func() tea.Msg { return durationSetMsg{err: err} }

		case key.Matches(keyMsg, p.inputKeys.Cancel):
			p.entering = false
			p.input.Blur()
			return nil
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the timer pane.
func (p *TimerPane) View() string {
	var b strings.Builder

	phase := p.engine.Phase()
	phaseStyle := p.styles.PhaseStyle
	clockStyle := p.styles.ClockStyle
	if phase.IsBreak() {
		phaseStyle = p.styles.PhaseBreakStyle
		clockStyle = p.styles.ClockBreakStyle
	}
	if !p.engine.Running() {
		clockStyle = p.styles.ClockPausedStyle
	}

	b.WriteString(phaseStyle.Render(phase.String()))
	if !p.engine.Running() {
		b.WriteString(p.styles.ModeStyle.Render("  (paused)"))
	}
	b.WriteString("\n\n")

	b.WriteString(clockStyle.Render(formatClock(p.engine.Remaining())))
	b.WriteString("\n\n")

	b.WriteString(p.renderProgress())
	b.WriteString("\n")

	if p.engine.Mode() == timer.ModePomodoro {
		b.WriteString(p.renderCycle())
		b.WriteString("\n")
	} else {
		b.WriteString(p.styles.ModeStyle.Render(
			fmt.Sprintf("timer mode · %s", formatClock(p.engine.CustomDuration()))))
		b.WriteString("\n")
	}

	if p.activeTaskName != "" {
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("focusing: "))
		b.WriteString(p.styles.TaskActiveStyle.Render(p.activeTaskName))
		b.WriteString("\n")
	}

	if p.entering {
		b.WriteString("\n")
		b.WriteString(p.styles.InputPromptStyle.Render("duration> "))
		b.WriteString(p.input.View())
		b.WriteString("\n")
	}

	return b.String()
}

// renderProgress draws a simple horizontal progress bar.
func (p *TimerPane) renderProgress() string {
	width := p.width - 4
	if width < 10 {
		width = 10
	}
	if width > 40 {
		width = 40
	}
	filled := int(p.engine.Progress() * float64(width))
	if filled > width {
		filled = width
	}
	return p.styles.ProgressFillStyle.Render(strings.Repeat("█", filled)) +
		p.styles.ProgressRestStyle.Render(strings.Repeat("░", width-filled))
}

// renderCycle draws one dot per work session in the current cycle.
func (p *TimerPane) renderCycle() string {
	done := p.engine.WorkSessionsCompleted()
	total := p.engine.ConfigSnapshot().SessionsBeforeLongBreak
	dots := make([]string, 0, total)
	for i := 0; i < total; i++ {
		if i < done {
			dots = append(dots, p.styles.CycleDoneDot)
		} else {
			dots = append(dots, p.styles.CyclePendingDot)
		}
	}
	return strings.Join(dots, " ")
}

// formatClock renders a duration as MM:SS, or H:MM:SS past an hour.
// Remaining time is rounded up so the display reaches 0:00 exactly when
// the phase completes.
func formatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
