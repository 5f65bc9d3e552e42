package ui

import (
	"github.com/charmbracelet/lipgloss"

	"pomo/internal/config"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorBreak     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorBgLight   lipgloss.Color

	// Title bar
	TitleStyle lipgloss.Style
	ModeStyle  lipgloss.Style

	// Timer display
	ClockStyle        lipgloss.Style
	ClockPausedStyle  lipgloss.Style
	ClockBreakStyle   lipgloss.Style
	PhaseStyle        lipgloss.Style
	PhaseBreakStyle   lipgloss.Style
	ProgressFillStyle lipgloss.Style
	ProgressRestStyle lipgloss.Style
	CycleDoneDot      string
	CyclePendingDot   string

	// Task list
	TaskDoneStyle       lipgloss.Style
	TaskPendingStyle    lipgloss.Style
	TaskSelectedStyle   lipgloss.Style
	TaskActiveStyle     lipgloss.Style
	TaskCheckboxDone    string
	TaskCheckboxPending string

	// Sections and panes
	PaneStyle      lipgloss.Style
	PaneTitleStyle lipgloss.Style

	// Stats
	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style
	StreakStyle    lipgloss.Style
	GoalMetStyle   lipgloss.Style

	// Settings
	SettingSelectedStyle lipgloss.Style
	SettingLabelStyle    lipgloss.Style
	SettingValueStyle    lipgloss.Style

	// Help and status
	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Input
	InputPromptStyle lipgloss.Style
}

// NewStyles creates a Styles instance from the given config.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a Styles instance from a ThemeConfig.
// Empty theme colors fall back to the built-in palette.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#E06C75")
	s.ColorAccent = colorOrDefault(theme.Accent, "#98C379")
	s.ColorMuted = colorOrDefault(theme.Muted, "#5C6370")
	s.ColorBreak = colorOrDefault(theme.Break, "#61AFEF")

	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorText = lipgloss.Color("#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")
	s.ColorBgLight = lipgloss.Color("#374151")

	s.initComponentStyles()
	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

func (s *Styles) initComponentStyles() {
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.ModeStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.ClockStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	s.ClockPausedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorMuted)

	s.ClockBreakStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorBreak)

	s.PhaseStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	s.PhaseBreakStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorBreak)

	s.ProgressFillStyle = lipgloss.NewStyle().Foreground(s.ColorAccent)
	s.ProgressRestStyle = lipgloss.NewStyle().Foreground(s.ColorBgLight)

	s.CycleDoneDot = lipgloss.NewStyle().Foreground(s.ColorAccent).Render("●")
	s.CyclePendingDot = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("○")

	s.TaskDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Strikethrough(true)

	s.TaskPendingStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.TaskSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.TaskActiveStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.TaskCheckboxDone = lipgloss.NewStyle().Foreground(s.ColorAccent).Render("[✓]")
	s.TaskCheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary).
		MarginBottom(1)

	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.StatValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)

	s.StreakStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)

	s.GoalMetStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.SettingSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.SettingLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.SettingValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorBreak).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		k := keys[i]
		desc := keys[i+1]
		result += s.HelpKeyStyle.Render("["+k+"]") + " " + s.HelpStyle.Render(desc)
	}
	return result
}
