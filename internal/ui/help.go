package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders the keyboard shortcut reference.
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
}

// NewHelpOverlay creates a new help overlay.
func NewHelpOverlay(styles *Styles) *HelpOverlay {
	return &HelpOverlay{styles: styles}
}

// SetSize sets the overlay dimensions.
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay.
func (h *HelpOverlay) View() string {
	overlayWidth := 56
	if h.width > 0 {
		overlayWidth = min(56, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("🍅 pomo - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Global"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Tab") + descStyle.Render("Next view") + "\n")
	b.WriteString(keyStyle.Render("1 / 2 / 3") + descStyle.Render("Timer / Dashboard / Settings") + "\n")
	b.WriteString(keyStyle.Render("?") + descStyle.Render("Toggle help") + "\n")
	b.WriteString(keyStyle.Render("q") + descStyle.Render("Quit") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Timer"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Space") + descStyle.Render("Start/pause") + "\n")
	b.WriteString(keyStyle.Render("r") + descStyle.Render("Reset phase") + "\n")
	b.WriteString(keyStyle.Render("n") + descStyle.Render("Skip to next phase") + "\n")
	b.WriteString(keyStyle.Render("m") + descStyle.Render("Pomodoro/timer mode") + "\n")
	b.WriteString(keyStyle.Render("c") + descStyle.Render("Custom duration (timer mode)") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Tasks"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("a / e") + descStyle.Render("Add / edit task") + "\n")
	b.WriteString(keyStyle.Render("d") + descStyle.Render("Toggle done") + "\n")
	b.WriteString(keyStyle.Render("x / X") + descStyle.Render("Delete / clear done") + "\n")
	b.WriteString(keyStyle.Render("Enter") + descStyle.Render("Focus task for sessions") + "\n")
	b.WriteString(keyStyle.Render("j / k") + descStyle.Render("Navigate") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("h / l") + descStyle.Render("Adjust value") + "\n")
	b.WriteString(keyStyle.Render("j / k") + descStyle.Render("Navigate") + "\n")

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	content := overlayStyle.Render(b.String())

	return lipgloss.Place(
		h.width,
		h.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
