package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"pomo/internal/storage"
)

// DashboardPane shows focus statistics: today, this week, all time,
// streaks, the daily goal, a 7-day histogram, and recent sessions.
type DashboardPane struct {
	gateway *storage.Gateway
	styles  *Styles
	now     func() time.Time

	width  int
	height int
}

// NewDashboardPane creates the dashboard pane.
func NewDashboardPane(gateway *storage.Gateway, styles *Styles) *DashboardPane {
	return &DashboardPane{
		gateway: gateway,
		styles:  styles,
		now:     time.Now,
	}
}

// SetSize sets the pane dimensions.
func (p *DashboardPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetNowFunc overrides the clock, for tests.
func (p *DashboardPane) SetNowFunc(now func() time.Time) {
	p.now = now
}

// View renders the dashboard.
func (p *DashboardPane) View() string {
	var b strings.Builder
	now := p.now()
	sessions := p.gateway.Sessions()
	settings := p.gateway.Settings()

	b.WriteString(p.styles.PaneTitleStyle.Render("Dashboard"))
	b.WriteString("\n")

	today := sessions.Summarize(storage.RangeToday, now)
	week := sessions.Summarize(storage.RangeThisWeek, now)
	all := sessions.Summarize(storage.RangeAllTime, now)

	b.WriteString(p.statLine("Today", today))
	b.WriteString(p.statLine("This week", week))
	b.WriteString(p.statLine("All time", all))
	b.WriteString("\n")

	if settings.DailyGoalPomodoros > 0 {
		b.WriteString(p.renderGoal(today.Sessions, settings.DailyGoalPomodoros))
		b.WriteString("\n")
	}
	b.WriteString(p.renderStreak(sessions))
	b.WriteString("\n\n")

	b.WriteString(p.styles.StatLabelStyle.Render("Last 7 days"))
	b.WriteString("\n")
	b.WriteString(p.renderHistogram(sessions, now))
	b.WriteString("\n")

	b.WriteString(p.renderRecent(sessions))
	return b.String()
}

func (p *DashboardPane) statLine(label string, sum storage.Summary) string {
	return fmt.Sprintf("%s %s %s\n",
		p.styles.StatLabelStyle.Render(fmt.Sprintf("%-10s", label)),
		p.styles.StatValueStyle.Render(formatFocus(sum.Focus)),
		p.styles.StatLabelStyle.Render(fmt.Sprintf("(%d sessions)", sum.Sessions)))
}

func (p *DashboardPane) renderGoal(done, goal int) string {
	line := fmt.Sprintf("Goal: %d/%d pomodoros", done, goal)
	if done >= goal {
		return p.styles.GoalMetStyle.Render(line + " ✓")
	}
	return p.styles.StatLabelStyle.Render(line)
}

func (p *DashboardPane) renderStreak(sessions *storage.SessionLog) string {
	if sessions.CurrentStreak == 0 {
		return p.styles.StatLabelStyle.Render("No active streak")
	}
	return p.styles.StreakStyle.Render(
		fmt.Sprintf("🔥 %d day streak", sessions.CurrentStreak)) +
		p.styles.StatLabelStyle.Render(fmt.Sprintf("  (best %d)", sessions.LongestStreak))
}

// renderHistogram draws completed focus hours per day as a bar chart.
func (p *DashboardPane) renderHistogram(sessions *storage.SessionLog, now time.Time) string {
	width := p.width - 4
	if width < 24 {
		width = 24
	}
	if width > 60 {
		width = 60
	}
	height := 8
	if p.height > 0 && p.height < 24 {
		height = 6
	}

	chart := barchart.New(width, height)

	barStyle := lipgloss.NewStyle().Foreground(p.styles.ColorAccent)
	emptyStyle := lipgloss.NewStyle().Foreground(p.styles.ColorMuted)

	days := sessions.WeeklyHistogram(now)
	bars := make([]barchart.BarData, 0, len(days))
	for _, day := range days {
		hours := day.Focus.Hours()
		style := barStyle
		if day.Focus == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: day.Day.Format("Mon"),
			Values: []barchart.BarValue{
				{Name: day.Day.Format("2006-01-02"), Value: hours, Style: style},
			},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func (p *DashboardPane) renderRecent(sessions *storage.SessionLog) string {
	recent := sessions.Recent(5)
	if len(recent) == 0 {
		return p.styles.StatLabelStyle.Render("No sessions yet")
	}

	var b strings.Builder
	b.WriteString(p.styles.StatLabelStyle.Render("Recent sessions"))
	b.WriteString("\n")
	for _, s := range recent {
		mark := "✓"
		if !s.Completed {
			mark = "·"
		}
		kind := s.Type
		if s.Subtype != "" {
			kind = s.Subtype + " " + s.Type
		}
		line := fmt.Sprintf("%s %s  %s  %dm",
			mark,
			s.Timestamp.Local().Format("Jan 02 15:04"),
			kind,
			s.DurationSecs/60)
		if s.Completed {
			b.WriteString(p.styles.StatValueStyle.Render(line))
		} else {
			b.WriteString(p.styles.StatLabelStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatFocus renders a focus total as hours and minutes.
func formatFocus(d time.Duration) string {
	mins := int(d / time.Minute)
	if mins >= 60 {
		return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}
