package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatDailyJSON formats a daily report as indented JSON.
func FormatDailyJSON(r *DailyReport) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FormatWeeklyJSON formats a weekly report as indented JSON.
func FormatWeeklyJSON(r *WeeklyReport) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FormatDailyMarkdown formats a daily report as Markdown.
func FormatDailyMarkdown(r *DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Focus Report: %s\n\n", r.Date)
	fmt.Fprintf(&b, "- **Focus time:** %s\n", formatMinutes(r.FocusMinutes))
	fmt.Fprintf(&b, "- **Pomodoros:** %d", r.Pomodoros)
	if r.DailyGoal > 0 {
		fmt.Fprintf(&b, " / %d", r.DailyGoal)
		if r.GoalMet {
			b.WriteString(" (goal met)")
		}
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- **Break time:** %s\n", formatMinutes(r.BreakMinutes))
	if r.AbortedSessions > 0 {
		fmt.Fprintf(&b, "- **Aborted sessions:** %d\n", r.AbortedSessions)
	}

	if len(r.Tasks) > 0 {
		b.WriteString("\n## Tasks\n\n")
		for _, t := range r.Tasks {
			fmt.Fprintf(&b, "- %s: %d %s\n", t.Name, t.Pomodoros, plural(t.Pomodoros, "pomodoro", "pomodoros"))
		}
	}
	return b.String()
}

// FormatWeeklyMarkdown formats a weekly report as Markdown with a
// per-day table.
func FormatWeeklyMarkdown(r *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Focus Report: %s to %s\n\n", r.StartDate, r.EndDate)
	fmt.Fprintf(&b, "- **Total focus:** %s\n", formatMinutes(r.FocusMinutes))
	fmt.Fprintf(&b, "- **Pomodoros:** %d\n", r.Pomodoros)
	fmt.Fprintf(&b, "- **Daily average:** %s\n", formatMinutes(r.DailyAverage))
	fmt.Fprintf(&b, "- **Streak:** %d %s (longest %d)\n",
		r.CurrentStreak, plural(r.CurrentStreak, "day", "days"), r.LongestStreak)

	b.WriteString("\n## Daily Breakdown\n\n")
	b.WriteString("| Day | Date | Focus | Pomodoros |\n")
	b.WriteString("|-----|------|-------|----------|\n")
	for _, d := range r.Days {
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n",
			d.DayOfWeek[:3], d.Date, formatMinutes(d.FocusMinutes), d.Pomodoros)
	}

	if len(r.Tasks) > 0 {
		b.WriteString("\n## Tasks\n\n")
		for _, t := range r.Tasks {
			fmt.Fprintf(&b, "- %s: %d %s\n", t.Name, t.Pomodoros, plural(t.Pomodoros, "pomodoro", "pomodoros"))
		}
	}
	return b.String()
}

func formatMinutes(mins int) string {
	if mins >= 60 {
		return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
