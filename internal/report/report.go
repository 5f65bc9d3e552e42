// Package report generates daily and weekly focus reports from the
// session history, for the export subcommand.
package report

import (
	"sort"
	"time"

	"pomo/internal/storage"
)

// DailyReport aggregates one calendar day of sessions.
type DailyReport struct {
	Date            string         `json:"date"` // YYYY-MM-DD
	FocusMinutes    int            `json:"focus_minutes"`
	Pomodoros       int            `json:"pomodoros"`
	BreakMinutes    int            `json:"break_minutes"`
	AbortedSessions int            `json:"aborted_sessions"`
	DailyGoal       int            `json:"daily_goal"`
	GoalMet         bool           `json:"goal_met"`
	Tasks           []TaskActivity `json:"tasks"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// WeeklyReport aggregates the seven days ending on its date.
type WeeklyReport struct {
	StartDate     string         `json:"start_date"` // YYYY-MM-DD
	EndDate       string         `json:"end_date"`
	FocusMinutes  int            `json:"focus_minutes"`
	Pomodoros     int            `json:"pomodoros"`
	DailyAverage  int            `json:"daily_average_minutes"`
	CurrentStreak int            `json:"current_streak"`
	LongestStreak int            `json:"longest_streak"`
	Days          []DayBreakdown `json:"days"`
	Tasks         []TaskActivity `json:"tasks"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

// DayBreakdown is one day inside a weekly report.
type DayBreakdown struct {
	Date         string `json:"date"`
	DayOfWeek    string `json:"day_of_week"`
	FocusMinutes int    `json:"focus_minutes"`
	Pomodoros    int    `json:"pomodoros"`
}

// TaskActivity counts sessions attributed to one task in the period.
type TaskActivity struct {
	Name      string `json:"name"`
	Pomodoros int    `json:"pomodoros"`
}

// Generator builds reports from the loaded session log and task store.
type Generator struct {
	sessions *storage.SessionLog
	tasks    *storage.TaskStore
	settings storage.Settings
}

// NewGenerator creates a report generator over in-memory state.
func NewGenerator(sessions *storage.SessionLog, tasks *storage.TaskStore, settings storage.Settings) *Generator {
	return &Generator{sessions: sessions, tasks: tasks, settings: settings}
}

// Daily builds the report for date's calendar day.
func (g *Generator) Daily(date time.Time) *DailyReport {
	start := startOfDay(date)
	end := start.AddDate(0, 0, 1)

	r := &DailyReport{
		Date:        start.Format("2006-01-02"),
		DailyGoal:   g.settings.DailyGoalPomodoros,
		GeneratedAt: time.Now(),
	}

	taskCounts := make(map[string]int)
	for _, s := range g.sessions.Sessions {
		local := s.Timestamp.In(date.Location())
		if local.Before(start) || !local.Before(end) {
			continue
		}
		switch {
		case s.Type == "work" && s.Completed:
			r.Pomodoros++
			r.FocusMinutes += s.DurationSecs / 60
			if s.Task != "" {
				taskCounts[s.Task]++
			}
		case s.Type == "break" && s.Completed:
			r.BreakMinutes += s.DurationSecs / 60
		case !s.Completed:
			r.AbortedSessions++
		}
	}
	r.GoalMet = r.DailyGoal > 0 && r.Pomodoros >= r.DailyGoal
	r.Tasks = g.taskActivity(taskCounts)
	return r
}

// Weekly builds the report for the seven calendar days ending on date.
func (g *Generator) Weekly(date time.Time) *WeeklyReport {
	end := startOfDay(date)
	start := end.AddDate(0, 0, -6)

	r := &WeeklyReport{
		StartDate:     start.Format("2006-01-02"),
		EndDate:       end.Format("2006-01-02"),
		CurrentStreak: g.sessions.CurrentStreak,
		LongestStreak: g.sessions.LongestStreak,
		GeneratedAt:   time.Now(),
	}

	days := make([]DayBreakdown, 7)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = DayBreakdown{
			Date:      d.Format("2006-01-02"),
			DayOfWeek: d.Weekday().String(),
		}
	}

	taskCounts := make(map[string]int)
	for _, s := range g.sessions.Sessions {
		if s.Type != "work" || !s.Completed {
			continue
		}
		local := s.Timestamp.In(date.Location())
		idx := int(startOfDay(local).Sub(start) / (24 * time.Hour))
		if idx < 0 || idx > 6 {
			continue
		}
		days[idx].Pomodoros++
		days[idx].FocusMinutes += s.DurationSecs / 60
		r.Pomodoros++
		r.FocusMinutes += s.DurationSecs / 60
		if s.Task != "" {
			taskCounts[s.Task]++
		}
	}
	r.Days = days
	r.DailyAverage = r.FocusMinutes / 7
	r.Tasks = g.taskActivity(taskCounts)
	return r
}

// taskActivity resolves task ids to names, most active first. Sessions
// pointing at deleted tasks are grouped under their raw id.
func (g *Generator) taskActivity(counts map[string]int) []TaskActivity {
	out := make([]TaskActivity, 0, len(counts))
	for id, n := range counts {
		name := id
		if task, err := g.tasks.Get(id); err == nil {
			name = task.Name
		}
		out = append(out, TaskActivity{Name: name, Pomodoros: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pomodoros != out[j].Pomodoros {
			return out[i].Pomodoros > out[j].Pomodoros
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
