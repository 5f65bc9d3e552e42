package report

import (
	"strings"
	"testing"
	"time"

	"pomo/internal/storage"
)

func seedLog() (*storage.SessionLog, *storage.TaskStore) {
	log := &storage.SessionLog{}
	tasks := &storage.TaskStore{}

	task, _ := tasks.Add("Deep work", time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))

	at := func(day, hour int) time.Time {
		return time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
	}
	log.Record(at(10, 9), "work", "", 25*time.Minute, true, task.ID)
	log.Record(at(10, 10), "work", "", 25*time.Minute, true, "")
	log.Record(at(10, 11), "break", "short", 5*time.Minute, true, "")
	log.Record(at(10, 12), "work", "", 25*time.Minute, false, "")
	log.Record(at(7, 9), "work", "", 50*time.Minute, true, task.ID)
	log.Record(at(1, 9), "work", "", 25*time.Minute, true, "") // outside week

	return log, tasks
}

func TestDailyReport(t *testing.T) {
	log, tasks := seedLog()
	gen := NewGenerator(log, tasks, storage.DefaultSettings())

	r := gen.Daily(time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC))

	if r.Date != "2025-06-10" {
		t.Errorf("Date = %q", r.Date)
	}
	if r.Pomodoros != 2 || r.FocusMinutes != 50 {
		t.Errorf("Pomodoros = %d FocusMinutes = %d, want 2/50", r.Pomodoros, r.FocusMinutes)
	}
	if r.BreakMinutes != 5 {
		t.Errorf("BreakMinutes = %d, want 5", r.BreakMinutes)
	}
	if r.AbortedSessions != 1 {
		t.Errorf("AbortedSessions = %d, want 1", r.AbortedSessions)
	}
	if r.GoalMet {
		t.Error("GoalMet = true with 2 of 8 pomodoros")
	}
	if len(r.Tasks) != 1 || r.Tasks[0].Name != "Deep work" || r.Tasks[0].Pomodoros != 1 {
		t.Errorf("Tasks = %+v", r.Tasks)
	}
}

func TestWeeklyReport(t *testing.T) {
	log, tasks := seedLog()
	gen := NewGenerator(log, tasks, storage.DefaultSettings())

	r := gen.Weekly(time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC))

	if r.StartDate != "2025-06-04" || r.EndDate != "2025-06-10" {
		t.Errorf("range = %s..%s", r.StartDate, r.EndDate)
	}
	if r.Pomodoros != 3 || r.FocusMinutes != 100 {
		t.Errorf("Pomodoros = %d FocusMinutes = %d, want 3/100", r.Pomodoros, r.FocusMinutes)
	}
	if len(r.Days) != 7 {
		t.Fatalf("len(Days) = %d, want 7", len(r.Days))
	}
	if r.Days[6].Date != "2025-06-10" || r.Days[6].Pomodoros != 2 {
		t.Errorf("last day = %+v", r.Days[6])
	}
	if r.Days[3].FocusMinutes != 50 {
		t.Errorf("June 7 minutes = %d, want 50", r.Days[3].FocusMinutes)
	}
	if len(r.Tasks) != 1 || r.Tasks[0].Pomodoros != 2 {
		t.Errorf("Tasks = %+v", r.Tasks)
	}
}

func TestMarkdownFormatting(t *testing.T) {
	log, tasks := seedLog()
	gen := NewGenerator(log, tasks, storage.DefaultSettings())
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

	daily := FormatDailyMarkdown(gen.Daily(now))
	for _, want := range []string{"# Focus Report: 2025-06-10", "**Pomodoros:** 2 / 8", "Deep work: 1 pomodoro"} {
		if !strings.Contains(daily, want) {
			t.Errorf("daily markdown missing %q:\n%s", want, daily)
		}
	}

	weekly := FormatWeeklyMarkdown(gen.Weekly(now))
	for _, want := range []string{"2025-06-04 to 2025-06-10", "| Tue | 2025-06-10 |", "**Total focus:** 1h 40m"} {
		if !strings.Contains(weekly, want) {
			t.Errorf("weekly markdown missing %q:\n%s", want, weekly)
		}
	}
}

func TestJSONFormatting(t *testing.T) {
	log, tasks := seedLog()
	gen := NewGenerator(log, tasks, storage.DefaultSettings())

	data, err := FormatDailyJSON(gen.Daily(time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("FormatDailyJSON() error = %v", err)
	}
	if !strings.Contains(string(data), `"focus_minutes": 50`) {
		t.Errorf("unexpected JSON:\n%s", data)
	}
}
