package storage

import (
	"testing"
	"time"
)

// dayAt returns a local-zone timestamp on the given date at hour h.
func dayAt(year int, month time.Month, day, h int) time.Time {
	return time.Date(year, month, day, h, 0, 0, 0, time.Local)
}

func TestRecordStoresUTCAndPlannedDuration(t *testing.T) {
	log := &SessionLog{}
	at := time.Date(2025, 6, 2, 14, 30, 0, 0, time.FixedZone("CEST", 2*3600))

	s := log.Record(at, "work", "", 25*time.Minute, true, "task-1")
	if s.Timestamp.Location() != time.UTC {
		t.Errorf("Timestamp location = %v, want UTC", s.Timestamp.Location())
	}
	if !s.Timestamp.Equal(at) {
		t.Errorf("Timestamp = %v, want instant of %v", s.Timestamp, at)
	}
	if s.DurationSecs != 1500 {
		t.Errorf("DurationSecs = %d, want 1500", s.DurationSecs)
	}
	if s.Task != "task-1" || !s.Completed || s.Type != "work" {
		t.Errorf("session = %+v", s)
	}
	if s.ID == "" {
		t.Error("session ID is empty")
	}
}

func TestSummarizeRanges(t *testing.T) {
	log := &SessionLog{}
	// A Wednesday.
	now := dayAt(2025, 6, 4, 18)

	log.Record(dayAt(2025, 6, 4, 9), "work", "", 25*time.Minute, true, "")   // today
	log.Record(dayAt(2025, 6, 4, 10), "work", "", 25*time.Minute, false, "") // aborted, excluded
	log.Record(dayAt(2025, 6, 4, 11), "break", "short", 5*time.Minute, true, "")
	log.Record(dayAt(2025, 6, 2, 9), "work", "", 50*time.Minute, true, "")  // Monday, this week
	log.Record(dayAt(2025, 5, 28, 9), "work", "", 25*time.Minute, true, "") // last week

	today := log.Summarize(RangeToday, now)
	if today.Sessions != 1 || today.Focus != 25*time.Minute {
		t.Errorf("today = %+v", today)
	}

	week := log.Summarize(RangeThisWeek, now)
	if week.Sessions != 2 || week.Focus != 75*time.Minute {
		t.Errorf("week = %+v", week)
	}

	all := log.Summarize(RangeAllTime, now)
	if all.Sessions != 3 || all.Focus != 100*time.Minute {
		t.Errorf("all = %+v", all)
	}
}

func TestWeeklyHistogram(t *testing.T) {
	log := &SessionLog{}
	now := dayAt(2025, 6, 10, 20)

	log.Record(dayAt(2025, 6, 10, 9), "work", "", 25*time.Minute, true, "")
	log.Record(dayAt(2025, 6, 10, 10), "work", "", 25*time.Minute, true, "")
	log.Record(dayAt(2025, 6, 7, 9), "work", "", 50*time.Minute, true, "")
	log.Record(dayAt(2025, 6, 1, 9), "work", "", 25*time.Minute, true, "") // outside window
	log.Record(dayAt(2025, 6, 10, 11), "break", "short", 5*time.Minute, true, "")

	days := log.WeeklyHistogram(now)
	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}
	if !days[0].Day.Equal(dayAt(2025, 6, 4, 0)) {
		t.Errorf("days[0] = %v, want June 4", days[0].Day)
	}
	if !days[6].Day.Equal(dayAt(2025, 6, 10, 0)) {
		t.Errorf("days[6] = %v, want June 10", days[6].Day)
	}
	if days[6].Focus != 50*time.Minute {
		t.Errorf("today focus = %v, want 50m", days[6].Focus)
	}
	if days[3].Focus != 50*time.Minute {
		t.Errorf("June 7 focus = %v, want 50m", days[3].Focus)
	}
	for _, i := range []int{0, 1, 2, 4, 5} {
		if days[i].Focus != 0 {
			t.Errorf("days[%d].Focus = %v, want 0", i, days[i].Focus)
		}
	}
}

func TestStreakProgression(t *testing.T) {
	log := &SessionLog{}

	log.Record(dayAt(2025, 6, 2, 9), "work", "", 25*time.Minute, true, "")
	if log.CurrentStreak != 1 {
		t.Fatalf("streak = %d, want 1", log.CurrentStreak)
	}

	// Same day does not double count.
	log.Record(dayAt(2025, 6, 2, 15), "work", "", 25*time.Minute, true, "")
	if log.CurrentStreak != 1 {
		t.Errorf("streak after same day = %d, want 1", log.CurrentStreak)
	}

	// Consecutive day extends.
	log.Record(dayAt(2025, 6, 3, 9), "work", "", 25*time.Minute, true, "")
	if log.CurrentStreak != 2 || log.LongestStreak != 2 {
		t.Errorf("streak = %d longest = %d, want 2/2", log.CurrentStreak, log.LongestStreak)
	}

	// Aborted and break sessions leave the streak alone.
	log.Record(dayAt(2025, 6, 4, 9), "work", "", 25*time.Minute, false, "")
	log.Record(dayAt(2025, 6, 4, 9), "break", "short", 5*time.Minute, true, "")
	if log.CurrentStreak != 2 {
		t.Errorf("streak after non-qualifying sessions = %d, want 2", log.CurrentStreak)
	}

	// A gap restarts at 1; longest is kept.
	log.Record(dayAt(2025, 6, 10, 9), "work", "", 25*time.Minute, true, "")
	if log.CurrentStreak != 1 || log.LongestStreak != 2 {
		t.Errorf("streak = %d longest = %d, want 1/2", log.CurrentStreak, log.LongestStreak)
	}
}

func TestRecalculateStreak(t *testing.T) {
	log := &SessionLog{CurrentStreak: 5, LongestStreak: 5, LastSessionDate: "2025-06-02"}

	// Next day: streak survives the load.
	log.RecalculateStreak(dayAt(2025, 6, 3, 8))
	if log.CurrentStreak != 5 {
		t.Errorf("streak = %d, want 5", log.CurrentStreak)
	}

	// Two days later: broken.
	log.RecalculateStreak(dayAt(2025, 6, 5, 8))
	if log.CurrentStreak != 0 {
		t.Errorf("streak = %d, want 0", log.CurrentStreak)
	}
	if log.LongestStreak != 5 {
		t.Errorf("longest = %d, want 5", log.LongestStreak)
	}
}

func TestRecent(t *testing.T) {
	log := &SessionLog{}
	for i := 0; i < 5; i++ {
		log.Record(dayAt(2025, 6, 2, 9+i), "work", "", 25*time.Minute, true, "")
	}
	recent := log.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
	if !recent[0].Timestamp.After(recent[2].Timestamp) {
		t.Error("Recent() not newest first")
	}
	if got := log.Recent(50); len(got) != 5 {
		t.Errorf("Recent(50) len = %d, want 5", len(got))
	}
}
