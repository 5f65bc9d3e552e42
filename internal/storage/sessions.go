package storage

import (
	"time"

	"github.com/google/uuid"
)

// Range selects the window a summary covers.
type Range int

const (
	RangeToday Range = iota
	RangeThisWeek
	RangeAllTime
)

func (r Range) String() string {
	switch r {
	case RangeToday:
		return "today"
	case RangeThisWeek:
		return "this week"
	default:
		return "all time"
	}
}

// Summary aggregates focus time over a range. Only completed work
// sessions contribute.
type Summary struct {
	Focus    time.Duration
	Sessions int
}

// DayFocus is one bucket of the weekly histogram.
type DayFocus struct {
	Day   time.Time // start of day, caller's location
	Focus time.Duration
}

// Record appends a session for a finished or aborted phase and updates
// the streak counters. The stored timestamp is UTC; streak dates follow
// the caller's location via at.
func (sl *SessionLog) Record(at time.Time, sessionType, subtype string, planned time.Duration, completed bool, taskID string) *Session {
	s := Session{
		ID:           uuid.New().String(),
		Timestamp:    at.UTC(),
		Type:         sessionType,
		Subtype:      subtype,
		DurationSecs: int(planned / time.Second),
		Completed:    completed,
		Task:         taskID,
	}
	sl.Sessions = append(sl.Sessions, s)

	if sessionType == "work" && completed {
		sl.updateStreak(at)
	}
	return &sl.Sessions[len(sl.Sessions)-1]
}

// updateStreak extends or restarts the day streak for a completed work
// session on the given date.
func (sl *SessionLog) updateStreak(at time.Time) {
	today := at.Format("2006-01-02")
	switch sl.LastSessionDate {
	case today:
		// Already counted today.
	case at.AddDate(0, 0, -1).Format("2006-01-02"):
		sl.CurrentStreak++
	default:
		sl.CurrentStreak = 1
	}
	sl.LastSessionDate = today
	if sl.CurrentStreak > sl.LongestStreak {
		sl.LongestStreak = sl.CurrentStreak
	}
}

// RecalculateStreak breaks the current streak when more than one day has
// passed since the last completed work session. Called once after load.
func (sl *SessionLog) RecalculateStreak(now time.Time) {
	if sl.LastSessionDate == "" {
		sl.CurrentStreak = 0
		return
	}
	last, err := time.ParseInLocation("2006-01-02", sl.LastSessionDate, now.Location())
	if err != nil {
		sl.CurrentStreak = 0
		sl.LastSessionDate = ""
		return
	}
	gap := startOfDay(now).Sub(startOfDay(last))
	if gap > 24*time.Hour {
		sl.CurrentStreak = 0
	}
}

// Summarize totals completed work sessions over the given range. Focus
// time counts the planned length of each completed session.
func (sl *SessionLog) Summarize(r Range, now time.Time) Summary {
	var cutoff time.Time
	switch r {
	case RangeToday:
		cutoff = startOfDay(now)
	case RangeThisWeek:
		cutoff = startOfWeek(now)
	}

	var sum Summary
	for _, s := range sl.Sessions {
		if s.Type != "work" || !s.Completed {
			continue
		}
		if r != RangeAllTime && s.Timestamp.In(now.Location()).Before(cutoff) {
			continue
		}
		sum.Sessions++
		sum.Focus += time.Duration(s.DurationSecs) * time.Second
	}
	return sum
}

// WeeklyHistogram buckets completed work time into the seven calendar
// days ending today, oldest first. Days without sessions appear with
// zero focus.
func (sl *SessionLog) WeeklyHistogram(now time.Time) []DayFocus {
	days := make([]DayFocus, 7)
	start := startOfDay(now).AddDate(0, 0, -6)
	for i := range days {
		days[i].Day = start.AddDate(0, 0, i)
	}

	for _, s := range sl.Sessions {
		if s.Type != "work" || !s.Completed {
			continue
		}
		local := s.Timestamp.In(now.Location())
		idx := int(startOfDay(local).Sub(start) / (24 * time.Hour))
		if idx < 0 || idx > 6 {
			continue
		}
		days[idx].Focus += time.Duration(s.DurationSecs) * time.Second
	}
	return days
}

// Recent returns up to n sessions, newest first.
func (sl *SessionLog) Recent(n int) []Session {
	if n > len(sl.Sessions) {
		n = len(sl.Sessions)
	}
	out := make([]Session, 0, n)
	for i := len(sl.Sessions) - 1; i >= len(sl.Sessions)-n; i-- {
		out = append(out, sl.Sessions[i])
	}
	return out
}

// TodayPomodoroCount returns completed work sessions for the current
// calendar day, used against the daily goal.
func (sl *SessionLog) TodayPomodoroCount(now time.Time) int {
	return sl.Summarize(RangeToday, now).Sessions
}

// startOfDay returns midnight of t's calendar day in its location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the most recent Monday.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
