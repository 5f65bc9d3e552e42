package storage

import "time"

// Task is a user task that work sessions can be attributed to.
type Task struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	Completed      bool      `json:"completed"`
	PomodorosSpent int       `json:"pomodoros_spent"`
}

// TaskStore holds all tasks and is the top-level tasks.json document.
type TaskStore struct {
	Tasks []Task `json:"tasks"`
}

// Session is an immutable record of one completed or aborted timer
// interval. Timestamps are stored in UTC.
type Session struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Type         string    `json:"type"`              // "work" or "break"
	Subtype      string    `json:"subtype,omitempty"` // "short" or "long" for breaks
	DurationSecs int       `json:"duration_secs"`     // planned phase length
	Completed    bool      `json:"completed"`
	Task         string    `json:"task,omitempty"` // associated task id
}

// SessionLog holds the append-only session history plus streak state,
// and is the top-level sessions.json document.
type SessionLog struct {
	Sessions        []Session `json:"sessions"`
	CurrentStreak   int       `json:"current_streak"`
	LongestStreak   int       `json:"longest_streak"`
	LastSessionDate string    `json:"last_session_date,omitempty"` // YYYY-MM-DD
}
