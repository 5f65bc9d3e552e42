package storage

import (
	"fmt"
	"time"
)

// Settings is the timer configuration persisted as config.json in the
// data directory. Durations are stored in minutes.
type Settings struct {
	WorkDurationMins        int    `json:"work_duration_mins"`
	ShortBreakMins          int    `json:"short_break_mins"`
	LongBreakMins           int    `json:"long_break_mins"`
	SessionsBeforeLongBreak int    `json:"sessions_before_long_break"`
	DefaultMode             string `json:"default_mode"` // "pomodoro" or "timer"
	AutoStartBreaks         bool   `json:"auto_start_breaks"`
	NotificationsEnabled    bool   `json:"notifications_enabled"`
	SoundEnabled            bool   `json:"sound_enabled"`
	Theme                   string `json:"theme"`
	DailyGoalPomodoros      int    `json:"daily_goal_pomodoros"`
}

// DefaultSettings returns the out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		WorkDurationMins:        25,
		ShortBreakMins:          5,
		LongBreakMins:           15,
		SessionsBeforeLongBreak: 4,
		DefaultMode:             "pomodoro",
		AutoStartBreaks:         false,
		NotificationsEnabled:    true,
		SoundEnabled:            false,
		Theme:                   "dark",
		DailyGoalPomodoros:      8,
	}
}

// Validate checks that every field carries a usable value. All duration
// and count failures wrap ErrInvalidDuration so callers can test with
// errors.Is.
func (s *Settings) Validate() error {
	if s.WorkDurationMins < 1 || s.WorkDurationMins > 180 {
		return fmt.Errorf("work duration %d min out of range [1, 180]: %w", s.WorkDurationMins, ErrInvalidDuration)
	}
	if s.ShortBreakMins < 1 || s.ShortBreakMins > 60 {
		return fmt.Errorf("short break %d min out of range [1, 60]: %w", s.ShortBreakMins, ErrInvalidDuration)
	}
	if s.LongBreakMins < 1 || s.LongBreakMins > 60 {
		return fmt.Errorf("long break %d min out of range [1, 60]: %w", s.LongBreakMins, ErrInvalidDuration)
	}
	if s.SessionsBeforeLongBreak < 1 || s.SessionsBeforeLongBreak > 12 {
		return fmt.Errorf("sessions before long break %d out of range [1, 12]: %w", s.SessionsBeforeLongBreak, ErrInvalidDuration)
	}
	if s.DefaultMode != "pomodoro" && s.DefaultMode != "timer" {
		return fmt.Errorf("unknown default mode %q", s.DefaultMode)
	}
	if s.DailyGoalPomodoros < 0 {
		return fmt.Errorf("daily goal %d must not be negative: %w", s.DailyGoalPomodoros, ErrInvalidDuration)
	}
	return nil
}

// WorkDuration returns the work phase length.
func (s *Settings) WorkDuration() time.Duration {
	return time.Duration(s.WorkDurationMins) * time.Minute
}

// ShortBreakDuration returns the short break length.
func (s *Settings) ShortBreakDuration() time.Duration {
	return time.Duration(s.ShortBreakMins) * time.Minute
}

// LongBreakDuration returns the long break length.
func (s *Settings) LongBreakDuration() time.Duration {
	return time.Duration(s.LongBreakMins) * time.Minute
}
