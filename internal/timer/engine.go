// Package timer implements the phase state machine at the heart of pomo:
// a Pomodoro cycle (Work / ShortBreak / LongBreak) and a free-form
// countdown mode, driven by an external fixed-cadence tick.
//
// The engine owns only transient timing state. Completed and aborted
// phases are surfaced as Events; recording them, incrementing task
// counters, and dispatching notifications are the caller's concern.
package timer

import (
	"errors"
	"time"
)

// Sentinel errors returned by engine operations.
var (
	// ErrInvalidDuration is returned for a custom duration outside the
	// accepted [1m, 180m] range.
	ErrInvalidDuration = errors.New("duration must be between 1 and 180 minutes")

	// ErrNotTimerMode is returned when a custom duration is set while the
	// engine is in Pomodoro mode.
	ErrNotTimerMode = errors.New("custom duration only applies in timer mode")
)

// Custom duration bounds for free-form timer mode.
const (
	MinCustomDuration = time.Minute
	MaxCustomDuration = 180 * time.Minute
)

// Phase is the current interval type.
type Phase int

const (
	PhaseWork Phase = iota
	PhaseShortBreak
	PhaseLongBreak
	PhaseCustom
)

// String returns the phase's display name.
func (p Phase) String() string {
	switch p {
	case PhaseWork:
		return "Work"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Timer"
	}
}

// SessionType maps the phase to the recorded session type. Custom
// countdowns count as focus time, matching work.
func (p Phase) SessionType() string {
	switch p {
	case PhaseShortBreak, PhaseLongBreak:
		return "break"
	default:
		return "work"
	}
}

// Subtype distinguishes the two break kinds in the session log.
func (p Phase) Subtype() string {
	switch p {
	case PhaseShortBreak:
		return "short"
	case PhaseLongBreak:
		return "long"
	default:
		return ""
	}
}

// IsBreak reports whether the phase is a short or long break.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// Mode selects between the auto-cycling Pomodoro machine and a single
// free-form countdown.
type Mode int

const (
	ModePomodoro Mode = iota
	ModeTimer
)

func (m Mode) String() string {
	if m == ModeTimer {
		return "timer"
	}
	return "pomodoro"
}

// Config holds the engine-relevant slice of the application settings.
type Config struct {
	WorkDuration            time.Duration
	ShortBreakDuration      time.Duration
	LongBreakDuration       time.Duration
	SessionsBeforeLongBreak int
	AutoStartBreaks         bool
}

// Event describes a phase ending, either naturally (Completed) or by a
// manual reset/skip. At most one event is produced per operation.
type Event struct {
	Phase   Phase
	Planned time.Duration // full length of the phase
	Elapsed time.Duration // time actually accrued
	// Completed is true only for natural completion (remaining reached
	// zero while running).
	Completed bool
	// Notify marks events that should trigger a notification. Manual
	// skips and resets never notify.
	Notify bool
	TaskID string
	At     time.Time // wall-clock time the event occurred
}

// Engine is the timer state machine. It is not safe for concurrent use;
// a single control loop must drive it.
type Engine struct {
	clock Clock
	cfg   Config

	mode     Mode
	phase    Phase
	duration time.Duration
	custom   time.Duration

	startedAt     time.Time
	elapsedBefore time.Duration
	running       bool

	workDone int // completed work sessions in the current cycle
	taskID   string
}

// New creates an engine in Pomodoro mode, Work phase, paused.
func New(clock Clock, cfg Config) *Engine {
	return &Engine{
		clock:    clock,
		cfg:      cfg,
		mode:     ModePomodoro,
		phase:    PhaseWork,
		duration: cfg.WorkDuration,
		custom:   cfg.WorkDuration,
	}
}

// Start begins or resumes the countdown. No-op while running.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.startedAt = e.clock.Now()
	e.running = true
}

// Pause folds accrued time into the paused accumulator. No-op while paused.
func (e *Engine) Pause() {
	if !e.running {
		return
	}
	e.elapsedBefore += e.clock.Now().Sub(e.startedAt)
	e.running = false
}

// Reset clears accrued time, keeping the current phase and duration. If
// any time had accrued, the aborted phase is returned as an incomplete
// event so it can be recorded; instant resets produce nothing.
func (e *Engine) Reset() *Event {
	ev := e.abortEvent()
	e.elapsedBefore = 0
	e.running = false
	return ev
}

// Skip forces the transition that natural completion would have made. An
// incomplete event is returned for the abandoned phase if it had accrued
// any time. Skips never notify.
func (e *Engine) Skip() *Event {
	ev := e.abortEvent()
	if e.mode == ModePomodoro {
		e.advanceCycle()
	} else {
		e.rearm(e.custom)
	}
	return ev
}

// Tick recomputes remaining time and fires natural completion when the
// phase has run its full duration. Call at a fixed cadence (~100ms);
// completion is based on accumulated real elapsed time, not tick count.
func (e *Engine) Tick() *Event {
	if !e.running || e.Remaining() > 0 {
		return nil
	}

	ev := &Event{
		Phase:     e.phase,
		Planned:   e.duration,
		Elapsed:   e.duration,
		Completed: true,
		Notify:    true,
		TaskID:    e.taskID,
		At:        e.clock.Now(),
	}

	if e.mode == ModePomodoro {
		e.advanceCycle()
		if e.cfg.AutoStartBreaks || e.phase == PhaseWork {
			e.Start()
		}
	} else {
		e.rearm(e.custom)
	}
	return ev
}

// SwitchMode toggles between Pomodoro and free-form timer mode. Any
// in-progress elapsed time is discarded without recording a session.
func (e *Engine) SwitchMode() {
	if e.mode == ModePomodoro {
		e.mode = ModeTimer
		e.phase = PhaseCustom
		e.rearm(e.custom)
		return
	}
	e.mode = ModePomodoro
	e.phase = PhaseWork
	e.workDone = 0
	e.rearm(e.cfg.WorkDuration)
}

// SetCustomDuration sets the free-form countdown length. Only valid in
// timer mode; d must be within [MinCustomDuration, MaxCustomDuration].
func (e *Engine) SetCustomDuration(d time.Duration) error {
	if e.mode != ModeTimer {
		return ErrNotTimerMode
	}
	if d < MinCustomDuration || d > MaxCustomDuration {
		return ErrInvalidDuration
	}
	e.custom = d
	e.rearm(d)
	return nil
}

// ApplyConfig installs new settings. A pristine paused phase picks up its
// new duration immediately; a phase with accrued time keeps its length
// until the next transition. A lowered SessionsBeforeLongBreak takes
// effect on the next work completion via the >= comparison in the cycle.
func (e *Engine) ApplyConfig(cfg Config) {
	e.cfg = cfg
	if !e.running && e.elapsedBefore == 0 && e.mode == ModePomodoro {
		e.duration = e.phaseDuration(e.phase)
	}
}

// AttachTask associates subsequent sessions with the given task id.
func (e *Engine) AttachTask(id string) { e.taskID = id }

// DetachTask clears the association if it points at id. Used when a task
// is deleted so later completions record an unassociated session.
func (e *Engine) DetachTask(id string) {
	if e.taskID == id {
		e.taskID = ""
	}
}

// Elapsed returns the time accrued in the current phase.
func (e *Engine) Elapsed() time.Duration {
	elapsed := e.elapsedBefore
	if e.running {
		elapsed += e.clock.Now().Sub(e.startedAt)
	}
	return elapsed
}

// Remaining returns the time left in the current phase, never negative.
func (e *Engine) Remaining() time.Duration {
	if rem := e.duration - e.Elapsed(); rem > 0 {
		return rem
	}
	return 0
}

// Progress returns completion of the current phase in [0, 1].
func (e *Engine) Progress() float64 {
	if e.duration <= 0 {
		return 0
	}
	return 1 - float64(e.Remaining())/float64(e.duration)
}

// Phase returns the current interval type.
func (e *Engine) Phase() Phase { return e.phase }

// Mode returns the current timer mode.
func (e *Engine) Mode() Mode { return e.mode }

// Running reports whether the countdown is active.
func (e *Engine) Running() bool { return e.running }

// Duration returns the full length of the current phase.
func (e *Engine) Duration() time.Duration { return e.duration }

// WorkSessionsCompleted returns the work count in the current cycle,
// always in [0, SessionsBeforeLongBreak).
func (e *Engine) WorkSessionsCompleted() int { return e.workDone }

// TaskID returns the associated task id, or "" when unassociated.
func (e *Engine) TaskID() string { return e.taskID }

// ConfigSnapshot returns the currently installed configuration.
func (e *Engine) ConfigSnapshot() Config { return e.cfg }

// CustomDuration returns the configured free-form countdown length.
func (e *Engine) CustomDuration() time.Duration { return e.custom }

// abortEvent captures the current phase as an incomplete event, or nil
// if no time has accrued.
func (e *Engine) abortEvent() *Event {
	elapsed := e.Elapsed()
	if elapsed <= 0 {
		return nil
	}
	return &Event{
		Phase:   e.phase,
		Planned: e.duration,
		Elapsed: elapsed,
		TaskID:  e.taskID,
		At:      e.clock.Now(),
	}
}

// advanceCycle applies the Pomodoro transition and rearms the next phase
// paused. Completing the Nth work session enters the long break and
// resets the cycle counter; the >= comparison means a configuration edit
// lowering the threshold below the counter triggers the long break on the
// very next work completion.
func (e *Engine) advanceCycle() {
	switch e.phase {
	case PhaseWork:
		e.workDone++
		if e.workDone >= e.cfg.SessionsBeforeLongBreak {
			e.phase = PhaseLongBreak
			e.workDone = 0
		} else {
			e.phase = PhaseShortBreak
		}
	default:
		e.phase = PhaseWork
	}
	e.rearm(e.phaseDuration(e.phase))
}

// rearm resets the countdown to a fresh paused phase of length d.
func (e *Engine) rearm(d time.Duration) {
	e.duration = d
	e.elapsedBefore = 0
	e.running = false
}

func (e *Engine) phaseDuration(p Phase) time.Duration {
	switch p {
	case PhaseShortBreak:
		return e.cfg.ShortBreakDuration
	case PhaseLongBreak:
		return e.cfg.LongBreakDuration
	case PhaseCustom:
		return e.custom
	default:
		return e.cfg.WorkDuration
	}
}
