package storage

import (
	"time"
)

// Entity names the three persisted documents.
type Entity string

const (
	EntityTasks    Entity = "tasks"
	EntitySessions Entity = "sessions"
	EntitySettings Entity = "settings"
)

// flushInterval is the minimum spacing between writes of the same
// entity. Rapid edits coalesce into at most one write per window.
const flushInterval = time.Second

// Gateway mediates between the in-memory state and the Storage files.
// Mutations mark their entity dirty; MaybeFlush, called from the tick
// loop, writes dirty entities at most once per flushInterval. Settings
// saves are synchronous and bypass coalescing. The gateway is driven by
// a single event loop and is not safe for concurrent use.
type Gateway struct {
	store *Storage

	tasks    *TaskStore
	sessions *SessionLog
	settings *Settings

	now       func() time.Time
	dirty     map[Entity]bool
	lastWrite map[Entity]time.Time
}

// NewGateway loads all three documents. Load problems (corrupt files,
// unreadable files) are returned as warnings alongside a usable gateway
// holding defaults for whatever failed.
func NewGateway(store *Storage) (*Gateway, []error) {
	var warnings []error

	tasks, err := store.LoadTasks()
	if err != nil {
		warnings = append(warnings, err)
	}
	sessions, err := store.LoadSessions()
	if err != nil {
		warnings = append(warnings, err)
	}
	settings, err := store.LoadSettings()
	if err != nil {
		warnings = append(warnings, err)
	}

	g := &Gateway{
		store:     store,
		tasks:     tasks,
		sessions:  sessions,
		settings:  settings,
		now:       time.Now,
		dirty:     make(map[Entity]bool),
		lastWrite: make(map[Entity]time.Time),
	}
	g.sessions.RecalculateStreak(g.now())
	return g, warnings
}

// SetNowFunc overrides the clock, for tests.
func (g *Gateway) SetNowFunc(now func() time.Time) { g.now = now }

// DataDir returns the backing data directory.
func (g *Gateway) DataDir() string { return g.store.DataDir() }

// Tasks returns the live task store. Mutations must be followed by
// MarkDirty(EntityTasks).
func (g *Gateway) Tasks() *TaskStore { return g.tasks }

// Sessions returns the live session log. Mutations must be followed by
// MarkDirty(EntitySessions).
func (g *Gateway) Sessions() *SessionLog { return g.sessions }

// Settings returns the current settings. Edit through UpdateSettings.
func (g *Gateway) Settings() Settings { return *g.settings }

// MarkDirty flags an entity for the next flush window.
func (g *Gateway) MarkDirty(e Entity) { g.dirty[e] = true }

// MaybeFlush writes each dirty entity whose flush window has elapsed.
// Failed writes stay dirty and are retried on a later tick. Call once
// per tick.
func (g *Gateway) MaybeFlush() []error {
	var errs []error
	now := g.now()
	for entity := range g.dirty {
		if now.Sub(g.lastWrite[entity]) < flushInterval {
			continue
		}
		if err := g.write(entity); err != nil {
			errs = append(errs, err)
			continue
		}
		delete(g.dirty, entity)
		g.lastWrite[entity] = now
	}
	return errs
}

// Flush writes every dirty entity immediately, ignoring the coalescing
// window. Called on shutdown.
func (g *Gateway) Flush() []error {
	var errs []error
	for entity := range g.dirty {
		if err := g.write(entity); err != nil {
			errs = append(errs, err)
			continue
		}
		delete(g.dirty, entity)
		g.lastWrite[entity] = g.now()
	}
	return errs
}

// UpdateSettings validates and persists new settings synchronously.
// Invalid settings are rejected and the previous values stay in effect.
// A write failure keeps the new values in memory and leaves the entity
// dirty for retry.
func (g *Gateway) UpdateSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	*g.settings = s
	if err := g.store.SaveSettings(g.settings); err != nil {
		g.dirty[EntitySettings] = true
		return err
	}
	delete(g.dirty, EntitySettings)
	g.lastWrite[EntitySettings] = g.now()
	return nil
}

func (g *Gateway) write(e Entity) error {
	switch e {
	case EntityTasks:
		return g.store.SaveTasks(g.tasks)
	case EntitySessions:
		return g.store.SaveSessions(g.sessions)
	case EntitySettings:
		return g.store.SaveSettings(g.settings)
	}
	return nil
}
