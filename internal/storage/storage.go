// Package storage owns pomo's durable state: the task store, the session
// log, and the timer settings, persisted as three independent JSON
// documents in a single data directory. File writes are atomic with
// best-effort backups; unreadable documents are replaced by defaults in
// memory while the bytes on disk are preserved for inspection.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomo/internal/fsutil"
)

// Sentinel errors for the persistence layer.
var (
	// ErrNotFound is returned when a task id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt is returned (wrapped, with the entity's filename) when a
	// data file exists but cannot be parsed. The caller should continue
	// with defaults; the corrupt bytes stay on disk.
	ErrCorrupt = errors.New("corrupt data file")

	// ErrInvalidDuration is returned when a settings edit carries a
	// non-positive duration or cycle length.
	ErrInvalidDuration = errors.New("invalid duration")
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	tasksFile    = "tasks.json"
	sessionsFile = "sessions.json"
	settingsFile = "config.json"
)

// Storage handles all file I/O for the data directory.
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory and
// any missing data files.
func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Storage{dataDir: dataDir}
	if err := s.initFiles(); err != nil {
		return nil, err
	}
	return s, nil
}

// DataDir returns the path to the data directory.
func (s *Storage) DataDir() string {
	return s.dataDir
}

// initFiles writes default documents for any that don't exist yet.
func (s *Storage) initFiles() error {
	if !fileExists(s.path(tasksFile)) {
		if err := s.SaveTasks(&TaskStore{Tasks: []Task{}}); err != nil {
			return err
		}
	}
	if !fileExists(s.path(sessionsFile)) {
		if err := s.SaveSessions(&SessionLog{Sessions: []Session{}}); err != nil {
			return err
		}
	}
	if !fileExists(s.path(settingsFile)) {
		defaults := DefaultSettings()
		if err := s.SaveSettings(&defaults); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) path(filename string) string {
	return filepath.Join(s.dataDir, filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func (s *Storage) writeJSONAtomic(filename string, v any) error {
	path := s.path(filename)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", filename, err)
	}

	// Keep a best-effort backup before overwriting.
	fsutil.BestEffortBackup(path, dataFilePerm)

	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// loadJSON reads filename into v. A missing file leaves v at its default
// value. A malformed file also leaves v at defaults and returns an error
// wrapping ErrCorrupt; the broken file is copied aside with a timestamped
// suffix and the original is left untouched until the next save (which
// takes its own backup first).
func (s *Storage) loadJSON(filename string, v any) error {
	path := s.path(filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", filename, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.corruptJSON(filename, data, fmt.Errorf("%s is empty", filename))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return s.corruptJSON(filename, data, fmt.Errorf("parse %s: %w", filename, err))
	}
	return nil
}

func (s *Storage) corruptJSON(filename string, data []byte, cause error) error {
	copyPath := fmt.Sprintf("%s.corrupt.%s", s.path(filename), time.Now().Format("20060102-150405"))
	_ = os.WriteFile(copyPath, data, dataFilePerm)
	return fmt.Errorf("%s (using defaults; copy preserved at %s): %w", cause.Error(), copyPath, ErrCorrupt)
}

// LoadTasks reads the task store from disk.
func (s *Storage) LoadTasks() (*TaskStore, error) {
	store := TaskStore{Tasks: []Task{}}
	err := s.loadJSON(tasksFile, &store)
	return &store, err
}

// SaveTasks writes the task store to disk.
func (s *Storage) SaveTasks(store *TaskStore) error {
	return s.writeJSONAtomic(tasksFile, store)
}

// LoadSessions reads the session log from disk.
func (s *Storage) LoadSessions() (*SessionLog, error) {
	log := SessionLog{Sessions: []Session{}}
	err := s.loadJSON(sessionsFile, &log)
	return &log, err
}

// SaveSessions writes the session log to disk.
func (s *Storage) SaveSessions(log *SessionLog) error {
	return s.writeJSONAtomic(sessionsFile, log)
}

// LoadSettings reads the timer settings from disk, falling back to
// defaults for missing or corrupt files.
func (s *Storage) LoadSettings() (*Settings, error) {
	settings := DefaultSettings()
	err := s.loadJSON(settingsFile, &settings)
	if err != nil {
		settings = DefaultSettings()
	} else if verr := settings.Validate(); verr != nil {
		// Out-of-range values on disk are treated like corruption rather
		// than propagated into the engine.
		settings = DefaultSettings()
		err = s.corruptJSON(settingsFile, nil, verr)
	}
	return &settings, err
}

// SaveSettings validates and writes the settings to disk. Invalid
// settings are rejected before anything touches the file.
func (s *Storage) SaveSettings(settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.writeJSONAtomic(settingsFile, settings)
}
