package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// createTestStorage creates a Storage instance with a temporary directory.
func createTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return store
}

func TestNewCreatesDefaultFiles(t *testing.T) {
	store := createTestStorage(t)

	for _, name := range []string{"tasks.json", "sessions.json", "config.json"} {
		if _, err := os.Stat(filepath.Join(store.DataDir(), name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}

	settings, err := store.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if *settings != DefaultSettings() {
		t.Errorf("fresh settings = %+v, want defaults", settings)
	}
}

func TestTasksRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tasks := &TaskStore{}
	task, err := tasks.Add("Write report", now)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if task.ID == "" {
		t.Error("task.ID is empty")
	}
	tasks.IncrementPomodoros(task.ID)

	if err := store.SaveTasks(tasks); err != nil {
		t.Fatalf("SaveTasks() error = %v", err)
	}
	loaded, err := store.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks() error = %v", err)
	}
	if len(loaded.Tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(loaded.Tasks))
	}
	got := loaded.Tasks[0]
	if got.Name != "Write report" || got.PomodorosSpent != 1 || got.Completed {
		t.Errorf("loaded task = %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}
}

func TestAddTaskValidation(t *testing.T) {
	tasks := &TaskStore{}
	if _, err := tasks.Add("   ", time.Now()); err == nil {
		t.Error("Add() with blank name should fail")
	}

	task, err := tasks.Add("  padded  ", time.Now())
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if task.Name != "padded" {
		t.Errorf("Name = %q, want trimmed", task.Name)
	}

	long, err := tasks.Add(strings.Repeat("x", 500), time.Now())
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(long.Name) != maxTaskNameLen {
		t.Errorf("len(Name) = %d, want %d", len(long.Name), maxTaskNameLen)
	}
}

func TestTaskOperations(t *testing.T) {
	tasks := &TaskStore{}
	a, _ := tasks.Add("first", time.Now())
	b, _ := tasks.Add("second", time.Now())

	if err := tasks.Rename(a.ID, "renamed"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if got, _ := tasks.Get(a.ID); got.Name != "renamed" {
		t.Errorf("Name = %q, want renamed", got.Name)
	}

	done, err := tasks.ToggleComplete(b.ID)
	if err != nil || !done {
		t.Fatalf("ToggleComplete() = %v, %v", done, err)
	}
	if removed := tasks.ClearCompleted(); removed != 1 {
		t.Errorf("ClearCompleted() = %d, want 1", removed)
	}
	if len(tasks.Tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(tasks.Tasks))
	}

	if err := tasks.Delete(a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := tasks.Get(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete = %v, want ErrNotFound", err)
	}
	if err := tasks.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrNotFound", err)
	}
}

func TestCorruptFileKeepsDefaultsAndPreservesBytes(t *testing.T) {
	store := createTestStorage(t)
	path := filepath.Join(store.DataDir(), "sessions.json")
	garbage := []byte("{not json at all")
	if err := os.WriteFile(path, garbage, 0600); err != nil {
		t.Fatal(err)
	}

	log, err := store.LoadSessions()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("LoadSessions() error = %v, want ErrCorrupt", err)
	}
	if len(log.Sessions) != 0 {
		t.Errorf("expected empty defaults, got %d sessions", len(log.Sessions))
	}

	// Original bytes stay in place until the next save.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(garbage) {
		t.Error("corrupt file was modified during load")
	}

	// A copy was preserved alongside.
	matches, err := filepath.Glob(path + ".corrupt.*")
	if err != nil || len(matches) == 0 {
		t.Fatalf("no corrupt copy found: %v", err)
	}
	saved, _ := os.ReadFile(matches[0])
	if string(saved) != string(garbage) {
		t.Error("corrupt copy does not match original bytes")
	}

	// The next save overwrites the broken file with valid JSON.
	log.Record(time.Now(), "work", "", 25*time.Minute, true, "")
	if err := store.SaveSessions(log); err != nil {
		t.Fatalf("SaveSessions() error = %v", err)
	}
	reloaded, err := store.LoadSessions()
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if len(reloaded.Sessions) != 1 {
		t.Errorf("len(sessions) = %d, want 1", len(reloaded.Sessions))
	}
}

func TestLoadSettingsRejectsOutOfRange(t *testing.T) {
	store := createTestStorage(t)
	bad := DefaultSettings()
	bad.WorkDurationMins = 0
	path := filepath.Join(store.DataDir(), "config.json")
	// Bypass SaveSettings validation to simulate a hand-edited file.
	if err := os.WriteFile(path, []byte(`{"work_duration_mins":0,"short_break_mins":5,"long_break_mins":15,"sessions_before_long_break":4,"default_mode":"pomodoro"}`), 0600); err != nil {
		t.Fatal(err)
	}

	settings, err := store.LoadSettings()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("LoadSettings() error = %v, want ErrCorrupt", err)
	}
	if *settings != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}

func TestSaveSettingsValidation(t *testing.T) {
	store := createTestStorage(t)

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero work", func(s *Settings) { s.WorkDurationMins = 0 }},
		{"huge work", func(s *Settings) { s.WorkDurationMins = 999 }},
		{"zero cycle", func(s *Settings) { s.SessionsBeforeLongBreak = 0 }},
		{"bad mode", func(s *Settings) { s.DefaultMode = "stopwatch" }},
		{"negative goal", func(s *Settings) { s.DailyGoalPomodoros = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := store.SaveSettings(&s); err == nil {
				t.Error("SaveSettings() accepted invalid settings")
			}
		})
	}

	good := DefaultSettings()
	good.WorkDurationMins = 50
	if err := store.SaveSettings(&good); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
}

func TestBackupCreatedOnOverwrite(t *testing.T) {
	store := createTestStorage(t)
	tasks := &TaskStore{}
	tasks.Add("one", time.Now())
	if err := store.SaveTasks(tasks); err != nil {
		t.Fatal(err)
	}
	tasks.Add("two", time.Now())
	if err := store.SaveTasks(tasks); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(store.DataDir(), "tasks.json.bak")); err != nil {
		t.Errorf("expected backup file: %v", err)
	}
}
