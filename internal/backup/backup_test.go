package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pomo/internal/storage"
)

// createTestData seeds a data dir with one task and one session.
func createTestData(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()

	store, err := storage.New(dataDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	tasks := &storage.TaskStore{}
	tasks.Add("write tests", now)
	if err := store.SaveTasks(tasks); err != nil {
		t.Fatalf("failed to save tasks: %v", err)
	}

	sessions := &storage.SessionLog{}
	sessions.Record(now, "work", "work", 25*time.Minute, true, "")
	if err := store.SaveSessions(sessions); err != nil {
		t.Fatalf("failed to save sessions: %v", err)
	}

	return dataDir
}

func TestCreateBackup(t *testing.T) {
	dataDir := createTestData(t)
	m := NewManager(dataDir, "test")

	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	backupPath := filepath.Join(dataDir, BackupsDir, name)
	for _, filename := range []string{"tasks.json", "sessions.json", "config.json", ManifestFile} {
		if _, err := os.Stat(filepath.Join(backupPath, filename)); err != nil {
			t.Errorf("backup missing %s: %v", filename, err)
		}
	}

	var manifest Manifest
	data, err := os.ReadFile(filepath.Join(backupPath, ManifestFile))
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}
	if manifest.Version != ManifestVersion {
		t.Errorf("manifest version = %q, want %q", manifest.Version, ManifestVersion)
	}
	if manifest.Stats["tasks"] != 1 {
		t.Errorf("tasks stat = %d, want 1", manifest.Stats["tasks"])
	}
	if manifest.Stats["sessions"] != 1 {
		t.Errorf("sessions stat = %d, want 1", manifest.Stats["sessions"])
	}
}

func TestListBackups(t *testing.T) {
	dataDir := createTestData(t)
	m := NewManager(dataDir, "test")

	if backups, err := m.List(); err != nil || len(backups) != 0 {
		t.Fatalf("List on empty dir = %v, %v; want empty", backups, err)
	}

	first, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("got %d backups, want 2", len(backups))
	}
	// Newest first.
	if backups[0].Name != second || backups[1].Name != first {
		t.Errorf("order = [%s, %s], want [%s, %s]",
			backups[0].Name, backups[1].Name, second, first)
	}
}

func TestRestoreBackup(t *testing.T) {
	dataDir := createTestData(t)
	m := NewManager(dataDir, "test")

	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Wipe the tasks after backing up.
	store, err := storage.New(dataDir)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	if err := store.SaveTasks(&storage.TaskStore{}); err != nil {
		t.Fatalf("failed to clear tasks: %v", err)
	}

	if err := m.Restore(name); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	tasks, err := store.LoadTasks()
	if err != nil {
		t.Fatalf("failed to load tasks after restore: %v", err)
	}
	if len(tasks.Tasks) != 1 {
		t.Errorf("got %d tasks after restore, want 1", len(tasks.Tasks))
	}

	// Restore should have created a safety backup of the wiped state.
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("got %d backups after restore, want 2 (original + safety)", len(backups))
	}
}

func TestRestoreLatest(t *testing.T) {
	dataDir := createTestData(t)
	m := NewManager(dataDir, "test")

	if _, err := m.RestoreLatest(); err == nil {
		t.Error("RestoreLatest with no backups should fail")
	}

	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	restored, err := m.RestoreLatest()
	if err != nil {
		t.Fatalf("RestoreLatest failed: %v", err)
	}
	if restored != name {
		t.Errorf("restored %q, want %q", restored, name)
	}
}

func TestRestoreRejectsBadNames(t *testing.T) {
	m := NewManager(t.TempDir(), "test")

	for _, name := range []string{"", "../escape", "no-timestamp", "2025-06-02_090000"} {
		if err := m.Restore(name); err == nil {
			t.Errorf("Restore(%q) should fail", name)
		}
	}
}

func TestPrune(t *testing.T) {
	dataDir := createTestData(t)
	m := NewManager(dataDir, "test")

	for i := 0; i < 4; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	deleted, err := m.Prune(2)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted %d backups, want 2", deleted)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("got %d backups after prune, want 2", len(backups))
	}
}
