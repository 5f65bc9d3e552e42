// Package backup creates and restores timestamped snapshots of the data
// directory (tasks, sessions, settings).
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"pomo/internal/fsutil"
)

const (
	// ManifestVersion is the backup format version written to manifests.
	ManifestVersion = "1.0"
	// ManifestFile is the metadata file inside each backup directory.
	ManifestFile = "manifest.json"
	// BackupsDir is the subdirectory of the data dir holding backups.
	BackupsDir = "backups"
)

// dataFiles are the documents included in each backup.
var dataFiles = []string{"tasks.json", "sessions.json", "config.json"}

// Manager handles backup and restore operations for one data directory.
type Manager struct {
	dataDir    string
	backupDir  string
	appVersion string
}

// Manifest describes one backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// Info summarizes a backup for listings.
type Info struct {
	Name      string
	Path      string
	CreatedAt time.Time
	Stats     map[string]int
}

// NewManager creates a backup manager rooted at dataDir.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
	}
}

// Create snapshots all data files into a new timestamped backup and
// returns the backup name.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	// Millisecond suffix keeps rapid consecutive backups distinct.
	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	backupPath := filepath.Join(m.backupDir, name)

	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	var copied []string
	stats := make(map[string]int)
	for _, filename := range dataFiles {
		src := filepath.Join(m.dataDir, filename)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := copyFileAtomic(src, filepath.Join(backupPath, filename)); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("copy %s: %w", filename, err)
		}
		copied = append(copied, filename)
		if count, err := countItems(src, filename); err == nil {
			stats[statsKeyForFile(filename)] = count
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      copied,
		Stats:      stats,
	}
	if err := writeJSON(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("write manifest: %w", err)
	}

	return name, nil
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.Get(entry.Name())
		if err != nil {
			continue
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Get returns information about a specific backup.
func (m *Manager) Get(name string) (*Info, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		// Manifest lost; fall back to the timestamp in the name.
		createdAt, parseErr := parseName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
		manifest.Stats = make(map[string]int)
	}

	return &Info{
		Name:      name,
		Path:      backupPath,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// Restore copies a backup's files back into the data directory. A
// safety backup of the current state is taken first, and restored files
// are validated as JSON afterwards.
func (m *Manager) Restore(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		manifest.Files = dataFiles
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("create safety backup: %w", err)
	}

	for _, filename := range manifest.Files {
		src := filepath.Join(backupPath, filename)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := copyFileAtomic(src, filepath.Join(m.dataDir, filename)); err != nil {
			return fmt.Errorf("restore %s (safety backup: %s): %w", filename, safetyName, err)
		}
	}

	for _, filename := range manifest.Files {
		if err := validateJSON(filepath.Join(m.dataDir, filename)); err != nil {
			return fmt.Errorf("restored file %s is invalid (safety backup: %s): %w", filename, safetyName, err)
		}
	}
	return nil
}

// RestoreLatest restores from the most recent backup.
func (m *Manager) RestoreLatest() (string, error) {
	backups, err := m.List()
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", fmt.Errorf("no backups available")
	}
	return backups[0].Name, m.Restore(backups[0].Name)
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping the keepCount most recent, and
// returns how many were removed.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}
	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

// parseName extracts the timestamp from a backup directory name of the
// form 2006-01-02_150405_XXX.
func parseName(name string) (time.Time, error) {
	if len(name) != 21 || name[17] != '_' {
		return time.Time{}, fmt.Errorf("invalid backup name format")
	}
	return time.Parse("2006-01-02_150405", name[:17])
}

func copyFileAtomic(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(dst, data, 0600)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// validateJSON checks that a file contains parseable JSON. Missing
// files pass; settings may simply not have been in the backup.
func validateJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var v any
	return json.Unmarshal(data, &v)
}

// countItems counts the entries in a data file for manifest stats.
func countItems(path, filename string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return 0, err
	}

	switch filename {
	case "tasks.json":
		if tasks, ok := result["tasks"].([]any); ok {
			return len(tasks), nil
		}
	case "sessions.json":
		if sessions, ok := result["sessions"].([]any); ok {
			return len(sessions), nil
		}
	}
	return 0, nil
}

func statsKeyForFile(filename string) string {
	switch filename {
	case "tasks.json":
		return "tasks"
	case "sessions.json":
		return "sessions"
	default:
		return "settings"
	}
}
