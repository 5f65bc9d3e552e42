package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
	if cfg.Theme.Primary == "" {
		t.Error("Theme.Primary should have a default value")
	}
	if cfg.Theme.Break == "" {
		t.Error("Theme.Break should have a default value")
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	oldXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tempDir)
	defer os.Setenv("XDG_CONFIG_HOME", oldXDG)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Theme.Primary != "#E06C75" {
		t.Errorf("Theme.Primary = %q, want #E06C75", cfg.Theme.Primary)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	oldXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tempDir)
	defer os.Setenv("XDG_CONFIG_HOME", oldXDG)

	configDir := filepath.Join(tempDir, "pomo")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
data_dir: /custom/data
theme:
  primary: "#FF0000"
keys:
  quit: "ctrl+q"
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != "/custom/data" {
		t.Errorf("DataDir = %q, want /custom/data", cfg.DataDir)
	}
	if cfg.Theme.Primary != "#FF0000" {
		t.Errorf("Theme.Primary = %q, want #FF0000", cfg.Theme.Primary)
	}
	if cfg.Keys.Quit != "ctrl+q" {
		t.Errorf("Keys.Quit = %q, want ctrl+q", cfg.Keys.Quit)
	}

	// Unset fields keep defaults.
	if cfg.Theme.Muted != "#5C6370" {
		t.Errorf("Theme.Muted = %q, want #5C6370", cfg.Theme.Muted)
	}
	if cfg.Keys.Help != "" {
		t.Errorf("Keys.Help = %q, want built-in default (empty)", cfg.Keys.Help)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	oldXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tempDir)
	defer os.Setenv("XDG_CONFIG_HOME", oldXDG)

	configDir := filepath.Join(tempDir, "pomo")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("{{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}

func TestGetDataDir_TildeExpansion(t *testing.T) {
	cfg := &Config{DataDir: "~/pomo-data"}
	dir := cfg.GetDataDir()
	if dir == "~/pomo-data" {
		t.Error("tilde was not expanded")
	}
	if filepath.Base(dir) != "pomo-data" {
		t.Errorf("GetDataDir() = %q", dir)
	}
}

func TestSaveAndReload(t *testing.T) {
	tempDir := t.TempDir()
	oldXDG := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", tempDir)
	defer os.Setenv("XDG_CONFIG_HOME", oldXDG)

	cfg := Default()
	cfg.DataDir = "/somewhere/else"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DataDir != "/somewhere/else" {
		t.Errorf("DataDir = %q, want /somewhere/else", loaded.DataDir)
	}
}
