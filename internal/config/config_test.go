package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Theme != "dark" {
		t.Errorf("expected default theme %q, got %q", "dark", cfg.Theme)
	}
	if cfg.InitialFilter != "all" {
		t.Errorf("expected default initial_filter %q, got %q", "all", cfg.InitialFilter)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.polgraph.yml")

	original := DefaultConfig()
	original.Port = 9090
	original.Theme = "light"
	original.Dataset = "graphs/iran.yml"
	original.DatasetName = "iran-2026"
	original.AllowAllOrigins = true
	original.Exclude = []string{"**/draft/**"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Theme != original.Theme {
		t.Errorf("theme: got %q, want %q", loaded.Theme, original.Theme)
	}
	if loaded.Dataset != original.Dataset {
		t.Errorf("dataset: got %q, want %q", loaded.Dataset, original.Dataset)
	}
	if loaded.DatasetName != original.DatasetName {
		t.Errorf("dataset_name: got %q, want %q", loaded.DatasetName, original.DatasetName)
	}
	if !loaded.AllowAllOrigins {
		t.Error("allow_all_origins lost")
	}
	if len(loaded.Exclude) != 1 || loaded.Exclude[0] != "**/draft/**" {
		t.Errorf("exclude: got %v", loaded.Exclude)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("port: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("POLGRAPH_THEME", "light")
	t.Setenv("POLGRAPH_DATASET_NAME", "iran")
	t.Setenv("POLGRAPH_PORT", "7000")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Theme != "light" {
		t.Errorf("env override failed: got %q, want %q", loaded.Theme, "light")
	}
	if loaded.DatasetName != "iran" {
		t.Errorf("dataset_name override failed: got %q", loaded.DatasetName)
	}
	if loaded.Port != 7000 {
		t.Errorf("port override failed: got %d", loaded.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"bad theme", func(c *Config) { c.Theme = "neon" }},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }},
		{"name without database", func(c *Config) { c.DatasetName = "x"; c.Database = "" }},
		{"empty filter", func(c *Config) { c.InitialFilter = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("got %v", cfg.SlogLevel())
	}
	cfg.LogLevel = "bogus"
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("got %v", cfg.SlogLevel())
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestWizardValidators(t *testing.T) {
	if validatePort("8080") != nil || validatePort("abc") == nil || validatePort("0") == nil {
		t.Error("validatePort wrong")
	}
	dir := t.TempDir()
	file := filepath.Join(dir, "d.yml")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if validateDatasetPath("") != nil || validateDatasetPath(file) != nil {
		t.Error("valid dataset paths rejected")
	}
	if validateDatasetPath(dir) == nil || validateDatasetPath(filepath.Join(dir, "nope.yml")) == nil {
		t.Error("invalid dataset paths accepted")
	}
}
