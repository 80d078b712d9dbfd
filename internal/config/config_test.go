package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.DBPath == "" {
		t.Fatal("DBPath default should be set")
	}
	if !strings.HasSuffix(cfg.DBPath, filepath.Join("clockwise", "clockwise.db")) {
		t.Fatalf("unexpected default DBPath: %q", cfg.DBPath)
	}
	if cfg.DefaultProject != "Shared Tasks" {
		t.Fatalf("DefaultProject = %q, want Shared Tasks", cfg.DefaultProject)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := "db_path: /tmp/custom.db\ndefault_project: Backlog\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.DefaultProject != "Backlog" {
		t.Fatalf("DefaultProject = %q", cfg.DefaultProject)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("db_path: /tmp/only.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/only.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	// Unset fields still get defaults.
	if cfg.DefaultProject != "Shared Tasks" {
		t.Fatalf("DefaultProject = %q", cfg.DefaultProject)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("db_path: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
