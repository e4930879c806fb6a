package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile_Missing(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StatePath != filepath.Join("/data", "sticky", "notes.yaml") {
		t.Fatalf("state path=%q", cfg.StatePath)
	}
	if !cfg.MouseEnabled() {
		t.Fatalf("mouse should default to enabled")
	}
}

func TestLoadFile_Values(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "state_path: /tmp/n.yaml\nlog_file: /tmp/sticky.log\nmouse: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StatePath != "/tmp/n.yaml" || cfg.LogFile != "/tmp/sticky.log" || cfg.MouseEnabled() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mouse: [1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")

	p, err := Path()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != filepath.Join("/cfg", "sticky", "config.yaml") {
		t.Fatalf("path=%q", p)
	}
}
