package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.General.Environment != "default" {
		t.Errorf("expected default environment name 'default', got %q", cfg.General.Environment)
	}
	if cfg.General.AutoConfirm {
		t.Error("expected AutoConfirm to be false by default")
	}
	if cfg.General.DryRun {
		t.Error("expected DryRun to be false by default")
	}

	if !cfg.Output.Color {
		t.Error("expected Color to be true by default")
	}
	if !cfg.Output.Unicode {
		t.Error("expected Unicode to be true by default")
	}
	if cfg.Output.Verbose {
		t.Error("expected Verbose to be false by default")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config should fall back to defaults: %v", err)
	}
	if cfg.General.Environment != "default" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[general]
environment = "staging"
auto_confirm = true

[output]
color = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.Environment != "staging" {
		t.Errorf("environment = %q, want staging", cfg.General.Environment)
	}
	if !cfg.General.AutoConfirm {
		t.Error("auto_confirm not loaded")
	}
	if cfg.Output.Color {
		t.Error("color override not loaded")
	}
	// Untouched fields keep their defaults.
	if !cfg.Output.Unicode {
		t.Error("unicode default lost on partial config")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.General.Environment = "prod"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.General.Environment != "prod" {
		t.Errorf("round-trip lost environment: %q", loaded.General.Environment)
	}
}
