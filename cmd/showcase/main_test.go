package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.yaml")
	yaml := "window:\n  width: 800\n  height: 600\nscene:\n  seed: 7\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := parseFlags([]string{"-config", path, "-width", "1920", "-assets", "testdata"})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(f)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("Expected width flag to win, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 600 {
		t.Errorf("Expected height from file, got %d", cfg.Window.Height)
	}
	if cfg.Scene.Seed != 7 {
		t.Errorf("Unset seed flag should keep the file value, got %d", cfg.Scene.Seed)
	}
	if cfg.Assets.Root != "testdata" {
		t.Errorf("Expected asset root testdata, got %q", cfg.Assets.Root)
	}
}

func TestLoadConfigRejectsInvalidFlags(t *testing.T) {
	f, err := parseFlags([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml"), "-height", "0"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(f); err == nil {
		t.Error("Expected a zero height to fail validation")
	}
}

func TestParseFlagsUnknownFlag(t *testing.T) {
	if _, err := parseFlags([]string{"-nope"}); err == nil {
		t.Error("Expected an error for an unknown flag")
	}
}
