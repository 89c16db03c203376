package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Scenario != "pendulum" {
		t.Errorf("expected scenario pendulum, got %s", cfg.Scenario)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := &Config{
		Scenario: "rodtree", Integrator: "semieuler",
		Dt: 0.002, Duration: 3.5, ProjectTol: 1e-9, ProjectEvery: 4,
		ReactionBody: 2,
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("loaded %+v, want %+v", got, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("rodtree", "default")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.ProjectTol != 1e-10 {
		t.Errorf("expected project tol 1e-10, got %v", cfg.ProjectTol)
	}
	if GetPreset("rodtree", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "default") != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestListPresets(t *testing.T) {
	if got := ListPresets("pendulum"); len(got) == 0 {
		t.Error("expected presets for pendulum")
	}
	if got := ListPresets("nonexistent"); got != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}
