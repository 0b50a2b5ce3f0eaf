package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		t.Errorf("expected positive screen size, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Persistence.DebounceMS != 100 {
		t.Errorf("expected 100ms debounce, got %d", cfg.Persistence.DebounceMS)
	}
	if !cfg.Groups.Equal(DefaultGroupSet()) {
		got, _ := json.Marshal(cfg.Groups)
		t.Errorf("embedded groups differ from DefaultGroupSet: %s", got)
	}
	if cfg.Derived.StatsMS != cfg.Telemetry.StatsWindow*1000 {
		t.Errorf("derived stats window not computed")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.yaml")
	user := `
screen:
  width: 640
groups:
  "7":
    targetAmount: 5
    noiseType: simplex
  "3":
    spawnLocation: anyware
`
	if err := os.WriteFile(path, []byte(user), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Screen.Width != 640 {
		t.Errorf("expected width 640, got %d", cfg.Screen.Width)
	}
	if cfg.Screen.Height != 800 {
		t.Errorf("expected default height to survive overlay, got %d", cfg.Screen.Height)
	}

	ids := cfg.Groups.IDs()
	if len(ids) != 2 || ids[0] != "7" || ids[1] != "3" {
		t.Fatalf("expected groups [7 3] in document order, got %v", ids)
	}

	g7 := cfg.Groups.Get("7")
	if g7.TargetAmount != 5 || g7.NoiseType != NoiseGradient {
		t.Errorf("group 7 not decoded: %+v", g7)
	}
	if g7.MaxVelocity != 0.5 {
		t.Errorf("expected missing fields to keep defaults, got max velocity %v", g7.MaxVelocity)
	}
	if got := cfg.Groups.Get("3").SpawnLocation; got != SpawnAnywhere {
		t.Errorf("expected legacy spawn alias to decode, got %q", got)
	}
}

func TestLoadRejectsInvalidGroup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("groups:\n  \"1\":\n    targetAmount: -4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidGroup) {
		t.Errorf("expected ErrInvalidGroup, got %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	second := DefaultGroup()
	second.NoiseType = NoiseGradient
	second.SeparationTargetGroupID = "1"
	second.SeparationWeight = 250
	cfg.Groups.Set("2", second)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "rgba(10,0,208,1) 100%") {
		t.Errorf("expected gradient text in output:\n%s", data)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !back.Groups.Equal(&cfg.Groups) {
		t.Errorf("groups changed across YAML round trip")
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
