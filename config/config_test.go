package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.World.Width != 1280 || cfg.World.Height != 720 {
		t.Errorf("world = %vx%v, want 1280x720", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Flow.Count != 2000 {
		t.Errorf("flow.count = %d, want 2000", cfg.Flow.Count)
	}
	if cfg.Derived.MaxSpeedSq != cfg.Flow.MaxSpeed*cfg.Flow.MaxSpeed {
		t.Errorf("derived max speed sq = %v", cfg.Derived.MaxSpeedSq)
	}
	if cfg.Derived.Area != 1280*720 {
		t.Errorf("derived area = %v", cfg.Derived.Area)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "flow:\n  count: 10\nnoise:\n  scale: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Flow.Count != 10 {
		t.Errorf("flow.count = %d, want 10", cfg.Flow.Count)
	}
	if cfg.Noise.Scale != 0.5 {
		t.Errorf("noise.scale = %v, want 0.5", cfg.Noise.Scale)
	}
	// Untouched fields keep defaults
	if cfg.Flow.MaxSpeed != 1.5 {
		t.Errorf("flow.max_speed = %v, want 1.5", cfg.Flow.MaxSpeed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "world:\n  width: 0\n"},
		{"negative count", "flow:\n  count: -1\n"},
		{"drag one", "flow:\n  drag: 1\n"},
		{"zero max speed", "flow:\n  max_speed: 0\n"},
		{"zero window", "telemetry:\n  stats_window: 0\n"},
		{"bad yaml", "flow: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteYAMLReload(t *testing.T) {
	cfg := Default()
	cfg.Flow.Strength = 0.25

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Flow.Strength != 0.25 {
		t.Errorf("flow.strength = %v, want 0.25", loaded.Flow.Strength)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
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

func TestInit(t *testing.T) {
	saved := global
	defer func() { global = saved }()

	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if Cfg().Telemetry.StatsWindow != 600 {
		t.Errorf("stats_window = %d, want 600", Cfg().Telemetry.StatsWindow)
	}
}
