package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultFireworksConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFireworksConfig()) {
		t.Errorf("embedded YAML differs from DefaultFireworksConfig():\n%+v\n%+v", cfg, DefaultFireworksConfig())
	}
}

func TestValidateRejectsMalformedConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FireworksConfig)
		field  string
	}{
		{"zero lifespan", func(c *FireworksConfig) { c.Particles.Lifespan = 0 }, "particles.lifespan"},
		{"empty burst range", func(c *FireworksConfig) { c.Particles.CountMin, c.Particles.CountMax = 200, 100 }, "particles.count"},
		{"inverted launch speed", func(c *FireworksConfig) { c.Launch.SpeedMax = 10 }, "launch.speed"},
		{"zero display width", func(c *FireworksConfig) { c.Display.Width = 0 }, "display.width"},
		{"spread above one", func(c *FireworksConfig) { c.Physics.SpreadX = 1.5 }, "physics.spread_x"},
		{"zero wiggle scale", func(c *FireworksConfig) { c.Physics.WiggleScaleY = 0 }, "physics.wiggle_scale_y"},
		{"no firework gravity", func(c *FireworksConfig) { c.Physics.FireworkGravity = 0 }, "physics.firework_gravity"},
		{"jitter swallows frequency", func(c *FireworksConfig) { c.Trails.FrequencyJitter = 10 }, "trails.frequency_jitter"},
		{"zero trail lifespan", func(c *FireworksConfig) { c.Trails.Lifespan = 0 }, "trails.lifespan"},
		{"radius below spawn speed", func(c *FireworksConfig) { c.Particles.ExplosionRadiusMin = 3 }, "particles.spawn_speed_min"},
		{"negative auto launch", func(c *FireworksConfig) { c.Launch.AutoOneIn = -1 }, "launch.auto_one_in"},
		{"intensity without ramp", func(c *FireworksConfig) {
			c.Intensity.Enabled = true
			c.Intensity.RampTicks = 0
		}, "intensity.ramp_ticks"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFireworksConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q should mention %s", err, tc.field)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := DefaultFireworksConfig()
	cfg.Particles.Lifespan = 0
	cfg.Trails.Lifespan = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "particles.lifespan") || !strings.Contains(err.Error(), "trails.lifespan") {
		t.Errorf("expected both fields in %q", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("launch:\n  speed_min: 18\n  speed_max: 18\nparticles:\n  colorful: false\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Launch.SpeedMin != 18 || cfg.Launch.SpeedMax != 18 {
		t.Errorf("speed = [%d, %d], expected [18, 18]", cfg.Launch.SpeedMin, cfg.Launch.SpeedMax)
	}
	if cfg.Particles.Colorful {
		t.Error("colorful should be overridden to false")
	}
	// Unset values keep defaults
	if cfg.Particles.Lifespan != 70 {
		t.Errorf("lifespan = %d, expected default 70", cfg.Particles.Lifespan)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("launch: [not, a, map"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, _, err := Load(path); err == nil {
		t.Error("unparsable custom config should fail")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultFireworksConfig()
	if err := ApplyPreset(&cfg, PresetMono); err != nil {
		t.Fatalf("ApplyPreset(mono) failed: %v", err)
	}
	if cfg.Particles.Colorful {
		t.Error("mono preset should disable colorful bursts")
	}

	for _, p := range Presets() {
		cfg := DefaultFireworksConfig()
		if err := ApplyPreset(&cfg, p); err != nil {
			t.Errorf("ApplyPreset(%s) failed: %v", p, err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s produced invalid config: %v", p, err)
		}
	}

	if err := ApplyPreset(&cfg, Preset("loud")); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestIntensityDisabled(t *testing.T) {
	m := NewIntensityManager(IntensityConfig{Enabled: false, Boost: 4, RampTicks: 100})
	if got := m.OneIn(71, 1000); got != 71 {
		t.Errorf("OneIn() = %d, expected base 71 when disabled", got)
	}
}

func TestIntensityRamp(t *testing.T) {
	m := NewIntensityManager(IntensityConfig{Enabled: true, InitialLevel: 0, RampTicks: 100, Boost: 1})

	tests := []struct {
		ticks    int
		level    float64
		expected int
	}{
		{0, 0, 70},
		{50, 0.5, 47},
		{100, 1, 35},
		{500, 1, 35}, // Clamped past the ramp
	}

	for _, tc := range tests {
		if got := m.Level(tc.ticks); got != tc.level {
			t.Errorf("Level(%d) = %f, expected %f", tc.ticks, got, tc.level)
		}
		if got := m.OneIn(70, tc.ticks); got != tc.expected {
			t.Errorf("OneIn(70, %d) = %d, expected %d", tc.ticks, got, tc.expected)
		}
	}

	if got := m.OneIn(0, 100); got != 0 {
		t.Errorf("OneIn(0) = %d, disabled auto launch must stay disabled", got)
	}
}

func TestIntensityNeverBelowOne(t *testing.T) {
	m := NewIntensityManager(IntensityConfig{Enabled: true, InitialLevel: 1, RampTicks: 1, Boost: 100})
	if got := m.OneIn(3, 0); got != 1 {
		t.Errorf("OneIn() = %d, expected floor of 1", got)
	}
}
