package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BoardType != "random" {
		t.Errorf("expected board type random, got %s", cfg.BoardType)
	}
	if cfg.BoardHeight != 40 {
		t.Errorf("expected height 40, got %d", cfg.BoardHeight)
	}
	if cfg.Generations != 0 {
		t.Error("default generations should be unlimited (0)")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero height", func(c *Config) { c.BoardHeight = 0 }},
		{"negative height", func(c *Config) { c.BoardHeight = -3 }},
		{"probability too high", func(c *Config) { c.AliveProbability = 1.5 }},
		{"negative probability", func(c *Config) { c.AliveProbability = -0.1 }},
		{"volume too high", func(c *Config) { c.Volume = 2 }},
		{"negative delay", func(c *Config) { c.StepDelayMS = -1 }},
		{"negative tempo", func(c *Config) { c.TempoBPM = -10 }},
		{"negative generations", func(c *Config) { c.Generations = -1 }},
		{"bad board type", func(c *Config) { c.BoardType = "spiral" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestValidate_AllBoardTypes(t *testing.T) {
	for _, bt := range BoardTypes {
		cfg := DefaultConfig()
		cfg.BoardType = bt
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", bt, err)
		}
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steinway.yaml")

	cfg := DefaultConfig()
	cfg.BoardType = "fur_elise"
	cfg.Generations = 80
	cfg.TempoBPM = 126
	cfg.Seed = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.BoardType != "fur_elise" {
		t.Errorf("expected board type fur_elise, got %s", loaded.BoardType)
	}
	if loaded.Generations != 80 {
		t.Errorf("expected 80 generations, got %d", loaded.Generations)
	}
	if loaded.TempoBPM != 126 {
		t.Errorf("expected tempo 126, got %f", loaded.TempoBPM)
	}
	if loaded.Seed != 7 {
		t.Errorf("expected seed 7, got %d", loaded.Seed)
	}
	// Fields absent from the file keep their defaults.
	if loaded.StepDelayMS != DefaultStepDelayMS {
		t.Errorf("expected default step delay, got %d", loaded.StepDelayMS)
	}
}

func TestLoadIntoKeepsEarlierLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("board_height: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Settings resolved before the file (environment, preset) must survive
	// a file that does not mention them.
	cfg := DefaultConfig()
	cfg.Silent = true
	cfg.TempoBPM = 90

	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BoardHeight != 12 {
		t.Errorf("expected board height 12 from file, got %d", cfg.BoardHeight)
	}
	if !cfg.Silent {
		t.Error("silent flag set before the file was reverted by it")
	}
	if cfg.TempoBPM != 90 {
		t.Errorf("tempo set before the file was reverted, got %f", cfg.TempoBPM)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"BOARD_TYPE", "static")
	t.Setenv(EnvPrefix+"GENERATIONS", "25")
	t.Setenv(EnvPrefix+"SILENT", "true")
	t.Setenv(EnvPrefix+"TEMPO", "90")
	t.Setenv(EnvPrefix+"SEED", "99")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.BoardType != "static" {
		t.Errorf("expected board type static, got %s", cfg.BoardType)
	}
	if cfg.Generations != 25 {
		t.Errorf("expected 25 generations, got %d", cfg.Generations)
	}
	if !cfg.Silent {
		t.Error("expected silent mode")
	}
	if cfg.TempoBPM != 90 {
		t.Errorf("expected tempo 90, got %f", cfg.TempoBPM)
	}
	if cfg.Seed != 99 {
		t.Errorf("expected seed 99, got %d", cfg.Seed)
	}
}

func TestApplyEnv_BadValuesIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"GENERATIONS", "many")
	t.Setenv(EnvPrefix+"TEMPO", "fast")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Generations != 0 {
		t.Errorf("unparsable generations should keep default, got %d", cfg.Generations)
	}
	if cfg.TempoBPM != 0 {
		t.Errorf("unparsable tempo should keep default, got %f", cfg.TempoBPM)
	}
}

func TestEffectiveDelay(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.EffectiveDelay(); got != 200*time.Millisecond {
		t.Errorf("expected 200ms, got %v", got)
	}

	cfg.TempoBPM = 120
	if got := cfg.EffectiveDelay(); got != 500*time.Millisecond {
		t.Errorf("tempo 120 should give 500ms per tick, got %v", got)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fur_elise")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Generations != 80 {
		t.Errorf("expected 80 generations, got %d", cfg.Generations)
	}
	if cfg.TempoBPM != 126 {
		t.Errorf("expected tempo 126, got %f", cfg.TempoBPM)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Fatal("expected presets")
	}
	found := false
	for _, name := range presets {
		if name == "fur_elise" {
			found = true
		}
	}
	if !found {
		t.Error("expected fur_elise in preset list")
	}
}

func TestPresetsValidate(t *testing.T) {
	for name, cfg := range Presets {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}
