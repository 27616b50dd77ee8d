package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBoardType        = "random"
	DefaultBoardHeight      = 40
	DefaultStepDelayMS      = 200
	DefaultAliveProbability = 0.25
	DefaultVolume           = 0.6
)

// EnvPrefix is the prefix of every environment variable the loader reads.
const EnvPrefix = "CONWAYS_STEINWAY_"

// BoardTypes lists the accepted board_type values. "complex" is an alias
// for "static"; both name the mixed predefined-pattern board.
var BoardTypes = []string{"random", "static", "complex", "showcase", "fur_elise"}

type Config struct {
	BoardType        string  `yaml:"board_type"`
	BoardHeight      int     `yaml:"board_height"`
	Silent           bool    `yaml:"silent"`
	Generations      int     `yaml:"generations"` // 0 means unlimited
	StepDelayMS      int     `yaml:"step_delay_ms"`
	TempoBPM         float64 `yaml:"tempo_bpm"` // overrides step delay when set
	AliveProbability float64 `yaml:"alive_probability"`
	Seed             int64   `yaml:"seed"`
	Volume           float64 `yaml:"volume"`
}

func DefaultConfig() *Config {
	return &Config{
		BoardType:        DefaultBoardType,
		BoardHeight:      DefaultBoardHeight,
		Generations:      0,
		StepDelayMS:      DefaultStepDelayMS,
		AliveProbability: DefaultAliveProbability,
		Volume:           DefaultVolume,
	}
}

// Load reads a yaml config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays a yaml config file onto cfg. Settings the file does not
// mention keep their current values, so earlier layers (environment,
// presets) survive a partial file.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays CONWAYS_STEINWAY_* environment variables onto the
// config. Unparsable values are ignored in favor of what is already set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPrefix + "BOARD_TYPE"); v != "" {
		c.BoardType = v
	}
	if v := os.Getenv(EnvPrefix + "BOARD_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BoardHeight = n
		}
	}
	if v := os.Getenv(EnvPrefix + "SILENT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Silent = b
		}
	}
	if v := os.Getenv(EnvPrefix + "GENERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Generations = n
		}
	}
	if v := os.Getenv(EnvPrefix + "STEP_DELAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.StepDelayMS = n
		}
	}
	if v := os.Getenv(EnvPrefix + "TEMPO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.TempoBPM = f
		}
	}
	if v := os.Getenv(EnvPrefix + "SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
	if v := os.Getenv(EnvPrefix + "VOLUME"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Volume = f
		}
	}
}

// EffectiveDelay returns the pause between ticks. A set tempo wins over the
// raw step delay: one tick per beat.
func (c *Config) EffectiveDelay() time.Duration {
	if c.TempoBPM > 0 {
		return time.Duration(60000/c.TempoBPM) * time.Millisecond
	}
	return time.Duration(c.StepDelayMS) * time.Millisecond
}

func (c *Config) Validate() error {
	if c.BoardHeight < 1 {
		return fmt.Errorf("board_height must be positive, got %d", c.BoardHeight)
	}
	if c.AliveProbability < 0 || c.AliveProbability > 1 {
		return fmt.Errorf("alive_probability must be in [0,1], got %f", c.AliveProbability)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume must be in [0,1], got %f", c.Volume)
	}
	if c.StepDelayMS < 0 {
		return fmt.Errorf("step_delay_ms must be non-negative, got %d", c.StepDelayMS)
	}
	if c.TempoBPM < 0 {
		return fmt.Errorf("tempo_bpm must be non-negative, got %f", c.TempoBPM)
	}
	if c.Generations < 0 {
		return fmt.Errorf("generations must be non-negative, got %d", c.Generations)
	}
	valid := false
	for _, t := range BoardTypes {
		if c.BoardType == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown board_type %q (valid: %v)", c.BoardType, BoardTypes)
	}
	return nil
}
