package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/sortviz/internal/stepper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSize    = stepper.DefaultSize
	DefaultHeight  = stepper.DefaultHeight
	DefaultSpeed   = stepper.DefaultSpeed
	DefaultPattern = string(stepper.PatternRandom)
	DefaultTheme   = "classic"
	DefaultUnit    = stepper.DefaultUnit

	// MinHeight leaves room for at least one bar height between the margins.
	MinHeight = 41
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalid       = errors.New("config: invalid value")
)

type Config struct {
	Size    int           `yaml:"size"`
	Height  int           `yaml:"height"`
	Speed   int           `yaml:"speed"`
	Seed    int64         `yaml:"seed"`
	Pattern string        `yaml:"pattern"`
	Theme   string        `yaml:"theme"`
	Unit    time.Duration `yaml:"unit"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:    DefaultSize,
		Height:  DefaultHeight,
		Speed:   DefaultSpeed,
		Pattern: DefaultPattern,
		Theme:   DefaultTheme,
		Unit:    DefaultUnit,
	}
}

func Load(path string) (*Config, error) {
	return Overlay(path, DefaultConfig())
}

// Overlay reads path on top of a copy of base. Keys absent from the file
// keep the base values.
func Overlay(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the stepper cannot work with.
func (c *Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("%w: size must be at least 1, got %d", ErrInvalid, c.Size)
	}
	if c.Height < MinHeight {
		return fmt.Errorf("%w: height must be at least %d, got %d", ErrInvalid, MinHeight, c.Height)
	}
	if c.Speed < stepper.MinSpeed || c.Speed > stepper.MaxSpeed {
		return fmt.Errorf("%w: speed must be in [%d,%d], got %d", ErrInvalid, stepper.MinSpeed, stepper.MaxSpeed, c.Speed)
	}
	if c.Unit <= 0 {
		return fmt.Errorf("%w: unit must be positive, got %v", ErrInvalid, c.Unit)
	}
	if _, err := stepper.ParsePattern(c.Pattern); err != nil {
		return err
	}
	return nil
}

// StepperOptions converts the config; the caller supplies clock and logger.
func (c *Config) StepperOptions() stepper.Options {
	p, err := stepper.ParsePattern(c.Pattern)
	if err != nil {
		p = stepper.PatternRandom
	}
	return stepper.Options{
		Size:    c.Size,
		Height:  c.Height,
		Speed:   c.Speed,
		Seed:    c.Seed,
		Pattern: p,
		Unit:    c.Unit,
	}
}
