package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"classic": {
		Size: 50, Height: 400, Speed: 30, Pattern: "random",
	},
	"worst-case": {
		Size: 40, Height: 400, Speed: 60, Pattern: "reversed",
	},
	"sorted": {
		Size: 40, Height: 400, Speed: 60, Pattern: "sorted",
	},
	"few-unique": {
		Size: 50, Height: 400, Speed: 40, Pattern: "few-unique",
	},
	"tiny": {
		Size: 8, Height: 200, Speed: 10, Pattern: "random",
	},
	"large": {
		Size: 120, Height: 400, Speed: 95, Pattern: "random",
	},
}

// GetPreset returns a copy of the named preset with unset fields defaulted.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Size = p.Size
	cfg.Height = p.Height
	cfg.Speed = p.Speed
	cfg.Pattern = p.Pattern
	if p.Theme != "" {
		cfg.Theme = p.Theme
	}
	return cfg
}

// Preset is GetPreset with an error for unknown names.
func Preset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
