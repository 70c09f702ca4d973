package config

import (
	"sort"
	"time"
)

// Presets tweak the motion and camera settings of the default config.
var Presets = map[string]func(*Config){
	"default": func(*Config) {},
	"calm": func(c *Config) {
		c.Speed = 0.4
		c.Camera.TransitionDuration = 2 * time.Second
		c.Camera.Easing = "quadratic.inout"
		c.Camera.Damping = 0.03
	},
	"fast": func(c *Config) {
		c.Speed = 5
		c.Camera.TransitionDuration = 500 * time.Millisecond
		c.Camera.Easing = "cubic.out"
	},
	"timelapse": func(c *Config) {
		c.Speed = 20
		c.ShowPaths = true
		c.RealView = false
	},
}

// GetPreset returns the default config with the named preset applied, or nil
// if there is no such preset.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ApplyPreset applies the named preset on top of cfg.
func ApplyPreset(cfg *Config, name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(cfg)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
