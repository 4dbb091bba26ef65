package config

import (
	"sort"
	"time"
)

var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"subtle": func(c *Config) {
		c.Panel.MaxRotation = 6
		c.Panel.HoverLift = 12
		c.Panel.InterpolationFactor = 0.08
		c.Panel.GlowOpacity = 0.3
		c.Field.Count = 12
	},
	"dramatic": func(c *Config) {
		c.Panel.MaxRotation = 28
		c.Panel.HoverLift = 60
		c.Panel.InterpolationFactor = 0.18
		c.Panel.GlowOpacity = 0.9
		c.Panel.TransitionDuration = 400 * time.Millisecond
		c.Field.Count = 40
		c.Field.GradientChance = 0.5
	},
	"calm": func(c *Config) {
		c.Panel.MaxRotation = 10
		c.Panel.InterpolationFactor = 0.04
		c.Panel.RestSnapThreshold = 0.005
		c.Panel.TransitionDuration = 1200 * time.Millisecond
		c.Field.DurationBase = 14
		c.Field.DurationVariance = 16
		c.View.Theme = "minimal"
	},
}

// GetPreset returns a fresh config with the named preset applied.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
