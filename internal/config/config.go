package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/glasstilt/internal/particle"
	"github.com/san-kum/glasstilt/internal/tilt"
)

const (
	DefaultFPS         = 60
	DefaultBubbles     = 24
	DefaultTheme       = "ocean"
	DefaultWidth       = 360
	DefaultHeight      = 220
	DefaultPerspective = 1000
)

type Config struct {
	Panel PanelConfig `yaml:"panel"`
	Field FieldConfig `yaml:"field"`
	View  ViewConfig  `yaml:"view"`
}

type PanelConfig struct {
	MaxRotation         float64       `yaml:"max_rotation_deg"`
	HoverLift           float64       `yaml:"hover_lift"`
	InterpolationFactor float64       `yaml:"interpolation_factor"`
	RestSnapThreshold   float64       `yaml:"rest_snap_threshold"`
	GlowOpacity         float64       `yaml:"glow_opacity"`
	TransitionDuration  time.Duration `yaml:"transition_duration"`
	TransitionTiming    string        `yaml:"transition_timing"`
	GlowBlur            float64       `yaml:"glow_blur"`
	GlowColor           string        `yaml:"glow_color"`
	ShadowOpacity       float64       `yaml:"shadow_opacity"`
	ShadowBlur          float64       `yaml:"shadow_blur"`
	ShadowColor         string        `yaml:"shadow_color"`
	Width               float64       `yaml:"width"`
	Height              float64       `yaml:"height"`
	Perspective         float64       `yaml:"perspective"`
}

type FieldConfig struct {
	Count            int        `yaml:"count"`
	SizeBase         float64    `yaml:"size_base"`
	SizeVariance     float64    `yaml:"size_variance"`
	DurationBase     float64    `yaml:"duration_base"`
	DurationVariance float64    `yaml:"duration_variance"`
	GradientChance   float64    `yaml:"gradient_chance"`
	Colors           []string   `yaml:"colors"`
	Gradients        [][]string `yaml:"gradients"`
}

type ViewConfig struct {
	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"`
	Seed  int64  `yaml:"seed"`
}

func DefaultConfig() *Config {
	t := tilt.DefaultConfig()
	p := particle.DefaultConfig()

	gradients := make([][]string, len(p.Gradients))
	for i, g := range p.Gradients {
		gradients[i] = append([]string(nil), g...)
	}

	return &Config{
		Panel: PanelConfig{
			MaxRotation:         t.MaxRotation,
			HoverLift:           t.HoverLift,
			InterpolationFactor: t.Factor,
			RestSnapThreshold:   t.RestThreshold,
			GlowOpacity:         t.GlowOpacity,
			TransitionDuration:  t.Transition.Duration,
			TransitionTiming:    t.Transition.Timing,
			GlowBlur:            t.Visual.GlowBlur,
			GlowColor:           t.Visual.GlowColor,
			ShadowOpacity:       t.Visual.ShadowOpacity,
			ShadowBlur:          t.Visual.ShadowBlur,
			ShadowColor:         t.Visual.ShadowColor,
			Width:               DefaultWidth,
			Height:              DefaultHeight,
			Perspective:         DefaultPerspective,
		},
		Field: FieldConfig{
			Count:            DefaultBubbles,
			SizeBase:         p.SizeBase,
			SizeVariance:     p.SizeVariance,
			DurationBase:     p.DurationBase,
			DurationVariance: p.DurationVariance,
			GradientChance:   p.GradientChance,
			Colors:           append([]string(nil), p.Colors...),
			Gradients:        gradients,
		},
		View: ViewConfig{
			FPS:   DefaultFPS,
			Theme: DefaultTheme,
		},
	}
}

// Load overlays the YAML file at path onto the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the file at path onto cfg. Keys absent from the file keep
// cfg's current values.
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

func (c *Config) Validate() error {
	if err := c.Tilt().Validate(); err != nil {
		return fmt.Errorf("panel: %w", err)
	}
	if err := c.Particles().Validate(); err != nil {
		return fmt.Errorf("field: %w", err)
	}
	if c.Panel.Width <= 0 || c.Panel.Height <= 0 {
		return fmt.Errorf("panel: size must be positive, got %gx%g", c.Panel.Width, c.Panel.Height)
	}
	if c.Panel.Perspective <= 0 {
		return fmt.Errorf("panel: perspective must be positive, got %g", c.Panel.Perspective)
	}
	// no point of the lifted panel may reach the eye, whatever the rotation
	reach := c.Panel.HoverLift + math.Hypot(c.Panel.Width/2, c.Panel.Height/2)
	if reach >= c.Panel.Perspective/2 {
		return fmt.Errorf("panel: hover lift plus half-diagonal (%g) must stay under half the perspective %g", reach, c.Panel.Perspective)
	}
	if c.Field.Count < 0 {
		return fmt.Errorf("field: count must be non-negative, got %d", c.Field.Count)
	}
	if c.View.FPS <= 0 {
		return fmt.Errorf("view: fps must be positive, got %d", c.View.FPS)
	}
	return nil
}

func (c *Config) Tilt() tilt.Config {
	return tilt.Config{
		MaxRotation:   c.Panel.MaxRotation,
		HoverLift:     c.Panel.HoverLift,
		Factor:        c.Panel.InterpolationFactor,
		RestThreshold: c.Panel.RestSnapThreshold,
		GlowOpacity:   c.Panel.GlowOpacity,
		Transition: tilt.Transition{
			Duration: c.Panel.TransitionDuration,
			Timing:   c.Panel.TransitionTiming,
		},
		Visual: tilt.Visual{
			GlowBlur:      c.Panel.GlowBlur,
			GlowColor:     c.Panel.GlowColor,
			ShadowOpacity: c.Panel.ShadowOpacity,
			ShadowBlur:    c.Panel.ShadowBlur,
			ShadowColor:   c.Panel.ShadowColor,
		},
	}
}

func (c *Config) Particles() particle.Config {
	gradients := make([]particle.Gradient, len(c.Field.Gradients))
	for i, g := range c.Field.Gradients {
		gradients[i] = append(particle.Gradient(nil), g...)
	}
	return particle.Config{
		SizeBase:         c.Field.SizeBase,
		SizeVariance:     c.Field.SizeVariance,
		DurationBase:     c.Field.DurationBase,
		DurationVariance: c.Field.DurationVariance,
		GradientChance:   c.Field.GradientChance,
		Colors:           append([]string(nil), c.Field.Colors...),
		Gradients:        gradients,
	}
}

// Bounds is the panel's resting box, centered on the origin.
func (c *Config) Bounds() tilt.Rect {
	return tilt.Rect{X: -c.Panel.Width / 2, Y: -c.Panel.Height / 2, W: c.Panel.Width, H: c.Panel.Height}
}
