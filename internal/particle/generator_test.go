package particle

import (
	"errors"
	"math"
	"testing"
)

func TestPopulate_Count(t *testing.T) {
	g := NewGenerator(DefaultConfig(), 1)

	tests := []struct {
		count, want int
	}{
		{0, 0},
		{-3, 0},
		{1, 1},
		{25, 25},
	}

	for _, tt := range tests {
		if got := len(g.Populate(tt.count)); got != tt.want {
			t.Errorf("Populate(%d) returned %d specs, want %d", tt.count, got, tt.want)
		}
	}
}

func TestPopulate_Ranges(t *testing.T) {
	cfg := DefaultConfig()
	specs := NewGenerator(cfg, 42).Populate(5000)

	for i, s := range specs {
		if s.Diameter < cfg.SizeBase || s.Diameter > cfg.SizeBase+cfg.SizeVariance {
			t.Fatalf("spec %d: diameter %v outside [%v, %v]", i, s.Diameter, cfg.SizeBase, cfg.SizeBase+cfg.SizeVariance)
		}
		if s.Duration < cfg.DurationBase || s.Duration > cfg.DurationBase+cfg.DurationVariance {
			t.Fatalf("spec %d: duration %v outside [%v, %v]", i, s.Duration, cfg.DurationBase, cfg.DurationBase+cfg.DurationVariance)
		}
		if s.Delay < 0 || s.Delay >= s.Duration {
			t.Fatalf("spec %d: delay %v outside [0, %v)", i, s.Delay, s.Duration)
		}
		if s.Left < 0 || s.Left >= 100 {
			t.Fatalf("spec %d: left %v outside [0, 100)", i, s.Left)
		}
		if math.Abs(s.Drift) > 50 {
			t.Fatalf("spec %d: drift %v outside [-50, 50]", i, s.Drift)
		}
		if math.Abs(s.Sway) > 20 {
			t.Fatalf("spec %d: sway %v outside [-20, 20]", i, s.Sway)
		}
		if s.Blend != BlendScreen {
			t.Fatalf("spec %d: blend %v, want screen", i, s.Blend)
		}
		if s.Paint.Primary() == "" {
			t.Fatalf("spec %d: empty paint", i)
		}
	}
}

func TestPopulate_GradientFraction(t *testing.T) {
	const n = 10000
	specs := NewGenerator(DefaultConfig(), 7).Populate(n)

	gradients := 0
	for _, s := range specs {
		if s.Paint.IsGradient() {
			gradients++
		}
	}

	// 0.3 +/- 4 standard deviations (sd ~= 0.0046 at n = 10000)
	frac := float64(gradients) / n
	if math.Abs(frac-0.3) > 0.0185 {
		t.Errorf("gradient fraction %.4f not consistent with 0.3", frac)
	}
}

func TestPopulate_PalettesUsed(t *testing.T) {
	cfg := DefaultConfig()
	specs := NewGenerator(cfg, 3).Populate(2000)

	seen := make(map[string]bool)
	for _, s := range specs {
		seen[s.Paint.String()] = true
	}
	for _, c := range cfg.Colors {
		if !seen[c] {
			t.Errorf("solid color %s never picked", c)
		}
	}
	for _, g := range cfg.Gradients {
		if !seen[g.String()] {
			t.Errorf("gradient %s never picked", g)
		}
	}
}

func TestPopulate_NoGradients(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gradients = nil
	cfg.GradientChance = 1

	for _, s := range NewGenerator(cfg, 9).Populate(200) {
		if s.Paint.IsGradient() {
			t.Fatal("gradient picked from an empty palette")
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(DefaultConfig(), 11).Populate(50)
	b := NewGenerator(DefaultConfig(), 11).Populate(50)

	for i := range a {
		if a[i].Diameter != b[i].Diameter || a[i].Delay != b[i].Delay || a[i].Paint.String() != b[i].Paint.String() {
			t.Fatalf("spec %d differs between generators with the same seed", i)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero size", func(c *Config) { c.SizeBase = 0 }},
		{"negative size variance", func(c *Config) { c.SizeVariance = -1 }},
		{"zero duration", func(c *Config) { c.DurationBase = 0 }},
		{"nan duration variance", func(c *Config) { c.DurationVariance = math.NaN() }},
		{"chance above one", func(c *Config) { c.GradientChance = 1.2 }},
		{"no colors", func(c *Config) { c.Colors = nil }},
		{"empty gradient", func(c *Config) { c.Gradients = []Gradient{{}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}
