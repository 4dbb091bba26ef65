package tilt

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestOrientation_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		o     Orientation
		valid bool
	}{
		{"zero", Orientation{}, true},
		{"normal", Orientation{1, -2, 30}, true},
		{"with NaN", Orientation{math.NaN(), 0, 0}, false},
		{"with +Inf", Orientation{0, math.Inf(1), 0}, false},
		{"with -Inf", Orientation{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.o.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestTransform_String(t *testing.T) {
	tr := Orientation{RotateX: 5, RotateY: -2.5, TranslateZ: 30}.Transform()
	got := tr.String()
	want := "translateZ(30.00px) rotateX(5.00deg) rotateY(-2.50deg)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	neg := Transform{RotateX: math.Copysign(0, -1)}.String()
	if strings.Contains(neg, "-0.00") {
		t.Errorf("negative zero leaked into %q", neg)
	}
}

func TestTransform_Apply(t *testing.T) {
	tests := []struct {
		name       string
		tr         Transform
		x, y, z    float64
		wx, wy, wz float64
	}{
		{"identity", Transform{}, 3, 4, 5, 3, 4, 5},
		{"lift only", Transform{TranslateZ: 10}, 1, 1, 0, 1, 1, 10},
		// rotateY(90deg) swings +x into -z
		{"rotateY 90", Transform{RotateY: 90}, 1, 0, 0, 0, 0, -1},
		// rotateX(90deg) swings +y (down) into +z
		{"rotateX 90", Transform{RotateX: 90}, 0, 1, 0, 0, 0, 1},
		// rotateY acts first, then rotateX, then the lift
		{"composed", Transform{TranslateZ: 2, RotateX: 90, RotateY: 90}, 1, 0, 0, 0, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := tt.tr.Apply(tt.x, tt.y, tt.z)
			if math.Abs(x-tt.wx) > 1e-9 || math.Abs(y-tt.wy) > 1e-9 || math.Abs(z-tt.wz) > 1e-9 {
				t.Errorf("Apply() = (%v, %v, %v), want (%v, %v, %v)", x, y, z, tt.wx, tt.wy, tt.wz)
			}
		})
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
		{"zero factor", func(c *Config) { c.Factor = 0 }},
		{"factor above one", func(c *Config) { c.Factor = 1.5 }},
		{"nan factor", func(c *Config) { c.Factor = math.NaN() }},
		{"negative threshold", func(c *Config) { c.RestThreshold = -1 }},
		{"negative rotation", func(c *Config) { c.MaxRotation = -5 }},
		{"glow opacity above one", func(c *Config) { c.GlowOpacity = 2 }},
		{"negative transition", func(c *Config) { c.Transition.Duration = -1 }},
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

func TestMode_String(t *testing.T) {
	if Idle.String() != "idle" || Tracking.String() != "tracking" {
		t.Errorf("unexpected mode names: %s, %s", Idle, Tracking)
	}
}
