package particle

import (
	"errors"
	"fmt"
	"strings"
)

var ErrParameterBounds = errors.New("particle: parameter out of valid bounds")

// Blend is how a bubble composites over whatever is beneath it.
type Blend int

const (
	// BlendScreen brightens overlapping bubbles instead of occluding them.
	BlendScreen Blend = iota
)

func (b Blend) String() string {
	if b == BlendScreen {
		return "screen"
	}
	return fmt.Sprintf("blend(%d)", int(b))
}

// Gradient is an ordered list of color stops, first stop at the highlight.
type Gradient []string

func (g Gradient) String() string {
	return "radial-gradient(circle at 30% 30%, " + strings.Join(g, ", ") + ")"
}

// Paint is either a solid color or a gradient.
type Paint struct {
	Color    string
	Gradient Gradient
}

func (p Paint) IsGradient() bool { return len(p.Gradient) > 0 }

// Primary returns the dominant color, for surfaces that cannot draw gradients.
func (p Paint) Primary() string {
	if p.IsGradient() {
		return p.Gradient[0]
	}
	return p.Color
}

func (p Paint) String() string {
	if p.IsGradient() {
		return p.Gradient.String()
	}
	return p.Color
}

// Spec is one bubble. Units: Diameter, Drift and Sway in px, Left in percent
// of the container width, Duration and Delay in seconds.
type Spec struct {
	Diameter float64
	Paint    Paint
	Duration float64
	Delay    float64
	Left     float64
	Drift    float64
	Sway     float64
	Blend    Blend
}

type Config struct {
	SizeBase         float64
	SizeVariance     float64
	DurationBase     float64
	DurationVariance float64
	GradientChance   float64
	Colors           []string
	Gradients        []Gradient
}

func DefaultConfig() Config {
	return Config{
		SizeBase:         10,
		SizeVariance:     30,
		DurationBase:     8,
		DurationVariance: 12,
		GradientChance:   0.3,
		Colors: []string{
			"#7dd3fc", "#a5b4fc", "#f0abfc", "#99f6e4", "#fde68a",
		},
		Gradients: []Gradient{
			{"#ffffff", "#7dd3fc", "#6366f1"},
			{"#fdf4ff", "#f0abfc", "#a855f7"},
			{"#f0fdfa", "#5eead4", "#0ea5e9"},
		},
	}
}

func (c Config) Validate() error {
	switch {
	case !(c.SizeBase > 0):
		return fmt.Errorf("%w: size base must be positive, got %g", ErrParameterBounds, c.SizeBase)
	case !(c.SizeVariance >= 0):
		return fmt.Errorf("%w: size variance must be non-negative, got %g", ErrParameterBounds, c.SizeVariance)
	case !(c.DurationBase > 0):
		return fmt.Errorf("%w: duration base must be positive, got %g", ErrParameterBounds, c.DurationBase)
	case !(c.DurationVariance >= 0):
		return fmt.Errorf("%w: duration variance must be non-negative, got %g", ErrParameterBounds, c.DurationVariance)
	case !(c.GradientChance >= 0 && c.GradientChance <= 1):
		return fmt.Errorf("%w: gradient chance must be in [0, 1], got %g", ErrParameterBounds, c.GradientChance)
	case len(c.Colors) == 0:
		return fmt.Errorf("%w: at least one solid color is required", ErrParameterBounds)
	}
	for i, g := range c.Gradients {
		if len(g) == 0 {
			return fmt.Errorf("%w: gradient %d has no stops", ErrParameterBounds, i)
		}
	}
	return nil
}
