package tilt

import (
	"fmt"
	"math"
	"time"
)

// Orientation is the rendered (or desired) pose of a panel.
type Orientation struct {
	RotateX    float64 // degrees
	RotateY    float64 // degrees
	TranslateZ float64 // px
}

func (o Orientation) IsZero() bool {
	return o.RotateX == 0 && o.RotateY == 0 && o.TranslateZ == 0
}

func (o Orientation) IsValid() bool {
	for _, v := range [3]float64{o.RotateX, o.RotateY, o.TranslateZ} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (o Orientation) Transform() Transform {
	return Transform{TranslateZ: o.TranslateZ, RotateX: o.RotateX, RotateY: o.RotateY}
}

// Rect is a bounding box in the same coordinate space as pointer positions.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Glow is the highlight overlay: focal point in percent of the panel box.
type Glow struct {
	X, Y    float64
	Opacity float64
}

type Mode int

const (
	Idle Mode = iota
	Tracking
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Tracking:
		return "tracking"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Transform is always composed translateZ, then rotateX, then rotateY.
type Transform struct {
	TranslateZ float64
	RotateX    float64
	RotateY    float64
}

func (t Transform) String() string {
	return fmt.Sprintf("translateZ(%.2fpx) rotateX(%.2fdeg) rotateY(%.2fdeg)",
		unsign(t.TranslateZ), unsign(t.RotateX), unsign(t.RotateY))
}

// Apply maps a panel-local point (y down, z toward the viewer). As with CSS
// transform lists, the rightmost function acts on the point first.
func (t Transform) Apply(x, y, z float64) (float64, float64, float64) {
	ay := t.RotateY * math.Pi / 180
	cy, sy := math.Cos(ay), math.Sin(ay)
	x, z = x*cy+z*sy, -x*sy+z*cy

	ax := t.RotateX * math.Pi / 180
	cx, sx := math.Cos(ax), math.Sin(ax)
	y, z = y*cx-z*sx, y*sx+z*cx

	return x, y, z + t.TranslateZ
}

func unsign(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// Transition describes the surface-level easing used for the final settle.
type Transition struct {
	Duration time.Duration
	Timing   string
}

// Visual carries the glow and shadow styling handed through to the surface.
type Visual struct {
	GlowBlur      float64
	GlowColor     string
	ShadowOpacity float64
	ShadowBlur    float64
	ShadowColor   string
}

// Config is owned by value by each controller and never changes after New.
type Config struct {
	MaxRotation   float64 // degrees at the panel edge
	HoverLift     float64 // px toward the viewer while tracking
	Factor        float64 // fraction of remaining distance closed per tick
	RestThreshold float64
	GlowOpacity   float64
	Transition    Transition
	Visual        Visual
}

func DefaultConfig() Config {
	return Config{
		MaxRotation:   15,
		HoverLift:     30,
		Factor:        0.1,
		RestThreshold: 0.01,
		GlowOpacity:   0.6,
		Transition: Transition{
			Duration: 600 * time.Millisecond,
			Timing:   "cubic-bezier(0.23, 1, 0.32, 1)",
		},
		Visual: Visual{
			GlowBlur:      40,
			GlowColor:     "#ffffff",
			ShadowOpacity: 0.35,
			ShadowBlur:    60,
			ShadowColor:   "#000000",
		},
	}
}

func (c Config) Validate() error {
	switch {
	case !(c.Factor > 0 && c.Factor <= 1):
		return fmt.Errorf("%w: factor must be in (0, 1], got %g", ErrParameterBounds, c.Factor)
	case c.RestThreshold < 0 || math.IsNaN(c.RestThreshold):
		return fmt.Errorf("%w: rest threshold must be non-negative, got %g", ErrParameterBounds, c.RestThreshold)
	case c.MaxRotation < 0 || math.IsNaN(c.MaxRotation) || math.IsInf(c.MaxRotation, 0):
		return fmt.Errorf("%w: max rotation must be finite and non-negative, got %g", ErrParameterBounds, c.MaxRotation)
	case math.IsNaN(c.HoverLift) || math.IsInf(c.HoverLift, 0):
		return fmt.Errorf("%w: hover lift must be finite, got %g", ErrParameterBounds, c.HoverLift)
	case c.GlowOpacity < 0 || c.GlowOpacity > 1:
		return fmt.Errorf("%w: glow opacity must be in [0, 1], got %g", ErrParameterBounds, c.GlowOpacity)
	case c.Transition.Duration < 0:
		return fmt.Errorf("%w: transition duration must be non-negative, got %s", ErrParameterBounds, c.Transition.Duration)
	}
	return nil
}
