package viz

import (
	"math"

	"github.com/san-kum/glasstilt/internal/tilt"
)

type Vec3 struct {
	X, Y, Z float64
}

// Projector maps panel space (px, y down, z toward the viewer) onto canvas
// dots with a CSS-style perspective distance.
type Projector struct {
	Perspective float64
	Scale       float64 // dots per px
	CX, CY      float64 // canvas dot at the panel's resting center
}

// NewProjector fits a panel of w x h px into a canvas, leaving margin for
// tilt and bubbles.
func NewProjector(c *Canvas, w, h, perspective float64) Projector {
	sw, sh := float64(c.SubWidth()), float64(c.SubHeight())
	scale := math.Min(0.55*sw/w, 0.6*sh/h)
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return Projector{
		Perspective: perspective,
		Scale:       scale,
		CX:          sw / 2,
		CY:          sh / 2,
	}
}

// Project returns canvas dot coordinates, or false when the point sits at or
// behind the eye.
func (p Projector) Project(v Vec3) (float64, float64, bool) {
	f := 1.0
	if p.Perspective > 0 {
		den := p.Perspective - v.Z
		if den <= 1e-6 {
			return 0, 0, false
		}
		f = p.Perspective / den
	}
	return p.CX + v.X*f*p.Scale, p.CY + v.Y*f*p.Scale, true
}

// Unproject maps a canvas dot back to panel space on the z = 0 plane.
func (p Projector) Unproject(x, y float64) (float64, float64) {
	return (x - p.CX) / p.Scale, (y - p.CY) / p.Scale
}

// ProjectTransformed applies t before projecting.
func (p Projector) ProjectTransformed(t tilt.Transform, v Vec3) (float64, float64, bool) {
	x, y, z := t.Apply(v.X, v.Y, v.Z)
	return p.Project(Vec3{x, y, z})
}
