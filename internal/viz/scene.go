package viz

import (
	"math"

	"github.com/san-kum/glasstilt/internal/particle"
	"github.com/san-kum/glasstilt/internal/tilt"
)

// Scene is everything needed to draw one frame.
type Scene struct {
	Width, Height float64 // panel size, px
	Perspective   float64
	Transform     tilt.Transform
	Glow          tilt.Glow
	Visual        tilt.Visual
	Bubbles       []particle.Spec
	Time          float64 // seconds on the bubble clock
	Theme         Theme
}

// Draw renders bubbles first, then the panel's shadow, frame and glow.
func (s Scene) Draw(c *Canvas) Projector {
	c.Clear()
	proj := NewProjector(c, s.Width, s.Height, s.Perspective)
	s.drawBubbles(c, proj)
	s.drawPanel(c, proj)
	return proj
}

func (s Scene) drawBubbles(c *Canvas, proj Projector) {
	sw, sh := float64(c.SubWidth()), float64(c.SubHeight())
	for _, b := range s.Bubbles {
		f := b.At(s.Time)
		if f.Opacity <= 0 {
			continue
		}
		r := b.Diameter / 2 * proj.Scale
		x := f.Left/100*sw + f.OffsetX*proj.Scale
		// rise from just below the bottom edge to just above the top
		y := sh + r - f.Y*(sh+2*r)
		col := ParseRGB(b.Paint.Primary())
		if b.Paint.IsGradient() {
			c.FillCircle(x, y, r, col, f.Opacity*0.8)
		} else {
			c.Circle(x, y, r, col, f.Opacity*0.7)
		}
	}
}

func (s Scene) corners(z float64) [4]Vec3 {
	hw, hh := s.Width/2, s.Height/2
	return [4]Vec3{{-hw, -hh, z}, {hw, -hh, z}, {hw, hh, z}, {-hw, hh, z}}
}

func (s Scene) drawPanel(c *Canvas, proj Projector) {
	// the shadow stays on the backdrop and spreads with lift
	if s.Visual.ShadowOpacity > 0 {
		spread := 1 + s.Transform.TranslateZ/math.Max(s.Perspective, 1)
		offset := s.Transform.TranslateZ * 0.3
		shadow := tilt.Transform{}
		var pts [4][2]float64
		for i, v := range s.corners(0) {
			v.X *= spread
			v.Y = v.Y*spread + offset
			x, y, _ := proj.ProjectTransformed(shadow, v)
			pts[i] = [2]float64{x, y}
		}
		col := ParseRGB(string(s.Theme.Shadow))
		s.outline(c, pts, col, s.Visual.ShadowOpacity)
	}

	var pts [4][2]float64
	for i, v := range s.corners(0) {
		x, y, ok := proj.ProjectTransformed(s.Transform, v)
		if !ok {
			return
		}
		pts[i] = [2]float64{x, y}
	}
	frame := ParseRGB(string(s.Theme.Panel))
	s.outline(c, pts, frame, 1)

	// two faint rules so the tilt reads on a wireframe
	for _, fy := range []float64{1.0 / 3, 2.0 / 3} {
		y := -s.Height/2 + fy*s.Height
		x0, y0, ok0 := proj.ProjectTransformed(s.Transform, Vec3{-s.Width / 2, y, 0})
		x1, y1, ok1 := proj.ProjectTransformed(s.Transform, Vec3{s.Width / 2, y, 0})
		if ok0 && ok1 {
			c.Segment(x0, y0, x1, y1, frame, 0.35)
		}
	}

	if s.Glow.Opacity > 0.01 {
		gx := -s.Width/2 + s.Glow.X/100*s.Width
		gy := -s.Height/2 + s.Glow.Y/100*s.Height
		if x, y, ok := proj.ProjectTransformed(s.Transform, Vec3{gx, gy, 0}); ok {
			r := math.Max(s.Visual.GlowBlur, 8) * proj.Scale
			glow := ParseRGB(s.Visual.GlowColor)
			c.FillCircle(x, y, r, glow, s.Glow.Opacity)
		}
	}
}

func (s Scene) outline(c *Canvas, pts [4][2]float64, col RGB, alpha float64) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%4]
		c.Segment(a[0], a[1], b[0], b[1], col, alpha)
	}
}
