package viz

import (
	"log"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/glasstilt/internal/tilt"
)

// panelSurface receives controller output and eases the glow between frames.
// The transform itself is already smoothed by the controller, so it is only
// stored.
type panelSurface struct {
	transform  tilt.Transform
	transition bool
	glow       tilt.Glow

	fast    harmonica.Spring
	settle  harmonica.Spring
	opacity float64
	vel     float64
}

func newPanelSurface(fps int, transition tilt.Transition) *panelSurface {
	omega := 20.0
	if secs := transition.Duration.Seconds(); secs > 0 {
		omega = 4 / secs
	}
	return &panelSurface{
		fast:   harmonica.NewSpring(harmonica.FPS(fps), 18, 1),
		settle: harmonica.NewSpring(harmonica.FPS(fps), omega, 1),
	}
}

func (s *panelSurface) ApplyTransform(t tilt.Transform) { s.transform = t }

func (s *panelSurface) SetTransition(enabled bool) {
	if enabled != s.transition {
		log.Printf("surface: transition %v", enabled)
	}
	s.transition = enabled
}

func (s *panelSurface) SetGlow(g tilt.Glow) { s.glow = g }

// ease advances the displayed glow opacity one frame toward its target.
func (s *panelSurface) ease() {
	spring := s.fast
	if s.transition {
		spring = s.settle
	}
	s.opacity, s.vel = spring.Update(s.opacity, s.vel, s.glow.Opacity)
	if s.opacity < 0 {
		s.opacity, s.vel = 0, 0
	}
	if s.opacity > 1 {
		s.opacity = 1
	}
}

// Glow is the glow as it should be drawn this frame.
func (s *panelSurface) Glow() tilt.Glow {
	g := s.glow
	g.Opacity = s.opacity
	return g
}

func (s *panelSurface) Transform() tilt.Transform { return s.transform }
