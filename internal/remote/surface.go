package remote

import (
	"fmt"

	"github.com/san-kum/glasstilt/internal/tilt"
)

// streamSurface remembers what the controller last wrote and whether it
// changed since the last frame was sent.
type streamSurface struct {
	transform  tilt.Transform
	transition bool
	glow       tilt.Glow
	dirty      bool
}

func (s *streamSurface) ApplyTransform(t tilt.Transform) {
	if t != s.transform {
		s.transform = t
		s.dirty = true
	}
}

func (s *streamSurface) SetTransition(enabled bool) {
	if enabled != s.transition {
		s.transition = enabled
		s.dirty = true
	}
}

func (s *streamSurface) SetGlow(g tilt.Glow) {
	if g != s.glow {
		s.glow = g
		s.dirty = true
	}
}

// take reports whether anything changed and clears the flag.
func (s *streamSurface) take() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// transitionValue renders the transition hint as a CSS transition value for
// the glow, empty while the pointer is tracking.
func transitionValue(enabled bool, t tilt.Transition) string {
	if !enabled || t.Duration <= 0 {
		return ""
	}
	timing := t.Timing
	if timing == "" {
		timing = "ease"
	}
	return fmt.Sprintf("opacity %dms %s", t.Duration.Milliseconds(), timing)
}
