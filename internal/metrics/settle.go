package metrics

import (
	"github.com/san-kum/glasstilt/internal/sim"
	"github.com/san-kum/glasstilt/internal/tilt"
)

// Settle measures how many frames the panel needs to come to exact rest
// after the pointer leaves. It reports the most recent completed settle, or
// -1 if the panel has not settled since the last leave. A leave restarts the
// count even when the matching enter landed in the same frame.
type Settle struct {
	name      string
	prev      tilt.Mode
	leftAt    int
	pending   bool
	lastValue float64
}

func NewSettle() *Settle {
	s := &Settle{name: "settle_frames"}
	s.Reset()
	return s
}

func (s *Settle) Name() string {
	return s.name
}

func (s *Settle) Observe(f sim.Frame) {
	if f.Left || (s.prev == tilt.Tracking && f.Mode == tilt.Idle) {
		s.leftAt = f.Index
		s.pending = true
		s.lastValue = -1
	}
	s.prev = f.Mode

	if s.pending && f.Mode == tilt.Idle && f.Current.IsZero() {
		s.lastValue = float64(f.Index - s.leftAt)
		s.pending = false
	}
}

func (s *Settle) Value() float64 {
	return s.lastValue
}

func (s *Settle) Reset() {
	s.prev = tilt.Idle
	s.leftAt = 0
	s.pending = false
	s.lastValue = -1
}
