package metrics

import (
	"context"
	"testing"

	"github.com/san-kum/glasstilt/internal/sim"
	"github.com/san-kum/glasstilt/internal/tilt"
)

func run(t *testing.T, script func(tilt.Rect) sim.Script, frames int, ms ...sim.Metric) *sim.Result {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Frames = frames

	s := sim.New(tilt.DefaultConfig())
	for _, m := range ms {
		s.AddMetric(m)
	}
	result, err := s.Run(context.Background(), script(cfg.Bounds), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return result
}

func TestSettle(t *testing.T) {
	m := NewSettle()
	result := run(t, func(b tilt.Rect) sim.Script { return sim.Tap(b, 10, 0, 0, 100) }, 400, m)

	got := result.Metrics[m.Name()]
	if got <= 0 {
		t.Fatalf("expected positive settle frames, got %v", got)
	}

	leave := 110
	rest := leave + int(got)
	if !result.Frames[rest].Current.IsZero() {
		t.Errorf("expected rest at frame %d, got %+v", rest, result.Frames[rest].Current)
	}
	if result.Frames[rest-1].Current.IsZero() {
		t.Errorf("panel already at rest before frame %d", rest)
	}
}

func TestSettle_Unsettled(t *testing.T) {
	m := NewSettle()
	result := run(t, func(b tilt.Rect) sim.Script { return sim.Tap(b, 10, 0, 0, 100) }, 115, m)

	if got := result.Metrics[m.Name()]; got != -1 {
		t.Errorf("expected -1 while still settling, got %v", got)
	}
}

func TestSettle_RestartsOnSameFrameEnterLeave(t *testing.T) {
	m := NewSettle()
	result := run(t, func(b tilt.Rect) sim.Script {
		// enter, move and leave all land on frame 130 while still settling
		return append(sim.Tap(b, 10, 0, 0, 100), sim.Tap(b, 130, 1, 1, 0)...)
	}, 400, m)

	got := result.Metrics[m.Name()]
	if got <= 0 {
		t.Fatalf("expected positive settle frames, got %v", got)
	}
	rest := 130 + int(got)
	if !result.Frames[rest].Current.IsZero() || result.Frames[rest-1].Current.IsZero() {
		t.Errorf("settle of %v frames not counted from the second leave", got)
	}
}

func TestPeak(t *testing.T) {
	m := NewPeak()
	result := run(t, func(b tilt.Rect) sim.Script { return sim.Tap(b, 0, 1, 0.5, 300) }, 300, m)

	got := result.Metrics[m.Name()]
	max := tilt.DefaultConfig().MaxRotation
	if got <= max*0.99 || got > max {
		t.Errorf("expected peak close to %v, got %v", max, got)
	}
}

func TestOvershoot_NeverUnderInterpolation(t *testing.T) {
	for _, name := range sim.ScriptNames() {
		t.Run(name, func(t *testing.T) {
			m := NewOvershoot()
			result := run(t, func(b tilt.Rect) sim.Script {
				s, _ := sim.Named(name, b)
				return s
			}, 600, m)
			if got := result.Metrics[m.Name()]; got != 0 {
				t.Errorf("expected no overshoot, got %v", got)
			}
		})
	}
}

func TestOvershoot_Detects(t *testing.T) {
	m := NewOvershoot()
	target := tilt.Orientation{RotateX: 10}
	m.Observe(sim.Frame{Index: 0, Current: tilt.Orientation{RotateX: 8}, Target: target})
	m.Observe(sim.Frame{Index: 1, Current: tilt.Orientation{RotateX: 12}, Target: target})

	if m.Value() != 1 {
		t.Errorf("expected 1 overshoot, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}
