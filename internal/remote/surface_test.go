package remote

import (
	"testing"
	"time"

	"github.com/san-kum/glasstilt/internal/tilt"
)

func TestStreamSurfaceDirty(t *testing.T) {
	s := &streamSurface{}
	if s.take() {
		t.Error("fresh surface should be clean")
	}

	s.ApplyTransform(tilt.Transform{})
	if s.take() {
		t.Error("writing the same transform should not mark dirty")
	}

	s.ApplyTransform(tilt.Transform{RotateX: 1})
	if !s.take() {
		t.Error("changed transform not reported")
	}
	if s.take() {
		t.Error("take should clear the flag")
	}

	s.SetTransition(true)
	if !s.take() {
		t.Error("transition change not reported")
	}
	s.SetGlow(tilt.Glow{Opacity: 0.6})
	if !s.take() {
		t.Error("glow change not reported")
	}
}

func TestTransitionValue(t *testing.T) {
	tr := tilt.Transition{Duration: 600 * time.Millisecond, Timing: "cubic-bezier(0.23, 1, 0.32, 1)"}
	tests := []struct {
		name    string
		enabled bool
		t       tilt.Transition
		want    string
	}{
		{"disabled", false, tr, ""},
		{"enabled", true, tr, "opacity 600ms cubic-bezier(0.23, 1, 0.32, 1)"},
		{"zero duration", true, tilt.Transition{}, ""},
		{"default timing", true, tilt.Transition{Duration: time.Second}, "opacity 1000ms ease"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transitionValue(tt.enabled, tt.t); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
