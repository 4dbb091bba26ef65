package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/glasstilt/internal/tilt"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

type EventKind int

const (
	Enter EventKind = iota
	Move
	Leave
)

func (k EventKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Move:
		return "move"
	case Leave:
		return "leave"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a pointer event delivered just before the given frame's tick.
type Event struct {
	Frame int
	Kind  EventKind
	X, Y  float64
}

type Script []Event

// Frame is the controller state observed after one tick.
type Frame struct {
	Index   int
	Time    float64
	Mode    tilt.Mode
	Current tilt.Orientation
	Target  tilt.Orientation
	Glow    tilt.Glow
	// Left is set when a pointer leave was dispatched before this tick.
	Left bool
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type Config struct {
	Frames    int
	FrameRate int
	Bounds    tilt.Rect
}

func DefaultConfig() Config {
	return Config{
		Frames:    600,
		FrameRate: 60,
		Bounds:    tilt.Rect{W: 360, H: 220},
	}
}

type Result struct {
	Frames  []Frame
	Metrics map[string]float64
	// Skipped counts pointer moves dropped for degenerate or invalid input.
	Skipped int
	Errors  []error
}

// Series extracts one orientation component across all frames.
func (r *Result) Series(pick func(tilt.Orientation) float64) []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = pick(f.Current)
	}
	return out
}

func RotateX(o tilt.Orientation) float64    { return o.RotateX }
func RotateY(o tilt.Orientation) float64    { return o.RotateY }
func TranslateZ(o tilt.Orientation) float64 { return o.TranslateZ }
