package sim

import (
	"math"

	"github.com/san-kum/glasstilt/internal/tilt"
)

// Sweep enters at frame enter, drags the pointer from the top-left corner to
// the bottom-right corner over moves frames, holds, then leaves.
func Sweep(bounds tilt.Rect, enter, moves, hold int) Script {
	if moves < 1 {
		moves = 1
	}
	script := Script{{Frame: enter, Kind: Enter}}
	for i := 0; i <= moves; i++ {
		f := float64(i) / float64(moves)
		script = append(script, Event{
			Frame: enter + i,
			Kind:  Move,
			X:     bounds.X + f*bounds.W,
			Y:     bounds.Y + f*bounds.H,
		})
	}
	return append(script, Event{Frame: enter + moves + hold, Kind: Leave})
}

// Orbit circles the panel center once over frames, at radius as a fraction
// of the half-extents.
func Orbit(bounds tilt.Rect, enter, frames int, radius float64) Script {
	if frames < 1 {
		frames = 1
	}
	cx, cy := bounds.Center()
	script := Script{{Frame: enter, Kind: Enter}}
	for i := 0; i < frames; i++ {
		a := 2 * math.Pi * float64(i) / float64(frames)
		script = append(script, Event{
			Frame: enter + i,
			Kind:  Move,
			X:     cx + math.Cos(a)*radius*bounds.W/2,
			Y:     cy + math.Sin(a)*radius*bounds.H/2,
		})
	}
	return append(script, Event{Frame: enter + frames, Kind: Leave})
}

// Tap parks the pointer at fractional position (fx, fy) for hold frames.
func Tap(bounds tilt.Rect, frame int, fx, fy float64, hold int) Script {
	return Script{
		{Frame: frame, Kind: Enter},
		{Frame: frame, Kind: Move, X: bounds.X + fx*bounds.W, Y: bounds.Y + fy*bounds.H},
		{Frame: frame + hold, Kind: Leave},
	}
}

var scripts = map[string]func(b tilt.Rect) Script{
	"sweep": func(b tilt.Rect) Script { return Sweep(b, 30, 120, 60) },
	"orbit": func(b tilt.Rect) Script { return Orbit(b, 30, 180, 0.8) },
	"tap":   func(b tilt.Rect) Script { return Tap(b, 30, 0, 0, 120) },
}

// Named builds one of the stock scripts for the given bounds.
func Named(name string, bounds tilt.Rect) (Script, bool) {
	build, ok := scripts[name]
	if !ok {
		return nil, false
	}
	return build(bounds), true
}

func ScriptNames() []string {
	return []string{"orbit", "sweep", "tap"}
}
