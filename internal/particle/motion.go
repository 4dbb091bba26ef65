package particle

import "math"

// Fade-in and fade-out each take this share of the rise.
const fadeSpan = 0.1

// Frame is where a bubble is at one instant. X is in percent of container
// width plus a px offset; Y is the rise fraction, 0 at the bottom edge and 1
// at the top.
type Frame struct {
	Left    float64 // percent
	OffsetX float64 // px, drift plus sway
	Y       float64
	Opacity float64
}

// At evaluates the bubble's looping animation at t seconds after the field
// was created.
func (s Spec) At(t float64) Frame {
	if s.Duration <= 0 {
		return Frame{Left: s.Left}
	}
	phase := t + s.Delay

	rise := cycle(phase, s.Duration)
	sway := math.Sin(2 * math.Pi * cycle(phase, s.Duration/2))

	return Frame{
		Left:    s.Left,
		OffsetX: s.Drift*rise + s.Sway*sway,
		Y:       rise,
		Opacity: fade(rise),
	}
}

// cycle returns the position within the current period, in [0, 1).
func cycle(t, period float64) float64 {
	p := math.Mod(t/period, 1)
	if p < 0 {
		p++
	}
	if p >= 1 {
		return 0
	}
	return p
}

func fade(p float64) float64 {
	switch {
	case p < fadeSpan:
		return p / fadeSpan
	case p > 1-fadeSpan:
		return (1 - p) / fadeSpan
	default:
		return 1
	}
}
