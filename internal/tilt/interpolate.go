package tilt

import "math"

// Step closes factor of the remaining distance to target, per field.
func Step(current, target Orientation, factor float64) Orientation {
	return Orientation{
		RotateX:    lerp(current.RotateX, target.RotateX, factor),
		RotateY:    lerp(current.RotateY, target.RotateY, factor),
		TranslateZ: lerp(current.TranslateZ, target.TranslateZ, factor),
	}
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

// Settle returns exact zero when every component is below threshold.
func Settle(o Orientation, threshold float64) Orientation {
	if math.Abs(o.RotateX) < threshold &&
		math.Abs(o.RotateY) < threshold &&
		math.Abs(o.TranslateZ) < threshold {
		return Orientation{}
	}
	return o
}

// TargetFromPointer maps a pointer inside bounds to the tilt target and glow
// focal point. Pointer fractions in [0,1] become normalized [-1,1] offsets.
func TargetFromPointer(x, y float64, bounds Rect, cfg Config) (Orientation, Glow, error) {
	if bounds.W == 0 || bounds.H == 0 {
		return Orientation{}, Glow{}, ErrDegenerateBounds
	}
	fx := (x - bounds.X) / bounds.W
	fy := (y - bounds.Y) / bounds.H
	if !finite(fx) || !finite(fy) {
		return Orientation{}, Glow{}, ErrInvalidPointer
	}

	normX := 2*fx - 1
	normY := 2*fy - 1

	target := Orientation{
		RotateX:    -normY * cfg.MaxRotation,
		RotateY:    normX * cfg.MaxRotation,
		TranslateZ: cfg.HoverLift,
	}
	if !target.IsValid() {
		return Orientation{}, Glow{}, ErrInvalidPointer
	}
	return target, Glow{X: fx * 100, Y: fy * 100, Opacity: cfg.GlowOpacity}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
