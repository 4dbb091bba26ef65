package metrics

import (
	"github.com/san-kum/glasstilt/internal/sim"
	"github.com/san-kum/glasstilt/internal/tilt"
)

// Overshoot counts frames where a component crossed its target while the
// target stayed put.
type Overshoot struct {
	name  string
	count int
	seen  bool
	prev  sim.Frame
}

func NewOvershoot() *Overshoot {
	return &Overshoot{name: "overshoots"}
}

func (o *Overshoot) Name() string {
	return o.name
}

func (o *Overshoot) Observe(f sim.Frame) {
	if o.seen && f.Target == o.prev.Target {
		for _, pick := range []func(tilt.Orientation) float64{sim.RotateX, sim.RotateY, sim.TranslateZ} {
			before := pick(f.Target) - pick(o.prev.Current)
			after := pick(f.Target) - pick(f.Current)
			if before*after < 0 {
				o.count++
				break
			}
		}
	}
	o.prev = f
	o.seen = true
}

func (o *Overshoot) Value() float64 {
	return float64(o.count)
}

func (o *Overshoot) Reset() {
	o.count = 0
	o.seen = false
	o.prev = sim.Frame{}
}
