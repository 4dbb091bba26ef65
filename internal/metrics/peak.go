package metrics

import (
	"math"

	"github.com/san-kum/glasstilt/internal/sim"
)

// Peak tracks the largest absolute rotation on either axis.
type Peak struct {
	name string
	max  float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak_rotation_deg"}
}

func (p *Peak) Name() string {
	return p.name
}

func (p *Peak) Observe(f sim.Frame) {
	p.max = math.Max(p.max, math.Max(math.Abs(f.Current.RotateX), math.Abs(f.Current.RotateY)))
}

func (p *Peak) Value() float64 {
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
}
