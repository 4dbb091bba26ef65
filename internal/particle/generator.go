package particle

import "math/rand"

type Generator struct {
	cfg Config
	rnd *rand.Rand
}

// NewGenerator owns its random source, so two generators with the same seed
// and config produce the same field.
func NewGenerator(cfg Config, seed int64) *Generator {
	return &Generator{
		cfg: cfg,
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// Populate samples count independent bubbles.
func (g *Generator) Populate(count int) []Spec {
	if count <= 0 {
		return []Spec{}
	}
	specs := make([]Spec, count)
	for i := range specs {
		specs[i] = g.Sample()
	}
	return specs
}

func (g *Generator) Sample() Spec {
	r := g.rnd.Float64
	var s Spec
	s.Diameter = g.cfg.SizeBase + r()*g.cfg.SizeVariance
	s.Duration = g.cfg.DurationBase + r()*g.cfg.DurationVariance
	// used as a negative animation delay: bubbles start mid-flight
	s.Delay = r() * s.Duration
	s.Left = r() * 100
	s.Drift = (r() - 0.5) * 100
	s.Sway = (r() - 0.5) * 40
	s.Paint = g.paint()
	s.Blend = BlendScreen
	return s
}

func (g *Generator) paint() Paint {
	useGradient := g.rnd.Float64() < g.cfg.GradientChance
	if useGradient && len(g.cfg.Gradients) > 0 {
		return Paint{Gradient: g.cfg.Gradients[g.rnd.Intn(len(g.cfg.Gradients))]}
	}
	if len(g.cfg.Colors) == 0 {
		return Paint{}
	}
	return Paint{Color: g.cfg.Colors[g.rnd.Intn(len(g.cfg.Colors))]}
}
