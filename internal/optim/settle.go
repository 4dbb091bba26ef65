package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/glasstilt/internal/config"
	"github.com/san-kum/glasstilt/internal/metrics"
	"github.com/san-kum/glasstilt/internal/sim"
)

// Tunable parameter names.
const (
	ParamFactor      = "interpolation_factor"
	ParamMaxRotation = "max_rotation_deg"
	ParamHoverLift   = "hover_lift"
)

// Apply returns a copy of base with params written into the panel section.
func Apply(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := *base
	for name, v := range params {
		switch name {
		case ParamFactor:
			cfg.Panel.InterpolationFactor = v
		case ParamMaxRotation:
			cfg.Panel.MaxRotation = v
		case ParamHoverLift:
			cfg.Panel.HoverLift = v
		default:
			return nil, fmt.Errorf("optim: unknown parameter %q", name)
		}
	}
	return &cfg, nil
}

// SettleObjective scores a parameter set by how far its return-to-rest,
// measured over script, lands from targetFrames. A run that never settles
// scores +Inf.
func SettleObjective(base *config.Config, script sim.Script, simCfg sim.Config, targetFrames float64) Objective {
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg, err := Apply(base, params)
		if err != nil {
			return 0, err
		}
		tcfg := cfg.Tilt()
		if err := tcfg.Validate(); err != nil {
			return 0, err
		}

		s := sim.New(tcfg)
		settle := metrics.NewSettle()
		s.AddMetric(settle)
		if _, err := s.Run(ctx, script, simCfg); err != nil {
			return 0, err
		}

		frames := settle.Value()
		if frames < 0 {
			return math.Inf(1), nil
		}
		return math.Abs(frames - targetFrames), nil
	}
}
