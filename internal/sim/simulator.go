package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/glasstilt/internal/tilt"
)

// Simulator replays a pointer script against a fresh controller, one tick per
// frame, on the calling goroutine.
type Simulator struct {
	cfg       tilt.Config
	surface   tilt.Surface
	metrics   []Metric
	observers []Observer
}

func New(cfg tilt.Config) *Simulator {
	return &Simulator{
		cfg:       cfg,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)           { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)       { s.observers = append(s.observers, o) }
func (s *Simulator) SetSurface(surf tilt.Surface) { s.surface = surf }

func (s *Simulator) Run(ctx context.Context, script Script, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	events := make(Script, len(script))
	copy(events, script)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })

	result := &Result{
		Frames:  make([]Frame, 0, cfg.Frames),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	ctrl := tilt.New(s.cfg, s.surface)
	next := 0

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		left := false
		for next < len(events) && events[next].Frame <= i {
			left = left || events[next].Kind == Leave
			if err := s.dispatch(ctrl, events[next], cfg.Bounds); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Errorf("frame %d: %w", i, err))
			}
			next++
		}

		ctrl.Tick()

		f := Frame{
			Index:   i,
			Time:    float64(i) / float64(cfg.FrameRate),
			Mode:    ctrl.Mode(),
			Current: ctrl.Current(),
			Target:  ctrl.Target(),
			Glow:    ctrl.Glow(),
			Left:    left,
		}
		for _, obs := range s.observers {
			obs.OnFrame(f)
		}
		for _, m := range s.metrics {
			m.Observe(f)
		}
		result.Frames = append(result.Frames, f)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) dispatch(ctrl *tilt.Controller, e Event, bounds tilt.Rect) error {
	switch e.Kind {
	case Enter:
		ctrl.PointerEnter()
	case Move:
		return ctrl.PointerMove(e.X, e.Y, bounds)
	case Leave:
		ctrl.PointerLeave()
	default:
		return fmt.Errorf("unknown event kind %v", e.Kind)
	}
	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	if cfg.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate must be positive, got %d", ErrInvalidConfig, cfg.FrameRate)
	}
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
