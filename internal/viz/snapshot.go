package viz

import (
	"github.com/san-kum/glasstilt/internal/config"
	"github.com/san-kum/glasstilt/internal/particle"
	"github.com/san-kum/glasstilt/internal/tilt"
)

// SnapshotOptions place the pointer and pick the moment to render.
type SnapshotOptions struct {
	Cols, Rows int     // canvas size in cells
	PointerX   float64 // fraction of panel width, 0..1
	PointerY   float64 // fraction of panel height, 0..1
	Hover      bool    // false renders the panel at rest
	Frames     int     // ticks to run before capturing
	Time       float64 // bubble clock, seconds
}

// Snapshot renders one frame headlessly: the pointer is held at the given
// spot for opts.Frames ticks, then the scene is drawn.
func Snapshot(cfg *config.Config, opts SnapshotOptions) (*Canvas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tcfg := cfg.Tilt()
	surface := newPanelSurface(cfg.View.FPS, tcfg.Transition)
	ctrl := tilt.New(tcfg, surface)

	if opts.Hover {
		bounds := cfg.Bounds()
		ctrl.PointerEnter()
		x := bounds.X + opts.PointerX*bounds.W
		y := bounds.Y + opts.PointerY*bounds.H
		if err := ctrl.PointerMove(x, y, bounds); err != nil {
			return nil, err
		}
	}
	for i := 0; i < opts.Frames; i++ {
		ctrl.Tick()
		surface.ease()
	}

	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 30
	}
	canvas := NewCanvas(cols, rows)
	bubbles := particle.NewGenerator(cfg.Particles(), cfg.View.Seed).Populate(cfg.Field.Count)
	Scene{
		Width:       cfg.Panel.Width,
		Height:      cfg.Panel.Height,
		Perspective: cfg.Panel.Perspective,
		Transform:   surface.Transform(),
		Glow:        surface.Glow(),
		Visual:      tcfg.Visual,
		Bubbles:     bubbles,
		Time:        opts.Time,
		Theme:       GetTheme(cfg.View.Theme),
	}.Draw(canvas)
	return canvas, nil
}
