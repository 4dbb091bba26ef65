package tilt

// Surface receives everything the controller renders.
type Surface interface {
	ApplyTransform(t Transform)
	// SetTransition toggles the surface's own settle easing. The controller
	// keeps interpolating regardless; the surface may treat this as cosmetic.
	SetTransition(enabled bool)
	SetGlow(g Glow)
}

type nopSurface struct{}

func (nopSurface) ApplyTransform(Transform) {}
func (nopSurface) SetTransition(bool)       {}
func (nopSurface) SetGlow(Glow)             {}

type Controller struct {
	cfg     Config
	surface Surface
	mode    Mode
	current Orientation
	target  Orientation
	glow    Glow
}

// New creates an idle controller at rest. A nil surface discards output.
func New(cfg Config, surface Surface) *Controller {
	if surface == nil {
		surface = nopSurface{}
	}
	return &Controller{
		cfg:     cfg,
		surface: surface,
		mode:    Idle,
	}
}

func (c *Controller) Config() Config       { return c.cfg }
func (c *Controller) Mode() Mode           { return c.mode }
func (c *Controller) Current() Orientation { return c.current }
func (c *Controller) Target() Orientation  { return c.target }
func (c *Controller) Glow() Glow           { return c.glow }

func (c *Controller) PointerEnter() {
	c.mode = Tracking
	c.surface.SetTransition(false)
	c.glow.Opacity = c.cfg.GlowOpacity
	c.surface.SetGlow(c.glow)
}

// PointerMove retargets the panel while tracking. On error the target and
// glow are left untouched and the move is dropped.
func (c *Controller) PointerMove(x, y float64, bounds Rect) error {
	if c.mode != Tracking {
		return nil
	}
	target, glow, err := TargetFromPointer(x, y, bounds, c.cfg)
	if err != nil {
		return err
	}
	c.target = target
	c.glow = glow
	c.surface.SetGlow(c.glow)
	return nil
}

func (c *Controller) PointerLeave() {
	c.mode = Idle
	c.target = Orientation{}
	c.surface.SetTransition(true)
	c.glow.Opacity = 0
	c.surface.SetGlow(c.glow)
}

// Tick advances one frame and writes the result to the surface.
func (c *Controller) Tick() Orientation {
	c.current = Step(c.current, c.target, c.cfg.Factor)
	if c.mode == Idle {
		c.current = Settle(c.current, c.cfg.RestThreshold)
	}
	c.surface.ApplyTransform(c.current.Transform())
	return c.current
}
