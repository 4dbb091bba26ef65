package tilt_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glasstilt/internal/tilt"
)

type recordingSurface struct {
	transforms  []tilt.Transform
	transitions []bool
	glows       []tilt.Glow
}

func (r *recordingSurface) ApplyTransform(t tilt.Transform) { r.transforms = append(r.transforms, t) }
func (r *recordingSurface) SetTransition(on bool)           { r.transitions = append(r.transitions, on) }
func (r *recordingSurface) SetGlow(g tilt.Glow)             { r.glows = append(r.glows, g) }

func (r *recordingSurface) lastGlow() tilt.Glow {
	Expect(r.glows).NotTo(BeEmpty())
	return r.glows[len(r.glows)-1]
}

var _ = Describe("Controller", func() {
	var (
		cfg     tilt.Config
		surface *recordingSurface
		ctrl    *tilt.Controller
		bounds  tilt.Rect
	)

	BeforeEach(func() {
		cfg = tilt.DefaultConfig()
		surface = &recordingSurface{}
		ctrl = tilt.New(cfg, surface)
		bounds = tilt.Rect{X: 0, Y: 0, W: 400, H: 200}
	})

	It("starts idle at rest", func() {
		Expect(ctrl.Mode()).To(Equal(tilt.Idle))
		Expect(ctrl.Current().IsZero()).To(BeTrue())
		Expect(ctrl.Target().IsZero()).To(BeTrue())
	})

	It("keeps writing a transform every tick while idle", func() {
		for i := 0; i < 3; i++ {
			ctrl.Tick()
		}
		Expect(surface.transforms).To(HaveLen(3))
		Expect(surface.transforms[2]).To(Equal(tilt.Transform{}))
	})

	It("ignores pointer moves before the pointer enters", func() {
		Expect(ctrl.PointerMove(0, 0, bounds)).To(Succeed())
		Expect(ctrl.Target().IsZero()).To(BeTrue())
	})

	Context("when the pointer enters", func() {
		BeforeEach(func() {
			ctrl.PointerEnter()
		})

		It("switches to tracking, disables the surface transition and lights the glow", func() {
			Expect(ctrl.Mode()).To(Equal(tilt.Tracking))
			Expect(surface.transitions).To(Equal([]bool{false}))
			Expect(surface.lastGlow().Opacity).To(Equal(cfg.GlowOpacity))
		})

		It("targets a level, lifted panel at the center", func() {
			Expect(ctrl.PointerMove(200, 100, bounds)).To(Succeed())
			Expect(ctrl.Target()).To(Equal(tilt.Orientation{TranslateZ: cfg.HoverLift}))
			Expect(surface.lastGlow().X).To(BeNumerically("~", 50, 1e-9))
			Expect(surface.lastGlow().Y).To(BeNumerically("~", 50, 1e-9))
		})

		It("tilts toward the top-left corner", func() {
			Expect(ctrl.PointerMove(0, 0, bounds)).To(Succeed())
			Expect(ctrl.Target()).To(Equal(tilt.Orientation{
				RotateX:    cfg.MaxRotation,
				RotateY:    -cfg.MaxRotation,
				TranslateZ: cfg.HoverLift,
			}))
		})

		It("keeps the last good target on a degenerate bounding box", func() {
			Expect(ctrl.PointerMove(100, 50, bounds)).To(Succeed())
			before := ctrl.Target()

			Expect(ctrl.PointerMove(10, 10, tilt.Rect{W: 0, H: 200})).To(MatchError(tilt.ErrDegenerateBounds))
			Expect(ctrl.PointerMove(10, 10, tilt.Rect{W: 200, H: 0})).To(MatchError(tilt.ErrDegenerateBounds))
			Expect(ctrl.Target()).To(Equal(before))

			for i := 0; i < 10; i++ {
				Expect(ctrl.Tick().IsValid()).To(BeTrue())
			}
		})

		It("applies the last move before the next tick", func() {
			Expect(ctrl.PointerMove(0, 0, bounds)).To(Succeed())
			Expect(ctrl.PointerMove(400, 200, bounds)).To(Succeed())
			got := ctrl.Tick()
			Expect(got.RotateY).To(BeNumerically(">", 0))
			Expect(got.RotateX).To(BeNumerically("<", 0))
		})

		It("does not snap to rest while tracking", func() {
			low := cfg
			low.HoverLift = cfg.RestThreshold / 2
			c := tilt.New(low, nil)
			c.PointerEnter()
			Expect(c.PointerMove(200, 100, bounds)).To(Succeed())
			got := c.Tick()
			Expect(got.TranslateZ).To(BeNumerically("~", low.HoverLift*low.Factor, 1e-12))
			Expect(got.IsZero()).To(BeFalse())
		})

		It("converges on the target", func() {
			Expect(ctrl.PointerMove(300, 50, bounds)).To(Succeed())
			var got tilt.Orientation
			for i := 0; i < 400; i++ {
				got = ctrl.Tick()
			}
			Expect(got.RotateX).To(BeNumerically("~", ctrl.Target().RotateX, 1e-9))
			Expect(got.RotateY).To(BeNumerically("~", ctrl.Target().RotateY, 1e-9))
			Expect(got.TranslateZ).To(BeNumerically("~", cfg.HoverLift, 1e-9))
		})

		Context("and then leaves", func() {
			BeforeEach(func() {
				Expect(ctrl.PointerMove(0, 200, bounds)).To(Succeed())
				for i := 0; i < 30; i++ {
					ctrl.Tick()
				}
				ctrl.PointerLeave()
			})

			It("goes idle, re-enables the transition and dims the glow", func() {
				Expect(ctrl.Mode()).To(Equal(tilt.Idle))
				Expect(ctrl.Target().IsZero()).To(BeTrue())
				Expect(surface.transitions).To(Equal([]bool{false, true}))
				Expect(surface.lastGlow().Opacity).To(BeZero())
			})

			It("settles to exactly zero in finite frames", func() {
				settled := -1
				for i := 0; i < 1000; i++ {
					if ctrl.Tick().IsZero() {
						settled = i
						break
					}
				}
				Expect(settled).To(BeNumerically(">", 0))
				Expect(ctrl.Current()).To(Equal(tilt.Orientation{}))

				last := surface.transforms[len(surface.transforms)-1]
				Expect(last).To(Equal(tilt.Transform{}))
			})

			It("stays at rest once settled", func() {
				for i := 0; i < 1000; i++ {
					ctrl.Tick()
				}
				for i := 0; i < 5; i++ {
					Expect(ctrl.Tick()).To(Equal(tilt.Orientation{}))
				}
			})
		})
	})

	Describe("rest snap", func() {
		It("zeroes any sub-threshold orientation on the next idle tick", func() {
			// park the panel in the corner with sub-threshold extents
			small := cfg
			small.HoverLift = cfg.RestThreshold / 2
			small.MaxRotation = cfg.RestThreshold / 2
			c := tilt.New(small, surface)
			c.PointerEnter()
			Expect(c.PointerMove(400, 0, bounds)).To(Succeed())
			for i := 0; i < 500; i++ {
				c.Tick()
			}
			cur := c.Current()
			Expect(math.Abs(cur.RotateX)).To(BeNumerically("<", cfg.RestThreshold))
			Expect(math.Abs(cur.RotateY)).To(BeNumerically("<", cfg.RestThreshold))
			Expect(math.Abs(cur.TranslateZ)).To(BeNumerically("<", cfg.RestThreshold))
			Expect(cur.IsZero()).To(BeFalse())

			c.PointerLeave()
			Expect(c.Tick()).To(Equal(tilt.Orientation{}))
		})
	})

	Describe("independent instances", func() {
		It("shares no state between controllers", func() {
			other := tilt.New(cfg, nil)
			ctrl.PointerEnter()
			Expect(ctrl.PointerMove(0, 0, bounds)).To(Succeed())
			ctrl.Tick()

			Expect(other.Mode()).To(Equal(tilt.Idle))
			Expect(other.Tick()).To(Equal(tilt.Orientation{}))
		})
	})
})
