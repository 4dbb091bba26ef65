// Package tilt implements the pointer-driven tilt controller for a floating
// panel.
//
// The package is built around two orientations per panel:
//
//   - target: where the panel wants to be, written by pointer handlers
//   - current: what is rendered, written only by [Controller.Tick]
//
// Every tick closes a fixed fraction of the remaining distance (see [Step]).
// Once the pointer has left and every component falls below the configured
// rest threshold, the orientation is snapped to exact zero (see [Settle]).
//
// # Example
//
//	ctrl := tilt.New(tilt.DefaultConfig(), surface)
//	ctrl.PointerEnter()
//	_ = ctrl.PointerMove(x, y, bounds)
//	for range frames {
//		ctrl.Tick()
//	}
//
// # Thread Safety
//
// Controller instances are NOT thread-safe. Pointer handlers and Tick are
// expected to run on the same frame loop.
package tilt
