// Package viz renders the tilt panel and its bubble field in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: the live panel, tilted by the terminal mouse
//   - [Canvas]: Braille-based pixel canvas with per-cell screen-blended tint
//   - [Scene]: one drawable frame, shared by the TUI and SVG snapshots
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Regenerate the bubble field with the next seed
//	T     - Cycle color themes
//	?     - Show help
//	Q     - Quit
//
// The glow fades with a harmonica spring: quickly while the pointer is over
// the panel and over the configured transition duration after it leaves.
package viz
