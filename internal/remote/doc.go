// Package remote serves the tilt panel to a browser.
//
// The page at / draws the panel as a real CSS 3D transform and the bubble
// field as CSS animations. Pointer events travel to the server over a
// websocket at /ws; every connection gets its own controller, ticked on the
// server at the configured frame rate, and each tick that changes the panel
// is sent back as a frame message carrying the transform string, the
// transition hint and the glow.
//
// # Endpoints
//
//	GET /                  the page
//	GET /ws                websocket session
//	GET /api/v1/health     liveness
//	GET /api/v1/panel      panel geometry and tilt parameters
//	GET /api/v1/bubbles    a sampled bubble field (?count=&seed=)
package remote
