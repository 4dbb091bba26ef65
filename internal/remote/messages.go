package remote

import (
	"github.com/san-kum/glasstilt/internal/particle"
	"github.com/san-kum/glasstilt/internal/tilt"
)

// Inbound message types.
const (
	MsgEnter = "enter"
	MsgMove  = "move"
	MsgLeave = "leave"
)

// Outbound message types.
const (
	MsgFrame = "frame"
	MsgError = "error"
)

type Bounds struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (b Bounds) Rect() tilt.Rect {
	return tilt.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// PointerMessage is a pointer event from the page. Coordinates and bounds
// are client pixels, as reported by the browser.
type PointerMessage struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Bounds Bounds  `json:"bounds"`
}

type GlowMessage struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Opacity float64 `json:"opacity"`
}

// FrameMessage is the panel state after a tick.
type FrameMessage struct {
	Type       string      `json:"type"`
	Frame      int         `json:"frame"`
	Mode       string      `json:"mode"`
	Transform  string      `json:"transform"`
	Transition string      `json:"transition,omitempty"`
	Glow       GlowMessage `json:"glow"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type PanelResponse struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Perspective   float64 `json:"perspective"`
	MaxRotation   float64 `json:"max_rotation_deg"`
	HoverLift     float64 `json:"hover_lift"`
	Factor        float64 `json:"interpolation_factor"`
	FPS           int     `json:"fps"`
	GlowBlur      float64 `json:"glow_blur"`
	GlowColor     string  `json:"glow_color"`
	ShadowOpacity float64 `json:"shadow_opacity"`
	ShadowBlur    float64 `json:"shadow_blur"`
	ShadowColor   string  `json:"shadow_color"`
}

// Bubble is a particle spec in the units CSS wants.
type Bubble struct {
	Size     float64 `json:"size"`
	Left     float64 `json:"left"`
	Duration float64 `json:"duration"`
	Delay    float64 `json:"delay"`
	Drift    float64 `json:"drift"`
	Sway     float64 `json:"sway"`
	Paint    string  `json:"paint"`
	Blend    string  `json:"blend"`
}

func bubbleFromSpec(s particle.Spec) Bubble {
	return Bubble{
		Size:     s.Diameter,
		Left:     s.Left,
		Duration: s.Duration,
		// negative so the bubble starts mid-flight
		Delay: -s.Delay,
		Drift: s.Drift,
		Sway:  s.Sway,
		Paint: s.Paint.String(),
		Blend: s.Blend.String(),
	}
}
