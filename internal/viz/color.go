package viz

import "github.com/charmbracelet/lipgloss"

// RGB holds linear channel intensities in [0, 1].
type RGB struct {
	R, G, B float64
}

func (c RGB) Scale(a float64) RGB {
	return RGB{c.R * a, c.G * a, c.B * a}
}

// Screen composites c over base so overlaps only ever brighten.
func Screen(base, c RGB) RGB {
	return RGB{
		R: 1 - (1-base.R)*(1-c.R),
		G: 1 - (1-base.G)*(1-c.G),
		B: 1 - (1-base.B)*(1-c.B),
	}
}

func (c RGB) Hex() string {
	return hexColor(int(c.R*255+0.5), int(c.G*255+0.5), int(c.B*255+0.5))
}

func (c RGB) Lipgloss() lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

func (c RGB) IsBlack() bool {
	return c.R <= 0 && c.G <= 0 && c.B <= 0
}

// ParseRGB accepts "#rrggbb"; anything else comes back white.
func ParseRGB(hex string) RGB {
	r, g, b := parseHex(hex)
	return RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
