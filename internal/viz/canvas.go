package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot grid with one accumulated tint per cell.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Tint          [][]RGB
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Tint:   make([][]RGB, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Tint[i] = make([]RGB, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight are the canvas size in dots.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set lights a dot without tinting it.
func (c *Canvas) Set(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	}
}

// Paint lights a dot and screen-blends col, scaled by alpha, into its cell.
func (c *Canvas) Paint(x, y int, col RGB, alpha float64) {
	row, cl, ok := c.cell(x, y)
	if !ok || alpha <= 0 {
		return
	}
	c.Grid[row][cl] |= rune(pixelMap[y%4][x%2])
	c.Tint[row][cl] = Screen(c.Tint[row][cl], col.Scale(math.Min(alpha, 1)))
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Tint[i][j] = RGB{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col RGB, alpha float64) {
	c.Segment(float64(x0), float64(y0), float64(x1), float64(y1), col, alpha)
}

// Segment draws a line between dot coordinates after clipping it to the
// canvas, so far off-screen endpoints cost nothing.
func (c *Canvas) Segment(fx0, fy0, fx1, fy1 float64, col RGB, alpha float64) {
	fx0, fy0, fx1, fy1, ok := clipSegment(fx0, fy0, fx1, fy1, float64(c.SubWidth()-1), float64(c.SubHeight()-1))
	if !ok {
		return
	}
	x0, y0 := int(math.Round(fx0)), int(math.Round(fy0))
	x1, y1 := int(math.Round(fx1)), int(math.Round(fy1))
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Paint(x0, y0, col, alpha)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment clips a segment to [0,maxX]x[0,maxY] (Liang-Barsky).
func clipSegment(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	for _, v := range []float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{{-dx, x0}, {dx, maxX - x0}, {-dy, y0}, {dy, maxY - y0}}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// Circle outlines a circle of radius r dots.
func (c *Canvas) Circle(cx, cy, r float64, col RGB, alpha float64) {
	if r < 1 {
		c.Paint(int(math.Round(cx)), int(math.Round(cy)), col, alpha)
		return
	}
	steps := int(2*math.Pi*r) + 4
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Paint(int(math.Round(cx+r*math.Cos(a))), int(math.Round(cy+r*math.Sin(a))), col, alpha)
	}
}

// FillCircle fills a disc whose alpha falls off toward the rim.
func (c *Canvas) FillCircle(cx, cy, r float64, col RGB, alpha float64) {
	if r < 1 {
		c.Paint(int(math.Round(cx)), int(math.Round(cy)), col, alpha)
		return
	}
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / r
			if d <= 1 {
				c.Paint(x, y, col, alpha*(1-d*d))
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the canvas with each cell in its tint. Untinted dots use def.
func (c *Canvas) Render(def lipgloss.Color) string {
	var b strings.Builder
	for i, row := range c.Grid {
		var run strings.Builder
		var runColor lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
			}
			run.Reset()
		}
		for j, r := range row {
			var col lipgloss.Color
			if r != blank {
				col = def
				if t := c.Tint[i][j]; !t.IsBlack() {
					col = t.Lipgloss()
				}
			}
			if col != runColor {
				flush()
				runColor = col
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
