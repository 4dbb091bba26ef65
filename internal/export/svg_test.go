package export

import (
	"strings"
	"testing"

	"github.com/san-kum/glasstilt/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if got := CanvasToSVG(nil, 4, "#ffffff"); got != "" {
		t.Errorf("nil canvas = %q", got)
	}

	c := viz.NewCanvas(4, 2)
	c.Paint(0, 0, viz.RGB{R: 1}, 1)
	c.Set(5, 6)

	svg := CanvasToSVG(c, 4, "#888888")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("malformed svg: %q", svg)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("circles = %d, want 2", got)
	}
	if !strings.Contains(svg, `fill="#ff0000"`) {
		t.Error("tinted dot missing its color")
	}
	if !strings.Contains(svg, `fill="#888888"`) {
		t.Error("untinted dot missing default color")
	}
	if !strings.Contains(svg, `width="32" height="32"`) {
		t.Error("unexpected dimensions")
	}
}

func TestSeriesToSVG(t *testing.T) {
	tests := []struct {
		name   string
		series [][]float64
		paths  int
	}{
		{"empty", nil, 0},
		{"single point", [][]float64{{1}}, 0},
		{"two series", [][]float64{{0, 1, 2}, {2, 1, 0}}, 2},
		{"flat", [][]float64{{3, 3, 3}}, 1},
		{"short series skipped", [][]float64{{0, 1}, {5}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := SeriesToSVG(tt.series, []string{"#ff0000"}, 200, 100)
			if got := strings.Count(svg, "<path"); got != tt.paths {
				t.Errorf("paths = %d, want %d", got, tt.paths)
			}
		})
	}
}

func TestSeriesToSVGZeroLine(t *testing.T) {
	svg := SeriesToSVG([][]float64{{-1, 1}}, nil, 100, 50)
	if !strings.Contains(svg, "<line") {
		t.Error("zero axis missing for series crossing zero")
	}
	if !strings.Contains(svg, `stroke="#00ffff"`) {
		t.Error("default color not used")
	}
}
