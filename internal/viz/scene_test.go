package viz

import (
	"testing"
	"time"

	"github.com/san-kum/glasstilt/internal/config"
	"github.com/san-kum/glasstilt/internal/tilt"
)

func litCells(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				n++
			}
		}
	}
	return n
}

func TestSnapshotAtRest(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Field.Count = 0
	c, err := Snapshot(cfg, SnapshotOptions{Cols: 60, Rows: 20})
	if err != nil {
		t.Fatal(err)
	}
	if litCells(c) == 0 {
		t.Error("panel outline not drawn")
	}
}

func TestSnapshotHoverAddsGlow(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Field.Count = 0
	rest, err := Snapshot(cfg, SnapshotOptions{Cols: 60, Rows: 20})
	if err != nil {
		t.Fatal(err)
	}
	hover, err := Snapshot(cfg, SnapshotOptions{Cols: 60, Rows: 20, Hover: true, PointerX: 0.5, PointerY: 0.5, Frames: 60})
	if err != nil {
		t.Fatal(err)
	}
	if litCells(hover) <= litCells(rest) {
		t.Errorf("hover lit %d cells, rest %d; glow missing", litCells(hover), litCells(rest))
	}
}

func TestSnapshotBubbles(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Field.Count = 30
	cfg.View.Seed = 3
	with, err := Snapshot(cfg, SnapshotOptions{Cols: 60, Rows: 20, Time: 4})
	if err != nil {
		t.Fatal(err)
	}
	cfg.Field.Count = 0
	without, _ := Snapshot(cfg, SnapshotOptions{Cols: 60, Rows: 20, Time: 4})
	if litCells(with) <= litCells(without) {
		t.Error("bubbles not drawn")
	}
}

func TestSnapshotInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Panel.InterpolationFactor = 0
	if _, err := Snapshot(cfg, SnapshotOptions{}); err == nil {
		t.Error("expected validation error")
	}
}

func TestSceneNearEyeDrawsQuickly(t *testing.T) {
	cfg := config.DefaultConfig()
	done := make(chan struct{})
	go func() {
		defer close(done)
		scene := Scene{
			Width:       cfg.Panel.Width,
			Height:      cfg.Panel.Height,
			Perspective: cfg.Panel.Perspective,
			// close enough to the eye that projected corners land ~1e9 dots out
			Transform: tilt.Transform{TranslateZ: cfg.Panel.Perspective - 2e-6},
			Theme:     GetTheme("ocean"),
		}
		scene.Draw(NewCanvas(60, 20))
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("drawing a panel near the eye did not finish")
	}
}
