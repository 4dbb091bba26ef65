package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/glasstilt/internal/config"
	"github.com/san-kum/glasstilt/internal/tilt"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.View.Seed = 1
	a, err := NewApp(cfg)
	if err != nil {
		t.Fatal(err)
	}
	a.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	a.View()
	return a
}

func (a *App) centerCell() (int, int) {
	return padLeft + a.width/2, padTop + a.height/2
}

func TestAppPointerEnterAndLeave(t *testing.T) {
	a := newTestApp(t)

	x, y := a.centerCell()
	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	if a.ctrl.Mode() != tilt.Tracking {
		t.Fatalf("mode = %v, want tracking", a.ctrl.Mode())
	}
	if a.ctrl.Target().TranslateZ != a.cfg.Panel.HoverLift {
		t.Errorf("target lift = %v", a.ctrl.Target().TranslateZ)
	}

	for i := 0; i < 10; i++ {
		a.Update(TickMsg(time.Now()))
	}
	if a.ctrl.Current().TranslateZ <= 0 {
		t.Error("panel did not lift")
	}
	if len(a.rotX) != 10 {
		t.Errorf("history = %d, want 10", len(a.rotX))
	}

	a.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	if a.ctrl.Mode() != tilt.Idle {
		t.Fatalf("mode = %v, want idle", a.ctrl.Mode())
	}
	if !a.ctrl.Target().IsZero() {
		t.Error("target not reset on leave")
	}
}

func TestAppBlurLeaves(t *testing.T) {
	a := newTestApp(t)
	x, y := a.centerCell()
	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	a.Update(tea.BlurMsg{})
	if a.ctrl.Mode() != tilt.Idle {
		t.Error("focus loss should leave the panel")
	}
	if !a.left {
		t.Error("leave not recorded for the next frame")
	}
	a.Update(TickMsg(time.Now()))
	if a.left {
		t.Error("leave flag should clear after one frame")
	}
}

func TestAppPauseFreezesFrame(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.KeyMsg{Type: tea.KeySpace})
	if a.running {
		t.Fatal("space did not pause")
	}
	a.Update(TickMsg(time.Now()))
	if a.frame != 0 || a.clock != 0 {
		t.Errorf("paused app advanced: frame %d clock %v", a.frame, a.clock)
	}
}

func TestAppKeys(t *testing.T) {
	a := newTestApp(t)

	seed := a.seed
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if a.seed != seed+1 {
		t.Errorf("seed = %d, want %d", a.seed, seed+1)
	}

	name := a.theme.Name
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if a.theme.Name == name {
		t.Error("theme did not change")
	}

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !strings.Contains(a.View(), "Tilt the panel") {
		t.Error("help not shown")
	}

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Panel.Width = 0
	if _, err := NewApp(cfg); err == nil {
		t.Error("expected error")
	}
}
