package viz

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/glasstilt/internal/config"
	"github.com/san-kum/glasstilt/internal/metrics"
	"github.com/san-kum/glasstilt/internal/particle"
	"github.com/san-kum/glasstilt/internal/sim"
	"github.com/san-kum/glasstilt/internal/tilt"
)

const (
	historyCapacity = 240
	statsWidth      = 44
	// canvasStyle padding, in cells
	padLeft = 2
	padTop  = 1
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(padTop, padLeft)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).Padding(1, 2).Width(statsWidth)
)

type TickMsg time.Time

// Options are runtime settings that do not belong in the config file.
type Options struct {
	Debug   bool
	LogPath string
}

// App is the interactive panel: a tilting glass card over a bubble field,
// driven by the terminal mouse.
type App struct {
	cfg     *config.Config
	fps     int
	ctrl    *tilt.Controller
	surface *panelSurface
	gen     *particle.Generator
	bubbles []particle.Spec
	seed    int64
	clock   float64
	frame   int

	canvas *Canvas
	proj   Projector
	width  int
	height int

	theme    Theme
	styles   Styles
	running  bool
	showHelp bool

	settle  *metrics.Settle
	peak    *metrics.Peak
	skipped int
	left    bool
	rotX    []float64
	rotY    []float64
}

// NewApp builds an App from a validated config.
func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fps := cfg.View.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	tcfg := cfg.Tilt()
	surface := newPanelSurface(fps, tcfg.Transition)
	theme := GetTheme(cfg.View.Theme)
	a := &App{
		cfg:     cfg,
		fps:     fps,
		ctrl:    tilt.New(tcfg, surface),
		surface: surface,
		seed:    cfg.View.Seed,
		canvas:  NewCanvas(60, 20),
		width:   60,
		height:  20,
		theme:   theme,
		styles:  NewStyles(theme),
		running: true,
		settle:  metrics.NewSettle(),
		peak:    metrics.NewPeak(),
	}
	a.reseed(a.seed)
	return a, nil
}

func (a *App) reseed(seed int64) {
	a.seed = seed
	a.gen = particle.NewGenerator(a.cfg.Particles(), seed)
	a.bubbles = a.gen.Populate(a.cfg.Field.Count)
	a.clock = 0
	log.Printf("app: %d bubbles, seed %d", len(a.bubbles), seed)
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a *App) Init() tea.Cmd {
	return a.tick()
}

// Update handles input events and advances one frame per tick.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case " ":
			a.running = !a.running
		case "r":
			a.reseed(a.seed + 1)
		case "t":
			a.theme = NextTheme(a.theme)
			a.styles = NewStyles(a.theme)
		case "?":
			a.showHelp = !a.showHelp
		}
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		a.pointer(msg.X, msg.Y)
	case tea.BlurMsg:
		if a.ctrl.Mode() == tilt.Tracking {
			a.leave()
		}
	case TickMsg:
		if a.running {
			a.step()
		}
		return a, a.tick()
	}
	return a, nil
}

func (a *App) resize(w, h int) {
	cw := w - statsWidth - 2*padLeft - 2
	ch := h - 2*padTop - 1
	if cw < 10 {
		cw = 10
	}
	if ch < 5 {
		ch = 5
	}
	a.width, a.height = cw, ch
	a.canvas = NewCanvas(cw, ch)
	a.proj = Projector{}
	log.Printf("app: canvas %dx%d cells", cw, ch)
}

// pointer converts a terminal cell to panel space and feeds the controller.
func (a *App) pointer(cx, cy int) {
	if a.proj.Scale == 0 {
		a.proj = NewProjector(a.canvas, a.cfg.Panel.Width, a.cfg.Panel.Height, a.cfg.Panel.Perspective)
	}
	x, y := a.proj.Unproject(float64((cx-padLeft)*2+1), float64((cy-padTop)*4+2))
	bounds := a.cfg.Bounds()
	inside := bounds.Contains(x, y)

	switch {
	case inside && a.ctrl.Mode() == tilt.Idle:
		a.ctrl.PointerEnter()
		fallthrough
	case inside:
		if err := a.ctrl.PointerMove(x, y, bounds); err != nil {
			a.skipped++
			log.Printf("app: pointer move skipped: %v", err)
		}
	case a.ctrl.Mode() == tilt.Tracking:
		a.leave()
	}
}

func (a *App) leave() {
	a.ctrl.PointerLeave()
	a.left = true
}

// step advances the controller, glow and bubble clock by one frame.
func (a *App) step() {
	cur := a.ctrl.Tick()
	a.surface.ease()
	a.clock += 1 / float64(a.fps)

	f := sim.Frame{
		Index:   a.frame,
		Time:    float64(a.frame) / float64(a.fps),
		Mode:    a.ctrl.Mode(),
		Current: cur,
		Target:  a.ctrl.Target(),
		Glow:    a.surface.Glow(),
		Left:    a.left,
	}
	a.left = false
	a.settle.Observe(f)
	a.peak.Observe(f)
	a.frame++

	a.rotX = appendCapped(a.rotX, cur.RotateX)
	a.rotY = appendCapped(a.rotY, cur.RotateY)
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

// Scene is the current frame as a drawable scene.
func (a *App) Scene() Scene {
	return Scene{
		Width:       a.cfg.Panel.Width,
		Height:      a.cfg.Panel.Height,
		Perspective: a.cfg.Panel.Perspective,
		Transform:   a.surface.Transform(),
		Glow:        a.surface.Glow(),
		Visual:      a.ctrl.Config().Visual,
		Bubbles:     a.bubbles,
		Time:        a.clock,
		Theme:       a.theme,
	}
}

// View renders the TUI interface.
func (a *App) View() string {
	a.proj = a.Scene().Draw(a.canvas)
	canvasView := canvasStyle.Render(a.canvas.Render(a.theme.Muted))

	st := a.styles
	var s strings.Builder
	s.WriteString(GradientText("GLASS TILT", a.theme.Primary, a.theme.Accent) + "\n\n")

	status := st.Running.Render("RUNNING")
	if !a.running {
		status = st.Paused.Render("PAUSED")
	}
	s.WriteString(status + "  " + st.Subtle.Render(a.ctrl.Mode().String()) + "\n\n")

	if len(a.rotX) > 1 {
		chart := asciigraph.PlotMany([][]float64{a.rotX, a.rotY},
			asciigraph.Height(5),
			asciigraph.Width(statsWidth-14),
			asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
			asciigraph.Caption("rotateX / rotateY"))
		s.WriteString(chart + "\n\n")
	}

	cur := a.ctrl.Current()
	row := func(label, value string) {
		s.WriteString(st.Label.Width(12).Render(label) + st.Value.Render(value) + "\n")
	}
	row("Transform", "")
	s.WriteString(st.Subtle.Render(cur.Transform().String()) + "\n")
	row("Glow", fmt.Sprintf("%3.0f%%,%3.0f%% ", a.surface.glow.X, a.surface.glow.Y)+
		st.Bar.Render(ProgressBar(a.surface.opacity, 10)))
	row("Peak", fmt.Sprintf("%.2f°", a.peak.Value()))
	if v := a.settle.Value(); v >= 0 {
		row("Settle", fmt.Sprintf("%.0f frames", v))
	} else {
		row("Settle", "-")
	}
	row("Bubbles", fmt.Sprintf("%d (seed %d)", len(a.bubbles), a.seed))
	row("Skipped", fmt.Sprintf("%d", a.skipped))
	row("Theme", a.theme.Name)

	s.WriteString("\n" + st.Subtle.Render(Separator(statsWidth-6)) + "\n")
	if a.showHelp {
		s.WriteString(st.Hint.Render(helpText))
	} else {
		s.WriteString(st.Hint.Render("SP:Pause R:Reseed T:Theme\n?:Help   Q:Quit"))
	}

	statsView := statsStyle.BorderForeground(a.theme.Muted).Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

const helpText = `Mouse   - Tilt the panel
Space   - Pause/Resume
R       - New bubble field
T       - Cycle themes
?       - Toggle this help
Q       - Quit`

// Run starts the interactive TUI and blocks until it exits.
func Run(cfg *config.Config, opts Options) error {
	if opts.Debug {
		path := opts.LogPath
		if path == "" {
			path = "glasstilt.log"
		}
		f, err := tea.LogToFile(path, "glasstilt")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}
