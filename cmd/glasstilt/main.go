package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/glasstilt/internal/config"
	"github.com/san-kum/glasstilt/internal/export"
	"github.com/san-kum/glasstilt/internal/metrics"
	"github.com/san-kum/glasstilt/internal/optim"
	"github.com/san-kum/glasstilt/internal/particle"
	"github.com/san-kum/glasstilt/internal/remote"
	"github.com/san-kum/glasstilt/internal/sim"
	"github.com/san-kum/glasstilt/internal/store"
	"github.com/san-kum/glasstilt/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	// live view
	theme     string
	frameRate int
	seed      int64
	bubbles   int
	debug     bool
	logFile   string
	// trace
	frames   int
	jsonPath string
	svgPath  string
	noSave   bool
	// tune
	factors    string
	settleTime time.Duration
	workers    int
	// serve
	addr string
	// bubbles
	asJSON bool
	// export / snapshot
	exportOut   string
	snapshotOut string
	cols        int
	rows        int
	pointer     string
	settleN     int
	clockSec    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "glasstilt",
		Short:        "a glass panel that tilts toward the pointer, over a field of bubbles",
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".glasstilt", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "bubble field seed (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&bubbles, "bubbles", -1, "bubble count (-1 = from config)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "color theme: "+strings.Join(viz.ThemeNames(), ", "))

	rootCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate (0 = from config)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write a debug log")
	rootCmd.Flags().StringVar(&logFile, "log", "glasstilt.log", "debug log path")

	traceCmd := &cobra.Command{
		Use:   "trace [script]",
		Short: "replay a scripted pointer path headlessly: " + strings.Join(sim.ScriptNames(), ", "),
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&frames, "frames", 0, "frames to run (0 = default)")
	traceCmd.Flags().StringVar(&jsonPath, "json", "", "export frames as JSON")
	traceCmd.Flags().StringVar(&svgPath, "svg", "", "export rotation plot as SVG")
	traceCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	tuneCmd := &cobra.Command{
		Use:   "tune [script]",
		Short: "grid-search the interpolation factor for a target settle time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&factors, "factors", "0.02,0.04,0.06,0.08,0.1,0.12,0.15,0.2,0.25,0.3", "comma-separated factors to try")
	tuneCmd.Flags().DurationVar(&settleTime, "settle", 0, "desired return-to-rest time (0 = transition duration)")
	tuneCmd.Flags().IntVar(&workers, "workers", 0, "parallel evaluations (0 = NumCPU)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the panel to a browser over http and websocket",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (or "+config.EnvAddr+")")
	serveCmd.Flags().IntVar(&frameRate, "fps", 0, "server tick rate (0 = from config)")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored trace runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default <run_id>.json)")

	bubblesCmd := &cobra.Command{
		Use:   "bubbles",
		Short: "sample a bubble field and print its specs",
		RunE:  printBubbles,
	}
	bubblesCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to SVG",
		RunE:  snapshot,
	}
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "glasstilt.svg", "output path")
	snapshotCmd.Flags().IntVar(&cols, "cols", 80, "canvas width in cells")
	snapshotCmd.Flags().IntVar(&rows, "rows", 30, "canvas height in cells")
	snapshotCmd.Flags().StringVar(&pointer, "pointer", "", "hover point as fx,fy fractions (empty = at rest)")
	snapshotCmd.Flags().IntVar(&settleN, "frames", 120, "frames to run before capture")
	snapshotCmd.Flags().Float64Var(&clockSec, "time", 5, "bubble clock in seconds")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "glasstilt.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(traceCmd, tuneCmd, serveCmd, runsCmd, plotCmd, exportCmd, bubblesCmd, snapshotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then preset, then the config file overlaid on
// the preset, then .env and GLASSTILT_* variables, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.View.Seed = seed
	}
	if flags.Changed("bubbles") {
		cfg.Field.Count = bubbles
	}
	if flags.Changed("theme") {
		cfg.View.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.View.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.View.Seed == 0 && !cmd.Flags().Changed("seed") {
		cfg.View.Seed = time.Now().UnixNano()
	}
	return viz.Run(cfg, viz.Options{Debug: debug, LogPath: logFile})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	listen := addr
	if v := os.Getenv(config.EnvAddr); v != "" && !cmd.Flags().Changed("addr") {
		listen = v
	}

	gin.SetMode(gin.ReleaseMode)
	srv, err := remote.NewServer(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Printf("serving on http://localhost%s\n", displayAddr(listen))
	return srv.Run(ctx, listen)
}

func displayAddr(a string) string {
	if strings.HasPrefix(a, ":") {
		return a
	}
	if i := strings.LastIndex(a, ":"); i >= 0 {
		return a[i:]
	}
	return a
}

func runTrace(cmd *cobra.Command, args []string) error {
	name := "sweep"
	if len(args) > 0 {
		name = args[0]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bounds := cfg.Bounds()
	script, ok := sim.Named(name, bounds)
	if !ok {
		return fmt.Errorf("unknown script: %s (available: %v)", name, sim.ScriptNames())
	}

	simCfg := sim.DefaultConfig()
	simCfg.FrameRate = cfg.View.FPS
	simCfg.Bounds = bounds
	if frames > 0 {
		simCfg.Frames = frames
	}

	s := sim.New(cfg.Tilt())
	s.AddMetric(metrics.NewSettle())
	s.AddMetric(metrics.NewPeak())
	s.AddMetric(metrics.NewOvershoot())

	fmt.Printf("tracing %s over %d frames...\n", name, simCfg.Frames)
	start := time.Now()
	result, err := s.Run(context.Background(), script, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("skipped moves: %d\n", result.Skipped)
	fmt.Println("\nmetrics:")
	for _, m := range []string{"settle_frames", "peak_rotation_deg", "overshoots"} {
		fmt.Printf("  %s: %.3f\n", m, result.Metrics[m])
	}
	fmt.Println()

	rx, ry := result.Series(sim.RotateX), result.Series(sim.RotateY)
	fmt.Println(asciigraph.PlotMany([][]float64{rx, ry},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		asciigraph.Caption("rotateX (cyan) / rotateY (magenta), deg"),
	))
	fmt.Println()

	meta := store.RunMetadata{
		Script:      name,
		Preset:      preset,
		FrameRate:   simCfg.FrameRate,
		Factor:      cfg.Panel.InterpolationFactor,
		MaxRotation: cfg.Panel.MaxRotation,
		HoverLift:   cfg.Panel.HoverLift,
	}
	if !noSave {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(meta, result)
		if err != nil {
			return err
		}
		meta.ID = runID
		fmt.Printf("run id: %s\n", runID)
	}

	if jsonPath != "" {
		meta.Frames = len(result.Frames)
		meta.Skipped = result.Skipped
		meta.Metrics = result.Metrics
		if err := store.ExportJSON(jsonPath, meta, result.Frames); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonPath)
	}
	if svgPath != "" {
		svg := export.SeriesToSVG([][]float64{rx, ry, result.Series(sim.TranslateZ)},
			[]string{"#00ffff", "#ff00ff", "#ffd700"}, 800, 300)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	name := "sweep"
	if len(args) > 0 {
		name = args[0]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	values, err := parseFloats(factors)
	if err != nil {
		return fmt.Errorf("factors: %w", err)
	}

	bounds := cfg.Bounds()
	script, ok := sim.Named(name, bounds)
	if !ok {
		return fmt.Errorf("unknown script: %s (available: %v)", name, sim.ScriptNames())
	}
	simCfg := sim.DefaultConfig()
	simCfg.FrameRate = cfg.View.FPS
	simCfg.Bounds = bounds

	want := settleTime
	if want == 0 {
		want = cfg.Panel.TransitionDuration
	}
	target := want.Seconds() * float64(cfg.View.FPS)

	g := optim.NewGridSearch([]string{optim.ParamFactor}, [][]float64{values})
	if workers > 0 {
		g.SetWorkers(workers)
	}

	fmt.Printf("tuning %s for a %v settle (%.0f frames)...\n", name, want, target)
	best, score, all, err := g.Search(context.Background(), optim.SettleObjective(cfg, script, simCfg, target))
	if err != nil && !errors.Is(err, optim.ErrNoCandidates) {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FACTOR\tOFF BY")
	for _, c := range all {
		switch {
		case c.Err != nil:
			fmt.Fprintf(w, "%.3f\t%v\n", c.Params[optim.ParamFactor], c.Err)
		case math.IsInf(c.Score, 1):
			fmt.Fprintf(w, "%.3f\tnever settles\n", c.Params[optim.ParamFactor])
		default:
			fmt.Fprintf(w, "%.3f\t%.0f frames\n", c.Params[optim.ParamFactor], c.Score)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best == nil || math.IsInf(score, 1) {
		return fmt.Errorf("no factor settled within %d frames", simCfg.Frames)
	}
	fmt.Printf("\nbest interpolation_factor: %.3f\n", best[optim.ParamFactor])
	return nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no values in %q", s)
	}
	return out, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCRIPT\tTIME\tFRAMES\tFACTOR\tMAX\tSETTLE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3f\t%.1f°\t%.0f\n",
			run.ID,
			run.Script,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Factor,
			run.MaxRotation,
			run.Metrics["settle_frames"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fs, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(fs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("script: %s\n", meta.Script)
	fmt.Printf("frames: %d\n\n", len(fs))

	result := &sim.Result{Frames: fs}
	plots := []struct {
		caption string
		data    []float64
	}{
		{"rotateX (deg)", result.Series(sim.RotateX)},
		{"rotateY (deg)", result.Series(sim.RotateY)},
		{"translateZ (px)", result.Series(sim.TranslateZ)},
	}
	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	fs, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	path := exportOut
	if path == "" {
		path = runID + ".json"
	}
	if err := store.ExportJSON(path, *meta, fs); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

type bubbleJSON struct {
	Diameter float64 `json:"diameter"`
	Paint    string  `json:"paint"`
	Duration float64 `json:"duration"`
	Delay    float64 `json:"delay"`
	Left     float64 `json:"left"`
	Drift    float64 `json:"drift"`
	Sway     float64 `json:"sway"`
	Blend    string  `json:"blend"`
}

func printBubbles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	specs := particle.NewGenerator(cfg.Particles(), cfg.View.Seed).Populate(cfg.Field.Count)

	if asJSON {
		out := make([]bubbleJSON, len(specs))
		for i, s := range specs {
			out[i] = bubbleJSON{
				Diameter: s.Diameter,
				Paint:    s.Paint.String(),
				Duration: s.Duration,
				Delay:    s.Delay,
				Left:     s.Left,
				Drift:    s.Drift,
				Sway:     s.Sway,
				Blend:    s.Blend.String(),
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSIZE\tDURATION\tDELAY\tLEFT\tDRIFT\tSWAY\tPAINT")
	for i, s := range specs {
		fmt.Fprintf(w, "%d\t%.1fpx\t%.2fs\t%.2fs\t%.1f%%\t%.1f\t%.1f\t%s\n",
			i, s.Diameter, s.Duration, s.Delay, s.Left, s.Drift, s.Sway, s.Paint)
	}
	return w.Flush()
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := viz.SnapshotOptions{
		Cols:   cols,
		Rows:   rows,
		Frames: settleN,
		Time:   clockSec,
	}
	if pointer != "" {
		fx, fy, err := parsePointer(pointer)
		if err != nil {
			return err
		}
		opts.Hover, opts.PointerX, opts.PointerY = true, fx, fy
	}

	canvas, err := viz.Snapshot(cfg, opts)
	if err != nil {
		return err
	}
	svg := export.CanvasToSVG(canvas, 4, string(viz.GetTheme(cfg.View.Theme).Muted))
	if err := os.WriteFile(snapshotOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", snapshotOut)
	return nil
}

func parsePointer(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("pointer must be fx,fy: %q", s)
	}
	fx, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("pointer x: %w", err)
	}
	fy, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("pointer y: %w", err)
	}
	return fx, fy, nil
}
