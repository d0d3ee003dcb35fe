package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/driftfield/internal/analysis"
	"github.com/san-kum/driftfield/internal/audio"
	"github.com/san-kum/driftfield/internal/automation"
	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/export"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/gui"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/optim"
	"github.com/san-kum/driftfield/internal/report"
	"github.com/san-kum/driftfield/internal/sim"
	"github.com/san-kum/driftfield/internal/tui"
	"github.com/san-kum/driftfield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	particles  int
	frameRate  int
	theme      string
	withAudio  bool
	gifPath    string
	winWidth   int
	winHeight  int
	frames     int
	svgFrames  int
	watch      bool
	traceSlot  int
	svgPath    string
	exportPath string
	format     string
	numRuns    int
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	gains      []float64
	dampings   []float64
	tuneMetric string
	tuneTarget float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "driftfield",
		Short: "interactive particle field",
		RunE:  runLive,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	rootCmd.PersistentFlags().IntVar(&particles, "particles", config.DefaultParticles, "number of particles")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the field in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
		c.Flags().BoolVar(&withAudio, "audio", false, "sonify the field")
		c.Flags().StringVar(&gifPath, "gif", "driftfield.gif", "GIF recording path")
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the field in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify the field")
	guiCmd.Flags().IntVar(&winWidth, "width", int(config.DefaultWidth), "window width")
	guiCmd.Flags().IntVar(&winHeight, "height", int(config.DefaultHeight), "window height")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and report metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "frames for the built-in orbit scenario")
	runCmd.Flags().BoolVar(&watch, "watch", false, "stream frames to the terminal")
	runCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate used for spectra and --watch")
	runCmd.Flags().IntVar(&traceSlot, "trace", -1, "trace one store slot")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as SVG")
	runCmd.Flags().StringVar(&exportPath, "export", "", "write a run report")
	runCmd.Flags().StringVar(&format, "format", "json", "report format (json, csv)")

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "run a scenario across seeds in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 600, "frames for the built-in orbit scenario")
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "sweep one tuning parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&frames, "frames", 600, "frames for the built-in orbit scenario")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "gain", "gain, damping, dead_zone or force_floor")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 4, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune [scenario]",
		Short: "grid-search gain and damping toward a target metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().IntVar(&frames, "frames", 600, "frames for the built-in orbit scenario")
	tuneCmd.Flags().Float64SliceVar(&gains, "gains", []float64{0.5, 1, 2, 4}, "gain values")
	tuneCmd.Flags().Float64SliceVar(&dampings, "dampings", []float64{0.95, 0.97, 0.98, 0.99}, "damping values")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "respawns", "metric to match")
	tuneCmd.Flags().Float64Var(&tuneTarget, "target", 10, "target metric value")

	svgCmd := &cobra.Command{
		Use:   "svg [output]",
		Short: "render one frame of the orbit scenario as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSVG,
	}
	svgCmd.Flags().IntVar(&svgFrames, "frames", 120, "frames to advance before rendering")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPARTICLES\tGAIN\tDAMPING\tSPEED\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%.3f\t%.2f\t%s\n", name, p.Particles, p.Tuning.Gain, p.Tuning.Damping, p.Spawn.Speed, p.Theme)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "driftfield.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, benchCmd, sweepCmd, tuneCmd, svgCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective config: defaults, then preset, then
// config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(preset, configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("particles") {
		cfg.Particles = particles
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("audio") {
		cfg.Audio = withAudio
	}
	if flags.Changed("width") {
		cfg.Viewport.Width = float64(winWidth)
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = float64(winHeight)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadScenario reads the scenario named by args, or builds the orbit
// scenario over the configured viewport.
func loadScenario(args []string, cfg *config.Config) (*automation.Scenario, error) {
	if len(args) > 0 {
		return automation.LoadScenario(args[0])
	}
	return automation.Orbit(frames, cfg.Bounds(), 240), nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal measures its own viewport; particles are scattered on
	// the first frame.
	s, err := sim.New(cfg.Sim(), field.Bounds{})
	if err != nil {
		return err
	}

	opts := viz.Options{FPS: cfg.FPS, Theme: cfg.Theme, GIFPath: gifPath}
	if cfg.Audio {
		proc := audio.NewProcessor()
		if err := proc.Start(); err == nil {
			defer proc.Stop()
			opts.Observers = append(opts.Observers, proc)
		}
	}
	return viz.Run(s, opts)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := sim.New(cfg.Sim(), cfg.Bounds())
	if err != nil {
		return err
	}

	gui.Run(s, gui.Options{
		Width:  int32(cfg.Viewport.Width),
		Height: int32(cfg.Viewport.Height),
		FPS:    int32(cfg.FPS),
		Theme:  cfg.Theme,
		Audio:  cfg.Audio,
	})
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := loadScenario(args, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var observers []sim.Observer
	var recorder *analysis.TraceRecorder
	if traceSlot >= 0 {
		recorder = analysis.NewTraceRecorder(traceSlot)
		observers = append(observers, recorder)
	}
	if watch {
		live := tui.NewLiveRenderer(os.Stdout, scenario.Name, cfg.FPS)
		live.Start()
		defer live.Stop()
		observers = append(observers, throttle(live, cfg.FPS))
	}

	start := time.Now()
	result, err := automation.Run(ctx, scenario, cfg.Sim(), metrics.Default(), observers...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("scenario: %s  seed: %d  frames: %d  (%v)\n\n", result.Scenario, result.Seed, result.Frames, elapsed.Round(time.Millisecond))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, m := range metrics.Default() {
		fmt.Fprintf(w, "%s\t%.4f\n", m.Name(), result.Metrics[m.Name()])
	}
	fmt.Fprintf(w, "ids_issued\t%d\n", result.IDsIssued)
	w.Flush()

	if len(result.Energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Energy, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("field energy")))
		freq := analysis.DominantFrequency(result.Energy, float64(cfg.FPS))
		fmt.Printf("\ndominant energy frequency: %.3f Hz\n", freq)
	}

	if recorder != nil {
		tr := recorder.Trace()
		fmt.Printf("\nslot %d (%d respawns)\n", tr.Slot, tr.Respawns)
		fmt.Println(analysis.TraceToASCII(tr, 60, 20))
	}

	if svgPath != "" {
		svg := export.FrameToSVG(result.Last, viz.GetTheme(cfg.Theme))
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	if exportPath != "" {
		if err := report.Export(exportPath, format, report.FromResult(result)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", exportPath)
	}
	return nil
}

// throttle paces a headless run to fps so --watch is visible in real time.
func throttle(o sim.Observer, fps int) sim.Observer {
	if fps <= 0 {
		return o
	}
	interval := time.Second / time.Duration(fps)
	return observerFunc(func(f sim.Frame) {
		o.OnFrame(f)
		time.Sleep(interval)
	})
}

type observerFunc func(f sim.Frame)

func (fn observerFunc) OnFrame(f sim.Frame) { fn(f) }

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := loadScenario(args, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s: %d runs x %d frames, %d particles\n\n", scenario.Name, numRuns, scenario.Frames, cfg.Particles)

	start := time.Now()
	results, err := automation.NewEnsemble(scenario, numRuns, cfg.Seed).Run(context.Background(), cfg.Sim())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tRESPAWNS\tMEAN_SPEED\tENERGY\tCONTAINMENT")
	totalFrames := 0
	for _, r := range results {
		totalFrames += r.Frames
		fmt.Fprintf(w, "%d\t%.0f\t%.4f\t%.4f\t%.4f\n",
			r.Seed, r.Metrics["respawns"], r.Metrics["mean_speed"], r.Metrics["kinetic_energy"], r.Metrics["containment"])
	}
	w.Flush()

	fmt.Printf("\n%d frames in %v (%.0f frames/sec)\n", totalFrames, elapsed.Round(time.Millisecond), float64(totalFrames)/elapsed.Seconds())
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := loadScenario(args, cfg)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), scenario, cfg.Sim(), automation.ParameterSweep{
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tRESPAWNS\tMEAN_SPEED\tPEAK_ENERGY\n", sweepParam)
	respawns := make([]float64, len(results))
	for i, r := range results {
		respawns[i] = r.Respawns
		fmt.Fprintf(w, "%.3f\t%.0f\t%.4f\t%.4f\n", r.ParamValue, r.Respawns, r.MeanSpeed, r.PeakEnergy)
	}
	w.Flush()

	if len(respawns) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(respawns, asciigraph.Height(8), asciigraph.Caption("respawns vs "+sweepParam)))
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := loadScenario(args, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch([]string{"gain", "damping"}, [][]float64{gains, dampings})
	best, score, err := g.Search(ctx, scenario, cfg.Sim(), optim.TargetMetric(tuneMetric, tuneTarget))
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no valid combination in %d x %d grid", len(gains), len(dampings))
	}

	fmt.Printf("best for %s=%.2f: gain=%.3f damping=%.3f (off by %.3f)\n", tuneMetric, tuneTarget, best["gain"], best["damping"], score)
	return nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := "driftfield.svg"
	if len(args) > 0 {
		out = args[0]
	}

	scenario := automation.Orbit(svgFrames, cfg.Bounds(), 240)
	result, err := automation.Run(context.Background(), scenario, cfg.Sim(), nil)
	if err != nil {
		return err
	}

	svg := export.FrameToSVG(result.Last, viz.GetTheme(cfg.Theme))
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (frame %d, %d particles)\n", out, result.Last.Index, len(result.Last.Commands))
	return nil
}
