package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/diffusim/internal/analysis"
	"github.com/san-kum/diffusim/internal/config"
	"github.com/san-kum/diffusim/internal/functional"
	"github.com/san-kum/diffusim/internal/process"
	"github.com/san-kum/diffusim/internal/randx"
	"github.com/san-kum/diffusim/internal/storage"
	"github.com/san-kum/diffusim/internal/viz"
)

var (
	dataDir   string
	stepSize  float64
	duration  float64
	particles int
	seed      uint64
	// process parameters
	start     float64
	diffusion float64
	hurst     float64
	alpha     float64
	beta      float64
	theta     float64
	mu        float64
	sigma     float64
	lambda    float64
	shape     float64
	rate      float64
	velocity  float64
	// estimator parameters
	order     int
	central   bool
	lower     float64
	upper     float64
	maxTime   float64
	delta     float64
	quadOrder int
	// run command
	savedPaths int
	configFile string
	preset     string
	// rand command
	count int
	bins  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "diffusim",
		Short: "stochastic process simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".diffusim", "data directory")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 = entropy)")

	runCmd := &cobra.Command{
		Use:   "run [process]",
		Short: "sample an ensemble and store the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	addParamFlags(runCmd)
	runCmd.Flags().IntVar(&savedPaths, "save-paths", 10, "number of sample paths stored")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	momentCmd := &cobra.Command{
		Use:   "moment [process]",
		Short: "ensemble moment of the terminal value",
		Args:  cobra.ExactArgs(1),
		RunE:  momentEstimate,
	}
	addSimFlags(momentCmd)
	addParamFlags(momentCmd)
	momentCmd.Flags().IntVar(&order, "order", 2, "moment order")
	momentCmd.Flags().BoolVar(&central, "central", false, "central instead of raw moment")

	fptCmd := &cobra.Command{
		Use:   "fpt [process]",
		Short: "first passage time out of (a, b)",
		Args:  cobra.ExactArgs(1),
		RunE:  fptEstimate,
	}
	addSimFlags(fptCmd)
	addParamFlags(fptCmd)
	fptCmd.Flags().Float64Var(&lower, "lower", -1.0, "domain lower bound")
	fptCmd.Flags().Float64Var(&upper, "upper", 1.0, "domain upper bound")
	fptCmd.Flags().Float64Var(&maxTime, "max-time", functional.DefaultMaxDuration, "passage search ceiling")
	fptCmd.Flags().IntVar(&order, "order", 1, "moment order")
	fptCmd.Flags().BoolVar(&central, "central", false, "central instead of raw moment")

	occupationCmd := &cobra.Command{
		Use:   "occupation [process]",
		Short: "occupation time of [a, b]",
		Args:  cobra.ExactArgs(1),
		RunE:  occupationEstimate,
	}
	addSimFlags(occupationCmd)
	addParamFlags(occupationCmd)
	occupationCmd.Flags().Float64Var(&lower, "lower", -1.0, "domain lower bound")
	occupationCmd.Flags().Float64Var(&upper, "upper", 1.0, "domain upper bound")
	occupationCmd.Flags().IntVar(&order, "order", 1, "moment order")
	occupationCmd.Flags().BoolVar(&central, "central", false, "central instead of raw moment")

	tamsdCmd := &cobra.Command{
		Use:   "tamsd [process]",
		Short: "time averaged mean squared displacement",
		Args:  cobra.ExactArgs(1),
		RunE:  tamsdEstimate,
	}
	addSimFlags(tamsdCmd)
	addParamFlags(tamsdCmd)
	tamsdCmd.Flags().Float64Var(&delta, "delta", 0.1, "lag window")
	tamsdCmd.Flags().IntVar(&quadOrder, "quad-order", functional.DefaultQuadOrder, "quadrature nodes")

	randCmd := &cobra.Command{
		Use:   "rand [distribution]",
		Short: "draw samples and show a histogram",
		Long:  "distributions: uniform, normal, exp, poisson, gamma, stable",
		Args:  cobra.ExactArgs(1),
		RunE:  randSamples,
	}
	randCmd.Flags().IntVar(&count, "n", 10000, "number of samples")
	randCmd.Flags().IntVar(&bins, "bins", 20, "histogram bins")
	randCmd.Flags().Float64Var(&alpha, "alpha", 1.5, "stability index (stable)")
	randCmd.Flags().Float64Var(&beta, "beta", 0.0, "skewness (stable)")
	randCmd.Flags().Float64Var(&lambda, "lambda", 1.0, "rate (poisson, exp)")
	randCmd.Flags().Float64Var(&shape, "shape", 1.0, "shape (gamma)")
	randCmd.Flags().Float64Var(&mu, "mu", 0.0, "location (normal, stable)")
	randCmd.Flags().Float64Var(&sigma, "sigma", 1.0, "scale (normal, stable)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored sample paths",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "scaling and spectral diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export stored paths to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live [process]",
		Short: "replay a trajectory in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	addParamFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [process]",
		Short: "benchmark path sampling throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  benchProcess,
	}
	addParamFlags(benchCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [process]",
		Short: "list available presets for a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for process: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	processesCmd := &cobra.Command{
		Use:   "processes",
		Short: "list supported process kinds",
		Run: func(cmd *cobra.Command, args []string) {
			for _, k := range config.Kinds() {
				fmt.Println(k)
			}
		},
	}

	rootCmd.AddCommand(runCmd, momentCmd, fptCmd, occupationCmd, tamsdCmd, randCmd,
		listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, exportJSONCmd,
		liveCmd, benchCmd, presetsCmd, processesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&stepSize, "step", config.DefaultStepSize, "time step")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "ensemble size")
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&start, "start", 0.0, "start position")
	cmd.Flags().Float64Var(&diffusion, "diffusion", config.DefaultDiffusion, "diffusion coefficient (bm)")
	cmd.Flags().Float64Var(&hurst, "hurst", config.DefaultHurst, "hurst exponent (fbm)")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "stability index")
	cmd.Flags().Float64Var(&beta, "beta", 0.0, "skewness / jump index (ctrw)")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "relaxation rate (ou)")
	cmd.Flags().Float64Var(&mu, "mu", 0.0, "mean / drift (ou, gbm)")
	cmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "volatility (ou, gbm)")
	cmd.Flags().Float64Var(&lambda, "lambda", config.DefaultLambda, "event rate (poisson)")
	cmd.Flags().Float64Var(&shape, "shape", 1.0, "shape (gamma)")
	cmd.Flags().Float64Var(&rate, "rate", 1.0, "rate (gamma)")
	cmd.Flags().Float64Var(&velocity, "velocity", 1.0, "flight speed (levy_walk)")
}

// buildConfig merges preset, config file and command line flags, flags last.
func buildConfig(cmd *cobra.Command, kind string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Process = kind

	if preset != "" {
		pc := config.GetPreset(kind, preset)
		if pc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
		*cfg = *pc
	}

	if configFile != "" {
		fc, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *fc
		cfg.Process = kind
	}

	flagMap := map[string]func(){
		"step":      func() { cfg.StepSize = stepSize },
		"time":      func() { cfg.Duration = duration },
		"particles": func() { cfg.Particles = particles },
		"seed":      func() { cfg.Seed = seed },
		"start":     func() { cfg.Params.Start = start },
		"diffusion": func() { cfg.Params.Diffusion = diffusion },
		"hurst":     func() { cfg.Params.Hurst = hurst },
		"alpha":     func() { cfg.Params.Alpha = alpha },
		"beta":      func() { cfg.Params.Beta = beta },
		"theta":     func() { cfg.Params.Theta = theta },
		"mu":        func() { cfg.Params.Mu = mu },
		"sigma":     func() { cfg.Params.Sigma = sigma },
		"lambda":    func() { cfg.Params.Lambda = lambda },
		"shape":     func() { cfg.Params.Shape = shape },
		"rate":      func() { cfg.Params.Rate = rate },
		"velocity":  func() { cfg.Params.Velocity = velocity },
	}
	for name, apply := range flagMap {
		if cmd.Flags().Changed(name) || cmd.InheritedFlags().Changed(name) {
			apply()
		}
	}

	if cfg.Seed == 0 {
		cfg.Seed = randx.EntropySeed()
	}
	return cfg, nil
}

func estimatorConfig(cfg *config.Config) functional.Config {
	return functional.Config{
		Particles: cfg.Particles,
		StepSize:  cfg.StepSize,
		Seed:      cfg.Seed,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	proc, err := cfg.Build()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("sampling %s ensemble...\n", cfg.Process)
	begin := time.Now()

	fcfg := estimatorConfig(cfg)
	mean, err := functional.Mean(proc, cfg.Duration, fcfg)
	if err != nil {
		return err
	}
	msd, err := functional.MSD(proc, cfg.Duration, fcfg)
	if err != nil {
		return err
	}
	variance, err := functional.CentralMoment(proc, cfg.Duration, 2, fcfg)
	if err != nil {
		return err
	}

	keep := savedPaths
	if keep > cfg.Particles {
		keep = cfg.Particles
	}
	paths := make([]process.Path, keep)
	for i := range paths {
		src := randx.Substream(cfg.Seed, uint64(i))
		paths[i], err = proc.Sample(src, cfg.Duration, cfg.StepSize)
		if err != nil {
			return err
		}
	}

	elapsed := time.Since(begin)

	stats := map[string]float64{
		"mean":     mean,
		"msd":      msd,
		"variance": variance,
	}
	runID, err := st.Save(cfg.Process, cfg.StepSize, cfg.Duration, cfg.Seed, cfg.Particles, stats, paths)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("particles: %d\n", cfg.Particles)
	fmt.Println("\nstats:")
	for name, val := range stats {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func momentEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	proc, err := cfg.Build()
	if err != nil {
		return err
	}

	fcfg := estimatorConfig(cfg)
	var val float64
	if central {
		val, err = functional.CentralMoment(proc, cfg.Duration, order, fcfg)
	} else {
		val, err = functional.RawMoment(proc, cfg.Duration, order, fcfg)
	}
	if err != nil {
		return err
	}

	kindLabel := "raw"
	if central {
		kindLabel = "central"
	}
	fmt.Printf("%s: %s moment of order %d at t=%.4g\n", cfg.Process, kindLabel, order, cfg.Duration)
	fmt.Printf("value: %.6g\n", val)
	return nil
}

func fptEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	proc, err := cfg.Build()
	if err != nil {
		return err
	}

	fpt, err := functional.NewFirstPassageTime(proc, functional.Domain{A: lower, B: upper})
	if err != nil {
		return err
	}

	fcfg := estimatorConfig(cfg)
	fcfg.MaxDuration = maxTime

	var val float64
	var ok bool
	if central {
		val, ok, err = fpt.CentralMoment(order, fcfg)
	} else {
		val, ok, err = fpt.RawMoment(order, fcfg)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: first passage out of (%.4g, %.4g)\n", cfg.Process, lower, upper)
	if !ok {
		fmt.Printf("no passage within %.4g for at least one trial\n", maxTime)
		return nil
	}
	fmt.Printf("moment (order %d): %.6g\n", order, val)
	return nil
}

func occupationEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	proc, err := cfg.Build()
	if err != nil {
		return err
	}

	occ, err := functional.NewOccupationTimeStat(proc, functional.Domain{A: lower, B: upper}, cfg.Duration)
	if err != nil {
		return err
	}

	fcfg := estimatorConfig(cfg)
	var val float64
	if central {
		val, err = occ.CentralMoment(order, fcfg)
	} else {
		val, err = occ.RawMoment(order, fcfg)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: occupation of [%.4g, %.4g] over [0, %.4g]\n", cfg.Process, lower, upper, cfg.Duration)
	fmt.Printf("moment (order %d): %.6g\n", order, val)
	return nil
}

func tamsdEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	proc, err := cfg.Build()
	if err != nil {
		return err
	}

	fcfg := estimatorConfig(cfg)
	fcfg.QuadOrder = quadOrder

	single, err := functional.TAMSD(proc, cfg.Duration, delta, fcfg)
	if err != nil {
		return err
	}
	ensemble, err := functional.EATAMSD(proc, cfg.Duration, delta, fcfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s: lag %.4g over [0, %.4g]\n", cfg.Process, delta, cfg.Duration)
	fmt.Printf("tamsd (single path): %.6g\n", single)
	fmt.Printf("ea-tamsd (%d paths): %.6g\n", fcfg.Particles, ensemble)
	return nil
}

func randSamples(cmd *cobra.Command, args []string) error {
	dist := args[0]
	if seed == 0 {
		seed = randx.EntropySeed()
	}
	src := randx.NewSeeded(seed)

	var samples []float64
	var err error
	switch dist {
	case "uniform":
		samples, err = src.Uniforms(count, 0, 1, false)
	case "normal":
		samples, err = src.Normals(count, mu, sigma)
	case "exp":
		samples, err = src.Exps(count, 1/lambda)
	case "poisson":
		var counts []uint64
		counts, err = src.Poissons(count, lambda)
		if err == nil {
			samples = make([]float64, len(counts))
			for i, c := range counts {
				samples[i] = float64(c)
			}
		}
	case "gamma":
		samples = make([]float64, count)
		for i := range samples {
			samples[i], err = src.Gamma(shape, lambda)
			if err != nil {
				break
			}
		}
	case "stable":
		samples, err = src.Stables(count, alpha, beta, sigma, mu)
	default:
		return fmt.Errorf("unknown distribution: %s", dist)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s, %d samples, seed %d\n\n", dist, count, seed)
	fmt.Print(viz.RenderHistogram(samples, bins, 50))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROCESS\tTIME\tDURATION\tSTEP\tPARTICLES\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Process,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.StepSize,
			run.Particles,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	paths, err := st.LoadPaths(runID)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no paths to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("process: %s\n", meta.Process)
	fmt.Printf("paths: %d, points: %d\n\n", len(paths), paths[0].Len())

	maxOverlay := 5
	if len(paths) < maxOverlay {
		maxOverlay = len(paths)
	}
	fmt.Println(viz.RenderPaths(paths[:maxOverlay], 80, 15))
	fmt.Println()
	fmt.Print(viz.RenderPath(paths[0], 80, 12))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	paths, err := st.LoadPaths(runID)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("diagnostics: %s\n", meta.ID)
	fmt.Printf("process: %s\n\n", meta.Process)

	times, msd, err := analysis.MSDCurve(paths)
	if err != nil {
		return err
	}
	fmt.Println(viz.RenderSeries(msd, "ensemble msd vs time", 80, 10))
	fmt.Println()

	if alpha, coeff, err := analysis.DiffusionExponent(times, msd); err == nil {
		fmt.Printf("msd fit: %.4g * t^%.3f\n", coeff, alpha)
		regime := "normal"
		switch {
		case alpha < 0.9:
			regime = "subdiffusive"
		case alpha > 1.1:
			regime = "superdiffusive"
		}
		fmt.Printf("regime: %s\n", regime)
	}

	if stats, err := analysis.SummarizeIncrements(paths[0].Values); err == nil {
		fmt.Printf("\nincrements (path 0): mean %.4g, std %.4g, skew %.3f, ex.kurtosis %.3f\n",
			stats.Mean, stats.StdDev, stats.Skewness, stats.Kurtosis)
	}

	ps := analysis.PowerSpectrum(analysis.Increments(paths[0].Values))
	if len(ps) > 4 {
		fmt.Println()
		fmt.Println(viz.RenderSeries(ps[:len(ps)/4], "increment spectrum (path 0)", 80, 10))
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	paths, err := st.LoadPaths(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range paths {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range paths[0].Times {
		row := []string{strconv.FormatFloat(paths[0].Times[i], 'f', 6, 64)}
		for _, p := range paths {
			row = append(row, strconv.FormatFloat(p.Values[i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	paths, err := st.LoadPaths(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta.Process, meta.StepSize, meta.Duration, meta.Particles, meta.Stats, paths)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	proc, err := cfg.Build()
	if err != nil {
		return err
	}
	return viz.Run(proc, randx.NewSeeded(cfg.Seed), cfg.Process, cfg.Duration, cfg.StepSize)
}

func benchProcess(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	proc, err := cfg.Build()
	if err != nil {
		return err
	}

	durations := []float64{1.0, 10.0, 100.0}
	steps := []float64{0.001, 0.01, 0.1}

	fmt.Printf("benchmarking %s\n\n", cfg.Process)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tSTEP\tPOINTS\tTIME\tPOINTS/SEC")

	src := randx.NewSeeded(cfg.Seed)
	for _, dur := range durations {
		for _, dt := range steps {
			begin := time.Now()
			path, err := proc.Sample(src, dur, dt)
			if err != nil {
				return err
			}
			elapsed := time.Since(begin)

			points := path.Len()
			perSec := float64(points) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n", dur, dt, points, elapsed, perSec)
		}
	}

	return w.Flush()
}
