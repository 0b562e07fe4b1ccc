package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/stepper"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	size       int
	height     int
	speed      int
	seed       int64
	pattern    string
	theme      string
	logPath    string
	logLevel   string

	// run
	save   bool
	values []int

	// export
	outPath string

	// bench
	sizes    []int
	patterns []string
	runs     int

	logger    logrus.FieldLogger = logging.Discard()
	logCloser io.Closer
)

// main runs the interactive TUI when no subcommand is given and exits with
// status 1 if a command fails.
func main() {
	err := newRootCmd().Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "sortviz",
		Short:        "step-by-step quicksort visualizer",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runTUI,
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, c, err := logging.New(logPath, logLevel)
		if err != nil {
			return err
		}
		logger, logCloser = l, c
		return nil
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".sortviz", "data directory for run summaries")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&size, "size", config.DefaultSize, "number of elements")
	pf.IntVar(&height, "height", config.DefaultHeight, "panel height; values are drawn from [20, height-20)")
	pf.IntVar(&speed, "speed", config.DefaultSpeed, "animation speed (1-100)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.StringVar(&pattern, "pattern", config.DefaultPattern, "initial arrangement: "+patternNames())
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.StringVar(&logPath, "log", "", "log file (default: discard)")
	pf.StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "sort once without animation and print the result",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().BoolVar(&save, "save", false, "save a run summary to the data directory")
	runCmd.Flags().IntSliceVar(&values, "values", nil, "sort these values instead of a generated sequence")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "count comparisons and swaps across sizes and patterns",
		Args:  cobra.NoArgs,
		RunE:  benchSorts,
	}
	benchCmd.Flags().IntSliceVar(&sizes, "sizes", experiment.DefaultSizes, "sequence sizes")
	benchCmd.Flags().StringSliceVar(&patterns, "patterns", nil, "patterns (default: all)")
	benchCmd.Flags().IntVar(&runs, "runs", 1, "sorts per size and pattern, seeded seed, seed+1, ...")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run summary as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "output", "o", "", "write to file instead of stdout")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tSPEED\tPATTERN")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, p.Size, p.Speed, p.Pattern)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, benchCmd, listCmd, exportCmd, presetsCmd)
	return rootCmd
}

func patternNames() string {
	names := make([]string, 0, len(stepper.Patterns()))
	for _, p := range stepper.Patterns() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// resolveConfig layers defaults, preset, config file, environment and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, lookup func(string) (string, bool)) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.Preset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Overlay(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	if err := config.LoadDotEnv("."); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("pattern") {
		cfg.Pattern = pattern
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}

	opts := cfg.StepperOptions()
	opts.Logger = logger
	st := stepper.New(opts)

	logger.WithFields(logrus.Fields{"size": cfg.Size, "seed": st.Seed(), "theme": cfg.Theme}).Info("starting tui")
	return viz.Run(st, viz.Options{Theme: cfg.Theme, Logger: logger})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p, err := stepper.ParsePattern(cfg.Pattern)
	if err != nil {
		return err
	}
	exp := experiment.New(experiment.Config{
		Size:    cfg.Size,
		Height:  cfg.Height,
		Seed:    cfg.Seed,
		Pattern: p,
		Values:  values,
	}, logger)
	if err := exp.Setup(); err != nil {
		return err
	}

	res, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	if len(res.Before) > 1 {
		fmt.Fprintln(out, plotSequence(res.Before, "before"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, plotSequence(res.After, "after"))
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "size: %d\n", res.Size)
	fmt.Fprintf(out, "pattern: %s\n", res.Pattern)
	if values == nil {
		fmt.Fprintf(out, "seed: %d\n", res.Seed)
	}
	fmt.Fprintf(out, "comparisons: %d\n", res.Stats.Comparisons)
	fmt.Fprintf(out, "swaps: %d\n", res.Stats.Swaps)
	fmt.Fprintf(out, "steps: %d\n", res.Stats.Steps)
	fmt.Fprintf(out, "sorted: %v\n", res.OK())
	fmt.Fprintf(out, "completed in %v\n", res.Elapsed)

	if !res.OK() {
		return fmt.Errorf("result is not a sorted permutation of the input")
	}

	if save {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(storage.RunSummary{
			Seed:        res.Seed,
			Size:        res.Size,
			Pattern:     string(res.Pattern),
			Comparisons: res.Stats.Comparisons,
			Swaps:       res.Stats.Swaps,
			Steps:       res.Stats.Steps,
			ElapsedMS:   float64(res.Elapsed) / float64(time.Millisecond),
			Sorted:      res.OK(),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}
	return nil
}

func plotSequence(seq stepper.Sequence, caption string) string {
	data := make([]float64, len(seq))
	for i, v := range seq {
		data[i] = float64(v)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

func benchSorts(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}

	var ps []stepper.Pattern
	for _, name := range patterns {
		p, err := stepper.ParsePattern(name)
		if err != nil {
			return err
		}
		ps = append(ps, p)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base := experiment.Config{Height: cfg.Height, Seed: cfg.Seed}
	summaries, err := experiment.Bench(ctx, base, sizes, ps, runs, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tSIZE\tHEIGHT\tRUNS\tCMP(MEAN)\tCMP(MIN)\tCMP(MAX)\tSWAPS(MEAN)\tTIME\tSORTED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f\t%d\t%d\t%.1f\t%v\t%v\n",
			s.Pattern, s.Size, s.Height, s.Runs, s.MeanComparisons, s.MinComparisons, s.MaxComparisons,
			s.MeanSwaps, s.Elapsed.Round(time.Microsecond), s.OK)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPATTERN\tSIZE\tSEED\tCMP\tSWAPS\tMS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.3f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Pattern,
			run.Size,
			run.Seed,
			run.Comparisons,
			run.Swaps,
			run.ElapsedMS,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outPath != "" {
		if err := st.ExportFile(outPath, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", args[0], outPath)
		return nil
	}
	return st.ExportJSON(cmd.OutOrStdout(), args[0])
}
