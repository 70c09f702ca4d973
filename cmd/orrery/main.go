package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/remote"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/viz"
)

var (
	configFile  string
	preset      string
	speed       float64
	seed        int64
	dataDir     string
	metricsAddr string
	theme       string
	logLevel    string

	// trace
	frames    int
	speeds    []float64
	jsonOut   string
	svgOut    string
	showGraph bool

	// snapshot
	snapFrames int
	snapCols   int
	snapRows   int
	snapScale  float64

	showAnswers bool
	resetCoins  bool
)

// main runs the interactive view when no subcommand is given. It exits
// with status 1 if the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "orrery",
		Short:        "interactive solar system in the terminal",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration ("+fmt.Sprint(config.ListPresets())+")")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "global speed multiplier")
	pf.Int64Var(&seed, "seed", 1, "seed for belts and stars")
	pf.StringVar(&dataDir, "data", "", "data directory (default: user config dir)")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&theme, "theme", viz.ThemeDeepSpace.Name, fmt.Sprint("color theme ", viz.ThemeNames()))

	traceCmd := &cobra.Command{
		Use:   "trace [body]",
		Short: "step the system headless and plot a body's orbital angle",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	traceCmd.Flags().Float64SliceVar(&speeds, "speeds", nil, "run one trace per speed (default: --speed)")
	traceCmd.Flags().StringVar(&jsonOut, "json", "", "write traces as JSON to this file (- for stdout)")
	traceCmd.Flags().StringVar(&svgOut, "svg", "", "write traces as SVG to this file")
	traceCmd.Flags().BoolVar(&showGraph, "graph", true, "print an ascii graph")

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the bodies",
		RunE:  listBodies,
	}

	quizCmd := &cobra.Command{
		Use:   "quiz [body]",
		Short: "print a quiz built from live planet data",
		Args:  cobra.ExactArgs(1),
		RunE:  printQuiz,
	}
	quizCmd.Flags().BoolVar(&showAnswers, "answers", false, "mark the correct options")

	newsCmd := &cobra.Command{
		Use:   "news",
		Short: "show the latest coronal mass ejection",
		RunE:  showNews,
	}

	chatCmd := &cobra.Command{
		Use:   "chat [prompt...]",
		Short: "ask the chat assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runChat,
	}

	coinsCmd := &cobra.Command{
		Use:   "coins",
		Short: "show the coin counter",
		RunE:  showCoins,
	}
	coinsCmd.Flags().BoolVar(&resetCoins, "reset", false, "reset the counter to zero")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [out.svg]",
		Short: "render one frame to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 0, "frames to step before rendering")
	snapshotCmd.Flags().IntVar(&snapCols, "cols", 120, "canvas columns")
	snapshotCmd.Flags().IntVar(&snapRows, "rows", 40, "canvas rows")
	snapshotCmd.Flags().Float64Var(&snapScale, "scale", 4, "pixels per dot")
	snapshotCmd.Flags().StringVar(&theme, "theme", viz.ThemeDeepSpace.Name, "color theme")

	tourCmd := &cobra.Command{
		Use:   "tour [scenario.yaml]",
		Short: "run a scripted tour headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runTour,
	}

	rootCmd.AddCommand(traceCmd, bodiesCmd, quizCmd, newsCmd, chatCmd, coinsCmd, configCmd, snapshotCmd, tourCmd)
	return rootCmd
}

// loadConfig layers defaults, the config file, the preset, environment keys
// and explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" && !config.ApplyPreset(cfg, preset) {
		return nil, fmt.Errorf("%w: unknown preset %q (available: %v)", config.ErrInvalidConfig, preset, config.ListPresets())
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("data") {
		cfg.Storage.Dir = dataDir
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = metricsAddr
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	return cfg, cfg.Validate()
}

// env bundles what every command needs.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Collector
	clients *remote.Clients
	store   *storage.Store
}

func setup(cmd *cobra.Command, interactive bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	// the TUI owns the terminal, so its logs go to a file
	if interactive && cfg.Logging.File == "" {
		if err := os.MkdirAll(cfg.Storage.Dir, 0755); err != nil {
			return nil, err
		}
		cfg.Logging.File = filepath.Join(cfg.Storage.Dir, "orrery.log")
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	var m *metrics.Collector
	if cfg.Metrics.Addr != "" {
		m = metrics.NewCollector()
		go func() {
			if err := m.Serve(cfg.Metrics.Addr); err != nil {
				log.Error("metrics server", zap.Error(err))
			}
		}()
		log.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
	}

	return &env{
		cfg:     cfg,
		log:     log,
		metrics: m,
		clients: remote.NewClients(cfg.Remote, log, m),
		store:   storage.New(cfg.Storage.Dir),
	}, nil
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	session, err := sim.NewSession(e.cfg, sim.WithLogger(e.log), sim.WithMetrics(e.metrics))
	if err != nil {
		return err
	}
	return viz.Run(ctx, viz.Deps{
		Session: session,
		Clients: e.clients,
		Store:   e.store,
		Logger:  e.log,
		Theme:   theme,
		GIFPath: filepath.Join(e.cfg.Storage.Dir, "orrery.gif"),
	})
}
