package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/orrery/internal/automation"
	"github.com/san-kum/orrery/internal/bodies"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/quiz"
	"github.com/san-kum/orrery/internal/remote"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/viz"
)

const frameDT = time.Second / 60

func runTrace(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	if frames < 1 {
		return fmt.Errorf("--frames must be positive, got %d", frames)
	}
	list := speeds
	if len(list) == 0 {
		list = []float64{e.cfg.Speed}
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	start := time.Now()
	ens := sim.NewEnsemble(e.cfg, list, sim.WithLogger(e.log), sim.WithMetrics(e.metrics))
	traces, err := ens.Trace(ctx, args[0], frames, frameDT)
	if err != nil {
		return err
	}
	e.log.Info("trace complete",
		zap.String("body", args[0]),
		zap.Int("runs", len(traces)),
		zap.Duration("elapsed", time.Since(start)))

	if showGraph {
		for _, tr := range traces {
			fmt.Println(asciigraph.Plot(tr.Angles,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("%s orbital angle (rad), speed %g", tr.Body, tr.Speed)),
			))
			fmt.Println()
		}
	}

	switch jsonOut {
	case "":
	case "-":
		if err := storage.ExportJSON("", os.Stdout, traces); err != nil {
			return err
		}
	default:
		if err := storage.ExportJSON(jsonOut, nil, traces); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOut)
	}

	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		colors := make([]string, len(viz.Themes))
		for i, t := range viz.Themes {
			colors[i] = string(t.Primary)
		}
		if err := export.TracesToSVG(f, traces, 800, 300, colors); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func listBodies(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIAMETER (km)\tMASS (10^24 kg)\tGRAVITY (m/s²)\tDISTANCE\tORBIT SPEED\tSPIN SPEED\tRING")
	for _, b := range bodies.All() {
		ring := "-"
		if b.Ring != nil {
			ring = fmt.Sprintf("%g-%g", b.Ring.Inner, b.Ring.Outer)
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%g\t%s\n",
			b.Name, b.DiameterKm, b.Mass, b.Gravity, b.Distance, b.OrbitSpeed, b.SpinSpeed, ring)
	}
	return w.Flush()
}

func printQuiz(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	body, err := e.clients.Catalog.Find(ctx, args[0])
	if err != nil {
		fmt.Println(remote.CatalogFallback)
		return err
	}
	rng := rand.New(rand.NewSource(e.cfg.Seed))
	for i, q := range quiz.Generate(body, rng) {
		fmt.Printf("%d. %s\n", i+1, q.Text)
		for j := range q.Options {
			mark := " "
			if showAnswers && j == q.Correct() {
				mark = "*"
			}
			fmt.Printf("  %s[%d] %s\n", mark, j+1, q.Label(j))
		}
		fmt.Println()
	}
	return nil
}

func showNews(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	ev, err := e.clients.News.Latest(ctx)
	if err != nil {
		e.log.Warn("news", zap.Error(err))
	}
	fmt.Println(remote.NewsText(ev, err))
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	text, err := e.clients.Chat.Complete(ctx, strings.Join(args, " "))
	if err != nil {
		e.log.Warn("chat", zap.Error(err))
	}
	fmt.Println(remote.ChatReply(text, err))
	return nil
}

func showCoins(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.Storage.Dir)
	if resetCoins {
		if err := st.SetCoins(0); err != nil {
			return err
		}
	}
	n, err := st.Coins()
	if err != nil {
		return err
	}
	fmt.Printf("coins: %d\n", n)
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "orrery.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	// keys stay in the environment
	cfg.Remote.CatalogKey, cfg.Remote.ChatKey, cfg.Remote.NewsKey = "", "", ""
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	canvas := viz.NewCanvas(snapCols, snapRows)
	session, err := sim.NewSession(e.cfg,
		sim.WithLogger(e.log),
		sim.WithViewport(canvas.PixelWidth(), canvas.PixelHeight()))
	if err != nil {
		return err
	}
	defer session.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()
	if err := session.Run(ctx, snapFrames, frameDT, nil); err != nil {
		return err
	}

	th := viz.GetTheme(theme)
	viz.NewRenderer(canvas, th).Draw(session.Scene, session.Camera)
	svg := export.CanvasToSVG(canvas, snapScale, string(th.Text))
	if err := os.WriteFile(args[0], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func runTour(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	session, err := sim.NewSession(e.cfg, sim.WithLogger(e.log), sim.WithMetrics(e.metrics))
	if err != nil {
		return err
	}
	defer session.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	fmt.Printf("%s\n%s\n\n", scenario.Name, scenario.Description)
	results, err := automation.RunScenario(ctx, session, scenario, e.log)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFRAME\tSPEED\tSELECTED\tCAMERA\tNOTE")
	for _, r := range results {
		selected := r.Selected
		if selected == "" {
			selected = "-"
		}
		fmt.Fprintf(w, "%d\t%d\t%g\t%s\t(%.1f, %.1f, %.1f)\t%s\n",
			r.Step, r.Frame, r.Speed, selected, r.Camera[0], r.Camera[1], r.Camera[2], r.Note)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}
