package sim_test

import (
	"context"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/bodies"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/selection"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/tween"
)

const frame = time.Second / 60

func newConfig(speed float64) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Speed = speed
	return cfg
}

var _ = Describe("Session", func() {
	var s *sim.Session

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Describe("frame stepping", func() {
		It("advances Mercury by 0.04 rad in 10 frames", func() {
			mercury, err := bodies.Lookup("Mercury")
			Expect(err).NotTo(HaveOccurred())

			s, err = sim.NewSession(newConfig(1),
				sim.WithBodies([]bodies.Body{mercury}),
				sim.WithDecorations(nil, 0))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 10; i++ {
				s.Frame(frame)
			}
			Expect(s.Scene.Nodes[0].PivotAngle).To(BeNumerically("~", 0.04, 1e-12))
			Expect(s.Scene.Nodes[0].SpinAngle).To(BeNumerically("~", 0.04, 1e-12))
			Expect(s.Frames()).To(Equal(uint64(10)))
		})

		It("moves every body by N x multiplier x speed, wrapped", func() {
			var err error
			s, err = sim.NewSession(newConfig(2.5), sim.WithDecorations(nil, 0))
			Expect(err).NotTo(HaveOccurred())

			const n = 400
			for i := 0; i < n; i++ {
				s.Frame(frame)
			}
			for i, b := range s.Scene.Bodies {
				want := scene.Wrap(n * 2.5 * b.OrbitSpeed)
				Expect(s.Scene.Nodes[i].PivotAngle).To(BeNumerically("~", want, 1e-9), b.Name)
				Expect(s.Scene.Nodes[i].PivotAngle).To(BeNumerically("<", scene.TwoPi))
				Expect(s.Scene.Nodes[i].SpinAngle).To(BeNumerically("~", scene.Wrap(n*2.5*b.SpinSpeed), 1e-9), b.Name)
			}
		})

		It("leaves a zero-speed body in place", func() {
			var err error
			s, err = sim.NewSession(newConfig(1), sim.WithDecorations(nil, 0))
			Expect(err).NotTo(HaveOccurred())

			s.Scene.Nodes[3].OrbitSpeed = 0
			s.Scene.Nodes[3].SpinSpeed = 0
			before := s.Scene.WorldPosition(3)
			s.Step(7)
			Expect(s.Scene.WorldPosition(3)).To(Equal(before))
		})

		It("clamps the speed multiplier", func() {
			var err error
			s, err = sim.NewSession(newConfig(1), sim.WithDecorations(nil, 0))
			Expect(err).NotTo(HaveOccurred())

			Expect(s.SetSpeed(0.1)).To(Equal(config.MinSpeed))
			Expect(s.SetSpeed(100)).To(Equal(config.DefaultMaxSpeed))
			Expect(s.SetSpeed(3)).To(Equal(3.0))
		})
	})

	Describe("selecting Venus", func() {
		const venus = 2
		var (
			venusPos mgl64.Vec3
			camStart mgl64.Vec3
			events   []selection.Event
			m        *metrics.Collector
		)

		BeforeEach(func() {
			var err error
			m = metrics.NewCollector()
			s, err = sim.NewSession(newConfig(1),
				sim.WithDecorations(nil, 0),
				sim.WithViewport(160, 96),
				sim.WithMetrics(m))
			Expect(err).NotTo(HaveOccurred())

			venusPos = s.Scene.WorldPosition(venus)
			s.Camera.Target = venusPos
			s.Controls.Sync()
			camStart = s.Camera.Position

			events = nil
			s.Selection.Subscribe(func(e selection.Event) { events = append(events, e) })
		})

		It("freezes Venus and aims the camera 30 units away", func() {
			Expect(s.DoubleClick(80, 48)).To(BeTrue())

			idx, ok := s.Selection.Selected()
			Expect(ok).To(BeTrue())
			Expect(idx).To(Equal(venus))
			Expect(s.Scene.Nodes[venus].OrbitSpeed).To(BeZero())
			Expect(s.Scene.Nodes[venus].SpinSpeed).To(BeZero())
			Expect(s.Controls.Enabled).To(BeFalse())

			tr := s.Transition()
			Expect(tr).NotTo(BeNil())
			Expect(tr.To).To(Equal(tween.ApproachPoint(camStart, venusPos, 30)))
			Expect(tr.To.Sub(venusPos).Len()).To(BeNumerically("~", 30, 1e-9))
			Expect(tr.Duration).To(Equal(time.Second))

			Expect(events).To(HaveLen(1))
			Expect(events[0].Info.Name).To(Equal("Venus"))
		})

		It("lands on the approach point and hands control back", func() {
			s.DoubleClick(80, 48)
			to := s.Transition().To

			for i := 0; i < 61; i++ {
				s.Frame(frame)
			}
			Expect(s.Transition()).To(BeNil())
			Expect(s.Controls.Enabled).To(BeTrue())
			Expect(s.Camera.Position.Sub(to).Len()).To(BeNumerically("<", 1e-6))
			Expect(s.Camera.Target.Sub(venusPos).Len()).To(BeNumerically("<", 1e-6))
			Expect(s.Scene.WorldPosition(venus)).To(Equal(venusPos))
		})

		It("restores Venus on close", func() {
			s.DoubleClick(80, 48)
			for i := 0; i < 5; i++ {
				s.Frame(frame)
			}
			s.Selection.Close()

			Expect(s.Scene.Nodes[venus].OrbitSpeed).To(Equal(0.015))
			Expect(s.Scene.Nodes[venus].SpinSpeed).To(Equal(0.002))
			_, ok := s.Selection.Selected()
			Expect(ok).To(BeFalse())
			Expect(s.Transition()).To(BeNil())
			Expect(s.Controls.Enabled).To(BeTrue())
		})

		It("ignores a double-click on empty space", func() {
			Expect(s.DoubleClick(0, 0)).To(BeFalse())
			Expect(s.Transition()).To(BeNil())
			Expect(events).To(BeEmpty())
		})

		It("hovers Venus from the pointer and keeps tracking it", func() {
			s.PointerMove(80, 48)
			hov, ok := s.Selection.Hovered()
			Expect(ok).To(BeTrue())
			Expect(hov).To(Equal(venus))
			Expect(s.Scene.Nodes[venus].Scale).To(Equal(selection.DefaultHoverScale))

			stats := s.Frame(frame)
			Expect(stats.Hovered).To(Equal(venus))
			Expect(s.Scene.Highlight).NotTo(BeNil())

			s.PointerLeave()
			Expect(s.Scene.Highlight).To(BeNil())
			Expect(s.Scene.Nodes[venus].Scale).To(Equal(1.0))
		})
	})

	Describe("resize", func() {
		It("tracks the viewport exactly", func() {
			var err error
			s, err = sim.NewSession(newConfig(1), sim.WithDecorations(nil, 0))
			Expect(err).NotTo(HaveOccurred())

			s.Resize(1280, 720)
			Expect(s.Camera.Aspect).To(Equal(1280.0 / 720.0))
			Expect(s.Camera.Width).To(Equal(1280))
			Expect(s.Camera.Height).To(Equal(720))

			s.Resize(1280, 0)
			Expect(s.Camera.Height).To(Equal(720))
		})
	})

	Describe("headless runs", func() {
		It("stops when the context is cancelled", func() {
			var err error
			s, err = sim.NewSession(newConfig(1), sim.WithDecorations(nil, 0))
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			err = s.Run(ctx, 100, frame, func(st sim.FrameStats) bool {
				if st.Frame == 5 {
					cancel()
				}
				return true
			})
			Expect(err).To(MatchError(context.Canceled))
			Expect(s.Frames()).To(Equal(uint64(5)))
		})

		It("lets the observer stop early", func() {
			var err error
			s, err = sim.NewSession(newConfig(1), sim.WithDecorations(nil, 0))
			Expect(err).NotTo(HaveOccurred())

			err = s.Run(context.Background(), 100, frame, func(st sim.FrameStats) bool {
				return st.Frame < 3
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Frames()).To(Equal(uint64(3)))
		})

		It("traces one body at several speeds", func() {
			e := sim.NewEnsemble(newConfig(1), []float64{1, 4})
			traces, err := e.Trace(context.Background(), "earth", 10, frame)
			Expect(err).NotTo(HaveOccurred())
			Expect(traces).To(HaveLen(2))

			for _, tr := range traces {
				Expect(tr.Body).To(Equal("Earth"))
				Expect(tr.Angles).To(HaveLen(10))
				Expect(tr.Angles[9]).To(BeNumerically("~", math.Mod(10*tr.Speed*0.01, scene.TwoPi), 1e-12))
			}
		})

		It("rejects an unknown body", func() {
			e := sim.NewEnsemble(newConfig(1), []float64{1})
			_, err := e.Trace(context.Background(), "vulcan", 10, frame)
			Expect(err).To(MatchError(bodies.ErrUnknownBody))
		})
	})

	It("rejects an invalid config", func() {
		cfg := config.DefaultConfig()
		cfg.FPS = 0
		_, err := sim.NewSession(cfg)
		Expect(err).To(MatchError(config.ErrInvalidConfig))
		s = nil
	})
})
