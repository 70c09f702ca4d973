// Package sim drives one orrery session: it owns the scene, the camera and
// the selection controller and advances them one frame at a time.
package sim

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/san-kum/orrery/internal/bodies"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/picking"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/selection"
	"github.com/san-kum/orrery/internal/tween"
)

const (
	defaultWidth  = 160
	defaultHeight = 96
)

type Option func(*options)

type options struct {
	log     *zap.Logger
	metrics *metrics.Collector
	rng     *rand.Rand
	bodies  []bodies.Body
	belts   []scene.BeltSpec
	stars   int
	width   int
	height  int
}

func WithLogger(l *zap.Logger) Option { return func(o *options) { o.log = l } }

func WithMetrics(m *metrics.Collector) Option { return func(o *options) { o.metrics = m } }

func WithRand(rng *rand.Rand) Option { return func(o *options) { o.rng = rng } }

// WithBodies replaces the registry, mostly for tests.
func WithBodies(b []bodies.Body) Option { return func(o *options) { o.bodies = b } }

// WithDecorations sets the asteroid belts and star count.
func WithDecorations(belts []scene.BeltSpec, stars int) Option {
	return func(o *options) { o.belts, o.stars = belts, stars }
}

func WithViewport(w, h int) Option { return func(o *options) { o.width, o.height = w, h } }

// FrameStats summarises one frame for observers.
type FrameStats struct {
	Frame         uint64
	Speed         float64
	Hovered       int
	Selected      int
	Transitioning bool
}

type pointer struct {
	x, y  float64
	valid bool
}

type Session struct {
	ID        uuid.UUID
	Scene     *scene.Scene
	Camera    *camera.Camera
	Controls  *camera.OrbitControl
	Picker    *picking.Service
	Selection *selection.Controller

	cfg     *config.Config
	easing  tween.Easing
	move    tween.Slot
	aim     tween.Slot
	speed   float64
	frames  uint64
	pointer pointer
	log     *zap.Logger
	metrics *metrics.Collector
	closed  bool
}

func NewSession(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	easing, err := tween.EasingByName(cfg.Camera.Easing)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	o := options{
		bodies: bodies.All(),
		belts:  scene.DefaultBelts,
		stars:  scene.StarCount,
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(cfg.Seed))
	}

	s := &Session{
		ID:      uuid.New(),
		cfg:     cfg,
		easing:  easing,
		speed:   cfg.Speed,
		log:     logging.OrNop(o.log),
		metrics: o.metrics,
	}
	s.log = s.log.With(zap.String("session", s.ID.String()))

	s.Scene = scene.Populate(o.bodies, o.belts, o.stars, o.rng)
	s.Scene.ShowPaths = cfg.ShowPaths
	s.Scene.SetRealView(cfg.RealView)

	s.Camera = camera.New(o.width, o.height)
	s.Camera.FOV = cfg.Camera.FOV
	s.Camera.Position = mgl64.Vec3{cfg.Camera.Position[0], cfg.Camera.Position[1], cfg.Camera.Position[2]}
	s.Controls = camera.NewOrbitControl(s.Camera, cfg.Camera.Damping)
	s.Picker = picking.NewService(s.Camera, s.Scene)

	s.Selection = selection.New(s.Scene, s.Picker, s, s.Controls, selection.Options{
		HoverScale:      cfg.Hover.Scale,
		HighlightRadius: cfg.Hover.HighlightRadius,
	})
	s.Selection.Subscribe(s.observe)
	s.move.OnComplete = func() { s.Controls.SetEnabled(true) }

	s.log.Info("session created",
		zap.Int("bodies", len(o.bodies)),
		zap.Float64("speed", s.speed),
		zap.Int64("seed", cfg.Seed))
	return s, nil
}

func (s *Session) observe(e selection.Event) {
	switch e.Kind {
	case selection.EventSelect:
		s.metrics.Selection()
		s.log.Debug("body selected", zap.String("body", e.Info.Name))
	case selection.EventClose:
		s.move.Cancel()
		s.aim.Cancel()
		s.log.Debug("selection closed", zap.Int("body", e.Body))
	}
}

// Close releases the selection so every body gets its speeds back.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.move.Cancel()
	s.aim.Cancel()
	s.Selection.Close()
	s.log.Info("session closed", zap.Uint64("frames", s.frames))
}

func (s *Session) Config() *config.Config { return s.cfg }

func (s *Session) Speed() float64 { return s.speed }

// SetSpeed sets the global multiplier, clamped to [MinSpeed, MaxSpeed].
func (s *Session) SetSpeed(v float64) float64 {
	switch {
	case v < config.MinSpeed:
		v = config.MinSpeed
	case v > s.cfg.MaxSpeed:
		v = s.cfg.MaxSpeed
	}
	s.speed = v
	return v
}

func (s *Session) Frames() uint64 { return s.frames }

// Step advances every node by multiplier times its live speeds. A frozen
// body has zero speeds and so stays put.
func (s *Session) Step(multiplier float64) {
	for i := range s.Scene.Nodes {
		n := &s.Scene.Nodes[i]
		n.PivotAngle = scene.Wrap(n.PivotAngle + multiplier*n.OrbitSpeed)
		n.SpinAngle = scene.Wrap(n.SpinAngle + multiplier*n.SpinSpeed)
	}
}

// Frame runs one tick: hover at the last pointer sample, body motion,
// camera transition, orbit control.
func (s *Session) Frame(dt time.Duration) FrameStats {
	if s.pointer.valid {
		x, y := s.Camera.NDC(s.pointer.x, s.pointer.y)
		s.Selection.Hover(x, y)
	}

	s.Step(s.speed)
	s.Scene.MoveHighlight()

	s.aim.Advance(dt, func(p mgl64.Vec3) { s.Camera.Target = p })
	s.move.Advance(dt, func(p mgl64.Vec3) { s.Camera.Position = p })
	s.Controls.Update()

	s.frames++
	s.metrics.Frame()

	hovered, _ := s.Selection.Hovered()
	selected, _ := s.Selection.Selected()
	return FrameStats{
		Frame:         s.frames,
		Speed:         s.speed,
		Hovered:       hovered,
		Selected:      selected,
		Transitioning: s.move.Running(),
	}
}

// ZoomTo starts the camera transition towards target, replacing any
// transition already running.
func (s *Session) ZoomTo(target mgl64.Vec3) {
	to := tween.ApproachPoint(s.Camera.Position, target, s.cfg.Camera.ApproachDistance)
	d := s.cfg.Camera.TransitionDuration
	s.move.Start(tween.New(s.Camera.Position, to, d, s.easing))
	s.aim.Start(tween.New(s.Camera.Target, target, d, s.easing))
	s.log.Debug("camera transition",
		zap.Float64s("to", to[:]),
		zap.Duration("duration", d))
}

// Transition returns the running camera transition, if any.
func (s *Session) Transition() *tween.Transition { return s.move.Active() }

// PointerMove records the pointer in viewport pixels. Hover is resolved
// immediately and again on every frame.
func (s *Session) PointerMove(px, py float64) {
	s.pointer = pointer{x: px, y: py, valid: true}
	x, y := s.Camera.NDC(px, py)
	s.Selection.Hover(x, y)
}

// PointerLeave forgets the pointer and drops any hover.
func (s *Session) PointerLeave() {
	s.pointer = pointer{}
	s.Selection.ClearHover()
}

func (s *Session) DoubleClick(px, py float64) bool {
	x, y := s.Camera.NDC(px, py)
	hit := s.Selection.DoubleClick(x, y)
	s.metrics.Pick(hit)
	return hit
}

func (s *Session) Resize(w, h int) {
	s.Camera.Resize(w, h)
}

// Index is the scene index of the named body, matched case-insensitively.
func (s *Session) Index(name string) (int, error) { return indexOf(s.Scene, name) }

// Position is the world position of the named body.
func (s *Session) Position(name string) (mgl64.Vec3, error) {
	i, err := indexOf(s.Scene, name)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return s.Scene.WorldPosition(i), nil
}

func indexOf(sc *scene.Scene, name string) (int, error) {
	for i, b := range sc.Bodies {
		if strings.EqualFold(b.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", bodies.ErrUnknownBody, name)
}
