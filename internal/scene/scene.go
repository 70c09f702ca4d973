package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/bodies"
)

const (
	TwoPi        = 2 * math.Pi
	pathSegments = 100

	AmbientDim  = 0.5
	AmbientReal = 0.0
)

// Node is the runtime state of one body: the pivot at the origin carries the
// orbital angle, the offset body node carries the spin angle.
type Node struct {
	PivotAngle float64
	SpinAngle  float64
	OrbitSpeed float64
	SpinSpeed  float64
	Scale      float64
}

type Path struct {
	Radius float64
	Points []mgl64.Vec3
}

type Asteroid struct {
	Position mgl64.Vec3
	Size     float64
}

type Belt struct {
	Radius    float64
	Asteroids []Asteroid
}

type BeltSpec struct {
	Radius float64
	Count  int
}

// DefaultBelts are the four decorative belts, innermost last.
var DefaultBelts = []BeltSpec{{260, 550}, {150, 60}, {130, 80}, {90, 100}}

const (
	StarCount      = 5000
	starFieldSpan  = 1000.0
	asteroidMin    = 0.3
	asteroidMax    = 1.9
	beltJitter     = 20.0
	beltHeight     = 10.0
	highlightLift  = 0.01
	defaultHLScale = 1.2
)

// Highlight marks the hovered body.
type Highlight struct {
	Body     int
	Position mgl64.Vec3
	Radius   float64
}

// Scene is the per-session arena of body nodes plus decorations.
type Scene struct {
	Bodies    []bodies.Body
	Nodes     []Node
	Paths     []Path
	Belts     []Belt
	Stars     []mgl64.Vec3
	Highlight *Highlight

	ShowPaths bool
	Ambient   float64
}

// Populate builds one node per descriptor, one path ring per orbiting body,
// the asteroid belts and the star field.
func Populate(descs []bodies.Body, belts []BeltSpec, stars int, rng *rand.Rand) *Scene {
	s := &Scene{
		Bodies:    descs,
		Nodes:     make([]Node, len(descs)),
		Paths:     make([]Path, 0, len(descs)),
		Belts:     make([]Belt, 0, len(belts)),
		Stars:     make([]mgl64.Vec3, 0, stars),
		ShowPaths: true,
		Ambient:   AmbientReal,
	}
	for i, b := range descs {
		s.Nodes[i] = Node{OrbitSpeed: b.OrbitSpeed, SpinSpeed: b.SpinSpeed, Scale: 1}
		if !b.Star && b.Distance > 0 {
			s.Paths = append(s.Paths, newPath(b.Distance))
		}
	}
	for _, spec := range belts {
		s.Belts = append(s.Belts, newBelt(spec, rng))
	}
	for i := 0; i < stars; i++ {
		s.Stars = append(s.Stars, mgl64.Vec3{
			(rng.Float64() - 0.5) * starFieldSpan,
			(rng.Float64() - 0.5) * starFieldSpan,
			(rng.Float64() - 0.5) * starFieldSpan,
		})
	}
	return s
}

func newPath(radius float64) Path {
	p := Path{Radius: radius, Points: make([]mgl64.Vec3, 0, pathSegments+1)}
	for i := 0; i <= pathSegments; i++ {
		a := float64(i) / pathSegments * TwoPi
		p.Points = append(p.Points, mgl64.Vec3{radius * math.Cos(a), 0, radius * math.Sin(a)})
	}
	return p
}

func newBelt(spec BeltSpec, rng *rand.Rand) Belt {
	b := Belt{Radius: spec.Radius, Asteroids: make([]Asteroid, 0, spec.Count)}
	for i := 0; i < spec.Count; i++ {
		size := rng.Float64()*(asteroidMax-asteroidMin) + asteroidMin
		angle := rng.Float64() * TwoPi
		d := spec.Radius + (rng.Float64()-0.5)*beltJitter
		b.Asteroids = append(b.Asteroids, Asteroid{
			Position: mgl64.Vec3{d * math.Cos(angle), (rng.Float64() - 0.5) * beltHeight, d * math.Sin(angle)},
			Size:     size,
		})
	}
	return b
}

// WorldPosition returns the body's centre: the pivot rotation about +Y
// applied to the (Distance, 0, 0) offset.
func (s *Scene) WorldPosition(i int) mgl64.Vec3 {
	d := s.Bodies[i].Distance
	if d == 0 {
		return mgl64.Vec3{}
	}
	return mgl64.Rotate3DY(s.Nodes[i].PivotAngle).Mul3x1(mgl64.Vec3{d, 0, 0})
}

// Pickables lists the indices of non-star bodies in registry order.
func (s *Scene) Pickables() []int {
	out := make([]int, 0, len(s.Bodies))
	for i, b := range s.Bodies {
		if !b.Star {
			out = append(out, i)
		}
	}
	return out
}

// BoundingRadius is the display radius times the current node scale.
func (s *Scene) BoundingRadius(i int) float64 {
	return s.Bodies[i].Radius * s.Nodes[i].Scale
}

func (s *Scene) SetScale(i int, scale float64) { s.Nodes[i].Scale = scale }

// SetHighlight creates (or replaces) the hover decoration over body i.
func (s *Scene) SetHighlight(i int, radius float64) {
	if radius <= 0 {
		radius = defaultHLScale
	}
	s.Highlight = &Highlight{Body: i, Position: s.highlightPosition(i), Radius: radius}
}

// MoveHighlight keeps the decoration above its body as it orbits.
func (s *Scene) MoveHighlight() {
	if s.Highlight != nil {
		s.Highlight.Position = s.highlightPosition(s.Highlight.Body)
	}
}

func (s *Scene) ClearHighlight() { s.Highlight = nil }

func (s *Scene) highlightPosition(i int) mgl64.Vec3 {
	return s.WorldPosition(i).Add(mgl64.Vec3{0, highlightLift, 0})
}

// SetRealView toggles the ambient light: real view keeps only sunlight.
func (s *Scene) SetRealView(on bool) {
	if on {
		s.Ambient = AmbientReal
	} else {
		s.Ambient = AmbientDim
	}
}

func (s *Scene) RealView() bool { return s.Ambient == AmbientReal }

// Wrap folds an angle into [0, 2π).
func Wrap(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}
