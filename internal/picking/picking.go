// Package picking resolves a pointer position to the nearest body under it.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/scene"
)

// Candidate is a pickable bounding sphere. Index is the caller's handle.
type Candidate struct {
	Index  int
	Center mgl64.Vec3
	Radius float64
}

type Hit struct {
	Index    int
	Distance float64
	Point    mgl64.Vec3
}

// Pick returns the candidate whose sphere the ray enters first. Exact ties
// keep the earlier candidate.
func Pick(ray camera.Ray, candidates []Candidate) (Hit, bool) {
	best := Hit{Index: -1, Distance: math.Inf(1)}
	for _, c := range candidates {
		d, ok := intersectSphere(ray, c.Center, c.Radius)
		if ok && d < best.Distance {
			best = Hit{Index: c.Index, Distance: d}
		}
	}
	if best.Index < 0 {
		return Hit{Index: -1}, false
	}
	best.Point = ray.At(best.Distance)
	return best, true
}

// intersectSphere returns the smallest non-negative distance along the ray
// to the sphere surface. From inside the sphere that is the exit point.
func intersectSphere(ray camera.Ray, center mgl64.Vec3, radius float64) (float64, bool) {
	if radius <= 0 {
		return 0, false
	}
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t := -b - sq; t >= 0 {
		return t, true
	}
	if t := -b + sq; t >= 0 {
		return t, true
	}
	return 0, false
}

// Service picks against the live scene through the active camera.
type Service struct {
	Camera *camera.Camera
	Scene  *scene.Scene
}

func NewService(cam *camera.Camera, sc *scene.Scene) *Service {
	return &Service{Camera: cam, Scene: sc}
}

// Candidates builds bounding spheres for the scene's pickable bodies.
func (s *Service) Candidates() []Candidate {
	idx := s.Scene.Pickables()
	out := make([]Candidate, 0, len(idx))
	for _, i := range idx {
		out = append(out, Candidate{Index: i, Center: s.Scene.WorldPosition(i), Radius: s.Scene.BoundingRadius(i)})
	}
	return out
}

// PickAt resolves a normalized device coordinate to a body index.
func (s *Service) PickAt(ndcX, ndcY float64) (Hit, bool) {
	return Pick(s.Camera.Ray(ndcX, ndcY), s.Candidates())
}
