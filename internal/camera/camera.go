package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultFOV  = 75.0
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

var DefaultPosition = mgl64.Vec3{-50, 90, 150}

// Ray is a half-line from Origin along the unit vector Dir.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }

// Camera is a perspective camera. FOV is vertical, in degrees.
type Camera struct {
	Position, Target, Up mgl64.Vec3
	FOV, Aspect          float64
	Near, Far            float64
	Width, Height        int
}

func New(width, height int) *Camera {
	c := &Camera{
		Position: DefaultPosition,
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      DefaultFOV,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Aspect:   1,
	}
	c.Resize(width, height)
	return c
}

// Resize tracks the viewport: aspect = w/h and the output size matches
// exactly. A zero dimension keeps the previous values.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Width, c.Height = width, height
	c.Aspect = float64(width) / float64(height)
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Ray casts from the camera through a normalized device coordinate, both
// axes in [-1, 1] with the origin at the viewport centre and +Y up.
func (c *Camera) Ray(ndcX, ndcY float64) Ray {
	inv := c.ViewProjection().Inv()
	far := unproject(inv, mgl64.Vec4{ndcX, ndcY, 1, 1})
	dir := far.Sub(c.Position)
	if dir.Len() == 0 {
		dir = c.Target.Sub(c.Position)
	}
	return Ray{Origin: c.Position, Dir: dir.Normalize()}
}

func unproject(inv mgl64.Mat4, p mgl64.Vec4) mgl64.Vec3 {
	w := inv.Mul4x1(p)
	if w.W() == 0 {
		return w.Vec3()
	}
	return w.Vec3().Mul(1 / w.W())
}

// Project maps a world point to viewport pixels. Depth is the view-space
// distance in front of the camera; visible is false behind the camera or
// outside the clip volume.
func (c *Camera) Project(p mgl64.Vec3) (x, y, depth float64, visible bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * float64(c.Width)
	y = (1 - ndc.Y()) / 2 * float64(c.Height)
	depth = clip.W()
	visible = ndc.Z() >= -1 && ndc.Z() <= 1 && x >= 0 && y >= 0 && x < float64(c.Width) && y < float64(c.Height)
	return x, y, depth, visible
}

// PixelRadius estimates the on-screen radius of a sphere at the given depth.
func (c *Camera) PixelRadius(radius, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	half := math.Tan(mgl64.DegToRad(c.FOV) / 2)
	return radius / (depth * half) * float64(c.Height) / 2
}

// NDC converts viewport pixel coordinates to normalized device coordinates.
func (c *Camera) NDC(px, py float64) (float64, float64) {
	if c.Width == 0 || c.Height == 0 {
		return 0, 0
	}
	return px/float64(c.Width)*2 - 1, -(py/float64(c.Height))*2 + 1
}

// Direction is the unit view direction.
func (c *Camera) Direction() mgl64.Vec3 {
	d := c.Target.Sub(c.Position)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}
