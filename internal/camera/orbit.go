package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultDamping = 0.05
	minPolar       = 1e-4
	minDistance    = 1.0
	maxDistance    = 900.0
)

// OrbitControl is a damped orbit/zoom/pan controller around the camera
// target. Input accumulates deltas which Update applies and decays once per
// frame, so motion eases out after input stops.
type OrbitControl struct {
	Enabled bool
	Damping float64

	cam *Camera

	radius, theta, phi float64

	dTheta, dPhi float64
	dolly        float64
	pan          mgl64.Vec3
}

func NewOrbitControl(cam *Camera, damping float64) *OrbitControl {
	if damping <= 0 || damping > 1 {
		damping = DefaultDamping
	}
	o := &OrbitControl{Enabled: true, Damping: damping, cam: cam, dolly: 1}
	o.Sync()
	return o
}

// Sync re-reads the spherical coordinates from the camera. Called when the
// control regains authority after something else moved the camera.
func (o *OrbitControl) Sync() {
	off := o.cam.Position.Sub(o.cam.Target)
	o.radius = off.Len()
	if o.radius == 0 {
		o.theta, o.phi = 0, math.Pi/2
	} else {
		o.theta = math.Atan2(off.X(), off.Z())
		o.phi = math.Acos(clamp(off.Y()/o.radius, -1, 1))
	}
	o.dTheta, o.dPhi, o.dolly, o.pan = 0, 0, 1, mgl64.Vec3{}
}

func (o *OrbitControl) SetEnabled(on bool) {
	if on && !o.Enabled {
		o.Sync()
	}
	o.Enabled = on
}

// Rotate queues an azimuth/polar rotation in radians.
func (o *OrbitControl) Rotate(dTheta, dPhi float64) {
	if !o.Enabled {
		return
	}
	o.dTheta += dTheta
	o.dPhi += dPhi
}

// Dolly queues a zoom; factor < 1 moves closer.
func (o *OrbitControl) Dolly(factor float64) {
	if !o.Enabled || factor <= 0 {
		return
	}
	o.dolly *= factor
}

// Pan queues a target translation in world units.
func (o *OrbitControl) Pan(delta mgl64.Vec3) {
	if !o.Enabled {
		return
	}
	o.pan = o.pan.Add(delta)
}

// Update applies the queued motion and damps it.
func (o *OrbitControl) Update() {
	if !o.Enabled {
		return
	}
	o.theta += o.dTheta * o.Damping
	o.phi = clamp(o.phi+o.dPhi*o.Damping, minPolar, math.Pi-minPolar)
	o.radius = clamp(o.radius*(1+(o.dolly-1)*o.Damping), minDistance, maxDistance)
	o.cam.Target = o.cam.Target.Add(o.pan.Mul(o.Damping))

	sinPhi := math.Sin(o.phi)
	off := mgl64.Vec3{
		o.radius * sinPhi * math.Sin(o.theta),
		o.radius * math.Cos(o.phi),
		o.radius * sinPhi * math.Cos(o.theta),
	}
	o.cam.Position = o.cam.Target.Add(off)

	decay := 1 - o.Damping
	o.dTheta *= decay
	o.dPhi *= decay
	o.dolly = 1 + (o.dolly-1)*decay
	o.pan = o.pan.Mul(decay)
}

// Moving reports whether queued motion is still being applied.
func (o *OrbitControl) Moving() bool {
	const eps = 1e-6
	return math.Abs(o.dTheta) > eps || math.Abs(o.dPhi) > eps || math.Abs(o.dolly-1) > eps || o.pan.Len() > eps
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
