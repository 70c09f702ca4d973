// Package tween interpolates camera positions over time.
package tween

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type Easing func(t float64) float64

func Linear(t float64) float64       { return t }
func QuadraticIn(t float64) float64  { return t * t }
func QuadraticOut(t float64) float64 { return t * (2 - t) }
func CubicOut(t float64) float64     { return (t-1)*(t-1)*(t-1) + 1 }

func QuadraticInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

var easings = map[string]Easing{
	"linear":          Linear,
	"quadratic.in":    QuadraticIn,
	"quadratic.out":   QuadraticOut,
	"quadratic.inout": QuadraticInOut,
	"cubic.out":       CubicOut,
}

// EasingByName resolves names like "quadratic.out" (case-insensitive).
func EasingByName(name string) (Easing, error) {
	if e, ok := easings[strings.ToLower(name)]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("tween: unknown easing %q", name)
}

// Transition moves a point from From to To over Duration.
type Transition struct {
	From, To mgl64.Vec3
	Duration time.Duration
	Elapsed  time.Duration
	Easing   Easing
}

func New(from, to mgl64.Vec3, d time.Duration, e Easing) *Transition {
	if e == nil {
		e = Linear
	}
	return &Transition{From: from, To: to, Duration: d, Easing: e}
}

// Advance moves the clock by dt and returns the current point. Once the
// clock reaches Duration the point is exactly To.
func (t *Transition) Advance(dt time.Duration) (mgl64.Vec3, bool) {
	t.Elapsed += dt
	if t.Duration <= 0 || t.Elapsed >= t.Duration {
		t.Elapsed = t.Duration
		return t.To, true
	}
	k := t.Easing(float64(t.Elapsed) / float64(t.Duration))
	return t.From.Add(t.To.Sub(t.From).Mul(k)), false
}

func (t *Transition) Done() bool { return t.Elapsed >= t.Duration }

// Slot holds at most one running transition. Starting a new one replaces
// the old one.
type Slot struct {
	active     *Transition
	OnComplete func()
}

func (s *Slot) Start(t *Transition) { s.active = t }

func (s *Slot) Cancel() { s.active = nil }

func (s *Slot) Active() *Transition { return s.active }

func (s *Slot) Running() bool { return s.active != nil }

// Advance steps the running transition and hands its value to apply.
func (s *Slot) Advance(dt time.Duration, apply func(mgl64.Vec3)) {
	if s.active == nil {
		return
	}
	p, done := s.active.Advance(dt)
	apply(p)
	if done {
		s.active = nil
		if s.OnComplete != nil {
			s.OnComplete()
		}
	}
}

// ApproachPoint is the point at distance d from target, back along the
// direction towards from.
func ApproachPoint(from, target mgl64.Vec3, d float64) mgl64.Vec3 {
	dir := from.Sub(target)
	if dir.Len() < 1e-12 || math.IsNaN(dir.Len()) {
		dir = mgl64.Vec3{0, 0, 1}
	}
	return target.Add(dir.Normalize().Mul(d))
}
