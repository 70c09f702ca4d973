package bodies

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownBody = errors.New("bodies: unknown body")

// Orbit holds real orbital elements. A is in millions of km, Period in days.
type Orbit struct {
	A      float64
	E      float64
	Period float64
}

type Ring struct {
	Inner, Outer float64
}

type Body struct {
	Name       string
	Radius     float64
	OrbitSpeed float64
	SpinSpeed  float64
	Distance   float64
	DiameterKm float64
	Mass       float64 // x 10^24 kg
	Gravity    float64 // m/s²
	Color      string
	Ring       *Ring
	Clouds     bool
	Star       bool
	Orbit      Orbit
	Layers     []string
	Facts      []string
}

func (b Body) String() string { return b.Name }

// All returns every descriptor in registry order, the Sun first.
func All() []Body {
	out := make([]Body, len(registry))
	copy(out, registry)
	return out
}

// Planets returns the orbiting, pickable bodies in registry order.
func Planets() []Body {
	out := make([]Body, 0, len(registry)-1)
	for _, b := range registry {
		if !b.Star {
			out = append(out, b)
		}
	}
	return out
}

// Lookup finds a body by name, ignoring case.
func Lookup(name string) (Body, error) {
	i, err := Index(name)
	if err != nil {
		return Body{}, err
	}
	return registry[i], nil
}

func Index(name string) (int, error) {
	for i, b := range registry {
		if strings.EqualFold(b.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownBody, name)
}

func Names() []string {
	names := make([]string, len(registry))
	for i, b := range registry {
		names[i] = b.Name
	}
	return names
}
