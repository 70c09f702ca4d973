package selection

import "github.com/san-kum/orrery/internal/scene"

type EventKind int

const (
	EventSelect EventKind = iota
	EventHover
	EventClose
	EventGoBack
)

var eventNames = [...]string{"select", "hover", "close", "go-back"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is what the UI layer subscribes to. Body is -1 when no body is
// involved (hover cleared, close while idle).
type Event struct {
	Kind EventKind
	Body int
	Info Info
}

// Info is the descriptive data shown for a body.
type Info struct {
	Name       string
	DiameterKm float64
	Mass       float64
	Gravity    float64
	Distance   float64
}

func InfoFor(sc *scene.Scene, i int) Info {
	b := sc.Bodies[i]
	return Info{
		Name:       b.Name,
		DiameterKm: b.DiameterKm,
		Mass:       b.Mass,
		Gravity:    b.Gravity,
		Distance:   b.Distance,
	}
}
