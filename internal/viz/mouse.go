package viz

import "time"

const (
	DefaultDoubleClick = 400 * time.Millisecond
	clickSlop          = 1
)

// ClickDetector turns terminal presses into double clicks: a second press
// within Window and one cell of the first.
type ClickDetector struct {
	Window time.Duration

	armed bool
	last  time.Time
	x, y  int
}

// Press records a press and reports whether it completes a double click.
// A completed double click disarms the detector, so a third press starts over.
func (d *ClickDetector) Press(x, y int, at time.Time) bool {
	window := d.Window
	if window <= 0 {
		window = DefaultDoubleClick
	}
	if d.armed && at.Sub(d.last) <= window && absInt(x-d.x) <= clickSlop && absInt(y-d.y) <= clickSlop {
		d.armed = false
		return true
	}
	d.armed = true
	d.last = at
	d.x, d.y = x, y
	return false
}

type dragState struct {
	active bool
	x, y   int
}
