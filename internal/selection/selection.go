// Package selection tracks the selected and hovered bodies.
//
// The selection is a two-state machine. Idle has no body; Locked holds one
// body whose speeds are zeroed and saved, so the frame stepper leaves it in
// place. Hover is independent of selection and is resolved on every pointer
// sample.
package selection

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/picking"
	"github.com/san-kum/orrery/internal/scene"
)

const (
	DefaultHoverScale      = 1.05
	DefaultHighlightRadius = 1.2
)

type State int

const (
	Idle State = iota
	Locked
)

func (s State) String() string {
	if s == Locked {
		return "locked"
	}
	return "idle"
}

// Speeds is a body's pre-selection angular speeds.
type Speeds struct {
	Orbit, Spin float64
}

// Picker resolves normalized device coordinates to a body.
type Picker interface {
	PickAt(ndcX, ndcY float64) (picking.Hit, bool)
}

// Zoomer starts the camera transition towards a world point.
type Zoomer interface {
	ZoomTo(target mgl64.Vec3)
}

// Toggle enables or disables the free camera control.
type Toggle interface {
	SetEnabled(on bool)
}

type Options struct {
	HoverScale      float64
	HighlightRadius float64
}

type Controller struct {
	mu       sync.Mutex
	scene    *scene.Scene
	picker   Picker
	zoom     Zoomer
	controls Toggle
	opts     Options

	selected int
	saved    *Speeds
	hovered  int

	listeners []func(Event)
}

func New(sc *scene.Scene, picker Picker, zoom Zoomer, controls Toggle, opts Options) *Controller {
	if opts.HoverScale <= 0 {
		opts.HoverScale = DefaultHoverScale
	}
	if opts.HighlightRadius <= 0 {
		opts.HighlightRadius = DefaultHighlightRadius
	}
	return &Controller{
		scene:    sc,
		picker:   picker,
		zoom:     zoom,
		controls: controls,
		opts:     opts,
		selected: -1,
		hovered:  -1,
	}
}

// Subscribe registers a listener. Listeners run after the controller's
// lock is released, in registration order.
func (c *Controller) Subscribe(fn func(Event)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected >= 0 {
		return Locked
	}
	return Idle
}

func (c *Controller) Selected() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.selected >= 0
}

func (c *Controller) Hovered() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hovered, c.hovered >= 0
}

// Saved returns the selected body's pre-selection speeds.
func (c *Controller) Saved() (Speeds, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saved == nil {
		return Speeds{}, false
	}
	return *c.saved, true
}

// DoubleClick selects the body under the pointer. A miss changes nothing,
// including while Locked.
func (c *Controller) DoubleClick(ndcX, ndcY float64) bool {
	hit, ok := c.picker.PickAt(ndcX, ndcY)
	if !ok {
		return false
	}

	c.mu.Lock()
	c.restoreLocked()
	n := &c.scene.Nodes[hit.Index]
	c.saved = &Speeds{Orbit: n.OrbitSpeed, Spin: n.SpinSpeed}
	n.OrbitSpeed, n.SpinSpeed = 0, 0
	c.selected = hit.Index
	if c.controls != nil {
		c.controls.SetEnabled(false)
	}
	if c.zoom != nil {
		c.zoom.ZoomTo(c.scene.WorldPosition(hit.Index))
	}
	ev := Event{Kind: EventSelect, Body: hit.Index, Info: InfoFor(c.scene, hit.Index)}
	listeners := c.listeners
	c.mu.Unlock()

	dispatch(listeners, ev)
	return true
}

// Close leaves Locked: the saved speeds come back exactly and free camera
// control is re-enabled.
func (c *Controller) Close() {
	c.mu.Lock()
	body := c.selected
	c.restoreLocked()
	if c.controls != nil {
		c.controls.SetEnabled(true)
	}
	ev := Event{Kind: EventClose, Body: body}
	listeners := c.listeners
	c.mu.Unlock()

	dispatch(listeners, ev)
}

// GoBack returns the info display from a detail view to its button row.
// Selection state is untouched.
func (c *Controller) GoBack() {
	c.mu.Lock()
	ev := Event{Kind: EventGoBack, Body: c.selected}
	listeners := c.listeners
	c.mu.Unlock()

	dispatch(listeners, ev)
}

// restoreLocked puts back the saved speeds and clears the selection.
// Caller holds c.mu.
func (c *Controller) restoreLocked() {
	if c.selected >= 0 && c.saved != nil {
		n := &c.scene.Nodes[c.selected]
		n.OrbitSpeed, n.SpinSpeed = c.saved.Orbit, c.saved.Spin
	}
	c.selected = -1
	c.saved = nil
}

// Hover resolves the body under the pointer and keeps the scale and
// highlight decoration in step with it.
func (c *Controller) Hover(ndcX, ndcY float64) {
	hit, ok := c.picker.PickAt(ndcX, ndcY)
	target := -1
	if ok {
		target = hit.Index
	}

	c.mu.Lock()
	changed := target != c.hovered
	if changed {
		if c.hovered >= 0 {
			c.scene.SetScale(c.hovered, 1)
		}
		c.hovered = target
		if target >= 0 {
			c.scene.SetScale(target, c.opts.HoverScale)
			c.scene.SetHighlight(target, c.opts.HighlightRadius)
		} else {
			c.scene.ClearHighlight()
		}
	} else if target >= 0 {
		c.scene.MoveHighlight()
	}
	var listeners []func(Event)
	var ev Event
	if changed {
		ev = Event{Kind: EventHover, Body: target}
		if target >= 0 {
			ev.Info = InfoFor(c.scene, target)
		}
		listeners = c.listeners
	}
	c.mu.Unlock()

	dispatch(listeners, ev)
}

// ClearHover drops the hover state, e.g. when the pointer leaves the view.
func (c *Controller) ClearHover() {
	c.mu.Lock()
	prev := c.hovered
	if prev >= 0 {
		c.scene.SetScale(prev, 1)
		c.scene.ClearHighlight()
		c.hovered = -1
	}
	listeners := c.listeners
	c.mu.Unlock()

	if prev >= 0 {
		dispatch(listeners, Event{Kind: EventHover, Body: -1})
	}
}

func dispatch(listeners []func(Event), ev Event) {
	for _, fn := range listeners {
		fn(ev)
	}
}
