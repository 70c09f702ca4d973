package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/scene"
)

const (
	shadeLevels  = 8
	darkCutoff   = 0.08
	ringSamples  = 96
	ringBands    = 3
	screenMargin = 2.0
)

// Renderer draws a scene onto a braille canvas through a camera whose
// viewport matches the canvas size in dots.
type Renderer struct {
	Canvas *Canvas
	Theme  Theme
}

func NewRenderer(c *Canvas, theme Theme) *Renderer {
	return &Renderer{Canvas: c, Theme: theme}
}

type drawable struct {
	body   int
	x, y   float64
	depth  float64
	radius float64
}

// Draw paints stars, orbit paths, belts and bodies, far to near, then the
// hover highlight.
func (r *Renderer) Draw(sc *scene.Scene, cam *camera.Camera) {
	r.Canvas.Clear()

	for _, p := range sc.Stars {
		if x, y, _, ok := cam.Project(p); ok {
			r.Canvas.SetColor(int(x), int(y), r.Theme.Star)
		}
	}
	if sc.ShowPaths {
		for _, path := range sc.Paths {
			r.drawPolyline(cam, path.Points, r.Theme.Path)
		}
	}
	for _, belt := range sc.Belts {
		for _, a := range belt.Asteroids {
			if x, y, _, ok := cam.Project(a.Position); ok {
				r.Canvas.SetColor(int(x), int(y), r.Theme.Belt)
			}
		}
	}

	list := make([]drawable, 0, len(sc.Bodies))
	for i := range sc.Bodies {
		x, y, depth, _ := cam.Project(sc.WorldPosition(i))
		if depth <= cam.Near {
			continue
		}
		list = append(list, drawable{
			body:   i,
			x:      x,
			y:      y,
			depth:  depth,
			radius: cam.PixelRadius(sc.BoundingRadius(i), depth),
		})
	}
	sort.SliceStable(list, func(a, b int) bool { return list[a].depth > list[b].depth })

	for _, d := range list {
		if !r.onScreen(d.x, d.y, d.radius) {
			continue
		}
		if sc.Bodies[d.body].Ring != nil {
			r.drawRing(sc, cam, d, false)
		}
		r.drawBody(sc, cam, d)
		if sc.Bodies[d.body].Ring != nil {
			r.drawRing(sc, cam, d, true)
		}
	}

	if h := sc.Highlight; h != nil {
		x, y, depth, _ := cam.Project(h.Position)
		if depth > cam.Near {
			pr := cam.PixelRadius(sc.BoundingRadius(h.Body)+h.Radius, depth)
			r.Canvas.DrawCircle(int(x), int(y), int(math.Round(pr)), r.Theme.Highlight)
			r.label(x+pr, y, sc.Bodies[h.Body].Name, r.Theme.Highlight)
		}
	}
}

// Label writes a body's name next to it.
func (r *Renderer) Label(sc *scene.Scene, cam *camera.Camera, i int, hex string) {
	x, y, depth, _ := cam.Project(sc.WorldPosition(i))
	if depth <= cam.Near {
		return
	}
	pr := cam.PixelRadius(sc.BoundingRadius(i), depth)
	r.label(x+pr, y, sc.Bodies[i].Name, hex)
}

func (r *Renderer) label(x, y float64, text, hex string) {
	col := int(x)/2 + 1
	row := int(y) / 4
	r.Canvas.Text(col, row, text, hex)
}

func (r *Renderer) onScreen(x, y, radius float64) bool {
	w, h := float64(r.Canvas.PixelWidth()), float64(r.Canvas.PixelHeight())
	return x+radius >= 0 && y+radius >= 0 && x-radius < w && y-radius < h
}

func (r *Renderer) drawPolyline(cam *camera.Camera, pts []mgl64.Vec3, hex string) {
	w, h := float64(r.Canvas.PixelWidth()), float64(r.Canvas.PixelHeight())
	inside := func(x, y float64) bool {
		return x > -w*screenMargin && x < w*(1+screenMargin) && y > -h*screenMargin && y < h*(1+screenMargin)
	}
	for i := 1; i < len(pts); i++ {
		x0, y0, d0, _ := cam.Project(pts[i-1])
		x1, y1, d1, _ := cam.Project(pts[i])
		if d0 <= cam.Near || d1 <= cam.Near || !inside(x0, y0) || !inside(x1, y1) {
			continue
		}
		r.Canvas.DrawLine(int(x0), int(y0), int(x1), int(y1), hex)
	}
}

// drawBody fills the body's disc. Each dot is lit from the Sun at the
// origin using a sphere normal reconstructed from its offset; dots darker
// than the cutoff are cleared so the night side still hides what is behind.
func (r *Renderer) drawBody(sc *scene.Scene, cam *camera.Camera, d drawable) {
	b := sc.Bodies[d.body]
	base := parseColor(b.Color)
	palette := shades(base)

	if b.Star {
		r.fillDisc(d, func(nx, ny, nz float64) float64 { return 0.75 + 0.25*nz }, palette)
		return
	}

	light := sc.WorldPosition(d.body).Mul(-1)
	if light.Len() == 0 {
		light = mgl64.Vec3{0, 1, 0}
	}
	lv := cam.View().Mul4x1(light.Normalize().Vec4(0)).Vec3()
	ambient := sc.Ambient

	r.fillDisc(d, func(nx, ny, nz float64) float64 {
		diffuse := nx*lv.X() + ny*lv.Y() + nz*lv.Z()
		if diffuse < 0 {
			diffuse = 0
		}
		return ambient + (1-ambient)*diffuse
	}, palette)
}

func (r *Renderer) fillDisc(d drawable, brightness func(nx, ny, nz float64) float64, palette [shadeLevels + 1]string) {
	cx, cy := int(math.Round(d.x)), int(math.Round(d.y))
	rad := d.radius
	if rad < 1 {
		r.Canvas.SetColor(cx, cy, palette[shadeLevels])
		return
	}
	ir := int(math.Ceil(rad))
	for dy := -ir; dy <= ir; dy++ {
		for dx := -ir; dx <= ir; dx++ {
			nx, ny := float64(dx)/rad, -float64(dy)/rad
			q := nx*nx + ny*ny
			if q > 1 {
				continue
			}
			v := brightness(nx, ny, math.Sqrt(1-q))
			if v < darkCutoff {
				r.Canvas.Unset(cx+dx, cy+dy)
				continue
			}
			r.Canvas.SetColor(cx+dx, cy+dy, palette[level(v)])
		}
	}
}

// drawRing draws the ring bands either behind or in front of the body
// centre, so the disc sits between the two halves.
func (r *Renderer) drawRing(sc *scene.Scene, cam *camera.Camera, d drawable, front bool) {
	b := sc.Bodies[d.body]
	centre := sc.WorldPosition(d.body)
	scale := sc.Nodes[d.body].Scale
	hex := parseColor(b.Color).BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.35).Clamped().Hex()

	for band := 0; band < ringBands; band++ {
		radius := b.Ring.Inner + (b.Ring.Outer-b.Ring.Inner)*float64(band)/float64(ringBands-1)
		radius *= scale
		for k := 0; k < ringSamples; k++ {
			a := float64(k) / ringSamples * scene.TwoPi
			p := centre.Add(mgl64.Vec3{radius * math.Cos(a), 0, radius * math.Sin(a)})
			x, y, depth, ok := cam.Project(p)
			if !ok || (depth < d.depth) != front {
				continue
			}
			r.Canvas.SetColor(int(x), int(y), hex)
		}
	}
}

func level(v float64) int {
	if v > 1 {
		v = 1
	}
	return int(math.Round(v * shadeLevels))
}

// shades precomputes the body color from black to full brightness.
func shades(base colorful.Color) [shadeLevels + 1]string {
	var out [shadeLevels + 1]string
	black := colorful.Color{}
	for i := range out {
		out[i] = black.BlendLab(base, float64(i)/shadeLevels).Clamped().Hex()
	}
	return out
}
