package viz

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
)

const (
	dotPixels  = 4
	maxFrames  = 600
	frameDelay = 2 // hundredths of a second
)

var errNoFrames = errors.New("viz: no frames recorded")

// Recorder collects canvas frames for an animated GIF.
type Recorder struct {
	frames []*image.Paletted
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture rasterises the canvas, each braille dot becoming a square in its
// cell color. Frames beyond the cap, or of a different size than the first,
// are dropped.
func (r *Recorder) Capture(c *Canvas, fallback string) {
	bounds := image.Rect(0, 0, c.PixelWidth()*dotPixels, c.PixelHeight()*dotPixels)
	if len(r.frames) >= maxFrames || (len(r.frames) > 0 && r.frames[0].Bounds() != bounds) {
		return
	}
	img := image.NewPaletted(bounds, palette.Plan9)
	black := uint8(img.Palette.Index(color.Black))
	for i := range img.Pix {
		img.Pix[i] = black
	}

	cache := map[string]uint8{}
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := c.Grid[row][col] - blank
			if pattern <= 0 || pattern > 0xff {
				continue
			}
			hex := c.colorAt(row, col, fallback)
			idx, ok := cache[hex]
			if !ok {
				idx = uint8(img.Palette.Index(parseColor(hex)))
				cache[hex] = idx
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if int(pattern)&pixelMap[dy][dx] == 0 {
						continue
					}
					x0 := (col*2 + dx) * dotPixels
					y0 := (row*4 + dy) * dotPixels
					for py := 0; py < dotPixels; py++ {
						for px := 0; px < dotPixels; px++ {
							img.SetColorIndex(x0+px, y0+py, idx)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Encode writes the recording and resets it.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return errNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, frameDelay)
	}
	r.frames = nil
	return gif.EncodeAll(w, &anim)
}
