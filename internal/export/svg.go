package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/viz"
)

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot in
// its cell color. Text cells are written as SVG text.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fallback string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			fill := canvas.Colors[row][col]
			if fill == "" {
				fill = fallback
			}
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			if r < 0x2800 || r > 0x28ff {
				fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" font-size="%.1f" font-family="monospace">%s</text>
`, baseX, baseY+scale*3, fill, scale*3, escape(string(r)))
				continue
			}
			pattern := int(r - 0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill)
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TracesToSVG plots the orbital angle of each trace against the frame index.
func TracesToSVG(w io.Writer, traces []sim.Trace, width, height int, colors []string) error {
	if len(colors) == 0 {
		colors = []string{"#00ff00"}
	}
	frames := 0
	for _, tr := range traces {
		frames = max(frames, len(tr.Angles))
	}
	if frames < 2 {
		return fmt.Errorf("export: need at least 2 frames, got %d", frames)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	// angles live in [0, 2π)
	const maxAngle = 6.283185307179586
	for i, tr := range traces {
		if len(tr.Angles) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, colors[i%len(colors)])
		for j, a := range tr.Angles {
			x := float64(j) / float64(frames-1) * float64(width)
			y := float64(height) - a/maxAngle*float64(height)
			if j == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		fmt.Fprintf(&sb, `"><title>%s x%g</title></path>
`, escape(tr.Body), tr.Speed)
	}
	sb.WriteString("</svg>")

	_, err := io.WriteString(w, sb.String())
	return err
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}
