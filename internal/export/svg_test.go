package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.SetColor(0, 0, "#ff0000")
	c.Set(1, 0)
	c.Text(2, 1, "<E", "#00ff00")

	out := CanvasToSVG(c, 2, "#ffffff")
	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>") {
		t.Fatal("not an svg document")
	}
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(out, `fill="#ff0000"`) {
		t.Error("cell color missing")
	}
	if !strings.Contains(out, "&lt;") {
		t.Error("label text should be escaped")
	}
	if CanvasToSVG(nil, 1, "") != "" {
		t.Error("nil canvas should give empty output")
	}
}

func TestTracesToSVG(t *testing.T) {
	traces := []sim.Trace{
		{Body: "Earth", Speed: 1, Angles: []float64{0.1, 0.2, 0.3}},
		{Body: "Mars", Speed: 2, Angles: []float64{0.1, 0.3, 0.5}},
	}
	var buf bytes.Buffer
	if err := TracesToSVG(&buf, traces, 300, 100, []string{"#111111", "#222222"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "<path") != 2 {
		t.Errorf("expected one path per trace")
	}
	if !strings.Contains(out, "Mars x2") || !strings.Contains(out, "#222222") {
		t.Error("second trace missing its title or color")
	}

	if err := TracesToSVG(&buf, []sim.Trace{{Angles: []float64{1}}}, 10, 10, nil); err == nil {
		t.Error("expected error for a single frame")
	}
}
