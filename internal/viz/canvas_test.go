package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != blank|0x1|0x80 {
		t.Errorf("expected dots 1 and 8, got %#x", got)
	}
	c.Unset(0, 0)
	if got := c.Grid[0][0]; got != blank|0x80 {
		t.Errorf("expected only dot 8, got %#x", got)
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Grid[0][1] != blank {
		t.Error("out of range set leaked into the grid")
	}
}

func TestCanvasColor(t *testing.T) {
	c := NewCanvas(3, 2)
	c.SetColor(2, 5, "#ff0000")
	if c.Colors[1][1] != "#ff0000" {
		t.Errorf("expected cell color, got %q", c.Colors[1][1])
	}
	if c.colorAt(0, 0, "#ffffff") != "#ffffff" {
		t.Error("expected fallback color for an empty cell")
	}

	c.Clear()
	if c.Colors[1][1] != "" || c.Grid[1][1] != blank {
		t.Error("clear should reset dots and colors")
	}
}

func TestCanvasText(t *testing.T) {
	c := NewCanvas(6, 2)
	c.Text(3, 1, "Venus", "#e3bb76")
	if got := string(c.Grid[1][3:]); got != "Ven" {
		t.Errorf("expected clipped label, got %q", got)
	}
	// dots never overwrite a label
	c.Set(6, 4)
	if c.Grid[1][3] != 'V' {
		t.Error("label was overwritten")
	}
	if !strings.Contains(c.String(), "Ven") {
		t.Error("label missing from output")
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 19, 11, "#00ff00")

	lit := func(x, y int) bool {
		return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
	}
	if !lit(0, 0) || !lit(19, 11) {
		t.Error("line endpoints not drawn")
	}
	if c.Colors[2][9] != "#00ff00" {
		t.Error("line color missing at the end cell")
	}
}

func TestDrawCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8, "#ffffff")

	lit := func(x, y int) bool {
		return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
	}
	for _, p := range [][2]int{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		if !lit(p[0], p[1]) {
			t.Errorf("expected circle dot at %v", p)
		}
	}
	if lit(20, 20) {
		t.Error("circle outline should not fill the centre")
	}
}

func TestRenderRows(t *testing.T) {
	c := NewCanvas(4, 3)
	c.SetColor(0, 0, "#ff0000")
	out := c.Render("#ffffff")
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("expected 3 rows, got %d newlines", n+1)
	}
}
