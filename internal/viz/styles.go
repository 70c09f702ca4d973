package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// sidebarStyles are the sidebar text styles for one theme.
type sidebarStyles struct {
	title   lipgloss.Style
	text    lipgloss.Style
	wrapped lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
	hint    lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
	rec     lipgloss.Style
}

func newSidebarStyles(th Theme) sidebarStyles {
	return sidebarStyles{
		title:   lipgloss.NewStyle().Foreground(th.Primary).Bold(true),
		text:    lipgloss.NewStyle().Foreground(th.Text),
		wrapped: lipgloss.NewStyle().Foreground(th.Text).Width(panelWidth),
		muted:   lipgloss.NewStyle().Foreground(th.Muted),
		accent:  lipgloss.NewStyle().Foreground(th.Accent),
		hint:    lipgloss.NewStyle().Foreground(th.Muted).Italic(true),
		good:    lipgloss.NewStyle().Foreground(th.Success),
		warn:    lipgloss.NewStyle().Foreground(th.Warning),
		bad:     lipgloss.NewStyle().Foreground(th.Error),
		rec:     lipgloss.NewStyle().Foreground(th.Error).Bold(true).Blink(true),
	}
}

// GradientText colors text along a blend from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from := parseColor(string(start))
	to := parseColor(string(end))

	var out strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		hex := from.BlendLab(to, t).Clamped().Hex()
		out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(r)))
	}
	return out.String()
}

// progressBar shows quiz progress; it turns from warning to success as the
// game nears its end.
func (st sidebarStyles) progressBar(done float64, width int) string {
	if width < 1 {
		return ""
	}
	filled := int(done * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if done >= 1 {
		return st.good.Render(bar)
	}
	return st.warn.Render(bar)
}

func (st sidebarStyles) separator(width int) string {
	if width < 8 {
		return st.muted.Render(strings.Repeat("─", max(width, 0)))
	}
	half := width / 2
	return st.muted.Render(strings.Repeat("─", half-2) + " ✦ " + strings.Repeat("─", width-half-1))
}

// parseColor falls back to white for anything that is not #rrggbb.
func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}
