package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orrery/internal/quiz"
	"github.com/san-kum/orrery/internal/remote"
)

const panelWidth = sidebarWidth - 6

const helpText = `Mouse   hover, double-click select
        wheel zoom, drag rotate
x       close        b  back
e       encyclopedia s  structure
q       quiz (1-3)   c  chat (esc)
v       real view    p  paths
, .     speed        t  theme
arrows  rotate       +  -  zoom
n       news         g  record gif
?       help         ctrl+c quit`

// View renders the canvas next to the sidebar.
func (m Model) View() string {
	th := m.theme()
	st := newSidebarStyles(th)
	canvasView := canvasStyle.Render(m.canvas.Render(string(th.Text)))

	var s strings.Builder
	s.WriteString(GradientText("ORRERY", th.Primary, th.Secondary) + "\n\n")
	s.WriteString(m.hud(st))
	s.WriteString(st.separator(panelWidth) + "\n")
	if body := m.panelView(st); body != "" {
		s.WriteString(body + "\n")
		s.WriteString(st.separator(panelWidth) + "\n")
	}
	s.WriteString(st.title.Render("SPACE WEATHER") + "\n")
	s.WriteString(st.wrapped.Render(m.news) + "\n")
	if m.status != "" {
		s.WriteString("\n" + st.hint.Render(m.status) + "\n")
	}
	if m.showHelp {
		s.WriteString(helpStyle.Render(helpText))
	} else {
		s.WriteString(helpStyle.Render("?:Help  dbl-click:Select  ctrl+c:Quit"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func (m Model) hud(st sidebarStyles) string {
	var s strings.Builder
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Speed", fmt.Sprintf("%.2fx", m.session.Speed()))
	row("Frame", fmt.Sprintf("%d", m.stats.Frame))
	row("FPS", fmt.Sprintf("%.0f", m.fps))
	view := "Dim"
	if m.session.Scene.RealView() {
		view = "Real"
	}
	paths := "off"
	if m.session.Scene.ShowPaths {
		paths = "on"
	}
	row("View", view+", paths "+paths)
	if i, ok := m.session.Selection.Hovered(); ok {
		row("Hover", m.session.Scene.Bodies[i].Name)
	}
	row("Coins", st.accent.Render(fmt.Sprintf("%d", m.coins)))
	row("Session", m.session.ID.String()[:8])
	if m.recording {
		s.WriteString(st.rec.Render(fmt.Sprintf("● REC %d", m.recorder.Len())) + "\n")
	}
	if len(m.fpsHist) > 1 {
		chart := asciigraph.Plot(m.fpsHist, asciigraph.Height(3), asciigraph.Width(panelWidth-10), asciigraph.Precision(0))
		s.WriteString(st.muted.Render(chart) + "\n")
	}
	return s.String()
}

func (m Model) panelView(st sidebarStyles) string {
	title, muted, text := st.title, st.muted, st.wrapped

	switch m.panel {
	case panelInfo:
		var s strings.Builder
		s.WriteString(title.Render(strings.ToUpper(m.info.Name)) + "\n")
		s.WriteString(fmt.Sprintf("Diameter: %s km\n", grouped(m.info.DiameterKm)))
		s.WriteString(fmt.Sprintf("Mass: %g × 10^24 kg\n", m.info.Mass))
		s.WriteString(fmt.Sprintf("Gravity: %g m/s²\n", m.info.Gravity))
		s.WriteString(fmt.Sprintf("Orbit radius: %g units\n\n", m.info.Distance))
		s.WriteString(muted.Render("[e] Encyclopedia  [s] Structure\n[q] Quiz  [c] Chat  [x] Close"))
		return s.String()

	case panelEncyclopedia:
		var s strings.Builder
		s.WriteString(title.Render(m.info.Name+" encyclopedia") + "\n")
		b := m.session.Scene.Bodies[m.body]
		for _, f := range b.Facts {
			s.WriteString(text.Render("• "+f) + "\n")
		}
		if b.Orbit.Period > 0 {
			s.WriteString(fmt.Sprintf("Orbit: a=%g Mkm  e=%.4f  T=%g d\n", b.Orbit.A, b.Orbit.E, b.Orbit.Period))
		}
		switch {
		case m.catalogErr:
			s.WriteString(st.bad.Render(remote.CatalogFallback) + "\n")
		case m.catalog == nil:
			s.WriteString(muted.Render("Loading live data...") + "\n")
		default:
			c := m.catalog
			s.WriteString(fmt.Sprintf("Mean radius: %s km\n", grouped(c.MeanRadius)))
			s.WriteString(fmt.Sprintf("Mass: %.4e kg\n", c.MassKg()))
			s.WriteString(fmt.Sprintf("Gravity: %g m/s²\n", c.Gravity))
			s.WriteString(fmt.Sprintf("Semi-major axis: %s km\n", grouped(c.SemimajorAxis)))
			s.WriteString(fmt.Sprintf("Moons: %d\n", c.MoonCount()))
		}
		s.WriteString(muted.Render("[b] Back  [x] Close"))
		return s.String()

	case panelStructure:
		var s strings.Builder
		s.WriteString(title.Render(m.info.Name+" structure") + "\n")
		layers := m.session.Scene.Bodies[m.body].Layers
		for i, l := range layers {
			branch := "├─ "
			if i == len(layers)-1 {
				branch = "└─ "
			}
			s.WriteString(branch + l + "\n")
		}
		s.WriteString(muted.Render("[b] Back  [x] Close"))
		return s.String()

	case panelQuiz:
		return m.quizView(st)

	case panelChat:
		var s strings.Builder
		s.WriteString(title.Render("Ask about "+m.info.Name) + "\n")
		log := m.chatLog
		if len(log) > 8 {
			log = log[len(log)-8:]
		}
		for _, line := range log {
			s.WriteString(text.Render(line) + "\n")
		}
		cursor := ""
		if m.typing {
			cursor = "▌"
		}
		s.WriteString(st.accent.Render("> "+m.input+cursor) + "\n")
		s.WriteString(muted.Render("[enter] Send  [esc] Leave"))
		return s.String()
	}
	return ""
}

func (m Model) quizView(st sidebarStyles) string {
	var s strings.Builder
	s.WriteString(st.title.Render(m.info.Name+" quiz") + "\n")

	if m.game != nil {
		total := len(m.game.Questions)
		s.WriteString(st.progressBar(float64(m.game.Index)/float64(total), panelWidth-8) +
			fmt.Sprintf(" %d/%d\n", m.game.Index, total))
		if q, ok := m.game.Current(); ok {
			s.WriteString(st.wrapped.Render(q.Text) + "\n")
			for i := 0; i < quiz.OptionCount; i++ {
				s.WriteString(fmt.Sprintf("[%d] %s\n", i+1, q.Label(i)))
			}
		}
	}
	if m.quizStatus != "" {
		style := st.text
		switch {
		case strings.HasPrefix(m.quizStatus, "Correct"), strings.HasPrefix(m.quizStatus, "Quiz completed"):
			style = st.good
		case strings.HasPrefix(m.quizStatus, "Wrong"), m.quizStatus == remote.CatalogFallback:
			style = st.bad
		}
		s.WriteString(style.Width(panelWidth).Render(m.quizStatus) + "\n")
	}
	s.WriteString(st.muted.Render("[b] Back  [x] Close"))
	return s.String()
}

// grouped formats a number with thousands separators.
func grouped(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
