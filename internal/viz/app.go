package viz

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/quiz"
	"github.com/san-kum/orrery/internal/remote"
	"github.com/san-kum/orrery/internal/selection"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/storage"
)

const (
	sidebarWidth  = 46
	canvasPadX    = 2
	canvasPadY    = 1
	minCols       = 20
	minRows       = 8
	fpsCapacity   = 120
	chatCapacity  = 50
	rotateStep    = 0.15
	dragRotate    = 0.02
	zoomStep      = 0.8
	wheelStep     = 0.9
	speedStep     = 1.25
	maxFrameDelta = 100 * time.Millisecond
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(canvasPadY, canvasPadX)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(sidebarWidth - 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	errOffline = errors.New("viz: remote clients not configured")
)

type panel int

const (
	panelNone panel = iota
	panelInfo
	panelEncyclopedia
	panelStructure
	panelQuiz
	panelChat
	panelNews
	panelCount
)

type TickMsg time.Time

type catalogMsg struct {
	gen    uint64
	target panel
	body   remote.CatalogBody
	err    error
}

type chatMsg struct {
	gen  uint64
	text string
	err  error
}

type newsMsg struct {
	gen   uint64
	event remote.CMEEvent
	err   error
}

// eventQueue buffers selection events raised while Update runs.
type eventQueue struct{ events []selection.Event }

func (q *eventQueue) push(e selection.Event) { q.events = append(q.events, e) }

func (q *eventQueue) drain() []selection.Event {
	out := q.events
	q.events = nil
	return out
}

// Deps are the collaborators of the interactive view.
type Deps struct {
	Session *sim.Session
	Clients *remote.Clients
	Store   *storage.Store
	Logger  *zap.Logger
	Theme   string
	GIFPath string
	Rand    *rand.Rand
}

// Model is the bubbletea model of the solar system view.
type Model struct {
	ctx     context.Context
	session *sim.Session
	clients *remote.Clients
	store   *storage.Store
	log     *zap.Logger
	rng     *rand.Rand
	gifPath string
	now     func() time.Time
	queue   *eventQueue

	width, height int
	canvas        *Canvas
	renderer      *Renderer
	themeIdx      int
	interval      time.Duration

	panel panel
	body  int
	info  selection.Info
	gens  [panelCount]uint64

	catalog    *remote.CatalogBody
	catalogErr bool
	game       *quiz.Game
	quizStatus string
	chatLog    []string
	input      string
	typing     bool
	news       string
	coins      int
	status     string

	clicks    ClickDetector
	drag      dragState
	pointerIn bool
	lastTick  time.Time
	fps       float64
	fpsHist   []float64
	stats     sim.FrameStats
	showHelp  bool
	recording bool
	recorder  *Recorder
}

// NewModel wires a model around a session. The session must outlive it.
func NewModel(ctx context.Context, d Deps) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	rng := d.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	fps := d.Session.Config().FPS
	if fps <= 0 {
		fps = 60
	}
	themeIdx := 0
	for i, t := range Themes {
		if t.Name == d.Theme {
			themeIdx = i
		}
	}

	m := Model{
		ctx:      ctx,
		session:  d.Session,
		clients:  d.Clients,
		store:    d.Store,
		log:      logging.OrNop(d.Logger).Named("viz"),
		rng:      rng,
		gifPath:  d.GIFPath,
		now:      time.Now,
		queue:    &eventQueue{},
		themeIdx: themeIdx,
		interval: time.Second / time.Duration(fps),
		body:     -1,
		news:     "Loading news...",
		recorder: &Recorder{},
		fpsHist:  make([]float64, 0, fpsCapacity),
	}
	if m.gifPath == "" {
		m.gifPath = "orrery.gif"
	}
	if m.store != nil {
		if n, err := m.store.Coins(); err != nil {
			m.log.Warn("reading coins", zap.Error(err))
		} else {
			m.coins = n
		}
	}
	d.Session.Selection.Subscribe(m.queue.push)
	m.resize(80+sidebarWidth+2*canvasPadX, 24+2*canvasPadY)
	return m
}

func (m Model) theme() Theme { return Themes[m.themeIdx%len(Themes)] }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.fetchNews())
}

// Update handles input events and steps the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.session.Close()
			return m, tea.Quit
		}
		if m.typing {
			cmd = m.handleTyping(msg)
		} else {
			cmd = m.handleKey(msg)
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		m.frame(time.Time(msg))
		cmd = m.tick()
	case catalogMsg:
		m.applyCatalog(msg)
	case chatMsg:
		m.applyChat(msg)
	case newsMsg:
		if msg.gen != m.gens[panelNews] {
			m.log.Debug("dropping stale news response")
			break
		}
		m.news = remote.NewsText(msg.event, msg.err)
	}
	m.drainEvents()
	return m, cmd
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols := max(w-sidebarWidth-2*canvasPadX, minCols)
	rows := max(h-2*canvasPadY, minRows)
	m.canvas = NewCanvas(cols, rows)
	m.renderer = NewRenderer(m.canvas, m.theme())
	m.session.Resize(m.canvas.PixelWidth(), m.canvas.PixelHeight())
}

func (m *Model) frame(t time.Time) {
	dt := m.interval
	if !m.lastTick.IsZero() {
		if d := t.Sub(m.lastTick); d > 0 && d < maxFrameDelta {
			dt = d
		}
	}
	m.lastTick = t

	m.stats = m.session.Frame(dt)
	current := float64(time.Second) / float64(dt)
	if m.fps == 0 {
		m.fps = current
	} else {
		m.fps = 0.9*m.fps + 0.1*current
	}
	if len(m.fpsHist) >= fpsCapacity {
		m.fpsHist = m.fpsHist[1:]
	}
	m.fpsHist = append(m.fpsHist, m.fps)

	m.draw()
	if m.recording {
		m.recorder.Capture(m.canvas, string(m.theme().Text))
	}
}

func (m *Model) draw() {
	sc := m.session.Scene
	m.renderer.Theme = m.theme()
	m.renderer.Draw(sc, m.session.Camera)
	if i, ok := m.session.Selection.Selected(); ok {
		m.renderer.Label(sc, m.session.Camera, i, string(m.theme().Accent))
	}
}

// setPanel switches panels. Leaving a panel bumps its generation so any
// response still in flight for it is dropped.
func (m *Model) setPanel(p panel) {
	if m.panel != p {
		m.gens[m.panel]++
		if m.panel == panelChat {
			// replies still in flight are dropped with the old generation
			for m.settleChat(remote.ChatFallback) {
			}
		}
	}
	m.panel = p
	if p != panelChat {
		m.typing = false
	}
}

func (m *Model) drainEvents() {
	for _, e := range m.queue.drain() {
		switch e.Kind {
		case selection.EventSelect:
			for p := panelNone; p < panelNews; p++ {
				m.gens[p]++
			}
			m.body, m.info = e.Body, e.Info
			m.catalog, m.catalogErr = nil, false
			m.game, m.quizStatus = nil, ""
			m.chatLog, m.input = nil, ""
			m.setPanel(panelInfo)
			m.log.Debug("showing body", zap.String("body", e.Info.Name))
		case selection.EventClose:
			m.setPanel(panelNone)
			m.body = -1
		case selection.EventGoBack:
			if m.panel != panelNone {
				m.setPanel(panelInfo)
			}
		}
	}
}

func (m *Model) selected() bool {
	_, ok := m.session.Selection.Selected()
	return ok && m.body >= 0
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	sc := m.session.Scene
	ctl := m.session.Controls
	switch msg.String() {
	case "x":
		m.session.Selection.Close()
	case "b":
		m.session.Selection.GoBack()
	case "e":
		if m.selected() {
			m.setPanel(panelEncyclopedia)
			if m.catalog == nil || !m.catalogFor(m.info.Name) {
				m.catalogErr = false
				return m.fetchCatalog(panelEncyclopedia, m.info.Name)
			}
		}
	case "s":
		if m.selected() {
			m.setPanel(panelStructure)
		}
	case "q":
		if m.selected() {
			m.setPanel(panelQuiz)
			m.game, m.quizStatus = nil, "Loading quiz..."
			return m.fetchCatalog(panelQuiz, m.info.Name)
		}
	case "c":
		if m.selected() {
			m.setPanel(panelChat)
			m.typing = true
		}
	case "1", "2", "3":
		if m.panel == panelQuiz {
			m.answer(int(msg.String()[0] - '1'))
		}
	case "v":
		sc.SetRealView(!sc.RealView())
	case "p":
		sc.ShowPaths = !sc.ShowPaths
	case ",", "<":
		m.session.SetSpeed(m.session.Speed() / speedStep)
	case ".", ">":
		m.session.SetSpeed(m.session.Speed() * speedStep)
	case "left", "h":
		ctl.Rotate(rotateStep, 0)
	case "right", "l":
		ctl.Rotate(-rotateStep, 0)
	case "up", "k":
		ctl.Rotate(0, -rotateStep)
	case "down", "j":
		ctl.Rotate(0, rotateStep)
	case "+", "=":
		ctl.Dolly(zoomStep)
	case "-", "_":
		ctl.Dolly(1 / zoomStep)
	case "t":
		m.themeIdx = (m.themeIdx + 1) % len(Themes)
		m.status = "Theme: " + m.theme().Name
	case "?":
		m.showHelp = !m.showHelp
	case "n":
		m.gens[panelNews]++
		m.news = "Loading news..."
		return m.fetchNews()
	case "g":
		m.toggleRecording()
	}
	return nil
}

func (m *Model) handleTyping(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.setPanel(panelInfo)
	case tea.KeyEnter:
		if m.input == "" {
			return nil
		}
		prompt := m.input
		m.input = ""
		m.appendChat("You: "+prompt, remote.ChatThinking)
		return m.sendChat(prompt)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X-canvasPadX, msg.Y-canvasPadY
	inside := col >= 0 && row >= 0 && col < m.canvas.Width && row < m.canvas.Height
	if msg.Action == tea.MouseActionRelease {
		m.drag.active = false
	}
	if !inside {
		if m.pointerIn {
			m.session.PointerLeave()
			m.pointerIn = false
		}
		return
	}
	px, py := float64(col*2+1), float64(row*4+2)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.session.Controls.Dolly(wheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.session.Controls.Dolly(1 / wheelStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.clicks.Press(col, row, m.now()) {
			m.session.DoubleClick(px, py)
		}
		m.drag = dragState{active: true, x: col, y: row}
	case msg.Action == tea.MouseActionMotion:
		if m.drag.active && msg.Button == tea.MouseButtonLeft {
			m.session.Controls.Rotate(-float64(col-m.drag.x)*dragRotate, -float64(row-m.drag.y)*dragRotate*2)
			m.drag.x, m.drag.y = col, row
		}
		m.session.PointerMove(px, py)
		m.pointerIn = true
	}
}

func (m *Model) catalogFor(name string) bool {
	return m.catalog != nil && strings.EqualFold(m.catalog.EnglishName, name)
}

func (m *Model) applyCatalog(msg catalogMsg) {
	if msg.gen != m.gens[msg.target] || m.panel != msg.target {
		m.log.Debug("dropping stale catalog response", zap.Int("panel", int(msg.target)))
		return
	}
	switch msg.target {
	case panelEncyclopedia:
		if msg.err != nil {
			m.catalogErr = true
			return
		}
		body := msg.body
		m.catalog = &body
	case panelQuiz:
		if msg.err != nil {
			m.quizStatus = remote.CatalogFallback
			return
		}
		m.game = quiz.NewGame(msg.body, m.rng)
		m.quizStatus = ""
	}
}

func (m *Model) answer(i int) {
	if m.game == nil {
		return
	}
	q, _ := m.game.Current()
	correct, done, err := m.game.Answer(i)
	if err != nil {
		return
	}
	if correct {
		m.quizStatus = "Correct!"
	} else {
		m.quizStatus = "Wrong! The answer was " + q.Label(q.Correct())
	}
	if !done {
		return
	}
	earned := m.game.Earned
	if m.store != nil {
		total, err := m.store.AddCoins(earned)
		if err != nil {
			m.log.Error("saving coins", zap.Error(err))
		} else {
			m.coins = total
		}
	}
	m.quizStatus = fmt.Sprintf("Quiz completed! You earned %d coins!", earned)
}

func (m *Model) appendChat(lines ...string) {
	m.chatLog = append(m.chatLog, lines...)
	if over := len(m.chatLog) - chatCapacity; over > 0 {
		m.chatLog = m.chatLog[over:]
	}
}

func (m *Model) applyChat(msg chatMsg) {
	if msg.gen != m.gens[panelChat] || m.panel != panelChat {
		m.log.Debug("dropping stale chat response")
		return
	}
	reply := remote.ChatReply(msg.text, msg.err)
	if !m.settleChat(reply) {
		m.appendChat(reply)
	}
}

// settleChat replaces the oldest pending placeholder with reply.
func (m *Model) settleChat(reply string) bool {
	for i, line := range m.chatLog {
		if line == remote.ChatThinking {
			m.chatLog[i] = reply
			return true
		}
	}
	return false
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.status = "Recording..."
		return
	}
	m.recording = false
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.status = "Recording failed: " + err.Error()
		return
	}
	defer f.Close()
	if err := m.recorder.Encode(f); err != nil {
		m.status = "Recording failed: " + err.Error()
		return
	}
	m.status = "Saved " + m.gifPath
	m.log.Info("recording saved", zap.String("path", m.gifPath))
}

func (m *Model) fetchCatalog(target panel, name string) tea.Cmd {
	gen := m.gens[target]
	clients, ctx := m.clients, m.ctx
	return func() tea.Msg {
		if clients == nil || clients.Catalog == nil {
			return catalogMsg{gen: gen, target: target, err: errOffline}
		}
		body, err := clients.Catalog.Find(ctx, name)
		return catalogMsg{gen: gen, target: target, body: body, err: err}
	}
}

func (m *Model) sendChat(prompt string) tea.Cmd {
	gen := m.gens[panelChat]
	clients, ctx := m.clients, m.ctx
	return func() tea.Msg {
		if clients == nil || clients.Chat == nil {
			return chatMsg{gen: gen, err: errOffline}
		}
		text, err := clients.Chat.Complete(ctx, prompt)
		return chatMsg{gen: gen, text: text, err: err}
	}
}

func (m *Model) fetchNews() tea.Cmd {
	gen := m.gens[panelNews]
	clients, ctx := m.clients, m.ctx
	return func() tea.Msg {
		if clients == nil || clients.News == nil {
			return newsMsg{gen: gen, err: errOffline}
		}
		ev, err := clients.News.Latest(ctx)
		return newsMsg{gen: gen, event: ev, err: err}
	}
}

// Run starts the interactive view and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, d Deps) error {
	m := NewModel(ctx, d)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	d.Session.Close()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
