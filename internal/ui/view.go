package ui

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
)

type applyMsg struct {
	fn func(*Root)
}

type drawMsg struct{}
type clockMsg time.Time
type animateMsg time.Time

type Root struct {
	theme        Theme
	ascii        bool
	debug        bool
	ctrl         Controller
	styleVariant string
	motionLevel  string

	mu      sync.Mutex
	program *tea.Program
	running bool
	stopped bool

	screen Screen
	layout LayoutMode
	cols   int
	rows   int

	header      HeaderState
	home        HomeState
	topic       TopicState
	lesson      LessonState
	stats       StatsState
	statsOpen   bool
	statusFlash string

	topicIndex  int
	lessonIndex int
	focus       int

	queue dispatchQueue

	help       help.Model
	browseKeys browseKeyMap
	lessonKeys lessonKeyMap
	statsKeys  statsKeyMap
	bar        progress.Model
	spin       spinner.Model
	markdown   map[int]*glamour.TermRenderer
	logger     *clog.Logger
	overlayPos float64
	overlayVel float64
	spring     harmonica.Spring

	drawPending atomic.Bool

	lastInputEvent string
}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	MotionLevel  string
	Logger       *clog.Logger
}

func New(opts Options) *Root {
	logger := opts.Logger
	if logger == nil {
		logger = clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "gedmath-ui", Level: clog.WarnLevel})
		if opts.Debug {
			logger.SetLevel(clog.DebugLevel)
		}
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	theme := ThemeForVariant(styleVariant)
	spring := harmonica.NewSpring(harmonica.FPS(60), 7.0, 0.75)
	switch motionLevel {
	case "reduced":
		spring = harmonica.NewSpring(harmonica.FPS(30), 9.0, 1.0)
	case "off":
		spring = harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	}
	bar := progress.New(
		progress.WithWidth(20),
		progress.WithColors(lipgloss.Color(theme.Palette.Blue), lipgloss.Color(theme.Palette.Gold)),
		progress.WithScaled(true),
		progress.WithoutPercentage(),
	)
	if opts.ASCIIOnly {
		bar = progress.New(
			progress.WithWidth(20),
			progress.WithColors(lipgloss.Color(theme.Palette.Blue)),
			progress.WithFillCharacters('#', '.'),
			progress.WithoutPercentage(),
		)
	}
	spin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(theme.Accent),
	)
	if opts.ASCIIOnly {
		spin = spinner.New(spinner.WithSpinner(spinner.Line), spinner.WithStyle(theme.Accent))
	}

	return &Root{
		theme:        theme,
		ascii:        opts.ASCIIOnly,
		debug:        opts.Debug,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		screen:       ScreenHome,
		layout:       LayoutWide,
		cols:         120,
		rows:         30,
		help:         h,
		browseKeys:   newBrowseKeyMap(),
		lessonKeys:   newLessonKeyMap(),
		statsKeys:    newStatsKeyMap(),
		bar:          bar,
		spin:         spin,
		markdown:     map[int]*glamour.TermRenderer{},
		logger:       logger,
		spring:       spring,
		header: HeaderState{
			Title:   "GED Math Visualized",
			Tagline: "Learn mathematics through visual intuition",
		},
	}
}

func (r *Root) Init() tea.Cmd {
	return tea.Batch(clockTickCmd(), spinnerTickCmd(r.spin))
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.animateIfNeeded()
	case drawMsg:
		r.drawPending.Store(false)
		return r, nil
	case clockMsg:
		return r, clockTickCmd()
	case animateMsg:
		target := r.overlayTarget()
		r.overlayPos, r.overlayVel = r.spring.Update(r.overlayPos, r.overlayVel, target)
		if r.shouldAnimate(target) {
			return r, animateTickCmd()
		}
		r.overlayPos = target
		r.overlayVel = 0
		return r, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spin, cmd = r.spin.Update(msg)
		return r, cmd
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			msg := "UI recovered from a rendering panic. Check logs."
			view = tea.NewView(r.theme.Warn.Width(width).Render(trimForWidth(msg, max(1, width-1))))
		}
	}()

	v := tea.NewView(r.render())
	v.AltScreen = true
	return v
}

// render draws the whole frame as plain styled text.
func (r *Root) render() string {
	if r.cols < 1 {
		r.cols = 120
	}
	if r.rows < 1 {
		r.rows = 30
	}
	if DetermineLayoutMode(r.cols, r.rows) == LayoutTooSmall {
		return r.renderTooSmall()
	}
	base := r.renderScreen()
	if r.overlayPos > 0.001 {
		base = r.composeStats(base)
	}
	return base
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running || r.stopped {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

// Stop quits a running program. Called before Run, it makes Run return
// immediately.
func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.stopped = true
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) SetScreen(screen Screen) {
	r.apply(func(m *Root) {
		m.screen = screen
	})
}

func (r *Root) SetHeader(s HeaderState) {
	r.apply(func(m *Root) {
		if s.Title == "" {
			s.Title = m.header.Title
		}
		m.header = s
	})
}

func (r *Root) SetHome(s HomeState) {
	r.apply(func(m *Root) {
		s.Topics = append([]TopicSummary(nil), s.Topics...)
		m.home = s
		m.topicIndex = clampIndex(m.topicIndex, len(s.Topics))
	})
}

func (r *Root) SetTopic(s TopicState) {
	r.apply(func(m *Root) {
		s.Lessons = append([]LessonRow(nil), s.Lessons...)
		if s.TopicID != m.topic.TopicID {
			m.lessonIndex = 0
		}
		m.topic = s
		m.lessonIndex = clampIndex(m.lessonIndex, len(s.Lessons))
		for i, home := range m.home.Topics {
			if home.TopicID == s.TopicID {
				m.topicIndex = i
			}
		}
	})
}

func (r *Root) SetLesson(s LessonState) {
	r.apply(func(m *Root) {
		if s.LessonID != m.lesson.LessonID {
			m.focus = 0
		}
		m.lesson = s
		n := 0
		if s.Widget != nil {
			n = len(s.Widget.Controls())
		}
		m.focus = clampIndex(m.focus, n)
		for i, row := range m.topic.Lessons {
			if row.LessonID == s.LessonID {
				m.lessonIndex = i
			}
		}
	})
}

func (r *Root) SetStats(s StatsState, open bool) {
	r.apply(func(m *Root) {
		s.CompletedTitles = append([]string(nil), s.CompletedTitles...)
		m.stats = s
		m.statsOpen = open
		if m.motionLevel == "off" {
			m.overlayPos = m.overlayTarget()
			m.overlayVel = 0
		}
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

// RequestDraw asks for a repaint, coalescing bursts into one frame.
func (r *Root) RequestDraw() {
	r.mu.Lock()
	p := r.program
	running := r.running
	r.mu.Unlock()
	if !running || p == nil {
		return
	}
	if !r.drawPending.CompareAndSwap(false, true) {
		return
	}
	time.AfterFunc(16*time.Millisecond, func() {
		r.mu.Lock()
		p := r.program
		running := r.running
		r.mu.Unlock()
		if !running || p == nil {
			r.drawPending.Store(false)
			return
		}
		p.Send(drawMsg{})
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	r.queue.enqueue(func() { fn(ctrl) })
}

// dispatchQueue runs controller calls off the UI goroutine, one at a time
// and in submission order.
type dispatchQueue struct {
	mu       sync.Mutex
	jobs     []func()
	draining bool
}

func (q *dispatchQueue) enqueue(job func()) {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	if q.draining {
		q.mu.Unlock()
		return
	}
	q.draining = true
	q.mu.Unlock()
	go q.drain()
}

func (q *dispatchQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.jobs) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		job := q.jobs[0]
		q.jobs[0] = nil
		q.jobs = q.jobs[1:]
		q.mu.Unlock()
		job()
	}
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text))

	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+q"))) {
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, nil
	}

	if r.statsOpen {
		if key.Matches(msg, r.statsKeys.Close) {
			r.dispatchController(func(c Controller) { c.OnCloseStats() })
		}
		return r, nil
	}

	switch r.screen {
	case ScreenTopic:
		return r.handleTopicKey(msg)
	case ScreenLesson:
		return r.handleLessonKey(msg)
	default:
		return r.handleHomeKey(msg)
	}
}

// handleCommonKey covers the keys that mean the same thing on every screen.
func (r *Root) handleCommonKey(msg tea.KeyPressMsg, helpKey, statsKey, homeKey key.Binding) bool {
	switch {
	case key.Matches(msg, helpKey):
		r.help.ShowAll = !r.help.ShowAll
	case key.Matches(msg, statsKey):
		r.dispatchController(func(c Controller) { c.OnOpenStats() })
	case key.Matches(msg, homeKey):
		if r.screen != ScreenHome {
			r.dispatchController(func(c Controller) { c.OnGoHome() })
		}
	default:
		return false
	}
	return true
}

func (r *Root) handleHomeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := r.browseKeys
	if r.handleCommonKey(msg, k.Help, k.Stats, k.Home) {
		return r, nil
	}
	n := len(r.home.Topics)
	switch {
	case key.Matches(msg, k.Quit):
		r.dispatchController(func(c Controller) { c.OnQuit() })
	case key.Matches(msg, k.Prev):
		r.topicIndex = wrapIndex(r.topicIndex-1, n)
	case key.Matches(msg, k.Next):
		r.topicIndex = wrapIndex(r.topicIndex+1, n)
	case key.Matches(msg, k.Open):
		if r.topicIndex >= 0 && r.topicIndex < n {
			id := r.home.Topics[r.topicIndex].TopicID
			r.dispatchController(func(c Controller) { c.OnSelectTopic(id) })
		}
	}
	return r, nil
}

func (r *Root) handleTopicKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := r.browseKeys
	if r.handleCommonKey(msg, k.Help, k.Stats, k.Home) {
		return r, nil
	}
	n := len(r.topic.Lessons)
	switch {
	case key.Matches(msg, k.Quit):
		r.dispatchController(func(c Controller) { c.OnQuit() })
	case key.Matches(msg, k.Back):
		r.dispatchController(func(c Controller) { c.OnBack() })
	case key.Matches(msg, k.Prev):
		r.lessonIndex = wrapIndex(r.lessonIndex-1, n)
	case key.Matches(msg, k.Next):
		r.lessonIndex = wrapIndex(r.lessonIndex+1, n)
	case key.Matches(msg, k.Open):
		if r.lessonIndex >= 0 && r.lessonIndex < n {
			id := r.topic.Lessons[r.lessonIndex].LessonID
			r.dispatchController(func(c Controller) { c.OnSelectLesson(id) })
		}
	}
	return r, nil
}

func (r *Root) handleLessonKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := r.lessonKeys
	if r.handleCommonKey(msg, k.Help, k.Stats, k.Home) {
		return r, nil
	}
	controls := 0
	if r.lesson.Widget != nil {
		controls = len(r.lesson.Widget.Controls())
	}
	focus := r.focus
	switch {
	case key.Matches(msg, k.Back):
		r.dispatchController(func(c Controller) { c.OnBack() })
	case key.Matches(msg, k.PrevControl):
		r.focus = wrapIndex(r.focus-1, controls)
	case key.Matches(msg, k.NextControl):
		r.focus = wrapIndex(r.focus+1, controls)
	case key.Matches(msg, k.Decrease):
		if controls > 0 {
			r.dispatchController(func(c Controller) { c.OnAdjust(focus, -1) })
		}
	case key.Matches(msg, k.Increase):
		if controls > 0 {
			r.dispatchController(func(c Controller) { c.OnAdjust(focus, 1) })
		}
	case key.Matches(msg, k.Complete):
		if !r.lesson.Completed {
			r.dispatchController(func(c Controller) { c.OnMarkComplete() })
		}
	case key.Matches(msg, k.Reset):
		r.dispatchController(func(c Controller) { c.OnResetLesson() })
	}
	return r, nil
}

func (r *Root) overlayTarget() float64 {
	if r.statsOpen {
		return 1
	}
	return 0
}

func (r *Root) animateIfNeeded() tea.Cmd {
	if r.shouldAnimate(r.overlayTarget()) {
		return animateTickCmd()
	}
	return nil
}

func (r *Root) shouldAnimate(target float64) bool {
	if r.motionLevel == "off" {
		return false
	}
	return abs(r.overlayPos-target) > 0.001 || abs(r.overlayVel) > 0.001
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func spinnerTickCmd(model spinner.Model) tea.Cmd {
	return func() tea.Msg {
		return model.Tick()
	}
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "chalkboard", "paper", "phosphor":
		return strings.TrimSpace(v)
	default:
		return "chalkboard"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprintf("%v", recovered),
		"message_type", msgType,
		"screen", r.screen,
		"lesson", r.lesson.LessonID,
		"cols", r.cols,
		"rows", r.rows,
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
