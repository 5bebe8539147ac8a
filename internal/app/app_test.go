package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"gedmath/internal/content"
	"gedmath/internal/curriculum"
	"gedmath/internal/state"
	"gedmath/internal/telemetry"
	"gedmath/internal/ui"
	"gedmath/internal/widget"
)

type fakeView struct {
	mu        sync.Mutex
	ctrl      ui.Controller
	screen    ui.Screen
	header    ui.HeaderState
	home      ui.HomeState
	topic     ui.TopicState
	lesson    ui.LessonState
	stats     ui.StatsState
	statsOpen bool
	flashes   []string
	draws     int
	stop      chan struct{}
	stopOnce  sync.Once
	runErr    error
}

func newFakeView() *fakeView { return &fakeView{stop: make(chan struct{})} }

func (f *fakeView) Run() error {
	<-f.stop
	return f.runErr
}

func (f *fakeView) Stop() { f.stopOnce.Do(func() { close(f.stop) }) }

func (f *fakeView) SetController(c ui.Controller) { f.ctrl = c }

func (f *fakeView) SetScreen(s ui.Screen) {
	f.mu.Lock()
	f.screen = s
	f.mu.Unlock()
}

func (f *fakeView) SetHeader(s ui.HeaderState) {
	f.mu.Lock()
	f.header = s
	f.mu.Unlock()
}

func (f *fakeView) SetHome(s ui.HomeState) {
	f.mu.Lock()
	f.home = s
	f.mu.Unlock()
}

func (f *fakeView) SetTopic(s ui.TopicState) {
	f.mu.Lock()
	f.topic = s
	f.mu.Unlock()
}

func (f *fakeView) SetLesson(s ui.LessonState) {
	f.mu.Lock()
	f.lesson = s
	f.mu.Unlock()
}

func (f *fakeView) SetStats(s ui.StatsState, open bool) {
	f.mu.Lock()
	f.stats = s
	f.statsOpen = open
	f.mu.Unlock()
}

func (f *fakeView) FlashStatus(msg string) {
	f.mu.Lock()
	f.flashes = append(f.flashes, msg)
	f.mu.Unlock()
}

func (f *fakeView) RequestDraw() {
	f.mu.Lock()
	f.draws++
	f.mu.Unlock()
}

func newTestApp(t *testing.T, cfg Config) (*App, *fakeView, *bytes.Buffer) {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	store, err := state.NewSQLite(state.MemoryDSN)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("schema: %v", err)
	}
	var buf bytes.Buffer
	logger := telemetry.NewWriterLogger(&buf, telemetry.LevelDebug)
	view := newFakeView()
	a := newApp(cfg, logger, store, curriculum.Default(), content.NewRegistry(), view)
	if err := store.StartSession(context.Background(), state.Session{SessionID: a.sessionID, StartTS: a.startedAt}); err != nil {
		t.Fatalf("start session: %v", err)
	}
	t.Cleanup(a.Close)
	a.mu.Lock()
	a.syncView()
	a.mu.Unlock()
	return a, view, &buf
}

func offConfig() Config {
	cfg := DefaultConfig()
	cfg.UI.MotionLevel = "off"
	return cfg
}

func TestInitialSyncShowsHome(t *testing.T) {
	_, view, _ := newTestApp(t, offConfig())
	if view.screen != ui.ScreenHome {
		t.Fatalf("expected home screen, got %v", view.screen)
	}
	if len(view.home.Topics) != 4 {
		t.Fatalf("expected 4 topics, got %d", len(view.home.Topics))
	}
	if view.header.Total != 12 || view.header.Completed != 0 {
		t.Fatalf("unexpected header %+v", view.header)
	}
	if view.header.Title != "GED Math Visualized" {
		t.Fatalf("unexpected title %q", view.header.Title)
	}
}

func TestNavigateIntoLessonAndBack(t *testing.T) {
	a, view, logs := newTestApp(t, offConfig())

	a.OnSelectTopic("algebra")
	if view.screen != ui.ScreenTopic || view.topic.TopicID != "algebra" {
		t.Fatalf("expected algebra topic view, got %v %q", view.screen, view.topic.TopicID)
	}
	a.OnSelectLesson("linear")
	if view.screen != ui.ScreenLesson {
		t.Fatalf("expected lesson view, got %v", view.screen)
	}
	if _, ok := view.lesson.Widget.(widget.Linear); !ok {
		t.Fatalf("expected linear widget, got %T", view.lesson.Widget)
	}
	if view.lesson.Heading != "Linear Equations: y = mx + b" {
		t.Fatalf("unexpected heading %q", view.lesson.Heading)
	}

	a.OnBack()
	if view.screen != ui.ScreenTopic {
		t.Fatalf("expected back to topic, got %v", view.screen)
	}
	a.OnBack()
	if view.screen != ui.ScreenHome {
		t.Fatalf("expected back to home, got %v", view.screen)
	}
	if !strings.Contains(logs.String(), `"nav.select_lesson"`) {
		t.Fatalf("expected select_lesson event in log:\n%s", logs.String())
	}
}

func TestSelectLessonFromOtherTopicIsIgnored(t *testing.T) {
	a, view, _ := newTestApp(t, offConfig())
	a.OnSelectTopic("algebra")
	a.OnSelectLesson("pythagorean")
	if view.screen != ui.ScreenTopic {
		t.Fatalf("expected to stay on topic view, got %v", view.screen)
	}
	a.OnSelectTopic("geometry")
	if view.topic.TopicID != "algebra" {
		t.Fatalf("expected select topic outside home to be ignored, got %q", view.topic.TopicID)
	}
}

func TestGoHomeFromLesson(t *testing.T) {
	a, view, _ := newTestApp(t, offConfig())
	a.OnSelectTopic("geometry")
	a.OnSelectLesson("pythagorean")
	a.OnGoHome()
	if view.screen != ui.ScreenHome {
		t.Fatalf("expected home, got %v", view.screen)
	}
	if a.model != nil {
		t.Fatalf("expected widget dropped after leaving the lesson")
	}
}

func TestMarkCompleteIsIdempotent(t *testing.T) {
	a, view, _ := newTestApp(t, offConfig())
	a.OnMarkComplete()
	if view.header.Completed != 0 {
		t.Fatalf("expected mark complete on home to do nothing")
	}

	a.OnSelectTopic("algebra")
	a.OnSelectLesson("linear")
	a.OnMarkComplete()
	a.OnMarkComplete()

	if view.header.Completed != 1 {
		t.Fatalf("expected 1 completed lesson, got %d", view.header.Completed)
	}
	if !view.lesson.Completed {
		t.Fatalf("expected lesson flagged completed")
	}
	if got := view.header.Progress; got < 0.083 || got > 0.084 {
		t.Fatalf("expected progress 1/12, got %v", got)
	}
	if len(view.flashes) != 1 {
		t.Fatalf("expected one flash, got %v", view.flashes)
	}

	a.OnBack()
	if !view.topic.Lessons[1].Completed {
		t.Fatalf("expected completed check in lesson list")
	}
	a.OnBack()
	for _, topic := range view.home.Topics {
		if topic.TopicID == "algebra" && topic.Completed != 1 {
			t.Fatalf("expected algebra completed count 1, got %d", topic.Completed)
		}
	}
}

func TestPlaceholderLessonCanBeCompleted(t *testing.T) {
	a, view, _ := newTestApp(t, offConfig())
	a.OnSelectTopic("numbers")
	a.OnSelectLesson("decimals")
	if !view.lesson.Placeholder {
		t.Fatalf("expected placeholder lesson")
	}
	if _, ok := view.lesson.Widget.(widget.Placeholder); !ok {
		t.Fatalf("expected placeholder widget, got %T", view.lesson.Widget)
	}
	a.OnAdjust(0, 1)
	a.OnMarkComplete()
	if view.header.Completed != 1 {
		t.Fatalf("expected placeholder lesson to count, got %d", view.header.Completed)
	}
}

func TestAdjustUpdatesWidgetAndRecordsInteraction(t *testing.T) {
	a, view, _ := newTestApp(t, offConfig())
	a.OnSelectTopic("numbers")
	a.OnSelectLesson("fractions")
	a.OnAdjust(1, -1)
	f, ok := view.lesson.Widget.(widget.Fraction)
	if !ok {
		t.Fatalf("expected fraction widget, got %T", view.lesson.Widget)
	}
	if f.Numerator != 3 || f.Denominator != 3 {
		t.Fatalf("expected 3/3, got %d/%d", f.Numerator, f.Denominator)
	}
	a.OnAdjust(1, -1)
	if f = view.lesson.Widget.(widget.Fraction); f.Numerator != 2 || f.Denominator != 2 {
		t.Fatalf("expected numerator pulled down to 2/2, got %d/%d", f.Numerator, f.Denominator)
	}
	a.OnAdjust(7, 1)

	summary, err := a.store.Summary(context.Background(), a.sessionID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Interactions != 2 || summary.Visits != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	a, view, _ := newTestApp(t, offConfig())
	a.OnSelectTopic("geometry")
	a.OnSelectLesson("pythagorean")
	a.OnAdjust(0, 3)
	a.OnResetLesson()
	tri := view.lesson.Widget.(widget.RightTriangle)
	if tri.A != 3 || tri.B != 4 {
		t.Fatalf("expected 3-4 after reset, got %d-%d", tri.A, tri.B)
	}
}

func TestStatisticsNumbersFollowData(t *testing.T) {
	a, view, _ := newTestApp(t, offConfig())
	a.OnSelectTopic("data")
	a.OnSelectLesson("mean")
	if view.lesson.Mean == nil || view.lesson.Median == nil {
		t.Fatalf("expected animated readouts for statistics lesson")
	}
	if got := view.lesson.Mean.Display(); got != 5 {
		t.Fatalf("expected mean 5 with motion off, got %v", got)
	}
	if got := view.lesson.Median.Display(); got != 4.5 {
		t.Fatalf("expected median 4.5, got %v", got)
	}

	// Raise the first value 2 -> 10: sum 48, mean 6, median 5.
	a.OnAdjust(1, 8)
	if got := view.lesson.Mean.Display(); got != 6 {
		t.Fatalf("expected mean 6, got %v", got)
	}
	if got := view.lesson.Median.Display(); got != 5 {
		t.Fatalf("expected median 5, got %v", got)
	}

	a.OnBack()
	a.OnSelectLesson("mean")
	if got := view.lesson.Mean.Display(); got != 5 {
		t.Fatalf("expected fresh data on reopen, got %v", got)
	}
}

func TestStatisticsNumbersAnimateWithMotion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Animation.DurationMS = 40
	a, view, _ := newTestApp(t, cfg)
	a.OnSelectTopic("data")
	a.OnSelectLesson("mean")

	deadline := time.Now().Add(time.Second)
	for view.lesson.Mean.Display() != 5 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := view.lesson.Mean.Display(); got != 5 {
		t.Fatalf("expected mean to settle at 5, got %v", got)
	}
	view.mu.Lock()
	draws := view.draws
	view.mu.Unlock()
	if draws == 0 {
		t.Fatalf("expected animation frames to request draws")
	}
	if a.mean.Target() != 5 {
		t.Fatalf("expected mean target 5, got %v", a.mean.Target())
	}
}

func TestNonStatisticsLessonHasNoReadouts(t *testing.T) {
	a, view, _ := newTestApp(t, offConfig())
	a.OnSelectTopic("algebra")
	a.OnSelectLesson("solving")
	if view.lesson.Mean != nil || view.lesson.Median != nil {
		t.Fatalf("expected no readouts outside statistics")
	}
}

func TestStatsOverlayReportsActivity(t *testing.T) {
	a, view, _ := newTestApp(t, offConfig())
	a.OnSelectTopic("algebra")
	a.OnSelectLesson("linear")
	a.OnAdjust(0, 1)
	a.OnMarkComplete()

	a.OnOpenStats()
	if !view.statsOpen {
		t.Fatalf("expected stats open")
	}
	s := view.stats
	if s.Completed != 1 || s.Total != 12 || s.Visits != 1 || s.Interactions != 1 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if s.LastLesson != "Linear Equations" {
		t.Fatalf("unexpected last lesson %q", s.LastLesson)
	}
	if len(s.CompletedTitles) != 1 || s.CompletedTitles[0] != "Linear Equations" {
		t.Fatalf("unexpected completed titles %v", s.CompletedTitles)
	}

	a.OnCloseStats()
	if view.statsOpen {
		t.Fatalf("expected stats closed")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	a, view, logs := newTestApp(t, offConfig())
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx) }()
	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(time.Second):
		view.Stop()
		t.Fatalf("run did not stop after cancel")
	}
	if !strings.Contains(logs.String(), `"app.stop"`) {
		t.Fatalf("expected app.stop event")
	}
}

func TestRunReturnsViewError(t *testing.T) {
	a, view, _ := newTestApp(t, offConfig())
	view.runErr = errors.New("tty gone")
	go a.OnQuit()
	err := a.Run(context.Background())
	if err == nil || err.Error() != "tty gone" {
		t.Fatalf("expected view error, got %v", err)
	}
}
