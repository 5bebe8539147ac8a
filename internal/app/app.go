package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gedmath/internal/anim"
	"gedmath/internal/content"
	"gedmath/internal/curriculum"
	"gedmath/internal/nav"
	"gedmath/internal/state"
	"gedmath/internal/telemetry"
	"gedmath/internal/ui"
	"gedmath/internal/widget"
)

type App struct {
	cfg Config

	logger   Logger
	store    state.Store
	catalog  curriculum.Catalog
	registry *content.Registry
	view     ui.View
	now      func() time.Time

	sessionID string
	startedAt time.Time

	mu        sync.Mutex
	session   nav.Session
	entry     content.Entry
	model     widget.Model
	mean      *anim.Number
	median    *anim.Number
	statsOpen bool
	stats     ui.StatsState
}

func New(cfg Config) (*App, error) {
	level, err := telemetry.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, err := telemetry.NewJSONLogger(cfg.LogPath, level)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	catalog, err := curriculum.NewLoader().Load(context.Background(), cfg.CatalogPath)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	store, err := state.NewSQLite(cfg.ActivityDSN)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("open activity store: %w", err)
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		_ = store.Close()
		_ = logger.Close()
		return nil, fmt.Errorf("activity schema: %w", err)
	}

	view := ui.New(ui.Options{
		ASCIIOnly:    cfg.ASCIIOnly,
		Debug:        cfg.Debug,
		StyleVariant: cfg.UI.StyleVariant,
		MotionLevel:  cfg.UI.MotionLevel,
	})

	return newApp(cfg, logger, store, catalog, content.NewRegistry(), view), nil
}

func newApp(cfg Config, logger Logger, store state.Store, catalog curriculum.Catalog, registry *content.Registry, view ui.View) *App {
	a := &App{
		cfg:       cfg,
		store:     store,
		catalog:   catalog,
		registry:  registry,
		view:      view,
		now:       time.Now,
		sessionID: uuid.NewString(),
	}
	a.logger = logger
	if jl, ok := logger.(*telemetry.JSONLogger); ok {
		a.logger = jl.With(map[string]any{"session": a.sessionID})
	}
	a.startedAt = a.now().UTC()
	a.session = nav.NewSession(&a.catalog)
	view.SetController(a)
	return a
}

func (a *App) Run(ctx context.Context) error {
	err := a.store.StartSession(ctx, state.Session{
		SessionID:   a.sessionID,
		CatalogPath: a.catalog.Path,
		StartTS:     a.startedAt,
	})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	a.logger.Info("app.start", map[string]any{
		"catalog": a.catalog.Path,
		"topics":  len(a.catalog.Topics),
		"lessons": a.catalog.TotalLessons(),
		"style":   a.cfg.UI.StyleVariant,
		"motion":  a.cfg.UI.MotionLevel,
	})

	a.mu.Lock()
	a.syncView()
	a.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		return a.view.Run()
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			a.view.Stop()
		case <-done:
		}
		return nil
	})
	err = g.Wait()

	a.mu.Lock()
	completed := a.session.Completed().Len()
	a.mu.Unlock()
	a.logger.Info("app.stop", map[string]any{"completed": completed})
	return err
}

func (a *App) Close() {
	a.mu.Lock()
	a.stopNumbers()
	a.mu.Unlock()
	_ = a.store.Close()
	_ = a.logger.Close()
}

func (a *App) OnSelectTopic(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	next := a.session.SelectTopic(id)
	if next.State() == a.session.State() {
		a.logger.Debug("nav.ignored", map[string]any{"event": "select_topic", "topic": id})
		return
	}
	a.session = next
	a.logger.Info("nav.select_topic", map[string]any{"topic": id})
	a.syncView()
}

func (a *App) OnSelectLesson(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	next := a.session.SelectLesson(id)
	if next.State() == a.session.State() {
		a.logger.Debug("nav.ignored", map[string]any{"event": "select_lesson", "lesson": id})
		return
	}
	a.session = next
	a.openLesson()
	a.syncView()
}

func (a *App) OnBack() {
	a.mu.Lock()
	defer a.mu.Unlock()
	from := a.session.Screen()
	a.session = a.session.Back()
	if a.session.Screen() != nav.LessonView {
		a.closeLesson()
	}
	a.logger.Info("nav.back", map[string]any{"from": from.String(), "to": a.session.Screen().String()})
	a.syncView()
}

func (a *App) OnGoHome() {
	a.mu.Lock()
	defer a.mu.Unlock()
	from := a.session.Screen()
	a.session = a.session.GoHome()
	a.closeLesson()
	a.logger.Info("nav.home", map[string]any{"from": from.String()})
	a.syncView()
}

func (a *App) OnMarkComplete() {
	a.mu.Lock()
	defer a.mu.Unlock()
	lesson, ok := a.session.Lesson()
	if !ok {
		return
	}
	already := a.session.IsComplete(lesson.ID)
	a.session = a.session.MarkComplete()
	if already {
		return
	}
	a.record("activity.completion_failed", func(ctx context.Context) error {
		return a.store.RecordCompletion(ctx, state.Completion{SessionID: a.sessionID, LessonID: lesson.ID, TS: a.now().UTC()})
	})
	a.logger.Info("lesson.complete", map[string]any{
		"lesson":    lesson.ID,
		"completed": a.session.Completed().Len(),
		"progress":  a.session.Progress(),
	})
	a.syncView()
	a.view.FlashStatus(fmt.Sprintf("%s complete", lesson.Title))
}

func (a *App) OnAdjust(control, steps int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	lesson, ok := a.session.Lesson()
	if !ok || a.model == nil {
		return
	}
	controls := a.model.Controls()
	if control < 0 || control >= len(controls) || steps == 0 {
		return
	}
	a.model = a.model.Nudge(control, steps)
	after := a.model.Controls()
	label, value := controls[control].Label, 0.0
	if control < len(after) {
		value = after[control].Value
	}
	a.record("activity.interaction_failed", func(ctx context.Context) error {
		return a.store.RecordInteraction(ctx, state.Interaction{
			SessionID: a.sessionID,
			LessonID:  lesson.ID,
			Control:   label,
			Value:     value,
			TS:        a.now().UTC(),
		})
	})
	a.logger.Debug("widget.adjust", map[string]any{"lesson": lesson.ID, "control": label, "value": value})
	a.retargetNumbers()
	a.syncView()
}

func (a *App) OnResetLesson() {
	a.mu.Lock()
	defer a.mu.Unlock()
	lesson, ok := a.session.Lesson()
	if !ok || a.model == nil {
		return
	}
	a.model = a.model.Reset()
	a.logger.Info("widget.reset", map[string]any{"lesson": lesson.ID})
	a.retargetNumbers()
	a.syncView()
	a.view.FlashStatus("Reset to the starting values")
}

func (a *App) OnOpenStats() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statsOpen = true
	a.stats = a.buildStats()
	a.view.SetStats(a.stats, true)
}

func (a *App) OnCloseStats() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statsOpen = false
	a.view.SetStats(a.stats, false)
}

func (a *App) OnQuit() {
	a.logger.Info("app.quit", nil)
	a.view.Stop()
}

// openLesson resolves the widget for the lesson just entered. Caller holds mu.
func (a *App) openLesson() {
	topic, _ := a.session.Topic()
	lesson, ok := a.session.Lesson()
	if !ok {
		return
	}
	a.entry = a.registry.Resolve(lesson.Content)
	a.model = a.entry.New()
	a.resetNumbers()

	a.record("activity.visit_failed", func(ctx context.Context) error {
		return a.store.RecordVisit(ctx, state.Visit{
			SessionID: a.sessionID,
			TopicID:   topic.ID,
			LessonID:  lesson.ID,
			Content:   lesson.Content,
			TS:        a.now().UTC(),
		})
	})
	fields := map[string]any{"topic": topic.ID, "lesson": lesson.ID, "content": lesson.Content}
	if a.entry.Placeholder {
		fields["placeholder"] = true
	}
	a.logger.Info("nav.select_lesson", fields)
}

func (a *App) closeLesson() {
	a.entry = content.Entry{}
	a.model = nil
	a.stopNumbers()
}

func (a *App) animationOptions() anim.Options {
	d := time.Duration(a.cfg.Animation.DurationMS) * time.Millisecond
	switch a.cfg.UI.MotionLevel {
	case "reduced":
		d /= 2
	case "off":
		d = 0
	}
	frame := anim.DefaultFrame
	if a.cfg.Animation.FPS > 0 {
		frame = time.Second / time.Duration(a.cfg.Animation.FPS)
	}
	return anim.Options{
		Duration: d,
		Frame:    frame,
		OnFrame:  func(float64) { a.view.RequestDraw() },
	}
}

// resetNumbers starts the statistics readouts from zero, the way they count
// up whenever the lesson opens.
func (a *App) resetNumbers() {
	a.stopNumbers()
	if _, ok := a.model.(widget.Statistics); !ok {
		return
	}
	a.mean = anim.NewNumber(0, a.animationOptions())
	a.median = anim.NewNumber(0, a.animationOptions())
	a.retargetNumbers()
}

func (a *App) retargetNumbers() {
	s, ok := a.model.(widget.Statistics)
	if !ok || a.mean == nil || a.median == nil {
		return
	}
	a.mean.Set(s.Mean())
	a.median.Set(s.Median())
}

func (a *App) stopNumbers() {
	if a.mean != nil {
		a.mean.Stop()
	}
	if a.median != nil {
		a.median.Stop()
	}
	a.mean, a.median = nil, nil
}

// record writes to the activity store. Failures are logged and never reach
// the learner.
func (a *App) record(event string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		a.logger.Error(event, map[string]any{"error": err})
	}
}

func (a *App) buildStats() ui.StatsState {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s := ui.StatsState{
		SessionID: a.sessionID,
		StartedAt: a.startedAt,
		Completed: a.session.Completed().Len(),
		Total:     a.session.TotalLessons(),
	}
	summary, err := a.store.Summary(ctx, a.sessionID)
	if err != nil {
		a.logger.Error("activity.summary_failed", map[string]any{"error": err})
	} else {
		s.Visits = summary.Visits
		s.Interactions = summary.Interactions
		if !summary.StartedAt.IsZero() {
			s.StartedAt = summary.StartedAt
		}
		if _, l, ok := a.catalog.FindLesson(summary.LastLessonID); ok {
			s.LastLesson = l.Title
		}
	}
	for _, t := range a.catalog.Topics {
		for _, l := range t.Lessons {
			if a.session.IsComplete(l.ID) {
				s.CompletedTitles = append(s.CompletedTitles, l.Title)
			}
		}
	}
	return s
}

// syncView pushes the whole visible state to the view. Caller holds mu.
func (a *App) syncView() {
	done := a.session.Completed()
	a.view.SetHeader(ui.HeaderState{
		Title:     a.catalog.Title,
		Tagline:   a.catalog.Tagline,
		Completed: done.Len(),
		Total:     a.session.TotalLessons(),
		Progress:  a.session.Progress(),
	})

	topics := make([]ui.TopicSummary, 0, len(a.catalog.Topics))
	for _, t := range a.catalog.Topics {
		topics = append(topics, ui.TopicSummary{
			TopicID:     t.ID,
			Title:       t.Title,
			Icon:        t.Icon,
			Color:       t.Color,
			LessonCount: len(t.Lessons),
			Completed:   a.session.CompletedIn(t.ID),
		})
	}
	a.view.SetHome(ui.HomeState{Topics: topics})

	if topic, ok := a.session.Topic(); ok {
		rows := make([]ui.LessonRow, 0, len(topic.Lessons))
		for _, l := range topic.Lessons {
			rows = append(rows, ui.LessonRow{LessonID: l.ID, Title: l.Title, Completed: done.Has(l.ID)})
		}
		a.view.SetTopic(ui.TopicState{
			TopicID: topic.ID,
			Title:   topic.Title,
			Icon:    topic.Icon,
			Color:   topic.Color,
			Lessons: rows,
		})
		if lesson, ok := a.session.Lesson(); ok {
			a.view.SetLesson(a.lessonState(topic, lesson))
		}
	}

	if a.statsOpen {
		a.stats = a.buildStats()
		a.view.SetStats(a.stats, true)
	}
	a.view.SetScreen(screenFor(a.session.Screen()))
}

func (a *App) lessonState(topic curriculum.Topic, lesson curriculum.Lesson) ui.LessonState {
	s := ui.LessonState{
		TopicID:     topic.ID,
		TopicTitle:  topic.Title,
		Color:       topic.Color,
		LessonID:    lesson.ID,
		Title:       lesson.Title,
		Heading:     a.entry.Heading,
		IntroMD:     a.entry.IntroMD,
		Placeholder: a.entry.Placeholder,
		Completed:   a.session.IsComplete(lesson.ID),
		Widget:      a.model,
	}
	if a.mean != nil && a.median != nil {
		s.Mean = a.mean
		s.Median = a.median
	}
	return s
}

func screenFor(s nav.Screen) ui.Screen {
	switch s {
	case nav.TopicView:
		return ui.ScreenTopic
	case nav.LessonView:
		return ui.ScreenLesson
	default:
		return ui.ScreenHome
	}
}
