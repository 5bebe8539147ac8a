package ui

import (
	"time"

	"gedmath/internal/widget"
)

// Controller receives learner intents. Calls arrive one at a time, in the
// order the keys were pressed.
type Controller interface {
	OnSelectTopic(topicID string)
	OnSelectLesson(lessonID string)
	OnBack()
	OnGoHome()
	OnMarkComplete()
	OnAdjust(control, steps int)
	OnResetLesson()
	OnOpenStats()
	OnCloseStats()
	OnQuit()
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetScreen(screen Screen)
	SetHeader(state HeaderState)
	SetHome(state HomeState)
	SetTopic(state TopicState)
	SetLesson(state LessonState)
	SetStats(state StatsState, open bool)
	FlashStatus(msg string)
	RequestDraw()
}

type Screen int

const (
	ScreenHome Screen = iota
	ScreenTopic
	ScreenLesson
)

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutMedium
	LayoutTooSmall
)

type HeaderState struct {
	Title     string
	Tagline   string
	Completed int
	Total     int
	Progress  float64
}

type TopicSummary struct {
	TopicID     string
	Title       string
	Icon        string
	Color       string
	LessonCount int
	Completed   int
}

type HomeState struct {
	Topics []TopicSummary
}

type LessonRow struct {
	LessonID  string
	Title     string
	Completed bool
}

type TopicState struct {
	TopicID string
	Title   string
	Icon    string
	Color   string
	Lessons []LessonRow
}

// NumberSource is a value that may change between frames, such as an
// animated statistic.
type NumberSource interface {
	Display() float64
}

type LessonState struct {
	TopicID     string
	TopicTitle  string
	Color       string
	LessonID    string
	Title       string
	Heading     string
	IntroMD     string
	Placeholder bool
	Completed   bool
	Widget      widget.Model

	Mean   NumberSource
	Median NumberSource
}

type StatsState struct {
	SessionID       string
	StartedAt       time.Time
	Completed       int
	Total           int
	Visits          int
	Interactions    int
	LastLesson      string
	CompletedTitles []string
}
