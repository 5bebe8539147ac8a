package state

import (
	"context"
	"time"
)

type Store interface {
	EnsureSchema(ctx context.Context) error
	StartSession(ctx context.Context, session Session) error
	RecordVisit(ctx context.Context, visit Visit) error
	RecordCompletion(ctx context.Context, completion Completion) error
	RecordInteraction(ctx context.Context, interaction Interaction) error
	Summary(ctx context.Context, sessionID string) (Summary, error)
	LessonVisits(ctx context.Context, sessionID string) (map[string]int, error)
	Close() error
}

type Session struct {
	SessionID   string
	CatalogPath string
	StartTS     time.Time
}

type Visit struct {
	SessionID string
	TopicID   string
	LessonID  string
	Content   string
	TS        time.Time
}

type Completion struct {
	SessionID string
	LessonID  string
	TS        time.Time
}

// Interaction is one widget adjustment. Control is the label shown to the
// learner; Value is the control's value after the change.
type Interaction struct {
	SessionID string
	LessonID  string
	Control   string
	Value     float64
	TS        time.Time
}

type Summary struct {
	StartedAt    time.Time
	Visits       int
	Completions  int
	Interactions int
	LastLessonID string
}
