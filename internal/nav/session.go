// Package nav tracks where the learner is in the catalog and which lessons
// they have completed. Sessions are values; every transition returns a new
// one and leaves the receiver untouched.
package nav

import (
	"sort"

	"gedmath/internal/curriculum"
)

type Screen int

const (
	Home Screen = iota
	TopicView
	LessonView
)

func (s Screen) String() string {
	switch s {
	case TopicView:
		return "topic"
	case LessonView:
		return "lesson"
	default:
		return "home"
	}
}

type State struct {
	Screen   Screen
	TopicID  string
	LessonID string
}

// CompletionSet only grows. The zero value is empty.
type CompletionSet struct {
	ids map[string]struct{}
}

func (c CompletionSet) Has(id string) bool {
	_, ok := c.ids[id]
	return ok
}

func (c CompletionSet) Len() int { return len(c.ids) }

func (c CompletionSet) Add(id string) CompletionSet {
	if c.Has(id) {
		return c
	}
	next := make(map[string]struct{}, len(c.ids)+1)
	for k := range c.ids {
		next[k] = struct{}{}
	}
	next[id] = struct{}{}
	return CompletionSet{ids: next}
}

func (c CompletionSet) IDs() []string {
	out := make([]string, 0, len(c.ids))
	for k := range c.ids {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type Session struct {
	catalog *curriculum.Catalog
	state   State
	done    CompletionSet
}

func NewSession(catalog *curriculum.Catalog) Session {
	return Session{catalog: catalog}
}

func (s Session) State() State { return s.state }

func (s Session) Screen() Screen { return s.state.Screen }

func (s Session) Completed() CompletionSet { return s.done }

func (s Session) Topic() (curriculum.Topic, bool) {
	if s.catalog == nil || s.state.Screen == Home {
		return curriculum.Topic{}, false
	}
	return s.catalog.FindTopic(s.state.TopicID)
}

func (s Session) Lesson() (curriculum.Lesson, bool) {
	if s.state.Screen != LessonView {
		return curriculum.Lesson{}, false
	}
	t, ok := s.Topic()
	if !ok {
		return curriculum.Lesson{}, false
	}
	return t.Lesson(s.state.LessonID)
}

// SelectTopic opens a topic from the home screen. Unknown topics and calls
// from any other screen leave the session as it is.
func (s Session) SelectTopic(id string) Session {
	if s.state.Screen != Home || s.catalog == nil {
		return s
	}
	if _, ok := s.catalog.FindTopic(id); !ok {
		return s
	}
	s.state = State{Screen: TopicView, TopicID: id}
	return s
}

// SelectLesson opens a lesson of the current topic.
func (s Session) SelectLesson(id string) Session {
	if s.state.Screen != TopicView {
		return s
	}
	t, ok := s.Topic()
	if !ok || !t.HasLesson(id) {
		return s
	}
	s.state = State{Screen: LessonView, TopicID: t.ID, LessonID: id}
	return s
}

func (s Session) Back() Session {
	switch s.state.Screen {
	case LessonView:
		s.state = State{Screen: TopicView, TopicID: s.state.TopicID}
	case TopicView:
		s.state = State{Screen: Home}
	}
	return s
}

func (s Session) GoHome() Session {
	s.state = State{Screen: Home}
	return s
}

// MarkComplete records the open lesson. Repeating it changes nothing.
func (s Session) MarkComplete() Session {
	if s.state.Screen != LessonView {
		return s
	}
	s.done = s.done.Add(s.state.LessonID)
	return s
}

func (s Session) IsComplete(lessonID string) bool { return s.done.Has(lessonID) }

func (s Session) TotalLessons() int {
	if s.catalog == nil {
		return 0
	}
	return s.catalog.TotalLessons()
}

// Progress is the completed share of all lessons, in [0, 1].
func (s Session) Progress() float64 {
	total := s.TotalLessons()
	if total == 0 {
		return 0
	}
	return float64(s.done.Len()) / float64(total)
}

func (s Session) CompletedIn(topicID string) int {
	if s.catalog == nil {
		return 0
	}
	t, ok := s.catalog.FindTopic(topicID)
	if !ok {
		return 0
	}
	n := 0
	for _, l := range t.Lessons {
		if s.done.Has(l.ID) {
			n++
		}
	}
	return n
}
