package curriculum

import (
	"fmt"
	"regexp"
)

const (
	CatalogKind            = "catalog"
	SupportedSchemaVersion = 1
)

var (
	idPattern    = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)
	colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

type Catalog struct {
	Kind          string  `yaml:"kind"`
	SchemaVersion int     `yaml:"schema_version"`
	Title         string  `yaml:"title"`
	Tagline       string  `yaml:"tagline"`
	Topics        []Topic `yaml:"topics"`

	Path string `yaml:"-"`
}

type Topic struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Icon    string   `yaml:"icon"`
	Color   string   `yaml:"color"`
	Lessons []Lesson `yaml:"lessons"`
}

// Lesson.Content names the widget that renders it; unknown keys are allowed
// and shown as coming soon.
type Lesson struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

func (c Catalog) Validate() error {
	if c.Kind != CatalogKind {
		return fmt.Errorf("kind must be %q", CatalogKind)
	}
	if c.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if c.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported catalog schema_version %d (max supported %d)", c.SchemaVersion, SupportedSchemaVersion)
	}
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(c.Topics) == 0 {
		return fmt.Errorf("at least one topic is required")
	}
	topics := map[string]struct{}{}
	lessons := map[string]string{}
	for i, t := range c.Topics {
		if !idPattern.MatchString(t.ID) {
			return fmt.Errorf("topics[%d]: invalid id %q", i, t.ID)
		}
		if _, ok := topics[t.ID]; ok {
			return fmt.Errorf("duplicate topic id %q", t.ID)
		}
		topics[t.ID] = struct{}{}
		if t.Title == "" {
			return fmt.Errorf("topic %s: title is required", t.ID)
		}
		if t.Color != "" && !colorPattern.MatchString(t.Color) {
			return fmt.Errorf("topic %s: color must be #rrggbb, got %q", t.ID, t.Color)
		}
		if len(t.Lessons) == 0 {
			return fmt.Errorf("topic %s: at least one lesson is required", t.ID)
		}
		for j, l := range t.Lessons {
			if !idPattern.MatchString(l.ID) {
				return fmt.Errorf("topic %s lessons[%d]: invalid id %q", t.ID, j, l.ID)
			}
			if owner, ok := lessons[l.ID]; ok {
				return fmt.Errorf("duplicate lesson id %q in topics %s and %s", l.ID, owner, t.ID)
			}
			lessons[l.ID] = t.ID
			if l.Title == "" {
				return fmt.Errorf("lesson %s: title is required", l.ID)
			}
			if l.Content == "" {
				return fmt.Errorf("lesson %s: content is required", l.ID)
			}
		}
	}
	return nil
}

func (c Catalog) TotalLessons() int {
	n := 0
	for _, t := range c.Topics {
		n += len(t.Lessons)
	}
	return n
}

func (c Catalog) FindTopic(id string) (Topic, bool) {
	for _, t := range c.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

func (c Catalog) FindLesson(id string) (Topic, Lesson, bool) {
	for _, t := range c.Topics {
		if l, ok := t.Lesson(id); ok {
			return t, l, true
		}
	}
	return Topic{}, Lesson{}, false
}

func (c Catalog) LessonIDs() []string {
	ids := make([]string, 0, c.TotalLessons())
	for _, t := range c.Topics {
		for _, l := range t.Lessons {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

func (t Topic) Lesson(id string) (Lesson, bool) {
	for _, l := range t.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

func (t Topic) HasLesson(id string) bool {
	_, ok := t.Lesson(id)
	return ok
}
