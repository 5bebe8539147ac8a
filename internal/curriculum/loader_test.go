package curriculum

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinCatalogLoadsFourTopics(t *testing.T) {
	c, err := NewLoader().Load(context.Background(), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Topics) != 4 {
		t.Fatalf("expected 4 topics, got %d", len(c.Topics))
	}
	if c.TotalLessons() != 12 {
		t.Fatalf("expected 12 lessons, got %d", c.TotalLessons())
	}
	got := []string{c.Topics[0].ID, c.Topics[1].ID, c.Topics[2].ID, c.Topics[3].ID}
	want := []string{"numbers", "algebra", "geometry", "data"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("topic order mismatch at %d: got %q want %q", i, got[i], want[i])
		}
	}

	topic, lesson, ok := c.FindLesson("mean")
	if !ok || topic.ID != "data" || lesson.Content != "statistics" {
		t.Fatalf("unexpected lookup %v %+v %+v", ok, topic, lesson)
	}
	if _, ok := c.FindTopic("calculus"); ok {
		t.Fatalf("unexpected topic")
	}
	if c.Topics[1].HasLesson("fractions") {
		t.Fatalf("fractions does not belong to algebra")
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `kind: catalog
schema_version: 1
title: Mini
topics:
  - id: numbers
    title: Numbers
    lessons:
      - id: fractions
        title: Fractions
        content: fractions
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Path != path || c.TotalLessons() != 1 {
		t.Fatalf("unexpected catalog %+v", c)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("kind: catalog\nschema_version: 1\ntitle: x\nwidgets: []\n"))
	if err == nil || !strings.Contains(err.Error(), "widgets") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if _, err := Parse(nil); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader().Load(ctx, ""); err == nil {
		t.Fatalf("expected context error")
	}
}
