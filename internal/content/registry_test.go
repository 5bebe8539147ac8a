package content

import (
	"reflect"
	"testing"

	"gedmath/internal/widget"
)

func TestBuiltinKeysResolveToWidgets(t *testing.T) {
	r := NewRegistry()
	want := []string{"equations", "fractions", "linear", "pythagorean", "statistics"}
	if got := r.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected keys %v", got)
	}
	for _, key := range want {
		e := r.Resolve(key)
		if e.Placeholder {
			t.Fatalf("%s resolved to placeholder", key)
		}
		if got := e.New().Key(); got != key {
			t.Fatalf("%s built widget for %s", key, got)
		}
		if e.Heading == "" || e.IntroMD == "" {
			t.Fatalf("%s missing heading or intro", key)
		}
	}
}

func TestUnknownKeyResolvesToPlaceholder(t *testing.T) {
	r := NewRegistry()
	for _, key := range []string{"decimals", "", "graphs"} {
		e := r.Resolve(key)
		if !e.Placeholder {
			t.Fatalf("expected placeholder for %q", key)
		}
		p, ok := e.New().(widget.Placeholder)
		if !ok || p.Key() != key {
			t.Fatalf("expected placeholder widget for %q, got %#v", key, e.New())
		}
	}
}

func TestRegisterExtendsWithoutReplacing(t *testing.T) {
	r := NewRegistry()
	err := r.Register(Entry{Key: "decimals", Heading: "Decimals", New: func() widget.Model { return widget.NewPlaceholder("decimals") }})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if r.Resolve("decimals").Placeholder {
		t.Fatalf("expected registered entry")
	}
	if r.Resolve("decimals").Heading != "Decimals" {
		t.Fatalf("unexpected heading")
	}

	if err := r.Register(Entry{Key: "fractions", New: func() widget.Model { return widget.NewLinear() }}); err == nil {
		t.Fatalf("expected duplicate key error")
	}
	if _, ok := r.Resolve("fractions").New().(widget.Fraction); !ok {
		t.Fatalf("existing entry was replaced")
	}
	if err := r.Register(Entry{Key: "  "}); err == nil {
		t.Fatalf("expected empty key error")
	}
	if err := r.Register(Entry{Key: "area"}); err == nil {
		t.Fatalf("expected missing constructor error")
	}
}
