package content

import (
	"fmt"
	"sort"
	"strings"

	"gedmath/internal/widget"
)

// Entry is what a lesson's content key resolves to.
type Entry struct {
	Key     string
	Heading string
	IntroMD string
	New     func() widget.Model

	Placeholder bool
}

type Registry struct {
	entries map[string]Entry
}

func NewRegistry() *Registry {
	r := &Registry{entries: map[string]Entry{}}
	for _, e := range builtin() {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a widget for a new content key. Existing keys are never
// replaced.
func (r *Registry) Register(e Entry) error {
	e.Key = strings.TrimSpace(e.Key)
	if e.Key == "" {
		return fmt.Errorf("content key is required")
	}
	if e.New == nil {
		return fmt.Errorf("content %s: constructor is required", e.Key)
	}
	if _, ok := r.entries[e.Key]; ok {
		return fmt.Errorf("content %s already registered", e.Key)
	}
	e.Placeholder = false
	r.entries[e.Key] = e
	return nil
}

// Resolve always yields an entry; keys without a widget get the placeholder.
func (r *Registry) Resolve(key string) Entry {
	if e, ok := r.entries[key]; ok {
		return e
	}
	return Entry{
		Key:         key,
		Heading:     widget.ComingSoon,
		New:         func() widget.Model { return widget.NewPlaceholder(key) },
		Placeholder: true,
	}
}

func (r *Registry) Has(key string) bool {
	_, ok := r.entries[key]
	return ok
}

func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func builtin() []Entry {
	return []Entry{
		{
			Key:     widget.FractionKey,
			Heading: "What is a Fraction?",
			IntroMD: "A fraction represents **a part of a whole**. The top number (numerator) tells us how many parts we have. " +
				"The bottom number (denominator) tells us how many equal parts the whole is divided into.",
			New: func() widget.Model { return widget.NewFraction() },
		},
		{
			Key:     widget.EquationKey,
			Heading: "Solving Equations: The Balance Principle",
			IntroMD: "Think of an equation as a **perfectly balanced scale**. Whatever you do to one side, you must do to the other to keep it balanced. " +
				"Our goal is to **isolate the variable** (get x alone).",
			New: func() widget.Model { return widget.NewEquationSteps() },
		},
		{
			Key:     widget.LinearKey,
			Heading: "Linear Equations: y = mx + b",
			IntroMD: "Every linear equation graphs as a **straight line**. The *slope (m)* determines how steep the line is. " +
				"The *y-intercept (b)* is where the line crosses the y-axis.",
			New: func() widget.Model { return widget.NewLinear() },
		},
		{
			Key:     widget.PythagoreanKey,
			Heading: "The Pythagorean Theorem: a² + b² = c²",
			IntroMD: "In a **right triangle**, the square of the hypotenuse (the side opposite the right angle) equals the sum of the squares of the other two sides. " +
				"This is one of the most beautiful relationships in all of mathematics.",
			New: func() widget.Model { return widget.NewRightTriangle() },
		},
		{
			Key:     widget.StatisticsKey,
			Heading: "Measures of Center: Mean, Median, Mode",
			IntroMD: "These three measures help us understand the **\"center\"** of a data set. " +
				"Each tells us something different about the typical value.",
			New: func() widget.Model { return widget.NewStatistics() },
		},
	}
}
