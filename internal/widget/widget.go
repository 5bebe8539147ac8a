// Package widget holds the lesson widgets. Each widget is a value type whose
// events return a new value; every displayed quantity is derived from the
// current parameters alone.
package widget

import "math"

// Control describes one adjustable parameter of a widget.
type Control struct {
	Label string
	Value float64
	Min   float64
	Max   float64
	Step  float64
}

// Model is the surface the UI drives every widget through.
type Model interface {
	Key() string
	Controls() []Control
	// Nudge moves control by steps increments, clamping at the bounds.
	Nudge(control, steps int) Model
	Reset() Model
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
