package widget

import (
	"math"
	"strconv"

	"gedmath/internal/plane"
)

const (
	PythagoreanKey = "pythagorean"
	MinLeg         = 1
	MaxLeg         = 8
)

// RightTriangle has legs A (horizontal) and B (vertical) meeting at the origin.
type RightTriangle struct {
	A int
	B int
}

func NewRightTriangle() RightTriangle {
	return RightTriangle{A: 3, B: 4}
}

func (r RightTriangle) Key() string { return PythagoreanKey }

func (r RightTriangle) SetA(a int) RightTriangle {
	r.A = clampInt(a, MinLeg, MaxLeg)
	return r
}

func (r RightTriangle) SetB(b int) RightTriangle {
	r.B = clampInt(b, MinLeg, MaxLeg)
	return r
}

func (r RightTriangle) Hypotenuse() float64 {
	return math.Sqrt(float64(r.A*r.A + r.B*r.B))
}

func (r RightTriangle) HypotenuseText() string {
	return strconv.FormatFloat(r.Hypotenuse(), 'f', 2, 64)
}

// Squares returns a², b² and their sum c².
func (r RightTriangle) Squares() (int, int, int) {
	a2, b2 := r.A*r.A, r.B*r.B
	return a2, b2, a2 + b2
}

// FamousTriple is only true for the 3-4-5 triangle.
func (r RightTriangle) FamousTriple() bool {
	return r.A == 3 && r.B == 4
}

func (r RightTriangle) Scene() plane.Scene {
	a, b := float64(r.A), float64(r.B)
	return plane.Scene{
		X: plane.Axis{Min: -1, Max: MaxLeg + 1},
		Y: plane.Axis{Min: -1, Max: MaxLeg + 1},
		Lines: []plane.Line{
			{X1: 0, Y1: 0, X2: a, Y2: 0, Tone: plane.ToneRed},
			{X1: 0, Y1: 0, X2: 0, Y2: b, Tone: plane.ToneGreen},
			{X1: a, Y1: 0, X2: 0, Y2: b, Tone: plane.ToneGold},
		},
		Points: []plane.Point{
			{X: 0, Y: 0, Tone: plane.ToneBlue},
			{X: a, Y: 0, Tone: plane.ToneBlue},
			{X: 0, Y: b, Tone: plane.ToneBlue},
		},
	}
}

func (r RightTriangle) Controls() []Control {
	return []Control{
		{Label: "Side a", Value: float64(r.A), Min: MinLeg, Max: MaxLeg, Step: 1},
		{Label: "Side b", Value: float64(r.B), Min: MinLeg, Max: MaxLeg, Step: 1},
	}
}

func (r RightTriangle) Nudge(control, steps int) Model {
	switch control {
	case 0:
		return r.SetA(r.A + steps)
	case 1:
		return r.SetB(r.B + steps)
	}
	return r
}

func (r RightTriangle) Reset() Model { return NewRightTriangle() }
