package plane

import "strconv"

// Tone is a semantic color slot; the renderer decides the actual style.
type Tone int

const (
	ToneNone Tone = iota
	ToneGrid
	ToneAxis
	ToneBlue
	ToneGold
	ToneRed
	ToneGreen
	TonePurple
)

type Point struct {
	X     float64
	Y     float64
	Label bool
	Tone  Tone
}

// LabelText formats the point the way the lessons print coordinates.
func (p Point) LabelText() string {
	return "(" + FormatNumber(p.X) + ", " + FormatNumber(p.Y) + ")"
}

type Line struct {
	X1, Y1 float64
	X2, Y2 float64
	Tone   Tone
}

// Scene is everything a widget wants drawn on a plane in one render pass.
type Scene struct {
	X      Axis
	Y      Axis
	Grid   bool
	Lines  []Line
	Points []Point
}

// FormatNumber prints the shortest decimal form: 2 not 2.0, 2.5 not 2.50.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
