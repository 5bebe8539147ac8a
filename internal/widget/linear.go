package widget

import (
	"fmt"
	"math"

	"gedmath/internal/plane"
)

const (
	LinearKey    = "linear"
	MinSlope     = -3.0
	MaxSlope     = 3.0
	SlopeStep    = 0.5
	MinIntercept = -4
	MaxIntercept = 4
)

var (
	linearDomain = plane.Axis{Min: -5, Max: 5}
	markerXs     = []float64{-4, -2, 0, 2, 4}
)

type Trend int

const (
	TrendHorizontal Trend = iota
	TrendRises
	TrendFalls
)

func (t Trend) String() string {
	switch t {
	case TrendRises:
		return "Line rises from left to right"
	case TrendFalls:
		return "Line falls from left to right"
	default:
		return "Line is horizontal"
	}
}

// Linear plots y = Slope*x + Intercept over x in [-5, 5].
type Linear struct {
	Slope     float64
	Intercept int
}

func NewLinear() Linear {
	return Linear{Slope: 1, Intercept: 0}
}

func (l Linear) Key() string { return LinearKey }

// SetSlope clamps to [-3, 3] and snaps to the nearest half.
func (l Linear) SetSlope(m float64) Linear {
	if math.IsNaN(m) {
		return l
	}
	l.Slope = clampFloat(math.Round(m/SlopeStep)*SlopeStep, MinSlope, MaxSlope)
	return l
}

func (l Linear) SetIntercept(b int) Linear {
	l.Intercept = clampInt(b, MinIntercept, MaxIntercept)
	return l
}

func (l Linear) At(x float64) float64 {
	return l.Slope*x + float64(l.Intercept)
}

// Line spans the whole domain; its ends may fall outside the visible range.
func (l Linear) Line() plane.Line {
	return plane.Line{
		X1: linearDomain.Min, Y1: l.At(linearDomain.Min),
		X2: linearDomain.Max, Y2: l.At(linearDomain.Max),
		Tone: plane.ToneBlue,
	}
}

// Markers samples the even x positions and drops any whose y is off-plane.
func (l Linear) Markers() []plane.Point {
	points := make([]plane.Point, 0, len(markerXs))
	for _, x := range markerXs {
		y := l.At(x)
		if y < linearDomain.Min || y > linearDomain.Max {
			continue
		}
		points = append(points, plane.Point{X: x, Y: y, Label: true, Tone: plane.ToneGold})
	}
	return points
}

func (l Linear) Trend() Trend {
	switch {
	case l.Slope > 0:
		return TrendRises
	case l.Slope < 0:
		return TrendFalls
	default:
		return TrendHorizontal
	}
}

func (l Linear) Equation() string {
	return fmt.Sprintf("y = %sx + %d", plane.FormatNumber(l.Slope), l.Intercept)
}

func (l Linear) Scene() plane.Scene {
	return plane.Scene{
		X:      linearDomain,
		Y:      linearDomain,
		Grid:   true,
		Lines:  []plane.Line{l.Line()},
		Points: l.Markers(),
	}
}

func (l Linear) Controls() []Control {
	return []Control{
		{Label: "Slope (m)", Value: l.Slope, Min: MinSlope, Max: MaxSlope, Step: SlopeStep},
		{Label: "Intercept (b)", Value: float64(l.Intercept), Min: MinIntercept, Max: MaxIntercept, Step: 1},
	}
}

func (l Linear) Nudge(control, steps int) Model {
	switch control {
	case 0:
		return l.SetSlope(l.Slope + SlopeStep*float64(steps))
	case 1:
		return l.SetIntercept(l.Intercept + steps)
	}
	return l
}

func (l Linear) Reset() Model { return NewLinear() }
