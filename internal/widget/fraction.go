package widget

import "math"

const (
	FractionKey    = "fractions"
	MaxDenominator = 12
)

// Fraction shows Numerator parts of a whole split into Denominator parts.
type Fraction struct {
	Numerator   int
	Denominator int
}

func NewFraction() Fraction {
	return Fraction{Numerator: 3, Denominator: 4}
}

func (f Fraction) Key() string { return FractionKey }

func (f Fraction) SetNumerator(n int) Fraction {
	f.Numerator = clampInt(n, 0, f.Denominator)
	return f
}

// SetDenominator pulls the numerator down when the whole shrinks below it.
// Growing the whole again leaves the numerator where it is.
func (f Fraction) SetDenominator(d int) Fraction {
	f.Denominator = clampInt(d, 1, MaxDenominator)
	if f.Numerator > f.Denominator {
		f.Numerator = f.Denominator
	}
	return f
}

func (f Fraction) Percent() int {
	return int(math.Round(float64(f.Numerator) / float64(f.Denominator) * 100))
}

// Parts reports, for each part of the whole, whether it is shaded.
func (f Fraction) Parts() []bool {
	parts := make([]bool, f.Denominator)
	for i := range parts {
		parts[i] = i < f.Numerator
	}
	return parts
}

func (f Fraction) Controls() []Control {
	return []Control{
		{Label: "Numerator", Value: float64(f.Numerator), Min: 0, Max: float64(f.Denominator), Step: 1},
		{Label: "Denominator", Value: float64(f.Denominator), Min: 1, Max: MaxDenominator, Step: 1},
	}
}

func (f Fraction) Nudge(control, steps int) Model {
	switch control {
	case 0:
		return f.SetNumerator(f.Numerator + steps)
	case 1:
		return f.SetDenominator(f.Denominator + steps)
	}
	return f
}

func (f Fraction) Reset() Model { return NewFraction() }
