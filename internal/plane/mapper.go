package plane

import "fmt"

// Axis is a logical coordinate range.
type Axis struct {
	Min float64
	Max float64
}

func (a Axis) span() float64 { return a.Max - a.Min }

// Mapper converts logical (x, y) coordinates into pixel space. The vertical
// axis is inverted: larger y maps to a smaller pixel row.
type Mapper struct {
	X       Axis
	Y       Axis
	Width   float64
	Height  float64
	Padding float64
}

// NewMapper rejects degenerate ranges and paddings that leave no drawable
// area, so MapX and MapY never divide by zero.
func NewMapper(x, y Axis, width, height, padding float64) (Mapper, error) {
	if !(x.Max > x.Min) {
		return Mapper{}, fmt.Errorf("degenerate x range [%g, %g]", x.Min, x.Max)
	}
	if !(y.Max > y.Min) {
		return Mapper{}, fmt.Errorf("degenerate y range [%g, %g]", y.Min, y.Max)
	}
	if padding < 0 {
		return Mapper{}, fmt.Errorf("negative padding %g", padding)
	}
	if width-2*padding <= 0 || height-2*padding <= 0 {
		return Mapper{}, fmt.Errorf("padding %g leaves no drawable area in %gx%g", padding, width, height)
	}
	return Mapper{X: x, Y: y, Width: width, Height: height, Padding: padding}, nil
}

// Default is the 400x400 plane with 40px padding over [-5, 5] on both axes.
func Default() Mapper {
	return Mapper{
		X:       Axis{Min: -5, Max: 5},
		Y:       Axis{Min: -5, Max: 5},
		Width:   400,
		Height:  400,
		Padding: 40,
	}
}

func (m Mapper) MapX(v float64) float64 {
	p0, p1 := m.Padding, m.Width-m.Padding
	return p0 + (v-m.X.Min)/m.X.span()*(p1-p0)
}

func (m Mapper) MapY(v float64) float64 {
	p0, p1 := m.Height-m.Padding, m.Padding
	return p0 + (v-m.Y.Min)/m.Y.span()*(p1-p0)
}

func (m Mapper) Map(x, y float64) (float64, float64) {
	return m.MapX(x), m.MapY(y)
}

// ContainsX reports whether v lies inside the logical x range.
func (m Mapper) ContainsX(v float64) bool { return v >= m.X.Min && v <= m.X.Max }

func (m Mapper) ContainsY(v float64) bool { return v >= m.Y.Min && v <= m.Y.Max }
