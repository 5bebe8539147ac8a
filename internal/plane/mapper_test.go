package plane

import (
	"strings"
	"testing"
)

func TestDefaultMapperEndpoints(t *testing.T) {
	m := Default()
	if got := m.MapX(-5); got != 40 {
		t.Fatalf("expected x min to map to 40, got %v", got)
	}
	if got := m.MapX(5); got != 360 {
		t.Fatalf("expected x max to map to 360, got %v", got)
	}
	if got := m.MapY(-5); got != 360 {
		t.Fatalf("expected y min to map to the bottom edge, got %v", got)
	}
	if got := m.MapY(5); got != 40 {
		t.Fatalf("expected y max to map to the top edge, got %v", got)
	}
	if x, y := m.Map(0, 0); x != 200 || y != 200 {
		t.Fatalf("expected origin at center, got (%v, %v)", x, y)
	}
}

func TestMapperIsMonotonic(t *testing.T) {
	m, err := NewMapper(Axis{Min: -2, Max: 7}, Axis{Min: 0, Max: 3}, 90, 60, 5)
	if err != nil {
		t.Fatalf("new mapper: %v", err)
	}
	prevX, prevY := m.MapX(-2), m.MapY(0)
	for v := -1.5; v <= 7; v += 0.5 {
		x := m.MapX(v)
		if x <= prevX {
			t.Fatalf("x mapping not increasing at %v: %v <= %v", v, x, prevX)
		}
		prevX = x
	}
	for v := 0.25; v <= 3; v += 0.25 {
		y := m.MapY(v)
		if y >= prevY {
			t.Fatalf("y mapping not decreasing at %v: %v >= %v", v, y, prevY)
		}
		prevY = y
	}
}

func TestMapperIsReferentiallyTransparent(t *testing.T) {
	m := Default()
	a, b := m.MapX(1.25), m.MapX(1.25)
	if a != b {
		t.Fatalf("expected identical results, got %v and %v", a, b)
	}
}

func TestNewMapperRejectsDegenerateRanges(t *testing.T) {
	if _, err := NewMapper(Axis{Min: 1, Max: 1}, Axis{Min: 0, Max: 1}, 10, 10, 0); err == nil {
		t.Fatalf("expected degenerate x range error")
	}
	if _, err := NewMapper(Axis{Min: 0, Max: 1}, Axis{Min: 2, Max: -2}, 10, 10, 0); err == nil {
		t.Fatalf("expected inverted y range error")
	}
	if _, err := NewMapper(Axis{Min: 0, Max: 1}, Axis{Min: 0, Max: 1}, 10, 10, 5); err == nil {
		t.Fatalf("expected padding error")
	}
}

func TestCanvasDrawsAxesAndOrigin(t *testing.T) {
	c, err := NewCanvas(21, 11, Axis{Min: -5, Max: 5}, Axis{Min: -5, Max: 5}, ASCIIGlyphs)
	if err != nil {
		t.Fatalf("new canvas: %v", err)
	}
	c.Draw(Scene{Grid: true})
	if got := c.Cell(10, 5).Ch; got != '+' {
		t.Fatalf("expected origin glyph at center, got %q", got)
	}
	if got := c.Cell(0, 5).Ch; got != '-' {
		t.Fatalf("expected x axis at left edge, got %q", got)
	}
	if got := c.Cell(10, 0).Ch; got != '|' {
		t.Fatalf("expected y axis at top edge, got %q", got)
	}
	if got := c.Cell(0, 0).Ch; got != '.' {
		t.Fatalf("expected lattice dot at corner, got %q", got)
	}
}

func TestCanvasDrawsDiagonalLineAcrossGrid(t *testing.T) {
	c, err := NewCanvas(11, 11, Axis{Min: -5, Max: 5}, Axis{Min: -5, Max: 5}, ASCIIGlyphs)
	if err != nil {
		t.Fatalf("new canvas: %v", err)
	}
	c.Draw(Scene{Lines: []Line{{X1: -5, Y1: -5, X2: 5, Y2: 5, Tone: ToneBlue}}})
	for i := 0; i < 11; i++ {
		cell := c.Cell(i, 10-i)
		if cell.Ch != '/' || cell.Tone != ToneBlue {
			t.Fatalf("expected rising stroke at (%d,%d), got %q tone %v", i, 10-i, cell.Ch, cell.Tone)
		}
	}
}

func TestCanvasClipsLinesLeavingTheRange(t *testing.T) {
	c, err := NewCanvas(11, 11, Axis{Min: -5, Max: 5}, Axis{Min: -5, Max: 5}, ASCIIGlyphs)
	if err != nil {
		t.Fatalf("new canvas: %v", err)
	}
	c.Draw(Scene{Lines: []Line{{X1: -5, Y1: -19, X2: 5, Y2: 11}}})
	if len(strings.Split(c.String(), "\n")) != 11 {
		t.Fatalf("expected canvas to keep its row count")
	}
}

func TestCanvasLabelsPoints(t *testing.T) {
	c, err := NewCanvas(41, 11, Axis{Min: -5, Max: 5}, Axis{Min: -5, Max: 5}, ASCIIGlyphs)
	if err != nil {
		t.Fatalf("new canvas: %v", err)
	}
	c.Draw(Scene{Points: []Point{{X: 0, Y: 0, Label: true}, {X: 9, Y: 0}}})
	out := c.String()
	if !strings.Contains(out, "o (0, 0)") {
		t.Fatalf("expected labelled origin point, got:\n%s", out)
	}
	if strings.Count(out, "o") != 1 {
		t.Fatalf("expected off-canvas point to be skipped, got:\n%s", out)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{2: "2", 2.5: "2.5", -1.5: "-1.5", 0: "0"}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
