package plane

import (
	"fmt"
	"math"
	"strings"
)

type Glyphs struct {
	Empty      rune
	Lattice    rune
	Horizontal rune
	Vertical   rune
	Origin     rune
	Rising     rune
	Falling    rune
	Point      rune
}

var (
	UnicodeGlyphs = Glyphs{
		Empty:      ' ',
		Lattice:    '·',
		Horizontal: '─',
		Vertical:   '│',
		Origin:     '┼',
		Rising:     '╱',
		Falling:    '╲',
		Point:      '●',
	}
	ASCIIGlyphs = Glyphs{
		Empty:      ' ',
		Lattice:    '.',
		Horizontal: '-',
		Vertical:   '|',
		Origin:     '+',
		Rising:     '/',
		Falling:    '\\',
		Point:      'o',
	}
)

type Cell struct {
	Ch   rune
	Tone Tone
}

// Canvas rasterizes a Scene into a grid of terminal cells.
type Canvas struct {
	cols   int
	rows   int
	glyphs Glyphs
	mapper Mapper
	cells  [][]Cell
}

func NewCanvas(cols, rows int, x, y Axis, glyphs Glyphs) (*Canvas, error) {
	if cols < 2 || rows < 2 {
		return nil, fmt.Errorf("canvas %dx%d is too small", cols, rows)
	}
	m, err := NewMapper(x, y, float64(cols-1), float64(rows-1), 0)
	if err != nil {
		return nil, err
	}
	c := &Canvas{cols: cols, rows: rows, glyphs: glyphs, mapper: m}
	c.Clear()
	return c, nil
}

func (c *Canvas) Clear() {
	c.cells = make([][]Cell, c.rows)
	for y := range c.cells {
		row := make([]Cell, c.cols)
		for x := range row {
			row[x] = Cell{Ch: c.glyphs.Empty}
		}
		c.cells[y] = row
	}
}

func (c *Canvas) Size() (int, int) { return c.cols, c.rows }

func (c *Canvas) Mapper() Mapper { return c.mapper }

// Cell returns the cell at a grid position; out-of-range positions are empty.
func (c *Canvas) Cell(col, row int) Cell {
	if !c.inBounds(col, row) {
		return Cell{Ch: c.glyphs.Empty}
	}
	return c.cells[row][col]
}

func (c *Canvas) Draw(s Scene) {
	if s.Grid {
		c.drawGrid()
	}
	for _, l := range s.Lines {
		c.drawLine(l)
	}
	for _, p := range s.Points {
		c.drawPoint(p)
	}
}

func (c *Canvas) drawGrid() {
	m := c.mapper
	for x := math.Ceil(m.X.Min); x <= m.X.Max; x++ {
		for y := math.Ceil(m.Y.Min); y <= m.Y.Max; y++ {
			col, row := c.cellOf(x, y)
			c.set(col, row, c.glyphs.Lattice, ToneGrid)
		}
	}
	originCol, originRow := c.cellOf(0, 0)
	if m.ContainsY(0) {
		for col := 0; col < c.cols; col++ {
			c.set(col, originRow, c.glyphs.Horizontal, ToneAxis)
		}
	}
	if m.ContainsX(0) {
		for row := 0; row < c.rows; row++ {
			c.set(originCol, row, c.glyphs.Vertical, ToneAxis)
		}
	}
	if m.ContainsX(0) && m.ContainsY(0) {
		c.set(originCol, originRow, c.glyphs.Origin, ToneAxis)
	}
}

func (c *Canvas) drawLine(l Line) {
	x0, y0 := c.cellOf(l.X1, l.Y1)
	x1, y1 := c.cellOf(l.X2, l.Y2)
	ch := c.lineGlyph(x1-x0, y1-y0)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0, ch, l.Tone)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// lineGlyph picks a stroke character from the on-screen direction. Rows grow
// downward, so a negative dy is a rising stroke.
func (c *Canvas) lineGlyph(dx, dy int) rune {
	if dy == 0 {
		return c.glyphs.Horizontal
	}
	if dx == 0 {
		return c.glyphs.Vertical
	}
	ratio := math.Abs(float64(dy)) / math.Abs(float64(dx))
	switch {
	case ratio < 0.35:
		return c.glyphs.Horizontal
	case ratio > 3:
		return c.glyphs.Vertical
	case (dx > 0) == (dy < 0):
		return c.glyphs.Rising
	default:
		return c.glyphs.Falling
	}
}

func (c *Canvas) drawPoint(p Point) {
	col, row := c.cellOf(p.X, p.Y)
	if !c.inBounds(col, row) {
		return
	}
	c.set(col, row, c.glyphs.Point, p.Tone)
	if !p.Label {
		return
	}
	label := []rune(p.LabelText())
	start := col + 2
	if start+len(label) > c.cols {
		start = col - 1 - len(label)
	}
	if start < 0 {
		return
	}
	for i, ch := range label {
		c.set(start+i, row, ch, ToneNone)
	}
}

func (c *Canvas) cellOf(x, y float64) (int, int) {
	return int(math.Round(c.mapper.MapX(x))), int(math.Round(c.mapper.MapY(y)))
}

func (c *Canvas) set(col, row int, ch rune, tone Tone) {
	if !c.inBounds(col, row) {
		return
	}
	c.cells[row][col] = Cell{Ch: ch, Tone: tone}
}

func (c *Canvas) inBounds(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// Lines renders each row, grouping runs of equal tone through style.
func (c *Canvas) Lines(style func(Tone, string) string) []string {
	out := make([]string, 0, c.rows)
	for _, row := range c.cells {
		var b strings.Builder
		runStart := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && row[i].Tone == row[runStart].Tone {
				continue
			}
			seg := make([]rune, 0, i-runStart)
			for _, cell := range row[runStart:i] {
				seg = append(seg, cell.Ch)
			}
			if style != nil {
				b.WriteString(style(row[runStart].Tone, string(seg)))
			} else {
				b.WriteString(string(seg))
			}
			runStart = i
		}
		out = append(out, b.String())
	}
	return out
}

func (c *Canvas) String() string {
	return strings.Join(c.Lines(nil), "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
