package ui

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"gedmath/internal/plane"
	"gedmath/internal/widget"
)

func (r *Root) renderWidget(width, height int) []string {
	width = max(1, width)
	height = max(1, height)
	var lines []string
	switch m := r.lesson.Widget.(type) {
	case widget.Fraction:
		lines = r.renderFraction(m, width)
	case widget.EquationSteps:
		lines = r.renderEquation(m, width)
	case widget.Linear:
		lines = r.renderLinear(m, width, height)
	case widget.RightTriangle:
		lines = r.renderTriangle(m, width, height)
	case widget.Statistics:
		lines = r.renderStatistics(m, width, height)
	case widget.Placeholder:
		lines = r.renderPlaceholder(m, width, height)
	case nil:
		lines = []string{r.theme.Muted.Render("Nothing to show.")}
	default:
		lines = []string{r.theme.Muted.Render("No view for " + m.Key())}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return lines
}

// controlValueText is the number printed to the right of a slider.
func controlValueText(m widget.Model, c widget.Control) string {
	if eq, ok := m.(widget.EquationSteps); ok {
		return fmt.Sprintf("%d/%d", eq.Cursor()+1, eq.Len())
	}
	return plane.FormatNumber(c.Value)
}

func (r *Root) renderFraction(f widget.Fraction, width int) []string {
	parts := f.Parts()
	cell := max(1, min(6, (width-2)/max(1, len(parts))-1))
	on, off := "█", "░"
	if r.ascii {
		on, off = "#", "."
	}
	var row strings.Builder
	for i, shaded := range parts {
		if i > 0 {
			row.WriteString(" ")
		}
		if shaded {
			row.WriteString(r.theme.ToneStyle(plane.ToneBlue).Render(strings.Repeat(on, cell)))
		} else {
			row.WriteString(r.theme.Muted.Render(strings.Repeat(off, cell)))
		}
	}
	blocks := row.String()

	bar := r.topicBar(lipgloss.Color(r.theme.Palette.Gold), max(8, width-8)).ViewAs(float64(f.Percent()) / 100)

	return []string{
		"",
		r.theme.PanelTitle.Render(fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)),
		"",
		blocks,
		blocks,
		blocks,
		"",
		r.theme.Muted.Render(fmt.Sprintf("%d out of %d equal parts are shaded", f.Numerator, f.Denominator)),
		"",
		bar + " " + r.theme.Accent.Render(fmt.Sprintf("%d%%", f.Percent())),
	}
}

func (r *Root) renderEquation(e widget.EquationSteps, width int) []string {
	lines := []string{""}
	marker := r.glyph("▸", ">")
	hook := r.glyph("↳", "->")
	for _, s := range e.Revealed() {
		switch {
		case !s.Visible:
			lines = append(lines, "  "+r.theme.ToneStyle(plane.ToneGrid).Render(trimForWidth(s.Expression, width-2)))
		case s.Current:
			lines = append(lines, r.theme.Accent.Render(marker+" "+trimForWidth(s.Expression, width-2)))
		default:
			lines = append(lines, "  "+r.theme.PanelBody.Render(trimForWidth(s.Expression, width-2)))
		}
		if s.Visible && s.Annotation != "" {
			lines = append(lines, "    "+r.theme.Muted.Render(trimForWidth(hook+" "+s.Annotation, width-4)))
		}
		lines = append(lines, "")
	}
	if e.Len() > 0 {
		status := fmt.Sprintf("Step %d of %d", e.Cursor()+1, e.Len())
		if e.AtEnd() {
			status = r.theme.Pass.Render(status + "  " + r.glyph("✓", "done"))
		}
		lines = append(lines, status)
	}
	return lines
}

func (r *Root) renderLinear(l widget.Linear, width, height int) []string {
	lines := r.plot(l.Scene(), width, height-3)
	return append(lines,
		"",
		r.theme.Accent.Render(l.Equation()),
		r.theme.Muted.Render(l.Trend().String()),
	)
}

func (r *Root) renderTriangle(t widget.RightTriangle, width, height int) []string {
	extra := 4
	if t.FamousTriple() {
		extra = 5
	}
	lines := r.plot(t.Scene(), width, height-extra)
	a2, b2, c2 := t.Squares()
	lines = append(lines,
		r.theme.PanelTitle.Render(r.glyph("a² + b² = c²", "a^2 + b^2 = c^2")),
		fmt.Sprintf("%s + %s = %s",
			r.theme.ToneStyle(plane.ToneRed).Render(fmt.Sprint(a2)),
			r.theme.ToneStyle(plane.ToneGreen).Render(fmt.Sprint(b2)),
			r.theme.ToneStyle(plane.ToneGold).Render(fmt.Sprint(c2))),
		"c = "+r.theme.ToneStyle(plane.ToneGold).Render(t.HypotenuseText()),
	)
	if t.FamousTriple() {
		lines = append(lines, r.theme.Pass.Render(trimForWidth("3-4-5 is a famous Pythagorean triple: all whole numbers!", width)))
	}
	return lines
}

// plot draws a scene on a character canvas roughly twice as wide as tall,
// so a unit reads the same along both axes.
func (r *Root) plot(s plane.Scene, width, height int) []string {
	rows := max(5, height)
	cols := min(width, 2*(rows-1)+1)
	if cols < 5 {
		return []string{r.theme.Muted.Render("(too narrow to plot)")}
	}
	glyphs := plane.UnicodeGlyphs
	if r.ascii {
		glyphs = plane.ASCIIGlyphs
	}
	canvas, err := plane.NewCanvas(cols, rows, s.X, s.Y, glyphs)
	if err != nil {
		r.logger.Debug("ui.plot", "err", err)
		return []string{r.theme.Muted.Render("(cannot plot)")}
	}
	canvas.Draw(s)
	pad := strings.Repeat(" ", max(0, (width-cols)/2))
	out := canvas.Lines(func(tone plane.Tone, seg string) string {
		return r.theme.ToneStyle(tone).Render(seg)
	})
	for i := range out {
		out[i] = pad + out[i]
	}
	return out
}

func (r *Root) renderStatistics(s widget.Statistics, width, height int) []string {
	bars := s.Bars()
	chartH := max(3, height-7)
	colW := 3
	if len(bars)*(colW+1) > width {
		colW = max(1, width/max(1, len(bars))-1)
	}
	fill := "█"
	if r.ascii {
		fill = "#"
	}

	lines := make([]string, 0, height)
	data := make([]string, len(bars))
	for i, b := range bars {
		data[i] = fmt.Sprint(b.Value)
	}
	lines = append(lines, r.theme.Muted.Render(trimForWidth("Data set: ["+strings.Join(data, ", ")+"]", width)))

	for level := chartH; level >= 1; level-- {
		var row strings.Builder
		for i, b := range bars {
			if i > 0 {
				row.WriteString(" ")
			}
			filled := int(math.Round(b.Height * float64(chartH)))
			if b.Value > 0 && filled == 0 {
				filled = 1
			}
			if filled >= level {
				tone := plane.ToneBlue
				if b.Mode {
					tone = plane.TonePurple
				}
				row.WriteString(r.theme.ToneStyle(tone).Render(strings.Repeat(fill, colW)))
			} else {
				row.WriteString(strings.Repeat(" ", colW))
			}
		}
		lines = append(lines, row.String())
	}

	var values, marks strings.Builder
	for i, b := range bars {
		if i > 0 {
			values.WriteString(" ")
			marks.WriteString(" ")
		}
		values.WriteString(padRune(centerText(fmt.Sprint(b.Value), colW), colW))
		if b.Selected {
			marks.WriteString(r.theme.Accent.Render(centerText("^", colW)))
		} else {
			marks.WriteString(strings.Repeat(" ", colW))
		}
	}
	lines = append(lines, values.String(), marks.String())

	mean, median := s.Mean(), s.Median()
	if r.lesson.Mean != nil {
		mean = r.lesson.Mean.Display()
	}
	if r.lesson.Median != nil {
		median = r.lesson.Median.Display()
	}
	modes := make([]string, 0, len(s.Mode()))
	for _, v := range s.Mode() {
		modes = append(modes, fmt.Sprint(v))
	}
	lines = append(lines,
		"",
		r.theme.ToneStyle(plane.ToneBlue).Render("Mean   ")+plane.FormatNumber(mean)+r.theme.Muted.Render("  sum all values, divide by count"),
		r.theme.ToneStyle(plane.ToneGreen).Render("Median ")+plane.FormatNumber(median)+r.theme.Muted.Render("  middle value when sorted"),
		r.theme.ToneStyle(plane.TonePurple).Render("Mode   ")+strings.Join(modes, ", ")+r.theme.Muted.Render("  most frequent value"),
	)
	for i := range lines {
		lines[i] = trimStyled(lines[i], width)
	}
	return lines
}

func (r *Root) renderPlaceholder(p widget.Placeholder, width, height int) []string {
	lines := make([]string, 0, height)
	for i := 0; i < max(0, height/3); i++ {
		lines = append(lines, "")
	}
	lines = append(lines,
		centerText(r.spin.View(), width),
		"",
		centerText(r.theme.PanelTitle.Render(p.Message()), width),
		"",
		centerText(r.theme.Muted.Render(trimForWidth(p.Detail(), width)), width),
	)
	return lines
}

func centerText(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
