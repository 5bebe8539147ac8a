package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	return i
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// padRune fits a possibly styled line to exactly width cells.
func padRune(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\t", "    ")
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

// trimForWidth drops styling and newlines, then truncates with an ellipsis.
func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	plain := strings.ReplaceAll(ansi.Strip(s), "\n", " ")
	if runewidth.StringWidth(plain) <= width {
		return plain
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(plain, width, "…")
}

// trimStyled truncates without losing the styling of what is kept.
func trimStyled(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// spread places left and right at the two edges of a width-cell line.
func spread(left, right string, width int) string {
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return padRune(left+" "+right, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// fitHeight pads or cuts a block to exactly h lines.
func fitHeight(block string, h int) string {
	lines := strings.Split(block, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// composeOverlayAt paints overlay over base with its top-left corner at
// (startRow, startCol). Rows above the screen are clipped, so a negative
// startRow shows only the lower part of the overlay. Styling on both sides
// of the overlay is kept.
func composeOverlayAt(base, overlay string, cols, rows, startRow, startCol int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < rows {
		baseLines = append(baseLines, "")
	}
	baseLines = baseLines[:rows]
	for i := range baseLines {
		baseLines[i] = padRune(baseLines[i], cols)
	}

	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")
	ow := 1
	for _, line := range overlayLines {
		ow = max(ow, ansi.StringWidth(line))
	}
	if startCol < 0 {
		startCol = 0
	}
	ow = min(ow, cols-startCol)
	if ow <= 0 {
		return strings.Join(baseLines, "\n")
	}

	for i, line := range overlayLines {
		row := startRow + i
		if row < 0 || row >= rows {
			continue
		}
		dst := baseLines[row]
		left := ansi.Truncate(dst, startCol, "")
		right := ansi.TruncateLeft(dst, startCol+ow, "")
		baseLines[row] = left + "\x1b[0m" + padRune(line, ow) + "\x1b[0m" + right
	}
	return strings.Join(baseLines, "\n")
}
