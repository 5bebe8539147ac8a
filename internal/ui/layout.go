package ui

const (
	MinCols = 80
	MinRows = 24
)

func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < MinCols || rows < MinRows {
		return LayoutTooSmall
	}
	if cols >= 120 && rows >= 30 {
		return LayoutWide
	}
	return LayoutMedium
}
