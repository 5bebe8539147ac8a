package ui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/progress"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	humanize "github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"gedmath/internal/widget"
)

func (r *Root) renderScreen() string {
	header := r.headerText()
	status := r.statusText()
	bodyH := max(3, r.rows-lipgloss.Height(header)-lipgloss.Height(status))

	var body string
	switch r.screen {
	case ScreenTopic:
		body = r.renderTopic(r.cols, bodyH)
	case ScreenLesson:
		body = r.renderLesson(r.cols, bodyH)
	default:
		body = r.renderHome(r.cols, bodyH)
	}
	return header + "\n" + body + "\n" + status
}

func (r *Root) renderTooSmall() string {
	w, h := r.cols, r.rows
	msg := []string{
		"Terminal too small",
		fmt.Sprintf("Current: %dx%d", w, h),
		fmt.Sprintf("Minimum: %dx%d", MinCols, MinRows),
		"Resize the terminal to continue.",
	}
	panel := r.drawPanel("Resize Required", msg, min(60, w), min(8, h))
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, panel)
}

func (r *Root) headerText() string {
	inner := max(1, r.cols-2)
	pi := "π "
	if r.ascii {
		pi = ""
	}
	left := pi + r.header.Title
	right := fmt.Sprintf("%d/%d lessons", r.header.Completed, r.header.Total)
	if r.debug {
		right = fmt.Sprintf("%s | %dx%d %v", right, r.cols, r.rows, r.layout)
	}
	top := spread(trimForWidth(left, max(1, inner-ansi.StringWidth(right)-1)), right, inner)

	barW := min(24, max(8, inner/4))
	bar := r.bar
	bar.SetWidth(barW)
	tagline := trimForWidth(r.header.Tagline, max(1, inner-barW-1))
	second := spread(r.theme.Tagline.Render(tagline), bar.ViewAs(r.header.Progress), inner)

	return r.theme.Header.Width(max(1, r.cols)).Render(top) + "\n" + " " + second + " "
}

func (r *Root) statusText() string {
	h := r.help
	h.SetWidth(max(1, r.cols-2))
	var keys string
	switch {
	case r.statsOpen:
		keys = h.View(r.statsKeys)
	case r.screen == ScreenLesson:
		keys = h.View(r.lessonKeys)
	default:
		keys = h.View(r.browseKeys)
	}
	lines := strings.Split(keys, "\n")
	if r.statusFlash != "" {
		lines[len(lines)-1] = ansi.Strip(lines[len(lines)-1]) + " | " + r.statusFlash
	}
	for i, line := range lines {
		lines[i] = r.theme.Status.Width(max(1, r.cols)).Render(trimForWidth(line, max(1, r.cols-2)))
	}
	return strings.Join(lines, "\n")
}

func (r *Root) renderHome(w, h int) string {
	title := r.theme.PanelTitle.Render("Choose a Topic")
	sub := r.theme.Muted.Render("Master GED Math through beautiful, intuitive visualizations")
	intro := lipgloss.JoinVertical(lipgloss.Center, title, sub)
	intro = lipgloss.PlaceHorizontal(w, lipgloss.Center, intro)

	if len(r.home.Topics) == 0 {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Top, intro+"\n\n"+r.theme.Muted.Render("No topics loaded."))
	}

	cardW := max(24, (w-4)/2)
	cards := make([]string, len(r.home.Topics))
	for i, t := range r.home.Topics {
		cards[i] = r.topicCard(t, cardW, i == r.topicIndex)
	}
	rows := make([]string, 0, (len(cards)+1)/2)
	for i := 0; i < len(cards); i += 2 {
		if i+1 < len(cards) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i], " ", cards[i+1]))
		} else {
			rows = append(rows, cards[i])
		}
	}
	grid := lipgloss.PlaceHorizontal(w, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Left, rows...))
	out := intro + "\n\n" + grid
	return fitHeight(out, h)
}

func (r *Root) topicCard(t TopicSummary, width int, selected bool) string {
	main, dim := r.theme.TopicColors(t.Color)
	border := lipgloss.RoundedBorder()
	if r.ascii {
		border = lipgloss.ASCIIBorder()
	}
	edge := dim
	if selected {
		edge = main
	}
	inner := max(4, width-4)

	icon := t.Icon
	if r.ascii || icon == "" {
		icon = ">"
	}
	name := lipgloss.NewStyle().Foreground(main).Bold(selected).Render(icon + " " + t.Title)
	meta := r.theme.Muted.Render(fmt.Sprintf("%d lessons • %d completed", t.LessonCount, t.Completed))
	if r.ascii {
		meta = r.theme.Muted.Render(fmt.Sprintf("%d lessons - %d completed", t.LessonCount, t.Completed))
	}
	ratio := 0.0
	if t.LessonCount > 0 {
		ratio = float64(t.Completed) / float64(t.LessonCount)
	}
	bar := r.topicBar(main, inner).ViewAs(ratio)

	body := strings.Join([]string{
		trimStyled(name, inner),
		trimStyled(meta, inner),
		bar,
	}, "\n")
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(edge).
		Padding(0, 1).
		Width(width).
		Render(body)
}

func (r *Root) topicBar(c color.Color, width int) progress.Model {
	opts := []progress.Option{
		progress.WithWidth(max(4, width)),
		progress.WithColors(c),
		progress.WithoutPercentage(),
	}
	if r.ascii {
		opts = append(opts, progress.WithFillCharacters('#', '.'))
	}
	return progress.New(opts...)
}

func (r *Root) renderTopic(w, h int) string {
	main, _ := r.theme.TopicColors(r.topic.Color)
	accent := lipgloss.NewStyle().Foreground(main).Bold(true)

	lines := []string{
		accent.Render(firstNonEmpty(r.topic.Icon, ">") + " " + r.topic.Title),
		r.theme.Muted.Render("Select a lesson to begin learning"),
		"",
	}
	for i, row := range r.topic.Lessons {
		badge := fmt.Sprintf("%d", i+1)
		if row.Completed {
			badge = r.theme.Pass.Render(r.glyph("✓", "x"))
		}
		line := fmt.Sprintf(" %s  %s", badge, row.Title)
		if i == r.lessonIndex {
			line = r.theme.Selected.Render(padRune(fmt.Sprintf("%s %s  %s", r.glyph("▸", ">"), ansi.Strip(badge), row.Title), max(1, w-6)))
		}
		lines = append(lines, line, "")
	}
	if len(r.topic.Lessons) == 0 {
		lines = append(lines, r.theme.Muted.Render("No lessons in this topic."))
	}
	lines = append(lines, r.theme.Muted.Render(r.glyph("←", "<")+" esc back to topics"))
	return r.drawPanel(r.topic.Title, lines, w, h)
}

func (r *Root) renderLesson(w, h int) string {
	leftW := w / 2
	if r.layout == LayoutWide {
		leftW = w * 3 / 5
	}
	rightW := max(20, w-leftW)

	visual := r.renderWidget(leftW-2, h-2)
	left := r.drawPanel(r.lesson.Title, visual, leftW, h)
	right := r.drawPanel(r.lesson.TopicTitle, r.lessonSideLines(rightW-2, h-2), rightW, h)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (r *Root) lessonSideLines(width, height int) []string {
	main, _ := r.theme.TopicColors(r.lesson.Color)
	lines := []string{
		lipgloss.NewStyle().Foreground(main).Bold(true).Render(trimForWidth(r.lesson.Heading, width)),
		"",
	}

	if r.lesson.Widget != nil {
		for i, c := range r.lesson.Widget.Controls() {
			lines = append(lines, r.controlLine(i, c, width))
		}
		if len(r.lesson.Widget.Controls()) > 0 {
			lines = append(lines, "")
		}
	}

	if r.lesson.Completed {
		lines = append(lines, r.theme.Pass.Render(r.glyph("✓", "[x]")+" Completed"))
	} else {
		lines = append(lines, r.theme.Selected.Render(" "+r.glyph("✓", "[ ]")+" Mark as Complete "))
	}
	lines = append(lines, "")

	footer := r.theme.Muted.Render(trimForWidth(r.glyph("←", "<")+" Back to "+r.lesson.TopicTitle, width))
	room := height - len(lines) - 2
	if room > 0 && strings.TrimSpace(r.lesson.IntroMD) != "" {
		intro := r.renderMarkdown(r.lesson.IntroMD, width)
		if len(intro) > room {
			intro = intro[:room]
		}
		lines = append(lines, intro...)
	}
	for len(lines) < height-1 {
		lines = append(lines, "")
	}
	return append(lines, footer)
}

func (r *Root) renderMarkdown(md string, width int) []string {
	if width < 8 {
		return strings.Split(wordwrap.String(md, max(1, width)), "\n")
	}
	tr, ok := r.markdown[width]
	if !ok {
		var err error
		tr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.markdownStyle()),
			glamour.WithWordWrap(width-4),
		)
		if err != nil {
			r.logger.Debug("ui.markdown_renderer", "err", err)
			tr = nil
		}
		r.markdown[width] = tr
	}
	if tr == nil {
		return strings.Split(wordwrap.String(md, width), "\n")
	}
	out, err := tr.Render(md)
	if err != nil {
		return strings.Split(wordwrap.String(md, width), "\n")
	}
	return strings.Split(strings.Trim(out, "\n"), "\n")
}

func (r *Root) markdownStyle() string {
	switch {
	case r.ascii:
		return "ascii"
	case r.styleVariant == "paper":
		return "light"
	default:
		return "dark"
	}
}

func (r *Root) controlLine(i int, c widget.Control, width int) string {
	marker := "  "
	if i == r.focus {
		marker = r.theme.Accent.Render(r.glyph("▸", ">")) + " "
	}
	label := runewidth.FillRight(trimForWidth(c.Label, 14), 14)
	value := controlValueText(r.lesson.Widget, c)
	trackW := max(4, width-2-14-1-ansi.StringWidth(value)-1)
	track := r.slider(c, trackW, i == r.focus)
	return marker + label + " " + track + " " + value
}

func (r *Root) slider(c widget.Control, width int, focused bool) string {
	span := c.Max - c.Min
	pos := 0
	if span > 0 {
		pos = int(math.Round((c.Value - c.Min) / span * float64(width-1)))
	}
	pos = max(0, min(width-1, pos))
	fill, rest, knob := "━", "─", "●"
	if r.ascii {
		fill, rest, knob = "=", "-", "o"
	}
	style := r.theme.Muted
	if focused {
		style = r.theme.Accent
	}
	return style.Render(strings.Repeat(fill, pos)+knob) + r.theme.Muted.Render(strings.Repeat(rest, width-pos-1))
}

func (r *Root) composeStats(base string) string {
	panel := r.renderStatsPanel()
	ph := lipgloss.Height(panel)
	pw := lipgloss.Width(panel)
	final := max(0, (r.rows-ph)/2)
	row := int(math.Round(float64(final+ph)*r.overlayPos)) - ph
	col := max(0, (r.cols-pw)/2)
	return composeOverlayAt(base, panel, r.cols, r.rows, row, col)
}

func (r *Root) renderStatsPanel() string {
	w := min(60, max(30, r.cols-8))
	inner := w - 2
	s := r.stats

	started := "just now"
	if !s.StartedAt.IsZero() {
		started = humanize.Time(s.StartedAt)
	}
	ratio := 0.0
	if s.Total > 0 {
		ratio = float64(s.Completed) / float64(s.Total)
	}
	bar := r.bar
	bar.SetWidth(max(8, inner-4))

	lines := []string{
		r.theme.Muted.Render("Started ") + started,
		fmt.Sprintf("Completed %d/%d lessons", s.Completed, s.Total),
		" " + bar.ViewAs(ratio),
		fmt.Sprintf("Lesson visits %d", s.Visits),
		fmt.Sprintf("Interactions %d", s.Interactions),
	}
	if s.LastLesson != "" {
		lines = append(lines, "Last lesson "+r.theme.Accent.Render(s.LastLesson))
	}
	if len(s.CompletedTitles) > 0 {
		lines = append(lines, "", r.theme.PanelTitle.Render("Finished"))
		for _, title := range s.CompletedTitles {
			lines = append(lines, " "+r.theme.Pass.Render(r.glyph("✓", "x"))+" "+title)
		}
	}
	if r.debug && s.SessionID != "" {
		lines = append(lines, "", r.theme.Muted.Render("session "+s.SessionID))
	}
	lines = append(lines, "", r.theme.Muted.Render("esc to close"))
	h := min(len(lines)+2, max(3, r.rows-2))
	return r.drawPanel("Session", lines, w, h)
}

func (r *Root) drawPanel(title string, lines []string, width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	h := "─"
	v := "│"
	tl := "╭"
	tr := "╮"
	bl := "╰"
	br := "╯"
	if r.ascii {
		h = "-"
		v = "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := tl + strings.Repeat(h, innerW) + tr
	if title != "" && innerW > 4 {
		t := " " + trimForWidth(title, innerW-4) + " "
		fillW := innerW - 1 - runewidth.StringWidth(t)
		top = r.theme.PanelBorder.Render(tl+h) + r.theme.PanelTitle.Render(t) + r.theme.PanelBorder.Render(strings.Repeat(h, max(0, fillW))+tr)
	} else {
		top = r.theme.PanelBorder.Render(top)
	}

	out := make([]string, 0, height)
	out = append(out, top)
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		line = padRune(line, innerW)
		out = append(out, r.theme.PanelBorder.Render(v)+r.theme.PanelBody.Render(line)+r.theme.PanelBorder.Render(v))
	}
	out = append(out, r.theme.PanelBorder.Render(bl+strings.Repeat(h, innerW)+br))
	return strings.Join(out, "\n")
}

func (r *Root) glyph(unicode, ascii string) string {
	if r.ascii {
		return ascii
	}
	return unicode
}

var _ help.KeyMap = browseKeyMap{}
