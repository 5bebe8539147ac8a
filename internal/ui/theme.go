package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"gedmath/internal/plane"
)

type Theme struct {
	Header      lipgloss.Style
	Tagline     lipgloss.Style
	Status      lipgloss.Style
	PanelTitle  lipgloss.Style
	PanelBorder lipgloss.Style
	PanelBody   lipgloss.Style
	Accent      lipgloss.Style
	Selected    lipgloss.Style
	Pass        lipgloss.Style
	Warn        lipgloss.Style
	Muted       lipgloss.Style

	Background string
	Palette    Palette
}

// Palette holds the hex colours used for plotted shapes and topic accents.
type Palette struct {
	Blue   string
	Gold   string
	Red    string
	Green  string
	Purple string
	Grid   string
	Axis   string
}

func DefaultTheme() Theme {
	return ThemeForVariant("chalkboard")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "paper":
		return paperTheme()
	case "phosphor":
		return phosphorTheme()
	default:
		return chalkboardTheme()
	}
}

func chalkboardTheme() Theme {
	bg := "#1c1c1c"
	dark := "#0d0d0d"
	cream := lipgloss.Color("#fffdd0")
	p := Palette{
		Blue:   "#58c4dd",
		Gold:   "#ffd700",
		Red:    "#fc6255",
		Green:  "#83c167",
		Purple: "#9a72ac",
		Grid:   "#333333",
		Axis:   "#888888",
	}
	return Theme{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(dark)).
			Foreground(lipgloss.Color(p.Blue)).
			Bold(true).
			Padding(0, 1),
		Tagline: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Axis)),
		Status: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Grid)).
			Foreground(cream).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Gold)).
			Bold(true),
		PanelBorder: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4a4a4a")),
		PanelBody: lipgloss.NewStyle().
			Foreground(cream),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Blue)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(dark)).
			Background(lipgloss.Color(p.Blue)),
		Pass: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Green)).
			Bold(true),
		Warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Gold)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Axis)),
		Background: bg,
		Palette:    p,
	}
}

func paperTheme() Theme {
	bg := "#f4f1e8"
	ink := lipgloss.Color("#2b2b2b")
	p := Palette{
		Blue:   "#1c758a",
		Gold:   "#b8860b",
		Red:    "#c0392b",
		Green:  "#3d8b37",
		Purple: "#6c4a7e",
		Grid:   "#d6d1c4",
		Axis:   "#7a7468",
	}
	return Theme{
		Header:      lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(p.Blue)).Bold(true).Padding(0, 1),
		Tagline:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Axis)),
		Status:      lipgloss.NewStyle().Background(lipgloss.Color(p.Grid)).Foreground(ink).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Blue)).Bold(true),
		PanelBorder: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Axis)),
		PanelBody:   lipgloss.NewStyle().Foreground(ink),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Blue)).Bold(true),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color(bg)).Background(lipgloss.Color(p.Blue)),
		Pass:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Green)).Bold(true),
		Warn:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Gold)),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Axis)),
		Background:  bg,
		Palette:     p,
	}
}

func phosphorTheme() Theme {
	deep := "#07150a"
	glow := lipgloss.Color("#c5f7c4")
	p := Palette{
		Blue:   "#9cf5a2",
		Gold:   "#e5d47a",
		Red:    "#ff6b6b",
		Green:  "#6fdc8c",
		Purple: "#b7a3e0",
		Grid:   "#12301a",
		Axis:   "#73a17a",
	}
	return Theme{
		Header:      lipgloss.NewStyle().Background(lipgloss.Color(deep)).Foreground(glow).Bold(true).Padding(0, 1),
		Tagline:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Axis)),
		Status:      lipgloss.NewStyle().Background(lipgloss.Color(p.Grid)).Foreground(glow).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Gold)).Bold(true),
		PanelBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("#1f5c2f")),
		PanelBody:   lipgloss.NewStyle().Foreground(glow),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Blue)).Bold(true),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color(deep)).Background(lipgloss.Color(p.Blue)),
		Pass:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Green)).Bold(true),
		Warn:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Gold)),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Axis)),
		Background:  deep,
		Palette:     p,
	}
}

func (t Theme) toneColor(tone plane.Tone) string {
	switch tone {
	case plane.ToneGrid:
		return t.Palette.Grid
	case plane.ToneAxis:
		return t.Palette.Axis
	case plane.ToneBlue:
		return t.Palette.Blue
	case plane.ToneGold:
		return t.Palette.Gold
	case plane.ToneRed:
		return t.Palette.Red
	case plane.ToneGreen:
		return t.Palette.Green
	case plane.TonePurple:
		return t.Palette.Purple
	}
	return ""
}

func (t Theme) ToneStyle(tone plane.Tone) lipgloss.Style {
	hex := t.toneColor(tone)
	if hex == "" {
		return t.PanelBody
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// TopicColors returns a topic colour and a dimmed variant blended toward the
// background. Invalid hex falls back to the palette blue.
func (t Theme) TopicColors(hex string) (color.Color, color.Color) {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(t.Palette.Blue)
	}
	bg, err := colorful.Hex(t.Background)
	if err != nil {
		return c, c
	}
	return c, c.BlendLab(bg, 0.55).Clamped()
}
