package widget

const ComingSoon = "This lesson is coming soon!"

// Placeholder stands in for any content key without a widget.
type Placeholder struct {
	ContentKey string
}

func NewPlaceholder(key string) Placeholder { return Placeholder{ContentKey: key} }

func (p Placeholder) Key() string          { return p.ContentKey }
func (p Placeholder) Controls() []Control  { return nil }
func (p Placeholder) Nudge(int, int) Model { return p }
func (p Placeholder) Reset() Model         { return p }
func (p Placeholder) Message() string      { return ComingSoon }

func (p Placeholder) Detail() string {
	return "We're working hard to create beautiful visualizations for this topic."
}
