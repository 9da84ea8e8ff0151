package popup

// Style selects the popup chrome.
type Style uint8

const (
	// StyleWithArrow renders the standard chrome with a pointing arrow.
	StyleWithArrow Style = iota
	// StyleBasic renders without an arrow.
	StyleBasic
)

// String returns "with-arrow" or "basic".
func (s Style) String() string {
	if s == StyleBasic {
		return "basic"
	}
	return "with-arrow"
}

// ContentSource selects where the popup body comes from.
type ContentSource uint8

const (
	// ContentText renders the configured header and text.
	ContentText ContentSource = iota
	// ContentTemplated defers the body to a host-supplied subtree.
	ContentTemplated
)

// String returns "text" or "templated".
func (s ContentSource) String() string {
	if s == ContentTemplated {
		return "templated"
	}
	return "text"
}

// RenderDescriptor tells the host rendering layer what to draw. It is a
// pure projection of the configuration; the controller's open/closed
// state and placement classes are exposed separately.
type RenderDescriptor struct {
	Style      Style
	Content    ContentSource
	Header     string
	Text       string
	ShowHeader bool
}

// Describe projects a configuration into a render descriptor.
func Describe(cfg Config) RenderDescriptor {
	d := RenderDescriptor{
		Style:   StyleWithArrow,
		Content: ContentText,
		Header:  cfg.Header,
		Text:    cfg.Text,
	}
	if cfg.Basic {
		d.Style = StyleBasic
	}
	if cfg.CustomContent {
		d.Content = ContentTemplated
		d.Header = ""
		d.Text = ""
		return d
	}
	d.ShowHeader = cfg.Header != ""
	return d
}
