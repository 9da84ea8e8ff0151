package popup

import (
	"time"

	"github.com/vango-go/popup/pkg/position"
	"github.com/vango-go/popup/pkg/transition"
)

// Default configuration values.
const (
	DefaultTransition         = "scale"
	DefaultTransitionDuration = 200 * time.Millisecond
)

// Config describes one open/close cycle of a popup. It is read-only for
// the lifetime of a cycle; replace it between cycles with
// Controller.SetConfig.
type Config struct {
	// Placement is the preferred "direction alignment" token, e.g.
	// "top left". Invalid values fall back to position.DefaultPlacement.
	Placement string

	// Transition is the named effect used for reveal and hide.
	Transition string

	// TransitionDuration is the nominal effect length. It also sets the
	// delay before the close lifecycle event fires and the retry delay
	// for focus transfer.
	TransitionDuration time.Duration

	// Inverted renders the popup with inverted colors.
	Inverted bool

	// Basic renders the popup without its arrow.
	Basic bool

	// Header is an optional title shown above the text content.
	Header string

	// Text is the plain content. Ignored when CustomContent is set.
	Text string

	// CustomContent marks the popup as host-templated: the host supplies
	// the content subtree and Header/Text are not rendered.
	CustomContent bool
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if !position.Valid(c.Placement) {
		c.Placement = position.DefaultPlacement
	}
	if c.Transition == "" || !transition.Known(c.Transition) {
		c.Transition = DefaultTransition
	}
	if c.TransitionDuration <= 0 {
		c.TransitionDuration = DefaultTransitionDuration
	}
	return c
}
