package popup

import "github.com/vango-go/popup/pkg/position"

// Dynamic class names driven by configuration flags.
const (
	ClassInverted = "inverted"
	ClassBasic    = "basic"
)

// Direction returns the first token of the positioner's last actual
// placement, or "" before an anchor is assigned.
func (c *Controller) Direction() string {
	dir, _ := c.splitActual()
	return dir
}

// Alignment returns the last token of the positioner's last actual
// placement, or "" before an anchor is assigned.
func (c *Controller) Alignment() string {
	_, align := c.splitActual()
	return align
}

func (c *Controller) splitActual() (string, string) {
	c.mu.Lock()
	pos := c.pos
	c.mu.Unlock()

	if pos == nil {
		return "", ""
	}
	return position.Split(pos.Actual())
}

// DynamicClasses returns the class tokens derived from the current
// placement and configuration: direction, alignment, then flag classes.
// It is recomputed on every call and never cached, so it always reflects
// the latest positioning result.
func (c *Controller) DynamicClasses() []string {
	dir, align := c.splitActual()

	c.mu.Lock()
	cfg := c.cfg
	c.mu.Unlock()

	classes := make([]string, 0, 4)
	if dir != "" {
		classes = append(classes, dir)
	}
	if align != "" {
		classes = append(classes, align)
	}
	if cfg.Inverted {
		classes = append(classes, ClassInverted)
	}
	if cfg.Basic {
		classes = append(classes, ClassBasic)
	}
	return classes
}
