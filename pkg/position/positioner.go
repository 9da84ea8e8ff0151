package position

import (
	"sync"

	"github.com/vango-go/popup/pkg/dom"
)

// Positioner computes and applies a placement for a floating container
// relative to an anchor. Implementations record the placement actually
// used, which may differ from the preferred one after overflow handling.
type Positioner interface {
	// SetPreferred replaces the desired placement for subsequent updates.
	SetPreferred(placement string)

	// Actual returns the last computed placement as a two-token string,
	// or the preferred placement if Update has not run yet.
	Actual() string

	// Update recomputes coordinates from the current anchor geometry and
	// moves the container.
	Update()
}

// gap is the distance in host units kept between anchor and container.
const gap = 8

// Anchored positions a container next to an anchor element, flipping the
// direction when the preferred side would overflow the viewport and
// clamping the result inside it.
//
// Update runs on the controller's deferred-refresh timer while Actual is
// read from caller goroutines, so the mutable fields are mutex-guarded.
type Anchored struct {
	anchor    *dom.Element
	container *dom.Element
	arrowID   string

	mu        sync.Mutex
	preferred string
	actual    string
	viewport  dom.Rect
}

// NewAnchored creates a positioner for container relative to anchor. The
// arrow selector names the ID of the container's arrow element; when
// present, the container is shifted so the arrow points at the anchor's
// center. An empty selector disables arrow correction.
func NewAnchored(anchor, container *dom.Element, preferred, arrowSelector string) *Anchored {
	if !Valid(preferred) {
		preferred = DefaultPlacement
	}
	return &Anchored{
		anchor:    anchor,
		container: container,
		preferred: preferred,
		actual:    preferred,
		arrowID:   arrowSelector,
	}
}

// SetViewport sets the bounds used for flip and clamp decisions. A zero
// viewport disables overflow handling.
func (a *Anchored) SetViewport(r dom.Rect) {
	a.mu.Lock()
	a.viewport = r
	a.mu.Unlock()
}

// SetPreferred implements Positioner.
func (a *Anchored) SetPreferred(placement string) {
	if !Valid(placement) {
		return
	}
	a.mu.Lock()
	a.preferred = placement
	a.mu.Unlock()
}

// Actual implements Positioner.
func (a *Anchored) Actual() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.actual
}

// Update implements Positioner. It recomputes the container coordinates
// from the anchor rect, flips the direction if the preferred side
// overflows the viewport while the opposite side fits, clamps into the
// viewport, and records the placement actually applied.
func (a *Anchored) Update() {
	if a.anchor == nil || a.container == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	dir, align := Split(a.preferred)
	rect := a.place(dir, align)

	if a.viewport.W > 0 && a.viewport.H > 0 {
		if a.overflows(rect, dir) {
			flipped := opposite(dir)
			if alt := a.place(flipped, align); !a.overflows(alt, flipped) {
				dir, rect = flipped, alt
			}
		}
		rect = a.clamp(rect)
	}

	if off := a.arrowOffset(dir, align, rect); off != 0 {
		if dir == Top || dir == Bottom {
			rect.X += off
		} else {
			rect.Y += off
		}
		if a.viewport.W > 0 && a.viewport.H > 0 {
			rect = a.clamp(rect)
		}
	}

	a.container.MoveTo(rect.X, rect.Y)
	a.actual = Join(dir, align)
}

// place computes the container rect for a direction/alignment pair.
func (a *Anchored) place(dir, align string) dom.Rect {
	anchor := a.anchor.Rect()
	size := a.container.Rect()
	rect := dom.Rect{W: size.W, H: size.H}

	switch dir {
	case Top:
		rect.Y = anchor.Y - size.H - gap
	case Bottom:
		rect.Y = anchor.Bottom() + gap
	case Left:
		rect.X = anchor.X - size.W - gap
	case Right:
		rect.X = anchor.Right() + gap
	}

	switch dir {
	case Top, Bottom:
		switch align {
		case AlignLeft:
			rect.X = anchor.X
		case Center:
			rect.X = anchor.X + (anchor.W-size.W)/2
		case AlignRight:
			rect.X = anchor.Right() - size.W
		}
	case Left, Right:
		switch align {
		case Top:
			rect.Y = anchor.Y
		case Center:
			rect.Y = anchor.Y + (anchor.H-size.H)/2
		case Bottom:
			rect.Y = anchor.Bottom() - size.H
		}
	}

	return rect
}

// overflows reports whether rect escapes the viewport along the
// direction axis.
func (a *Anchored) overflows(rect dom.Rect, dir string) bool {
	switch dir {
	case Top:
		return rect.Y < a.viewport.Y
	case Bottom:
		return rect.Bottom() > a.viewport.Bottom()
	case Left:
		return rect.X < a.viewport.X
	case Right:
		return rect.Right() > a.viewport.Right()
	}
	return false
}

// clamp pushes rect fully inside the viewport where possible.
func (a *Anchored) clamp(rect dom.Rect) dom.Rect {
	if rect.Right() > a.viewport.Right() {
		rect.X = a.viewport.Right() - rect.W
	}
	if rect.X < a.viewport.X {
		rect.X = a.viewport.X
	}
	if rect.Bottom() > a.viewport.Bottom() {
		rect.Y = a.viewport.Bottom() - rect.H
	}
	if rect.Y < a.viewport.Y {
		rect.Y = a.viewport.Y
	}
	return rect
}

// arrowOffset returns the shift along the alignment axis needed for the
// arrow element's center to line up with the anchor's center. Zero when
// no arrow is configured or found.
func (a *Anchored) arrowOffset(dir, align string, rect dom.Rect) float64 {
	if a.arrowID == "" {
		return 0
	}
	arrow := dom.FindByID(a.container, a.arrowID)
	if arrow == nil {
		return 0
	}

	anchor := a.anchor.Rect()
	ar := arrow.Rect() // arrow rect is relative to the container

	if dir == Top || dir == Bottom {
		arrowCenter := rect.X + ar.X + ar.W/2
		return (anchor.X + anchor.W/2) - arrowCenter
	}
	arrowCenter := rect.Y + ar.Y + ar.H/2
	return (anchor.Y + anchor.H/2) - arrowCenter
}
