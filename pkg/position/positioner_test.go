package position_test

import (
	"sync"
	"testing"

	"github.com/vango-go/popup/pkg/dom"
	"github.com/vango-go/popup/pkg/position"
)

func newFixture(placement string) (*dom.Element, *dom.Element, *position.Anchored) {
	anchor := dom.NewElement("button")
	anchor.SetRect(dom.Rect{X: 100, Y: 100, W: 80, H: 20})

	container := dom.NewElement("div")
	container.SetRect(dom.Rect{W: 120, H: 40})

	return anchor, container, position.NewAnchored(anchor, container, placement, "")
}

func TestActualBeforeUpdate(t *testing.T) {
	_, _, pos := newFixture("bottom center")
	if got := pos.Actual(); got != "bottom center" {
		t.Errorf("Actual = %q, want preferred before first update", got)
	}
}

func TestUpdateBottomLeft(t *testing.T) {
	_, container, pos := newFixture("bottom left")

	pos.Update()

	r := container.Rect()
	if r.X != 100 || r.Y != 128 {
		t.Errorf("container at (%v, %v), want (100, 128)", r.X, r.Y)
	}
	if pos.Actual() != "bottom left" {
		t.Errorf("Actual = %q, want %q", pos.Actual(), "bottom left")
	}
}

func TestUpdateTopCenter(t *testing.T) {
	_, container, pos := newFixture("top center")

	pos.Update()

	r := container.Rect()
	if r.X != 80 || r.Y != 52 {
		t.Errorf("container at (%v, %v), want (80, 52)", r.X, r.Y)
	}
}

func TestUpdateRightCenter(t *testing.T) {
	_, container, pos := newFixture("right center")

	pos.Update()

	r := container.Rect()
	// x = anchor right + gap, y = anchor center - half height
	if r.X != 188 || r.Y != 90 {
		t.Errorf("container at (%v, %v), want (188, 90)", r.X, r.Y)
	}
}

func TestFlipWhenOverflowing(t *testing.T) {
	anchor := dom.NewElement("button")
	anchor.SetRect(dom.Rect{X: 100, Y: 10, W: 80, H: 20})
	container := dom.NewElement("div")
	container.SetRect(dom.Rect{W: 120, H: 40})

	pos := position.NewAnchored(anchor, container, "top left", "")
	pos.SetViewport(dom.Rect{X: 0, Y: 0, W: 500, H: 300})

	pos.Update()

	if got := pos.Actual(); got != "bottom left" {
		t.Errorf("Actual = %q, want flipped %q", got, "bottom left")
	}
	if r := container.Rect(); r.Y != 38 {
		t.Errorf("container y = %v, want 38", r.Y)
	}
}

func TestNoFlipWhenOppositeAlsoOverflows(t *testing.T) {
	anchor := dom.NewElement("button")
	anchor.SetRect(dom.Rect{X: 100, Y: 10, W: 80, H: 20})
	container := dom.NewElement("div")
	container.SetRect(dom.Rect{W: 120, H: 40})

	pos := position.NewAnchored(anchor, container, "top left", "")
	// Viewport too short for either side; direction is kept and clamped.
	pos.SetViewport(dom.Rect{X: 0, Y: 0, W: 500, H: 50})

	pos.Update()

	if got := pos.Actual(); got != "top left" {
		t.Errorf("Actual = %q, want preferred kept", got)
	}
	if r := container.Rect(); r.Y != 0 {
		t.Errorf("container y = %v, want clamped to 0", r.Y)
	}
}

func TestClampIntoViewport(t *testing.T) {
	anchor := dom.NewElement("button")
	anchor.SetRect(dom.Rect{X: 450, Y: 100, W: 40, H: 20})
	container := dom.NewElement("div")
	container.SetRect(dom.Rect{W: 120, H: 40})

	pos := position.NewAnchored(anchor, container, "bottom left", "")
	pos.SetViewport(dom.Rect{X: 0, Y: 0, W: 500, H: 300})

	pos.Update()

	if r := container.Rect(); r.X != 380 {
		t.Errorf("container x = %v, want 380 (clamped to right edge)", r.X)
	}
}

func TestSetPreferredRejectsInvalid(t *testing.T) {
	_, _, pos := newFixture("bottom left")

	pos.SetPreferred("sideways nowhere")
	pos.Update()

	if got := pos.Actual(); got != "bottom left" {
		t.Errorf("Actual = %q, invalid preference should be ignored", got)
	}
}

func TestInvalidPreferredFallsBackToDefault(t *testing.T) {
	anchor := dom.NewElement("button")
	container := dom.NewElement("div")
	pos := position.NewAnchored(anchor, container, "bogus", "")

	if got := pos.Actual(); got != position.DefaultPlacement {
		t.Errorf("Actual = %q, want %q", got, position.DefaultPlacement)
	}
}

func TestArrowCorrection(t *testing.T) {
	anchor := dom.NewElement("button")
	anchor.SetRect(dom.Rect{X: 100, Y: 100, W: 80, H: 20})

	container := dom.NewElement("div")
	container.SetRect(dom.Rect{W: 120, H: 40})
	arrow := dom.NewElement("div")
	arrow.ID = "arrow"
	arrow.SetRect(dom.Rect{X: 10, Y: 0, W: 10, H: 10})
	container.AppendChild(arrow)

	pos := position.NewAnchored(anchor, container, "bottom left", "arrow")
	pos.Update()

	// Arrow center (x+15 relative) lines up with anchor center (140).
	if r := container.Rect(); r.X != 125 {
		t.Errorf("container x = %v, want 125 (arrow-corrected)", r.X)
	}
}

func TestUpdateWithoutAnchorIsNoOp(t *testing.T) {
	container := dom.NewElement("div")
	container.SetRect(dom.Rect{X: 5, Y: 5, W: 10, H: 10})

	pos := position.NewAnchored(nil, container, "top left", "")
	pos.Update()

	if r := container.Rect(); r.X != 5 || r.Y != 5 {
		t.Errorf("container moved to (%v, %v), want untouched", r.X, r.Y)
	}
}

func TestActualReadsConcurrentWithUpdate(t *testing.T) {
	anchor, _, pos := newFixture("bottom left")
	pos.SetViewport(dom.Rect{W: 400, H: 200})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if got := pos.Actual(); got == "" {
				t.Error("Actual returned an empty placement")
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			anchor.MoveTo(float64(i%300), float64(i%150))
			pos.Update()
		}
	}()
	wg.Wait()
}
