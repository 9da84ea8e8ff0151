package popup

import (
	"sync"
	"time"

	"github.com/vango-go/popup/pkg/dom"
	"github.com/vango-go/popup/pkg/position"
	"github.com/vango-go/popup/pkg/schedule"
	"github.com/vango-go/popup/pkg/transition"
)

// PositionerFactory builds a positioner for an anchor/container pair.
// The controller calls it whenever the anchor identity changes; the old
// positioner is discarded, never mutated, so a stale anchor can never
// leak into placement computation.
type PositionerFactory func(anchor, container *dom.Element, preferred, arrowSelector string) position.Positioner

// defaultFactory builds the package's own anchored positioner.
func defaultFactory(anchor, container *dom.Element, preferred, arrowSelector string) position.Positioner {
	return position.NewAnchored(anchor, container, preferred, arrowSelector)
}

// Controller owns the open/closed state of one floating overlay and
// sequences its transition engine and positioner. All operations are
// total: redundant calls are no-ops and nothing here returns an error.
type Controller struct {
	root   *dom.Element
	engine transition.Engine

	newPositioner PositionerFactory
	arrowSelector string

	mu       sync.Mutex
	cfg      Config
	pos      position.Positioner
	closing  *schedule.Task
	closeSeq uint64
	isOpen   bool

	emitter *Emitter
}

// Option configures a Controller at construction.
type Option func(*Controller)

// WithConfig sets the initial configuration.
func WithConfig(cfg Config) Option {
	return func(c *Controller) { c.cfg = cfg.withDefaults() }
}

// WithPositionerFactory replaces how positioners are built when the
// anchor changes. Used by hosts with their own geometry engine.
func WithPositionerFactory(f PositionerFactory) Option {
	return func(c *Controller) { c.newPositioner = f }
}

// WithArrowSelector names the ID of the container's arrow element,
// forwarded to every positioner the controller creates.
func WithArrowSelector(selector string) Option {
	return func(c *Controller) { c.arrowSelector = selector }
}

// New creates a controller for the given popup root element, driving the
// given transition engine. The popup starts closed.
//
// Pointer suppression is wired here: a press on the popup surface must
// not reach ancestor listeners as a "press started outside" signal (it
// would blur the anchor input), and a click must not bubble past the
// popup (the popup renders outside its anchor's containment, so
// outside-click close logic elsewhere would misfire).
func New(root *dom.Element, engine transition.Engine, opts ...Option) *Controller {
	c := &Controller{
		root:          root,
		engine:        engine,
		newPositioner: defaultFactory,
		cfg:           Config{}.withDefaults(),
		emitter:       NewEmitter(),
	}
	for _, opt := range opts {
		opt(c)
	}

	root.On(dom.EventMouseDown, func(ev *dom.Event) {
		ev.PreventDefault()
	})
	root.On(dom.EventClick, func(ev *dom.Event) {
		ev.StopPropagation()
	})

	return c
}

// Root returns the popup's container element.
func (c *Controller) Root() *dom.Element {
	return c.root
}

// SetAnchor assigns the element the popup is positioned against,
// replacing any existing positioner. A nil anchor detaches positioning;
// placement accessors return empty tokens until a new anchor is set.
func (c *Controller) SetAnchor(anchor *dom.Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if anchor == nil {
		c.pos = nil
		return
	}
	c.pos = c.newPositioner(anchor, c.root, c.cfg.Placement, c.arrowSelector)
}

// Positioner returns the current positioner, or nil before an anchor is
// assigned.
func (c *Controller) Positioner() position.Positioner {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// SetConfig replaces the configuration used by subsequent cycles. It
// does not disturb a cycle already in flight.
func (c *Controller) SetConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg.withDefaults()
}

// Config returns the active configuration.
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// IsOpen reports the logical state. It flips synchronously inside Open
// and Close: callers see intent, not animation completion.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// OnOpen registers an observer for the open lifecycle event, which fires
// synchronously when Open is accepted. Returns an unsubscribe func.
func (c *Controller) OnOpen(fn func()) func() {
	return c.emitter.OnOpen(fn)
}

// OnClose registers an observer for the close lifecycle event, which
// fires one transition-duration after Close is accepted. Returns an
// unsubscribe func.
func (c *Controller) OnClose(fn func()) func() {
	return c.emitter.OnClose(fn)
}

// Open reveals the popup. No-op when already open. Otherwise it cancels
// the pending closing task and all in-flight transitions, starts the
// reveal transition (whose completion transfers focus), points the
// positioner at the preferred placement, defers a position refresh until
// the reveal has made the container measurable, flips the logical state,
// and emits the open event synchronously, not gated on the animation.
func (c *Controller) Open() {
	c.mu.Lock()
	if c.isOpen {
		c.mu.Unlock()
		return
	}

	if c.closing != nil {
		c.closing.Stop()
		c.closing = nil
	}

	cfg := c.cfg
	c.engine.StopAll()
	c.engine.Animate(transition.Spec{
		Effect:     cfg.Transition,
		Duration:   cfg.TransitionDuration,
		Direction:  transition.In,
		OnComplete: func() { c.transferFocus(cfg.TransitionDuration) },
	})

	if c.pos != nil {
		c.pos.SetPreferred(cfg.Placement)
		// Deferred: the container has no layout until the reveal step
		// makes it visible.
		schedule.Defer(c.refreshPosition)
	}

	c.isOpen = true
	c.mu.Unlock()

	c.emitter.emitOpen()
}

// Close hides the popup. No-op when already closed. Otherwise it cancels
// all in-flight transitions, starts the hide transition, replaces any
// pending closing task with a fresh one that emits the close event after
// exactly the transition duration, and flips the logical state before
// that task fires.
func (c *Controller) Close() {
	c.mu.Lock()
	if !c.isOpen {
		c.mu.Unlock()
		return
	}

	cfg := c.cfg
	c.engine.StopAll()
	c.engine.Animate(transition.Spec{
		Effect:    cfg.Transition,
		Duration:  cfg.TransitionDuration,
		Direction: transition.Out,
	})

	if c.closing != nil {
		c.closing.Stop()
	}
	c.closeSeq++
	seq := c.closeSeq
	c.closing = schedule.After(cfg.TransitionDuration, func() {
		c.finishClose(seq)
	})

	c.isOpen = false
	c.mu.Unlock()
}

// Toggle closes the popup when open, opens it otherwise.
func (c *Controller) Toggle() {
	if c.IsOpen() {
		c.Close()
	} else {
		c.Open()
	}
}

// finishClose emits the close event when the closing task fires. The
// sequence check drops tasks that lost a race with a newer Close or a
// reopen after their timer had already started firing.
func (c *Controller) finishClose(seq uint64) {
	c.mu.Lock()
	if seq != c.closeSeq || c.isOpen {
		c.mu.Unlock()
		return
	}
	c.closing = nil
	c.mu.Unlock()

	c.emitter.emitClose()
}

// refreshPosition recomputes placement once the deferred refresh fires.
// A close that landed in between makes this a no-op: a hidden popup must
// not visually react to a stale refresh.
func (c *Controller) refreshPosition() {
	c.mu.Lock()
	pos := c.pos
	open := c.isOpen
	c.mu.Unlock()

	if open && pos != nil {
		pos.Update()
	}
}

// transferFocus runs as the reveal transition's completion callback. It
// focuses the first autofocus-marked descendant, then schedules a second
// attempt one transition-duration later to outlast hosts that steal
// focus back right after an overlay appears. No target, no work.
func (c *Controller) transferFocus(retryAfter time.Duration) {
	target := dom.FindAutoFocus(c.root)
	if target == nil {
		return
	}
	target.Focus()
	schedule.After(retryAfter, target.Focus)
}
