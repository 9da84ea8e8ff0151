package dom

// Event names dispatched through the element tree.
const (
	EventClick     = "click"
	EventMouseDown = "mousedown"
	EventMouseUp   = "mouseup"
	EventFocusIn   = "focusin"
	EventFocusOut  = "focusout"
)

// Handler responds to a dispatched event.
type Handler func(*Event)

// Event is a dispatched occurrence that bubbles from its target toward
// the tree root unless a handler stops it.
type Event struct {
	Type   string
	Target *Element

	stopped          bool
	defaultPrevented bool
}

// StopPropagation prevents the event from reaching ancestor handlers.
// Handlers already collected for the current element still run.
func (ev *Event) StopPropagation() {
	ev.stopped = true
}

// PreventDefault marks the host's default reaction as suppressed.
func (ev *Event) PreventDefault() {
	ev.defaultPrevented = true
}

// PropagationStopped reports whether a handler called StopPropagation.
func (ev *Event) PropagationStopped() bool {
	return ev.stopped
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (ev *Event) DefaultPrevented() bool {
	return ev.defaultPrevented
}

// On registers a handler for the named event on this element.
func (e *Element) On(event string, h Handler) {
	if e.handlers == nil {
		e.handlers = make(map[string][]Handler)
	}
	e.handlers[event] = append(e.handlers[event], h)
}

// Dispatch fires an event of the given type at this element and bubbles
// it through ancestors until the root is reached or propagation stops.
// The event is returned so callers can inspect its flags.
func (e *Element) Dispatch(event string) *Event {
	ev := &Event{Type: event, Target: e}
	for node := e; node != nil; node = node.parent {
		for _, h := range node.handlers[event] {
			h(ev)
		}
		if ev.stopped {
			break
		}
	}
	return ev
}
