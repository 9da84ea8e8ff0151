package popup

import "sync"

// Emitter is the controller's lifecycle event surface: an explicit
// observer list rather than a framework event bus, so emission timing is
// under the controller's control. Open observers are notified
// synchronously when Open is accepted; close observers are notified by
// the closing task, one transition-duration after Close is accepted.
type Emitter struct {
	mu      sync.Mutex
	nextID  int
	onOpen  map[int]func()
	onClose map[int]func()
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{
		onOpen:  make(map[int]func()),
		onClose: make(map[int]func()),
	}
}

// OnOpen registers fn for the open lifecycle event and returns an
// unsubscribe function. Unsubscribing twice is safe.
func (e *Emitter) OnOpen(fn func()) (unsubscribe func()) {
	return e.register(e.onOpen, fn)
}

// OnClose registers fn for the close lifecycle event and returns an
// unsubscribe function.
func (e *Emitter) OnClose(fn func()) (unsubscribe func()) {
	return e.register(e.onClose, fn)
}

func (e *Emitter) register(set map[int]func(), fn func()) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	set[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(set, id)
		e.mu.Unlock()
	}
}

// emitOpen notifies open observers. Copy-before-notify: observers run
// outside the emitter lock and may re-enter the controller.
func (e *Emitter) emitOpen() {
	for _, fn := range e.collect(e.onOpen) {
		fn()
	}
}

// emitClose notifies close observers.
func (e *Emitter) emitClose() {
	for _, fn := range e.collect(e.onClose) {
		fn()
	}
}

func (e *Emitter) collect(set map[int]func()) []func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]func(), 0, len(set))
	for _, fn := range set {
		out = append(out, fn)
	}
	return out
}
