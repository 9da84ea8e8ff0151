// Package schedule provides one-shot cancellable deferred callbacks.
//
// A Task wraps a timer with an atomic fired-guard so that Stop and the
// timer firing can race safely: the callback runs at most once, and
// stopping a task that already fired is a no-op. Callers that replace a
// pending task should always stop the old one first (cancel-before-replace).
package schedule

import (
	"sync/atomic"
	"time"
)

// Task is a single scheduled callback. The zero value is not usable;
// create tasks with After or Defer.
type Task struct {
	timer *time.Timer
	fired atomic.Bool
}

// After schedules fn to run once after d. The callback runs on its own
// goroutine; fn is responsible for any synchronization it needs.
func After(d time.Duration, fn func()) *Task {
	t := &Task{}
	t.timer = time.AfterFunc(d, func() {
		// CompareAndSwap prevents a double fire when Stop races the timer.
		if t.fired.CompareAndSwap(false, true) {
			fn()
		}
	})
	return t
}

// Defer schedules fn to run as soon as possible on a fresh timer tick.
// Used when work must wait for the current turn to finish first, e.g.
// recomputing layout after a just-started reveal has made the target
// visible.
func Defer(fn func()) *Task {
	return After(0, fn)
}

// Stop cancels the task. It reports true if the callback was prevented
// from running, false if it already ran or was already stopped. Stopping
// a fired task is always safe.
func (t *Task) Stop() bool {
	if t == nil {
		return false
	}
	prevented := t.fired.CompareAndSwap(false, true)
	t.timer.Stop()
	return prevented
}

// Stopped reports whether the task can no longer fire, either because it
// already ran or because it was stopped.
func (t *Task) Stopped() bool {
	if t == nil {
		return true
	}
	return t.fired.Load()
}
