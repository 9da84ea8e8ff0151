// Package transition runs named, timed visual effects against a floating
// overlay container. An effect animates opacity, scale, and offset over a
// duration with an easing curve; direction In reveals the container,
// direction Out hides it. Callers receive eased frames through a Sink and
// an optional completion callback when the effect finishes naturally.
// Stopped effects never invoke their completion callback.
package transition

import (
	"sync"
	"time"

	"github.com/tanema/gween"
)

// Direction selects whether an effect reveals or hides the container.
type Direction uint8

const (
	// In reveals the container.
	In Direction = iota
	// Out hides the container.
	Out
)

// String returns "in" or "out".
func (d Direction) String() string {
	if d == Out {
		return "out"
	}
	return "in"
}

// Spec describes one animation request.
type Spec struct {
	// Effect is the named visual effect, e.g. "fade" or "scale".
	// Unknown names fall back to DefaultEffect.
	Effect string

	// Duration is the nominal length of the effect.
	Duration time.Duration

	// Direction selects reveal (In) or hide (Out).
	Direction Direction

	// OnComplete, if set, runs once after the final frame of an effect
	// that ran to completion. It is never called for stopped effects.
	OnComplete func()
}

// Frame is one visual sample of a running effect.
type Frame struct {
	Opacity float64
	Scale   float64
	OffsetX float64
	OffsetY float64
	Visible bool
}

// Sink receives frames as an effect progresses. ApplyFrame is called from
// the engine's stepping goroutine.
type Sink interface {
	ApplyFrame(Frame)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Frame)

// ApplyFrame implements Sink.
func (f SinkFunc) ApplyFrame(frame Frame) { f(frame) }

// Engine is the animation surface the overlay controller drives.
type Engine interface {
	// Animate starts the described effect. It does not stop effects
	// already running; callers wanting exclusivity call StopAll first.
	Animate(Spec)

	// StopAll cancels every running effect. Idempotent and safe to call
	// when nothing is animating.
	StopAll()
}

// frameInterval is the stepping rate for running effects.
const frameInterval = 16 * time.Millisecond

// Runner is the default Engine implementation. It steps effects on a
// ticker, pushing eased frames into the sink.
type Runner struct {
	sink Sink

	mu      sync.Mutex
	running map[*animation]struct{}
	hidden  bool
}

// NewRunner creates a Runner delivering frames to sink. initiallyHidden
// records the container's resting state before any effect runs.
func NewRunner(sink Sink, initiallyHidden bool) *Runner {
	return &Runner{
		sink:    sink,
		running: make(map[*animation]struct{}),
		hidden:  initiallyHidden,
	}
}

// Hidden reports the resting visibility after the last completed effect.
func (r *Runner) Hidden() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hidden
}

type animation struct {
	tween *gween.Tween
	eff   effect
	spec  Spec
	stop  chan struct{}
	once  sync.Once
}

// Animate implements Engine.
func (r *Runner) Animate(spec Spec) {
	eff := lookupEffect(spec.Effect)

	from, to := float32(0), float32(1)
	if spec.Direction == Out {
		from, to = 1, 0
	}

	if spec.Duration <= 0 {
		// Nothing to step; settle immediately and complete synchronously.
		r.finish(spec, eff)
		return
	}

	anim := &animation{
		tween: gween.New(from, to, float32(spec.Duration.Seconds()), eff.ease),
		eff:   eff,
		spec:  spec,
		stop:  make(chan struct{}),
	}

	r.mu.Lock()
	r.running[anim] = struct{}{}
	r.mu.Unlock()

	go r.step(anim)
}

// step advances one animation until it finishes or is stopped.
func (r *Runner) step(anim *animation) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-anim.stop:
			return
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now

			value, finished := anim.tween.Update(dt)
			r.sink.ApplyFrame(anim.eff.frame(float64(value)))

			if finished {
				r.mu.Lock()
				delete(r.running, anim)
				r.mu.Unlock()
				r.settle(anim.spec)
				if anim.spec.OnComplete != nil {
					anim.spec.OnComplete()
				}
				return
			}
		}
	}
}

// finish applies the terminal frame and completes a zero-duration effect.
func (r *Runner) finish(spec Spec, eff effect) {
	progress := 1.0
	if spec.Direction == Out {
		progress = 0
	}
	r.sink.ApplyFrame(eff.frame(progress))
	r.settle(spec)
	if spec.OnComplete != nil {
		spec.OnComplete()
	}
}

// settle records the resting visibility after a completed effect.
func (r *Runner) settle(spec Spec) {
	r.mu.Lock()
	r.hidden = spec.Direction == Out
	r.mu.Unlock()
}

// StopAll implements Engine.
func (r *Runner) StopAll() {
	r.mu.Lock()
	anims := make([]*animation, 0, len(r.running))
	for anim := range r.running {
		anims = append(anims, anim)
	}
	r.running = make(map[*animation]struct{})
	r.mu.Unlock()

	for _, anim := range anims {
		anim.once.Do(func() { close(anim.stop) })
	}
}
