// Package popup orchestrates the open/close lifecycle of a floating
// overlay anchored to a host element.
//
// The Controller is the single owner of the overlay's logical state. It
// reconciles independently timed processes (transition completion,
// position settling, and deferred close finalization) so that rapid or
// overlapping Open/Close/Toggle calls never leave the overlay visually or
// logically inconsistent. The protocol is cancel-then-start: every
// accepted operation first cancels conflicting in-flight work (the
// pending closing task and all running transitions) before requesting new
// work.
//
// Logical state leads visual state. IsOpen flips synchronously inside
// Open and Close; the transition catches up afterwards. Accordingly the
// open lifecycle event fires synchronously when Open is accepted, while
// the close lifecycle event fires only after the close transition's
// nominal duration. The asymmetry is deliberate: focus transfer, which
// runs as the reveal transition's completion callback, is the true
// "open finished" signal, whereas nothing after a close needs the
// overlay, so its event waits for the animation.
//
// The geometry engine (pkg/position) and the animation engine
// (pkg/transition) are collaborators supplied at construction; the
// controller only sequences them.
package popup
