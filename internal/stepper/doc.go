// Package stepper runs Quicksort as a sequence of visible, rate-limited steps.
//
// A [Stepper] owns the array being sorted, one [ElementState] tag per element
// and the [ControlState] of the animation. The algorithm runs on a single
// worker goroutine that notifies every registered [Observer] after each
// mutating step and then waits for the configured delay:
//
//   - [Stepper.Start]: launch the worker (no-op while Running or Paused)
//   - [Stepper.TogglePause]: flip between Running and Paused
//   - [Stepper.Reset]: cancel and join the worker, regenerate the array
//   - [Stepper.SetSpeed]: change the per-step delay, 1 (slow) to 100 (fast)
//
// # Example
//
//	st := stepper.New(stepper.DefaultOptions())
//	st.Subscribe(stepper.ObserverFunc(func(f stepper.Frame) { draw(f) }))
//	st.Start()
//
// # Thread Safety
//
// All methods are safe for concurrent use. Observers are called from the
// worker goroutine with a private copy of the state; they must not block and
// must not call Reset or Start.
package stepper
