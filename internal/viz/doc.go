// Package viz is the terminal front end for the quicksort stepper.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: Bubble Tea model that forwards keys to a [stepper.Stepper]
//   - [FrameSink]: stepper observer feeding the latest frame to the model
//   - [RenderBars]: one colored bar per element, eighth-block resolution
//   - [RenderDense]: two braille bars per cell when bars outnumber columns
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	S     - Start sorting
//	Space - Pause/Resume
//	R     - Reset with a new array
//	+/-   - Change speed
//	T     - Cycle color themes
//	?     - Show all key bindings
//	Q     - Quit
package viz
