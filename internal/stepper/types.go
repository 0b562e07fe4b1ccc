package stepper

import (
	"fmt"
	"slices"
	"time"
)

// ElementState tags one array position for the renderer.
type ElementState uint8

const (
	Normal ElementState = iota
	Pivot
	Compared
	Sorted
)

func (e ElementState) String() string {
	switch e {
	case Normal:
		return "normal"
	case Pivot:
		return "pivot"
	case Compared:
		return "compared"
	case Sorted:
		return "sorted"
	default:
		return fmt.Sprintf("ElementState(%d)", uint8(e))
	}
}

// ControlState is the lifecycle of one animation.
type ControlState int32

const (
	Idle ControlState = iota
	Running
	Paused
	Completed
)

func (c ControlState) String() string {
	switch c {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("ControlState(%d)", int32(c))
	}
}

// Sequence holds the bar heights being sorted.
type Sequence []int

func (s Sequence) Clone() Sequence {
	c := make(Sequence, len(s))
	copy(c, s)
	return c
}

// IsSorted reports whether s is in ascending order.
func (s Sequence) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

// SameElements reports whether s and other hold the same multiset of values.
func (s Sequence) SameElements(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	a, b := slices.Clone(s), slices.Clone(other)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// Stats counts the work done by the current run.
type Stats struct {
	Comparisons int
	Swaps       int
	Steps       int
}

// Frame is a consistent copy of the stepper state taken after a step.
type Frame struct {
	Seq     Sequence
	States  []ElementState
	Control ControlState
	Speed   int
	Height  int
	Stats   Stats
}

// Count returns how many elements carry the given state.
func (f Frame) Count(state ElementState) int {
	n := 0
	for _, s := range f.States {
		if s == state {
			n++
		}
	}
	return n
}

// Observer receives a frame after every mutating step.
type Observer interface {
	OnRedraw(f Frame)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnRedraw(f Frame) { fn(f) }

const (
	MinSpeed = 1
	MaxSpeed = 100

	// delayBase minus the speed gives the step delay in units.
	delayBase = 110
)

// ClampSpeed limits v to [MinSpeed, MaxSpeed].
func ClampSpeed(v int) int {
	if v < MinSpeed {
		return MinSpeed
	}
	if v > MaxSpeed {
		return MaxSpeed
	}
	return v
}

// DelayFor maps a speed setting to the wait between two visible steps:
// (110 - speed) units, so speed 1 waits 109 units and speed 100 waits 10.
func DelayFor(speed int, unit time.Duration) time.Duration {
	return time.Duration(delayBase-ClampSpeed(speed)) * unit
}
