package stepper

import "time"

// Clock supplies the timers the worker waits on between steps.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock waits on wall-clock timers.
func RealClock() Clock { return realClock{} }

type immediateClock struct{}

func (immediateClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

// ImmediateClock never waits. Headless runs use it to sort at full speed
// while still going through every visible step.
func ImmediateClock() Clock { return immediateClock{} }
