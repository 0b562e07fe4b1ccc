package viz

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sortviz/internal/stepper"
)

// FrameMsg carries the newest stepper frame into the Bubble Tea loop.
type FrameMsg stepper.Frame

// FrameSink is a stepper observer that keeps only the latest frame. The
// worker never blocks on it; frames arriving faster than the TUI redraws
// overwrite each other.
type FrameSink struct {
	mu     sync.Mutex
	latest stepper.Frame
	ready  chan struct{}
}

func NewFrameSink() *FrameSink {
	return &FrameSink{ready: make(chan struct{}, 1)}
}

func (s *FrameSink) OnRedraw(f stepper.Frame) {
	s.mu.Lock()
	s.latest = f
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

func (s *FrameSink) Latest() stepper.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Listen waits for the next redraw signal and delivers the latest frame.
func (s *FrameSink) Listen() tea.Cmd {
	return func() tea.Msg {
		<-s.ready
		return FrameMsg(s.Latest())
	}
}
