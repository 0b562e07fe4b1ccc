package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/stepper"
	"github.com/sirupsen/logrus"
)

const (
	speedStep       = 5
	historyCapacity = 240
	chartMinWidth   = 60
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = MetricLabel.Width(8)
	helpStyle   = lipgloss.NewStyle().MarginTop(1)
	chartStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

// Options configure the TUI.
type Options struct {
	Theme  string
	Logger logrus.FieldLogger
}

// Model is the Bubble Tea model that renders a Stepper and forwards key
// presses to it.
type Model struct {
	st     *stepper.Stepper
	sink   *FrameSink
	frame  stepper.Frame
	theme  Theme
	width  int
	height int
	keys   keyMap
	help   help.Model
	swaps  []float64
	log    logrus.FieldLogger
}

// NewModel subscribes a frame sink to st and returns the model.
func NewModel(st *stepper.Stepper, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	sink := NewFrameSink()
	st.Subscribe(sink)
	return Model{
		st:    st,
		sink:  sink,
		frame: st.Snapshot(),
		theme: GetTheme(opts.Theme),
		keys:  defaultKeyMap(),
		help:  help.New(),
		swaps: make([]float64, 0, historyCapacity),
		log:   opts.Logger.WithField("component", "tui"),
	}
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(st *stepper.Stepper, opts Options) error {
	p := tea.NewProgram(NewModel(st, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.sink.Listen()
}

// Update forwards commands to the stepper and folds in new frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			m.st.Start()
		case key.Matches(msg, m.keys.Pause):
			m.st.TogglePause()
		case key.Matches(msg, m.keys.Reset):
			m.st.Reset()
			m.swaps = m.swaps[:0]
		case key.Matches(msg, m.keys.Faster):
			m.st.SetSpeed(m.st.Speed() + speedStep)
		case key.Matches(msg, m.keys.Slower):
			m.st.SetSpeed(m.st.Speed() - speedStep)
		case key.Matches(msg, m.keys.Theme):
			m.theme = NextTheme(m.theme.Name)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		default:
			return m, nil
		}
		m.log.WithField("key", msg.String()).Debug("command")
		m.frame = m.st.Snapshot()
	case FrameMsg:
		m.frame = stepper.Frame(msg)
		m.record(m.frame)
		return m, m.sink.Listen()
	}
	return m, nil
}

func (m *Model) record(f stepper.Frame) {
	if f.Control != stepper.Running {
		return
	}
	m.swaps = append(m.swaps, float64(f.Stats.Swaps))
	if len(m.swaps) > historyCapacity {
		m.swaps = m.swaps[1:]
	}
}

// View renders the bars, status panel and key hints.
func (m Model) View() string {
	f := m.frame
	var s strings.Builder

	title := lipgloss.NewStyle().Foreground(m.theme.Title).Render("QUICKSORT")
	s.WriteString(headerStyle.Render(title+"  "+StatusBadge(f.Control)) + "\n")

	rows := 0
	if m.height > 0 {
		rows = m.height - 12
	}
	chartWidth := 0
	if m.width > 0 {
		chartWidth = m.width - 4
	}
	layout := LayoutFor(chartWidth, rows, len(f.Seq))
	var chart string
	if layout.Dense {
		chart = RenderDense(f, layout.Rows, chartWidth, m.theme)
	} else {
		chart = RenderBars(f, layout, m.theme)
	}
	s.WriteString(GlassPanel.Render(chart) + "\n")
	s.WriteString(Legend(m.theme) + "\n\n")

	s.WriteString(labelStyle.Render("Speed") + SpeedBar(f.Speed, 20) + " " + MetricValue.Render(fmt.Sprintf("%d", f.Speed)) + "\n")
	s.WriteString(labelStyle.Render("Stats") + MetricValue.Render(fmt.Sprintf("%d", f.Stats.Comparisons)) + MetricLabel.Render(" cmp  ") +
		MetricValue.Render(fmt.Sprintf("%d", f.Stats.Swaps)) + MetricLabel.Render(" swp  ") +
		MetricValue.Render(fmt.Sprintf("%d", f.Stats.Steps)) + MetricLabel.Render(" steps") + "\n")

	if len(m.swaps) > 1 && m.width >= chartMinWidth {
		graph := asciigraph.Plot(m.swaps, asciigraph.Height(4), asciigraph.Width(min(m.width-20, 60)), asciigraph.Caption("swaps"))
		s.WriteString(chartStyle.Render(graph) + "\n")
	}

	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}
