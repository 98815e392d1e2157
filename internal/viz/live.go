package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/diffusim/internal/process"
	"github.com/san-kum/diffusim/internal/randx"
)

const (
	canvasWidth  = 80
	canvasHeight = 20
	tickInterval = 33 * time.Millisecond
	stepsPerTick = 4
)

type TickMsg time.Time

// Model replays one sampled trajectory at a fixed tick rate. The full path is
// drawn up front and revealed progressively so pausing and resetting are
// cheap; reset resamples with a forked stream.
type Model struct {
	proc     process.Process
	src      *randx.Stream
	kind     string
	duration float64
	stepSize float64

	path    process.Path
	head    int
	canvas  *Canvas
	theme   Theme
	running bool
	err     error
}

func NewModel(proc process.Process, src *randx.Stream, kind string, duration, stepSize float64) Model {
	m := Model{
		proc:     proc,
		src:      src,
		kind:     kind,
		duration: duration,
		stepSize: stepSize,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		theme:    ThemeDefault,
		running:  true,
	}
	m.resample()
	return m
}

func (m *Model) resample() {
	path, err := m.proc.Sample(m.src, m.duration, m.stepSize)
	m.path = path
	m.err = err
	m.head = 1
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.resample()
			m.running = true
		case "t":
			m.theme = NextTheme(m.theme)
		}
		return m, nil

	case TickMsg:
		if m.running && m.err == nil {
			m.head += stepsPerTick
			if m.head >= m.path.Len() {
				m.head = m.path.Len()
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("sampling failed: %v\n", m.err)
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(10)
	valueStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	helpStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)
	pausedStyle := lipgloss.NewStyle().Foreground(m.theme.Warning).Bold(true)

	shown := m.path.Values[:m.head]
	min, max := seriesRange(m.path.Values)

	m.canvas.Clear()
	m.canvas.DrawSeries(shown, min, max)

	var stats strings.Builder
	t := m.path.Times[m.head-1]
	x := shown[len(shown)-1]
	mean := 0.0
	for _, v := range shown {
		mean += v
	}
	mean /= float64(len(shown))

	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("process"), valueStyle.Render(m.kind))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("t"), valueStyle.Render(fmt.Sprintf("%.3f / %.3f", t, m.duration)))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("x(t)"), valueStyle.Render(fmt.Sprintf("%.4f", x)))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("mean"), valueStyle.Render(fmt.Sprintf("%.4f", mean)))
	fmt.Fprintf(&stats, "%s%s\n", labelStyle.Render("range"), valueStyle.Render(fmt.Sprintf("[%.3f, %.3f]", min, max)))

	status := ""
	if !m.running {
		if m.head == m.path.Len() {
			status = pausedStyle.Render("done")
		} else {
			status = pausedStyle.Render("paused")
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("diffusim live") + "  " + status + "\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Accent).Render(m.canvas.String()))
	b.WriteString("\n")
	b.WriteString(stats.String())
	b.WriteString(helpStyle.Render("\nspace pause · r resample · t theme · q quit\n"))
	return b.String()
}

// Run starts the live view on the alternate screen.
func Run(proc process.Process, src *randx.Stream, kind string, duration, stepSize float64) error {
	p := tea.NewProgram(NewModel(proc, src, kind, duration, stepSize), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
