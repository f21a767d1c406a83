// Package tui provides a live terminal view of a running chain: a trace
// plot of the first coordinate plus rolling acceptance and divergence
// counters.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/hmclab/internal/hmc"
	"github.com/san-kum/hmclab/internal/mcmc"
)

const (
	historyCapacity = 600
	graphWidth      = 70
	graphHeight     = 12
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the kernel a few transitions per frame and plots the trace.
type Model struct {
	kernel       *hmc.Kernel
	key          mcmc.Key
	state        mcmc.State
	varName      string
	targetName   string
	step         int
	stepsPerTick int
	running      bool

	trace       []float64
	accepted    int
	divergences int
	pAcceptSum  float64
	lastEnergy  float64
	err         error
}

func NewModel(kernel *hmc.Kernel, key mcmc.Key, initial mcmc.State, targetName string, stepsPerTick int) Model {
	varName := ""
	if names := initial.Position.Names(); len(names) > 0 {
		varName = names[0]
	}
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	return Model{
		kernel:       kernel,
		key:          key,
		state:        initial,
		varName:      varName,
		targetName:   targetName,
		stepsPerTick: stepsPerTick,
		running:      true,
		trace:        make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		next, info, err := m.kernel.Step(m.key.Fold(uint64(m.step)), m.state)
		if err != nil {
			m.err = err
			return
		}
		m.state = next
		m.step++
		m.pAcceptSum += info.AcceptanceProbability
		if info.IsAccepted {
			m.accepted++
		}
		if info.IsDivergent {
			m.divergences++
		}
		m.lastEnergy = info.Energy
	}

	if m.varName != "" {
		m.trace = append(m.trace, m.state.Position[m.varName][0])
		if len(m.trace) > historyCapacity {
			m.trace = m.trace[len(m.trace)-historyCapacity:]
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("hmclab live — %s", m.targetName)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(warnStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.trace) > 1 {
		graph := asciigraph.Plot(m.trace,
			asciigraph.Width(graphWidth),
			asciigraph.Height(graphHeight),
			asciigraph.Caption(fmt.Sprintf("trace of %s", m.varName)),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(row("transitions", fmt.Sprintf("%d", m.step)))
	if m.step > 0 {
		b.WriteString(row("accept rate", fmt.Sprintf("%.3f", m.pAcceptSum/float64(m.step))))
	}
	b.WriteString(row("energy", fmt.Sprintf("%.4f", m.lastEnergy)))
	if m.divergences > 0 {
		b.WriteString(labelStyle.Render("divergences") + warnStyle.Render(fmt.Sprintf("%d", m.divergences)) + "\n")
	} else {
		b.WriteString(row("divergences", "0"))
	}

	b.WriteString(helpStyle.Render("space pause · q quit"))
	b.WriteString("\n")
	return b.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}
