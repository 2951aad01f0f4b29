// Package tui renders a live terminal view of a running simulation:
// biomass and one focused metabolite as scrolling graphs, with the
// feasibility state in the header.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dynfba/internal/sim"
)

const (
	graphWidth   = 70
	graphHeight  = 8
	historyShown = 300
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	runStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
	haltStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	pauseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a simulation from the event loop, a few steps per tick.
type Model struct {
	sim          *sim.Simulator
	modelName    string
	dt           float64
	totalSteps   int
	stepsPerTick int

	step    int
	running bool
	focus   int
	err     error

	lastMu         float64
	lastInhibition float64
}

// NewModel wraps a ready simulator for live viewing.
func NewModel(s *sim.Simulator, modelName string, dt float64, totalSteps, stepsPerTick int) Model {
	if stepsPerTick <= 0 {
		stepsPerTick = 1
	}
	return Model{
		sim:          s,
		modelName:    modelName,
		dt:           dt,
		totalSteps:   totalSteps,
		stepsPerTick: stepsPerTick,
		running:      true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "tab":
			mets := m.sim.Series().Metabolites
			if len(mets) > 0 {
				m.focus = (m.focus + 1) % len(mets)
			}
		}
		return m, nil

	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.stepsPerTick && m.step < m.totalSteps && m.sim.Feasible(); i++ {
				mu, inhibition, err := m.sim.Step(m.step)
				if err != nil {
					m.err = err
					return m, tea.Quit
				}
				m.lastMu, m.lastInhibition = mu, inhibition
				m.step++
			}
		}
		if m.step >= m.totalSteps || !m.sim.Feasible() {
			m.running = false
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("dynfba live — %s", m.modelName)))
	b.WriteString("\n\n")

	status := runStyle.Render("running")
	switch {
	case !m.sim.Feasible():
		status = haltStyle.Render("halted (infeasible)")
	case !m.running:
		status = pauseStyle.Render("paused")
	}

	rows := []struct{ label, value string }{
		{"status", status},
		{"step", fmt.Sprintf("%d / %d", m.step, m.totalSteps)},
		{"time", fmt.Sprintf("%.2f s", float64(m.step)*m.dt)},
		{"biomass", fmt.Sprintf("%.6f gDW", m.sim.Biomass())},
		{"mu", fmt.Sprintf("%.4f /hr", m.lastMu)},
		{"inhibition", fmt.Sprintf("%.4f", m.lastInhibition)},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}

	if col, ok := m.sim.Series().Column("biomass"); ok && len(col) > 1 {
		b.WriteString(graphStyle.Render(plot(col, "biomass (gDW)")))
		b.WriteString("\n")
	}

	mets := m.sim.Series().Metabolites
	if len(mets) > 0 {
		id := mets[m.focus%len(mets)]
		if col, ok := m.sim.Series().Column(id); ok && len(col) > 1 {
			b.WriteString(graphStyle.Render(plot(col, id+" (mmol/L)")))
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render("space pause · tab cycle metabolite · q quit"))
	b.WriteString("\n")
	return b.String()
}

func plot(data []float64, caption string) string {
	if len(data) > historyShown {
		data = data[len(data)-historyShown:]
	}
	return asciigraph.Plot(data,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption(caption),
	)
}

// Run starts the live view and blocks until it exits. It returns the
// first simulation error, if any.
func Run(s *sim.Simulator, modelName string, dt float64, totalSteps, stepsPerTick int) error {
	m := NewModel(s, modelName, dt, totalSteps, stepsPerTick)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
