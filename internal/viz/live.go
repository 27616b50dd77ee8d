// Package viz renders a performance live in the terminal: the scrolling
// board on the left, playback stats and a notes-per-tick sparkline beside
// it.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/steinway/internal/audio"
	"github.com/san-kum/steinway/internal/life"
)

const historyCapacity = 240

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	aliveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	struckStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives one board through bubbletea at a fixed tempo.
type Model struct {
	board    *life.Board
	player   audio.Player
	initial  []life.Row
	delay    time.Duration
	steps    int // 0 means unlimited
	tick     int
	lastKeys []int
	history  []float64
	running  bool
	done     bool
}

// NewModel wires a board and player into a live view. The player is not
// closed by the model; the caller owns it.
func NewModel(board *life.Board, player audio.Player, delay time.Duration, steps int) Model {
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	return Model{
		board:   board,
		player:  player,
		initial: board.Snapshot(),
		delay:   delay,
		steps:   steps,
		history: make([]float64, 0, historyCapacity),
		running: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.board.Restore(m.initial)
			m.tick = 0
			m.lastKeys = nil
			m.history = m.history[:0]
			m.done = false
			m.running = true
		}
	case TickMsg:
		if m.running && !m.done {
			keys := m.board.HarvestAndAdvance()
			m.player.PlayKeys(keys)
			m.lastKeys = keys
			m.history = append(m.history, float64(len(keys)))
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
			m.tick++
			if m.steps > 0 && m.tick >= m.steps {
				m.done = true
			}
		}
		return m, tea.Tick(m.delay, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("conway's steinway"))
	b.WriteString("\n")

	b.WriteString(boardStyle.Render(m.renderBoard()))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("tick"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.tick)))
	if m.steps > 0 {
		b.WriteString(valueStyle.Render(fmt.Sprintf(" / %d", m.steps)))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("generation"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.board.Generation())))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("playing"))
	b.WriteString(struckStyle.Render(m.renderKeys()))
	b.WriteString("\n")

	if len(m.history) >= 2 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("notes per tick"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	switch {
	case m.done:
		b.WriteString(helpStyle.Render("performance complete · r restart · q quit"))
	case m.running:
		b.WriteString(helpStyle.Render("space pause · r restart · q quit"))
	default:
		b.WriteString(helpStyle.Render("paused · space resume · r restart · q quit"))
	}

	return b.String()
}

func (m Model) renderBoard() string {
	snap := m.board.Snapshot()
	rows := make([]string, 0, len(snap))

	struck := make(map[int]bool, len(m.lastKeys))
	for _, k := range m.lastKeys {
		struck[k] = true
	}

	for r, row := range snap {
		var line strings.Builder
		for _, cell := range row {
			switch {
			case cell == life.Alive && r == len(snap)-1:
				line.WriteString(struckStyle.Render("O"))
			case cell == life.Alive:
				line.WriteString(aliveStyle.Render("O"))
			default:
				line.WriteString(deadStyle.Render("·"))
			}
		}
		rows = append(rows, line.String())
	}

	// One extra line marking the keys struck on the previous tick.
	var keyLine strings.Builder
	for c := 0; c < life.Width; c++ {
		if struck[c] {
			keyLine.WriteString(struckStyle.Render("^"))
		} else {
			keyLine.WriteString(" ")
		}
	}
	rows = append(rows, keyLine.String())

	return strings.Join(rows, "\n")
}

func (m Model) renderKeys() string {
	if len(m.lastKeys) == 0 {
		return "(rest)"
	}
	names := make([]string, len(m.lastKeys))
	for i, k := range m.lastKeys {
		names[i] = audio.KeyNoteName(k)
	}
	return strings.Join(names, " ")
}
