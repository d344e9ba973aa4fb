// Package wheel renders the prize wheel and its spin animation.
//
// The wheel does not know the outcome; it only animates. The play screen
// starts and stops it, and every tick carries the spin sequence that
// started it so frames from an abandoned spin are dropped.
package wheel

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ruleta/internal/ui/styles"
)

// FrameInterval is the delay between animation frames.
const FrameInterval = 100 * time.Millisecond

// TickMsg advances the animation by one frame.
type TickMsg struct {
	Seq int
}

// Model holds the wheel state.
type Model struct {
	segments []string
	frame    int
	spinning bool
	seq      int
}

// DefaultSegments is the face shown when the campaign has no prize list.
var DefaultSegments = []string{
	"PREMIO 1", "SIGUE INTENTANDO", "PREMIO 2", "SIGUE INTENTANDO",
	"PREMIO 3", "SIGUE INTENTANDO", "PREMIO 4", "SIGUE INTENTANDO",
}

// New creates a wheel with the given segment labels.
// Empty segments fall back to DefaultSegments.
func New(segments []string) Model {
	if len(segments) == 0 {
		segments = DefaultSegments
	}
	return Model{segments: segments}
}

// Spinning reports whether the animation is running.
func (m Model) Spinning() bool {
	return m.spinning
}

// Spin starts the animation for the given spin sequence.
func (m Model) Spin(seq int) (Model, tea.Cmd) {
	m.spinning = true
	m.seq = seq
	return m, tick(seq)
}

// Stop halts the animation.
func (m Model) Stop() Model {
	m.spinning = false
	return m
}

// Update handles animation ticks. Ticks from a previous spin are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if t, ok := msg.(TickMsg); ok {
		if !m.spinning || t.Seq != m.seq {
			return m, nil
		}
		m.frame++
		return m, tick(m.seq)
	}
	return m, nil
}

func tick(seq int) tea.Cmd {
	return tea.Tick(FrameInterval, func(_ time.Time) tea.Msg {
		return TickMsg{Seq: seq}
	})
}

// View renders the wheel face. While spinning, the highlighted segment
// rotates one position per frame.
func (m Model) View() string {
	active := m.frame % len(m.segments)

	pointer := styles.SelectionIndicatorStyle.Render("▸ ")
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.AccentColor)
	idleStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)

	var b strings.Builder
	for i, seg := range m.segments {
		if m.spinning && i == active {
			b.WriteString(pointer + activeStyle.Render(seg))
		} else {
			b.WriteString("  " + idleStyle.Render(seg))
		}
		if i < len(m.segments)-1 {
			b.WriteByte('\n')
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.AccentColor).
		Padding(0, 2).
		Render(b.String())
}
