// Package play implements the spin screen: registration gate, prize wheel
// and the deferred hand-off to the result screen.
package play

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ruleta/internal/api"
	"ruleta/internal/keys"
	"ruleta/internal/log"
	"ruleta/internal/mode"
	"ruleta/internal/registration"
	"ruleta/internal/store"
	"ruleta/internal/ui/registerform"
	"ruleta/internal/ui/styles"
	"ruleta/internal/ui/wheel"
)

const (
	// SpinDuration is how long the wheel animates before the result shows.
	SpinDuration = 4 * time.Second

	requestTimeout = 15 * time.Second
)

// spinResultMsg carries the API outcome of a spin request.
type spinResultMsg struct {
	seq     int
	outcome api.SpinOutcome
	err     error
}

// spinDoneMsg fires when the wheel animation for a spin has run its course.
type spinDoneMsg struct {
	seq int
}

// storeResolvedMsg carries the resolved store name.
type storeResolvedMsg struct {
	storeID string
	name    string
}

// Model holds the play screen state.
type Model struct {
	services  mode.Services
	storeID   string
	storeName string

	machine *registration.Machine
	form    registerform.Model
	modal   bool

	wheel   wheel.Model
	spinSeq int
	loading bool
	outcome api.SpinOutcome

	message string
	width   int
	height  int
}

// New creates the play screen for a store. The registration modal opens
// immediately; it cannot be skipped, only dismissed back to the landing.
func New(services mode.Services, storeID string) Model {
	return Model{
		services: services,
		storeID:  storeID,
		machine:  registration.NewMachine(),
		form:     registerform.New(),
		modal:    true,
		wheel:    wheel.New(nil),
	}
}

// Init resolves the store name for the header.
func (m Model) Init() tea.Cmd {
	resolver := m.services.Resolver
	id := m.storeID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return storeResolvedMsg{storeID: id, name: resolver.Resolve(ctx, id)}
	}
}

// Registered reports whether the visitor has completed the form.
func (m Model) Registered() bool {
	return m.machine.Registered()
}

// ModalOpen reports whether the registration modal is showing.
func (m Model) ModalOpen() bool {
	return m.modal
}

// Spinning reports whether the wheel animation is running.
func (m Model) Spinning() bool {
	return m.wheel.Spinning()
}

// Loading reports whether a spin request is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Message returns the current status line, empty when there is none.
func (m Model) Message() string {
	return m.message
}

// SetSize handles terminal resize events.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.form = m.form.SetSize(width, height)
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case storeResolvedMsg:
		if msg.storeID == m.storeID {
			m.storeName = msg.name
		}
		return m, nil

	case registerform.SubmitMsg:
		if err := m.machine.Register(msg.Registrant); err != nil {
			// Validation already ran in the form; this only trips on a
			// duplicate registration attempt.
			m.message = err.Error()
			return m, nil
		}
		m.modal = false
		m.message = ""
		log.Info(log.CatRegistro, "Participant registered", "store", m.storeID)
		return m, nil

	case registerform.CancelMsg:
		if m.machine.Registered() {
			m.modal = false
			return m, nil
		}
		return m, func() tea.Msg { return mode.GoToLandingMsg{} }

	case spinResultMsg:
		if msg.seq != m.spinSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.message = spinErrorMessage(msg.err)
			log.ErrorErr(log.CatRegistro, "Spin request failed", msg.err, "store", m.storeID)
			return m, nil
		}
		m.outcome = msg.outcome
		var spinCmd tea.Cmd
		m.wheel, spinCmd = m.wheel.Spin(msg.seq)
		seq := msg.seq
		navCmd := tea.Tick(SpinDuration, func(_ time.Time) tea.Msg {
			return spinDoneMsg{seq: seq}
		})
		return m, tea.Batch(spinCmd, navCmd)

	case spinDoneMsg:
		if msg.seq != m.spinSeq || !m.wheel.Spinning() {
			return m, nil
		}
		m.wheel = m.wheel.Stop()
		outcome := m.outcome
		registrant := m.machine.Registrant()
		storeID, storeName := m.storeID, m.storeName
		return m, func() tea.Msg {
			return mode.GoToResultMsg{
				Outcome:    outcome,
				Registrant: registrant,
				StoreID:    storeID,
				StoreName:  storeName,
			}
		}

	case tea.KeyMsg:
		if m.modal {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, keys.Default.Back):
			if m.wheel.Spinning() || m.loading {
				return m, nil
			}
			return m, func() tea.Msg { return mode.GoToLandingMsg{} }

		case key.Matches(msg, keys.Default.Select):
			return m.spin()
		}

	case wheel.TickMsg:
		var cmd tea.Cmd
		m.wheel, cmd = m.wheel.Update(msg)
		return m, cmd
	}

	if m.modal {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// spin checks the preconditions and fires the registration request.
// The wheel only starts once the API accepts the spin.
func (m Model) spin() (mode.Controller, tea.Cmd) {
	if m.wheel.Spinning() || m.loading {
		return m, nil
	}
	if m.storeID == "" {
		m.message = "No hay tienda seleccionada"
		return m, nil
	}
	if !m.machine.Registered() {
		m.modal = true
		return m, nil
	}

	m.spinSeq++
	m.loading = true
	m.message = ""

	seq := m.spinSeq
	svc := m.services.API
	req := api.SpinRequest{
		StoreID:     m.storeID,
		Campaign:    m.services.Config.Campaign,
		Name:        m.machine.Registrant().Name,
		DNI:         m.machine.Registrant().DNI,
		PhoneNumber: m.machine.Registrant().PhoneNumber,
	}

	log.Info(log.CatRegistro, "Spin requested", "store", req.StoreID, "seq", seq)

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		outcome, err := svc.RegisterSpin(ctx, req)
		return spinResultMsg{seq: seq, outcome: outcome, err: err}
	}
}

// spinErrorMessage maps request failures to the status line. An API
// rejection shows the server's message when it carries one; anything that
// never produced a response is a connection failure and gets its own copy.
func spinErrorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "No se pudo registrar tu jugada. Inténtalo de nuevo."
	}
	return "Error de conexión con el servidor. Inténtalo de nuevo."
}

// View renders the play screen.
func (m Model) View() string {
	title := styles.TitleStyle.Render("¡Gira la ruleta!")
	storeLine := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).
		Render(store.DisplayName(m.storeID, m.storeName))

	var status string
	switch {
	case m.loading:
		status = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("Registrando tu jugada...")
	case m.wheel.Spinning():
		status = lipgloss.NewStyle().Foreground(styles.AccentColor).Render("¡Suerte!")
	case m.message != "":
		status = lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Render(m.message)
	default:
		status = styles.FooterStyle.Render("enter girar · esc volver")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title, "", storeLine, "", m.wheel.View(), "", status)

	var bg string
	if m.width == 0 || m.height == 0 {
		bg = content
	} else {
		bg = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	if m.modal {
		if m.width == 0 || m.height == 0 {
			return m.form.View()
		}
		return m.form.Overlay(bg)
	}
	return bg
}

var _ mode.Controller = Model{}
