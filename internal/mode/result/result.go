// Package result implements the post-spin outcome screen.
package result

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"ruleta/internal/api"
	"ruleta/internal/keys"
	"ruleta/internal/mode"
	"ruleta/internal/registration"
	"ruleta/internal/store"
	"ruleta/internal/ui/styles"
)

const bodyWidth = 48

// Model holds the result screen state.
type Model struct {
	outcome    api.SpinOutcome
	registrant registration.Registrant
	storeID    string
	storeName  string
	width      int
	height     int
}

// New creates the result screen from a finished spin.
func New(msg mode.GoToResultMsg) Model {
	return Model{
		outcome:    msg.Outcome,
		registrant: msg.Registrant,
		storeID:    msg.StoreID,
		storeName:  msg.StoreName,
	}
}

// Init implements mode.Controller.
func (m Model) Init() tea.Cmd {
	return nil
}

// Won reports whether the spin landed on a prize.
func (m Model) Won() bool {
	return m.outcome.Won()
}

// SetSize handles terminal resize events.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(km, keys.Default.Select) || key.Matches(km, keys.Default.Back) {
			return m, func() tea.Msg { return mode.GoToLandingMsg{} }
		}
	}
	return m, nil
}

// View renders the outcome.
func (m Model) View() string {
	var headline, body string
	if m.outcome.Won() {
		headline = lipgloss.NewStyle().Bold(true).Foreground(styles.StatusSuccessColor).
			Render("¡FELICIDADES, GANASTE!")
		body = fmt.Sprintf(
			"%s, te llevas: %s. Acércate al módulo de la tienda con tu DNI para recoger tu premio.",
			m.registrant.Name, m.outcome.PrizeName)
	} else {
		headline = lipgloss.NewStyle().Bold(true).Foreground(styles.AccentColor).
			Render("¡GRACIAS POR PARTICIPAR!")
		body = fmt.Sprintf(
			"%s, esta vez no hubo suerte, pero tu registro ya participa en los sorteos de la campaña.",
			m.registrant.Name)
	}

	wrapped := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).
		Render(wordwrap.String(body, bodyWidth))

	storeLine := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).
		Render(store.DisplayName(m.storeID, m.storeName))

	footer := styles.FooterStyle.Render("enter para volver al inicio")

	parts := []string{headline, "", wrapped, "", storeLine}
	if m.outcome.RegisterID != "" {
		parts = append(parts, styles.FooterStyle.Render("Registro: "+m.outcome.RegisterID))
	}
	parts = append(parts, "", footer)

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

var _ mode.Controller = Model{}
