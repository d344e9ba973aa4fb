// Package landing implements the campaign entry screen.
package landing

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ruleta/internal/keys"
	"ruleta/internal/log"
	"ruleta/internal/mode"
	"ruleta/internal/store"
	"ruleta/internal/ui/styles"
)

// storeResolvedMsg carries the resolved store name for the header.
type storeResolvedMsg struct {
	storeID string
	name    string
}

// Model holds the landing screen state.
type Model struct {
	services  mode.Services
	storeID   string
	storeName string
	width     int
	height    int
}

// New creates the landing screen. storeID may be empty when the kiosk was
// launched without a location.
func New(services mode.Services, storeID string) Model {
	return Model{services: services, storeID: storeID}
}

// Init resolves the store name when a store is pinned.
func (m Model) Init() tea.Cmd {
	if m.storeID == "" {
		return nil
	}
	resolver := m.services.Resolver
	id := m.storeID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storeResolvedMsg{storeID: id, name: resolver.Resolve(ctx, id)}
	}
}

// StoreID returns the pinned store, if any.
func (m Model) StoreID() string {
	return m.storeID
}

// SetSize handles terminal resize events.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
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

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Default.Select):
			if m.storeID == "" {
				log.Debug(log.CatUI, "Play requested without store, opening selector")
				return m, func() tea.Msg { return mode.GoToStoresMsg{} }
			}
			return m, func() tea.Msg { return mode.GoToPlayMsg{StoreID: m.storeID} }

		case key.Matches(msg, keys.Default.Stores):
			return m, func() tea.Msg { return mode.GoToStoresMsg{} }

		case key.Matches(msg, keys.Default.Registros):
			return m, func() tea.Msg { return mode.GoToRegistrosMsg{} }
		}
	}
	return m, nil
}

// View renders the landing screen.
func (m Model) View() string {
	title := styles.TitleStyle.Render("RULETA " + m.services.Config.Campaign)
	subtitle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).
		Render("Regístrate, gira la ruleta y gana premios al instante")

	storeLine := ""
	if m.storeID != "" {
		storeLine = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).
			Render(store.DisplayName(m.storeID, m.storeName))
	}

	cta := styles.PrimaryButtonFocusedStyle.Render(" JUGAR ")

	footer := styles.FooterStyle.Render("enter jugar · t tiendas · r registros · q salir")

	parts := []string{title, "", subtitle, ""}
	if storeLine != "" {
		parts = append(parts, storeLine, "")
	}
	parts = append(parts, cta, "", footer)

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

var _ mode.Controller = Model{}
