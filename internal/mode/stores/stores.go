// Package stores implements the store selector screen.
package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ruleta/internal/api"
	"ruleta/internal/keys"
	"ruleta/internal/log"
	"ruleta/internal/mode"
	"ruleta/internal/ui/styles"
)

const (
	listPage     = 1
	listPageSize = 100
	fetchTimeout = 10 * time.Second
)

// loadedMsg carries the fetched store list.
type loadedMsg struct {
	stores []api.Store
	err    error
}

// Model holds the store selector state.
type Model struct {
	services mode.Services
	stores   []api.Store
	cursor   int
	loading  bool
	err      error
	width    int
	height   int
}

// New creates the store selector.
func New(services mode.Services) Model {
	return Model{services: services, loading: true}
}

// Init fetches the store list.
func (m Model) Init() tea.Cmd {
	return loadStoresCmd(m.services.API)
}

func loadStoresCmd(svc api.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		stores, err := svc.ListStores(ctx, listPage, listPageSize)
		if err != nil {
			log.ErrorErr(log.CatStore, "Store list fetch failed", err)
		}
		return loadedMsg{stores: stores, err: err}
	}
}

// Stores returns the loaded store list.
func (m Model) Stores() []api.Store {
	return m.stores
}

// Loading reports whether the fetch is still in flight.
func (m Model) Loading() bool {
	return m.loading
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
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		m.stores = msg.stores
		if m.cursor >= len(m.stores) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Default.Back):
			return m, func() tea.Msg { return mode.GoToLandingMsg{} }

		case key.Matches(msg, keys.Default.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, keys.Default.Down):
			if m.cursor < len(m.stores)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, keys.Default.Reload):
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, loadStoresCmd(m.services.API)
			}
			return m, nil

		case key.Matches(msg, keys.Default.Select):
			if m.loading || len(m.stores) == 0 {
				return m, nil
			}
			selected := m.stores[m.cursor]
			log.Info(log.CatStore, "Store selected", "id", selected.ID, "name", selected.Name)
			return m, func() tea.Msg { return mode.GoToPlayMsg{StoreID: selected.ID} }
		}
	}
	return m, nil
}

// View renders the selector.
func (m Model) View() string {
	title := styles.TitleStyle.Render("Elige tu tienda")

	var body string
	switch {
	case m.loading:
		body = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("Cargando tiendas...")
	case m.err != nil:
		body = lipgloss.NewStyle().Foreground(styles.StatusErrorColor).
			Render("No se pudieron cargar las tiendas. Presiona r para reintentar.")
	case len(m.stores) == 0:
		body = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("No hay tiendas disponibles.")
	default:
		rows := make([]string, 0, len(m.stores))
		for i, s := range m.stores {
			label := fmt.Sprintf("%s (%s)", s.Name, s.ID)
			if i == m.cursor {
				rows = append(rows, styles.SelectionIndicatorStyle.Render("> ")+
					lipgloss.NewStyle().Bold(true).Foreground(styles.AccentColor).Render(label))
			} else {
				rows = append(rows, "  "+lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Render(label))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	footer := styles.FooterStyle.Render("↑/↓ mover · enter elegir · r recargar · esc volver")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

var _ mode.Controller = Model{}
