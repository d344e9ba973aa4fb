// Package app contains the root application model.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ruleta/internal/log"
	"ruleta/internal/mode"
	"ruleta/internal/mode/landing"
	"ruleta/internal/mode/play"
	"ruleta/internal/mode/registros"
	"ruleta/internal/mode/result"
	"ruleta/internal/mode/stores"
	"ruleta/internal/store"
	"ruleta/internal/ui/toaster"
)

const toastDuration = 3 * time.Second

// Model is the root application state.
type Model struct {
	currentMode mode.AppMode
	current     mode.Controller

	// Shared services (passed to mode controllers)
	services mode.Services

	// Store pinned by the launch location, empty when none.
	storeID string

	width  int
	height int

	// Centralized toaster - owned by app, not individual modes
	toaster toaster.Model
}

// New creates the root model. location is the kiosk launch location;
// anything that does not name a store falls back to the landing screen.
// startMode picks the initial screen (the registros subcommand starts on
// the dashboard).
func New(services mode.Services, location string, startMode mode.AppMode) Model {
	storeID := store.ParseLocation(location)

	m := Model{
		currentMode: startMode,
		services:    services,
		storeID:     storeID,
		toaster:     toaster.New(),
	}
	m.current = m.controllerFor(startMode)
	return m
}

// controllerFor builds a fresh controller for a mode.
func (m Model) controllerFor(am mode.AppMode) mode.Controller {
	switch am {
	case mode.ModeStores:
		return stores.New(m.services)
	case mode.ModePlay:
		return play.New(m.services, m.storeID)
	case mode.ModeRegistros:
		return registros.New(m.services)
	default:
		return landing.New(m.services, m.storeID)
	}
}

// Mode returns the active mode. Exposed for tests.
func (m Model) Mode() mode.AppMode {
	return m.currentMode
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.current.Init()
}

// switchTo swaps the active controller and runs its Init.
func (m Model) switchTo(am mode.AppMode, c mode.Controller) (tea.Model, tea.Cmd) {
	log.Info(log.CatUI, "Switching mode", "from", int(m.currentMode), "to", int(am))
	m.currentMode = am
	m.current = c.SetSize(m.width, m.height)
	return m, m.current.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.current = m.current.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.services.Viewer.Close()
			return m, tea.Quit
		case "q":
			// q quits only from the landing screen; everywhere else it may
			// be form input.
			if m.currentMode == mode.ModeLanding {
				m.services.Viewer.Close()
				return m, tea.Quit
			}
		}

	case mode.GoToLandingMsg:
		return m.switchTo(mode.ModeLanding, landing.New(m.services, m.storeID))

	case mode.GoToStoresMsg:
		return m.switchTo(mode.ModeStores, stores.New(m.services))

	case mode.GoToPlayMsg:
		m.storeID = msg.StoreID
		return m.switchTo(mode.ModePlay, play.New(m.services, msg.StoreID))

	case mode.GoToResultMsg:
		return m.switchTo(mode.ModeResult, result.New(msg))

	case mode.GoToRegistrosMsg:
		return m.switchTo(mode.ModeRegistros, registros.New(m.services))

	case mode.ShowToastMsg:
		m.toaster = m.toaster.Show(msg.Message, msg.Style)
		return m, toaster.ScheduleDismiss(toastDuration)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.current, cmd = m.current.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.current.View()
	return m.toaster.Overlay(view, m.width, m.height)
}
