// Package mode defines the mode controller interface and shared services.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"

	"ruleta/internal/api"
	"ruleta/internal/config"
	"ruleta/internal/export"
	"ruleta/internal/registration"
	"ruleta/internal/registry"
	"ruleta/internal/store"
	"ruleta/internal/ui/toaster"
)

// AppMode identifies the current application mode.
type AppMode int

const (
	ModeLanding AppMode = iota
	ModeStores
	ModePlay
	ModeResult
	ModeRegistros
)

// Controller defines the interface all modes must implement.
type Controller interface {
	// Init returns initial commands for the mode.
	Init() tea.Cmd

	// Update handles messages and returns updated model and commands.
	Update(msg tea.Msg) (Controller, tea.Cmd)

	// View renders the mode's UI.
	View() string

	// SetSize handles terminal resize events.
	SetSize(width, height int) Controller
}

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	API      api.Service
	Config   *config.Config
	Resolver *store.Resolver
	Viewer   *registry.Viewer
	Exporter *export.Exporter
}

// GoToLandingMsg returns to the landing screen.
type GoToLandingMsg struct{}

// GoToStoresMsg opens the store selector.
type GoToStoresMsg struct{}

// GoToPlayMsg opens the play screen for a store.
type GoToPlayMsg struct {
	StoreID string
}

// GoToResultMsg opens the result screen with the finished spin.
type GoToResultMsg struct {
	Outcome    api.SpinOutcome
	Registrant registration.Registrant
	StoreID    string
	StoreName  string
}

// GoToRegistrosMsg opens the records dashboard.
type GoToRegistrosMsg struct{}

// ShowToastMsg asks the root model to show a toast notification.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}
