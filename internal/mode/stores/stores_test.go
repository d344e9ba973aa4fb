package stores

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleta/internal/api"
	"ruleta/internal/config"
	"ruleta/internal/mode"
)

// failingService errors on every call.
type failingService struct {
	api.Service
}

func (failingService) ListStores(context.Context, int, int) ([]api.Store, error) {
	return nil, errors.New("boom")
}

func testServices() mode.Services {
	cfg := config.Defaults()
	return mode.Services{
		API:    api.NewDemoClient(cfg.Campaign),
		Config: &cfg,
	}
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.Init()()
	c, _ := m.Update(msg)
	out := c.(Model)
	require.False(t, out.Loading())
	return out
}

func TestLoadStores(t *testing.T) {
	m := loaded(t, New(testServices()))
	assert.NotEmpty(t, m.Stores())
	assert.Contains(t, ansi.Strip(m.View()), "Plaza Norte")
}

func TestLoadFailure_ShowsRetryHint(t *testing.T) {
	services := testServices()
	services.API = failingService{}
	m := New(services)

	c, _ := m.Update(m.Init()())
	m = c.(Model)
	assert.Contains(t, ansi.Strip(m.View()), "reintentar")

	// r refetches
	c, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = c.(Model)
	assert.True(t, m.Loading())
	assert.NotNil(t, cmd)
}

func TestSelectStore(t *testing.T) {
	m := loaded(t, New(testServices()))

	c, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = c.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	nav, ok := cmd().(mode.GoToPlayMsg)
	require.True(t, ok)
	assert.Equal(t, m.Stores()[1].ID, nav.StoreID)
}

func TestEnterWhileLoadingIgnored(t *testing.T) {
	m := New(testServices())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestEscReturnsToLanding(t *testing.T) {
	m := loaded(t, New(testServices()))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(mode.GoToLandingMsg)
	assert.True(t, ok)
}
