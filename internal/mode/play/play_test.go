package play

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleta/internal/api"
	"ruleta/internal/config"
	"ruleta/internal/export"
	"ruleta/internal/mode"
	"ruleta/internal/registration"
	"ruleta/internal/registry"
	"ruleta/internal/store"
	"ruleta/internal/ui/registerform"
)

func testServices(t *testing.T) (mode.Services, *api.MemoryClient) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Campaign = "CAMPANA_TEST"
	demo := api.NewDemoClient(cfg.Campaign)
	return mode.Services{
		API:      demo,
		Config:   &cfg,
		Resolver: store.NewResolver(demo),
		Viewer:   registry.NewViewer(demo),
		Exporter: export.NewExporter(cfg.Campaign, cfg.Location(), t.TempDir()),
	}, demo
}

func registrant() registration.Registrant {
	return registration.Registrant{
		Name:            "María Quispe",
		DNI:             "45678901",
		PhoneNumber:     "987654321",
		ConsentAccepted: true,
	}
}

func registered(t *testing.T, m Model) Model {
	t.Helper()
	c, _ := m.Update(registerform.SubmitMsg{Registrant: registrant()})
	out := c.(Model)
	require.True(t, out.Registered())
	require.False(t, out.ModalOpen())
	return out
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestNew_OpensRegistrationModal(t *testing.T) {
	services, _ := testServices(t)
	m := New(services, "105")
	assert.True(t, m.ModalOpen())
	assert.False(t, m.Registered())
}

func TestCancelBeforeRegistration_ReturnsToLanding(t *testing.T) {
	services, _ := testServices(t)
	m := New(services, "105")

	_, cmd := m.Update(registerform.CancelMsg{})
	require.NotNil(t, cmd)
	_, ok := cmd().(mode.GoToLandingMsg)
	assert.True(t, ok)
}

func TestSpin_RequiresRegistration(t *testing.T) {
	services, _ := testServices(t)
	m := New(services, "105")
	m.modal = false // simulate a dismissed modal without registering

	c, cmd := m.Update(enterKey())
	assert.Nil(t, cmd)
	assert.True(t, c.(Model).ModalOpen())
}

func TestSpin_HappyPath(t *testing.T) {
	services, demo := testServices(t)
	demo.SetWheel([]string{"Polo"})

	m := registered(t, New(services, "105"))

	c, cmd := m.Update(enterKey())
	m = c.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Loading())

	msg := cmd()
	res, ok := msg.(spinResultMsg)
	require.True(t, ok)
	require.NoError(t, res.err)
	assert.Equal(t, "Polo", res.outcome.PrizeName)

	c, cmd = m.Update(res)
	m = c.(Model)
	assert.False(t, m.Loading())
	assert.True(t, m.Spinning())
	require.NotNil(t, cmd)

	// Animation finished: hand off to the result screen with the outcome.
	c, cmd = m.Update(spinDoneMsg{seq: res.seq})
	m = c.(Model)
	require.NotNil(t, cmd)
	nav, ok := cmd().(mode.GoToResultMsg)
	require.True(t, ok)
	assert.Equal(t, "Polo", nav.Outcome.PrizeName)
	assert.Equal(t, "María Quispe", nav.Registrant.Name)
	assert.Equal(t, "105", nav.StoreID)
	assert.False(t, m.Spinning())
}

func TestSpin_IgnoredWhileLoadingOrSpinning(t *testing.T) {
	services, _ := testServices(t)
	m := registered(t, New(services, "105"))

	c, _ := m.Update(enterKey())
	m = c.(Model)
	require.True(t, m.Loading())

	// Second press while the request is in flight does nothing.
	_, cmd := m.Update(enterKey())
	assert.Nil(t, cmd)
}

func TestSpinResult_ApiErrorShowsMessage(t *testing.T) {
	services, _ := testServices(t)
	m := registered(t, New(services, "105"))
	m.spinSeq = 1
	m.loading = true

	apiErr := &api.Error{StatusCode: 409, Message: "Ya participaste hoy"}
	c, cmd := m.Update(spinResultMsg{seq: 1, err: apiErr})
	m = c.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.Loading())
	assert.False(t, m.Spinning())
	assert.Equal(t, "Ya participaste hoy", m.Message())
	assert.Contains(t, ansi.Strip(m.View()), "Ya participaste hoy")
}

func TestSpinResult_TransportErrorShowsConnectionMessage(t *testing.T) {
	services, _ := testServices(t)
	m := registered(t, New(services, "105"))
	m.spinSeq = 1
	m.loading = true

	c, _ := m.Update(spinResultMsg{seq: 1, err: errors.New("dial tcp: connection refused")})
	m = c.(Model)
	assert.Contains(t, m.Message(), "Error de conexión")

	// A message-less API rejection reads differently from a dead connection.
	assert.NotEqual(t, spinErrorMessage(&api.Error{StatusCode: 500}), m.Message())
}

func TestStaleMessagesIgnored(t *testing.T) {
	services, _ := testServices(t)
	m := registered(t, New(services, "105"))
	m.spinSeq = 2

	c, cmd := m.Update(spinResultMsg{seq: 1, outcome: api.SpinOutcome{PrizeName: "Polo"}})
	m = c.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.Spinning())

	_, cmd = m.Update(spinDoneMsg{seq: 1})
	assert.Nil(t, cmd)
}

func TestSpin_WithoutStoreShowsMessage(t *testing.T) {
	services, _ := testServices(t)
	m := registered(t, New(services, ""))

	c, cmd := m.Update(enterKey())
	m = c.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, "No hay tienda seleccionada", m.Message())
}

func TestEscDuringSpinIgnored(t *testing.T) {
	services, _ := testServices(t)
	m := registered(t, New(services, "105"))
	m.loading = true

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
}
