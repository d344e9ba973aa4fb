package registerform

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestCycleField(t *testing.T) {
	m := New()
	assert.Equal(t, FieldName, m.Focused())

	m, _ = m.Update(keyMsg("tab"))
	assert.Equal(t, FieldDNI, m.Focused())
	m, _ = m.Update(keyMsg("tab"))
	assert.Equal(t, FieldPhone, m.Focused())
	m, _ = m.Update(keyMsg("tab"))
	assert.Equal(t, FieldConsent, m.Focused())
	m, _ = m.Update(keyMsg("tab"))
	assert.Equal(t, FieldSubmit, m.Focused())
	m, _ = m.Update(keyMsg("tab"))
	assert.Equal(t, FieldName, m.Focused())

	m, _ = m.Update(keyMsg("shift+tab"))
	assert.Equal(t, FieldSubmit, m.Focused())
}

func TestConsentToggle(t *testing.T) {
	m := New()
	for m.Focused() != FieldConsent {
		m, _ = m.Update(keyMsg("tab"))
	}
	assert.False(t, m.Consent())

	m, _ = m.Update(keyMsg(" "))
	assert.True(t, m.Consent())

	m, _ = m.Update(keyMsg("enter"))
	assert.False(t, m.Consent())
}

func TestSubmit_InvalidShowsError(t *testing.T) {
	m := New()
	for m.Focused() != FieldSubmit {
		m, _ = m.Update(keyMsg("tab"))
	}

	m, cmd := m.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.True(t, m.HasError())
	assert.Contains(t, ansi.Strip(m.View()), "obligatorios")
}

func TestSubmit_ValidEmitsSubmitMsg(t *testing.T) {
	m := New()
	m = typeText(m, "María Quispe")
	m, _ = m.Update(keyMsg("tab"))
	m = typeText(m, "45678901")
	m, _ = m.Update(keyMsg("tab"))
	m = typeText(m, "987654321")
	m, _ = m.Update(keyMsg("tab")) // consent
	m, _ = m.Update(keyMsg(" "))
	m, _ = m.Update(keyMsg("tab")) // submit

	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.False(t, m.HasError())

	msg := cmd()
	submit, ok := msg.(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "María Quispe", submit.Registrant.Name)
	assert.Equal(t, "45678901", submit.Registrant.DNI)
	assert.Equal(t, "987654321", submit.Registrant.PhoneNumber)
	assert.True(t, submit.Registrant.ConsentAccepted)
}

func TestCharLimits(t *testing.T) {
	m := New()
	m, _ = m.Update(keyMsg("tab")) // DNI
	m = typeText(m, "123456789012345")
	assert.Len(t, m.Registrant().DNI, 11)

	m, _ = m.Update(keyMsg("tab")) // phone
	m = typeText(m, "9876543210000")
	assert.Len(t, m.Registrant().PhoneNumber, 9)
}

func TestEscCancels(t *testing.T) {
	m := New()
	_, cmd := m.Update(keyMsg("esc"))
	require.NotNil(t, cmd)
	_, ok := cmd().(CancelMsg)
	assert.True(t, ok)
}
