package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultBindings(t *testing.T) {
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, Default.Select))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, Default.Quit))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, Default.Back))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, Default.Select))
}
