package toaster

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestShowHide(t *testing.T) {
	m := New()
	assert.False(t, m.Visible())

	m = m.Show("Exportación completada", StyleSuccess)
	assert.True(t, m.Visible())
	assert.Equal(t, "Exportación completada", m.Message())
	assert.Contains(t, ansi.Strip(m.View()), "✅ Exportación completada")

	m = m.Hide()
	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestViewStylePrefixes(t *testing.T) {
	m := New()
	assert.Contains(t, ansi.Strip(m.Show("e", StyleError).View()), "❌")
	assert.Contains(t, ansi.Strip(m.Show("i", StyleInfo).View()), "ℹ️")
	assert.Contains(t, ansi.Strip(m.Show("w", StyleWarn).View()), "⚠️")
}

func TestOverlayPassthroughWhenHidden(t *testing.T) {
	m := New()
	bg := "background"
	assert.Equal(t, bg, m.Overlay(bg, 20, 5))
}
