package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r, err := New(DefaultWidth)
	require.NoError(t, err)

	out, err := r.Render("# Términos\n\nPromoción válida hasta agotar stock.")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Términos")
	assert.Contains(t, plain, "agotar stock")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestNew_NonPositiveWidthFallsBack(t *testing.T) {
	r, err := New(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, r.Width())
}
