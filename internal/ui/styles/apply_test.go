package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// resetTheme restores the built-in palette after a test mutates it.
func resetTheme(t *testing.T) {
	t.Helper()
	accent := AccentColor
	accentFocus := AccentFocusColor
	secondary := TextSecondaryColor
	muted := TextMutedColor
	statusErr := StatusErrorColor
	statusOK := StatusSuccessColor
	toastInfo := ToastBorderInfoColor
	toastErr := ToastBorderErrorColor
	toastOK := ToastBorderSuccessColor
	t.Cleanup(func() {
		AccentColor = accent
		AccentFocusColor = accentFocus
		TextSecondaryColor = secondary
		TextMutedColor = muted
		StatusErrorColor = statusErr
		StatusSuccessColor = statusOK
		ToastBorderInfoColor = toastInfo
		ToastBorderErrorColor = toastErr
		ToastBorderSuccessColor = toastOK
		rebuildStyles()
	})
}

func TestApplyTheme_Override(t *testing.T) {
	resetTheme(t)

	err := ApplyTheme(ThemeConfig{Highlight: "#FF0000", Success: "#00FF00"})
	require.NoError(t, err)
	require.Equal(t, "#FF0000", AccentColor.Dark)
	require.Equal(t, "#FF0000", ToastBorderInfoColor.Dark)
	require.Equal(t, "#00FF00", StatusSuccessColor.Dark)

	// Derived styles pick up the new accent.
	require.Equal(t, AccentColor, TitleStyle.GetForeground())
}

func TestApplyTheme_EmptyKeepsDefaults(t *testing.T) {
	resetTheme(t)

	before := AccentColor
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, before, AccentColor)
}

func TestApplyTheme_InvalidHex(t *testing.T) {
	resetTheme(t)

	before := AccentColor
	tests := []string{"FF0000", "#GG0000", "#FF00", "teal"}
	for _, hex := range tests {
		err := ApplyTheme(ThemeConfig{Highlight: hex})
		require.Error(t, err, hex)
	}
	require.Equal(t, before, AccentColor)
}

func TestApplyTheme_ValidatesBeforeApplying(t *testing.T) {
	resetTheme(t)

	before := StatusSuccessColor
	err := ApplyTheme(ThemeConfig{Success: "#00FF00", Error: "bad"})
	require.Error(t, err)
	require.Equal(t, before, StatusSuccessColor)
}
