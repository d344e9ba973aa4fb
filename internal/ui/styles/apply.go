package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid a circular import.
// Empty fields keep the built-in colors.
type ThemeConfig struct {
	Highlight string
	Subtle    string
	Error     string
	Success   string
}

// ApplyTheme overrides the campaign color tokens from configuration and
// rebuilds the styles derived from them. All values are validated before
// any token changes, so a bad config leaves the defaults untouched.
func ApplyTheme(cfg ThemeConfig) error {
	fields := []struct {
		name string
		hex  string
	}{
		{"highlight", cfg.Highlight},
		{"subtle", cfg.Subtle},
		{"error", cfg.Error},
		{"success", cfg.Success},
	}
	for _, f := range fields {
		if f.hex != "" && !isValidHexColor(f.hex) {
			return fmt.Errorf("invalid hex color for theme.%s: %s", f.name, f.hex)
		}
	}

	apply := func(hex string, dst ...*lipgloss.AdaptiveColor) {
		if hex == "" {
			return
		}
		c := lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		for _, d := range dst {
			*d = c
		}
	}

	apply(cfg.Highlight, &AccentColor, &AccentFocusColor, &ToastBorderInfoColor)
	apply(cfg.Subtle, &TextSecondaryColor, &TextMutedColor)
	apply(cfg.Error, &StatusErrorColor, &ToastBorderErrorColor)
	apply(cfg.Success, &StatusSuccessColor, &ToastBorderSuccessColor)

	rebuildStyles()
	return nil
}

// rebuildStyles refreshes the Style values captured from color tokens at
// package init.
func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	FooterStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(AccentColor).
		Underline(true).
		UnderlineSpaces(true)

	DisabledButtonStyle = baseButtonStyle.
		Foreground(TextMutedColor).
		Background(lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#2D2D2D"})
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
