// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Campaign accent. The whole promotion is keyed off this teal.
	AccentColor      = lipgloss.AdaptiveColor{Light: "#65C7C3", Dark: "#65C7C3"}
	AccentFocusColor = lipgloss.AdaptiveColor{Light: "#8FE0DC", Dark: "#8FE0DC"}

	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#CCCCCC"}
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BBBBBB"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"}
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#777777"}

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection indicator color (used for ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Overlay chrome
	OverlayTitleColor = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#C9C9C9"}

	// Toast borders
	ToastBorderSuccessColor = StatusSuccessColor
	ToastBorderErrorColor   = StatusErrorColor
	ToastBorderInfoColor    = AccentColor
	ToastBorderWarnColor    = StatusWarningColor

	// Buttons
	ButtonTextColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(lipgloss.AdaptiveColor{Light: "#2A8A86", Dark: "#2A8A86"})

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(AccentColor).
					Underline(true).
					UnderlineSpaces(true)

	SecondaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"})

	SecondaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#636E72"}).
					Underline(true).
					UnderlineSpaces(true)

	DisabledButtonStyle = baseButtonStyle.
				Foreground(TextMutedColor).
				Background(lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#2D2D2D"})

	// Screen titles
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	// Footers and hint bars
	FooterStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
)
