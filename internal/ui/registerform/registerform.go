// Package registerform provides the participant registration modal.
//
// The form collects name, DNI and phone number, and requires the
// terms-and-conditions checkbox before it will emit a SubmitMsg.
package registerform

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ruleta/internal/registration"
	"ruleta/internal/ui/markdown"
	"ruleta/internal/ui/overlay"
	"ruleta/internal/ui/styles"
)

// termsCopy is rendered below the consent checkbox.
const termsCopy = `Al participar aceptas los **términos y condiciones** de la campaña
y el tratamiento de tus datos personales para la entrega de premios.`

// Field identifies which element is focused.
type Field int

const (
	FieldName Field = iota
	FieldDNI
	FieldPhone
	FieldConsent
	FieldSubmit
)

// SubmitMsg is sent when the user confirms a valid registration.
type SubmitMsg struct {
	Registrant registration.Registrant
}

// CancelMsg is sent when the user dismisses the form.
type CancelMsg struct{}

// Model holds the form state.
type Model struct {
	nameInput  textinput.Model
	dniInput   textinput.Model
	phoneInput textinput.Model
	consent    bool
	focused    Field
	width      int
	height     int
	formError  string
	terms      string
}

// New creates a registration form with empty fields.
func New() Model {
	name := textinput.New()
	name.Placeholder = "Nombre completo"
	name.CharLimit = 80
	name.Width = 32
	name.Prompt = ""
	name.Focus()

	dni := textinput.New()
	dni.Placeholder = "DNI"
	dni.CharLimit = registration.MaxDNILen
	dni.Width = 32
	dni.Prompt = ""

	phone := textinput.New()
	phone.Placeholder = "Celular"
	phone.CharLimit = registration.MaxPhoneLen
	phone.Width = 32
	phone.Prompt = ""

	terms := termsCopy
	if r, err := markdown.New(markdown.DefaultWidth); err == nil {
		if rendered, err := r.Render(termsCopy); err == nil {
			terms = strings.TrimRight(rendered, "\n")
		}
	}

	return Model{
		nameInput:  name,
		dniInput:   dni,
		phoneInput: phone,
		focused:    FieldName,
		terms:      terms,
	}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Focused returns the currently focused field.
func (m Model) Focused() Field {
	return m.focused
}

// Consent reports the checkbox state.
func (m Model) Consent() bool {
	return m.consent
}

// Registrant returns the current field values.
func (m Model) Registrant() registration.Registrant {
	return registration.Registrant{
		Name:            m.nameInput.Value(),
		DNI:             m.dniInput.Value(),
		PhoneNumber:     m.phoneInput.Value(),
		ConsentAccepted: m.consent,
	}
}

// HasError returns whether there is a validation error showing.
func (m Model) HasError() bool {
	return m.formError != ""
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }

		case "tab", "down":
			m = m.cycleField(false)
			return m, nil

		case "shift+tab", "up":
			m = m.cycleField(true)
			return m, nil

		case " ":
			if m.focused == FieldConsent {
				m.consent = !m.consent
				return m, nil
			}

		case "enter":
			switch m.focused {
			case FieldConsent:
				m.consent = !m.consent
				return m, nil
			case FieldSubmit:
				return m.submit()
			default:
				m = m.cycleField(false)
				return m, nil
			}
		}
	}

	// Forward to focused text input
	switch m.focused {
	case FieldName:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	case FieldDNI:
		var cmd tea.Cmd
		m.dniInput, cmd = m.dniInput.Update(msg)
		return m, cmd
	case FieldPhone:
		var cmd tea.Cmd
		m.phoneInput, cmd = m.phoneInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// cycleField moves focus to the next/previous field.
func (m Model) cycleField(reverse bool) Model {
	fields := []Field{FieldName, FieldDNI, FieldPhone, FieldConsent, FieldSubmit}
	current := 0
	for i, f := range fields {
		if f == m.focused {
			current = i
			break
		}
	}

	if reverse {
		current--
		if current < 0 {
			current = len(fields) - 1
		}
	} else {
		current = (current + 1) % len(fields)
	}

	m.focused = fields[current]

	m.nameInput.Blur()
	m.dniInput.Blur()
	m.phoneInput.Blur()
	switch m.focused {
	case FieldName:
		m.nameInput.Focus()
	case FieldDNI:
		m.dniInput.Focus()
	case FieldPhone:
		m.phoneInput.Focus()
	}

	return m
}

// submit validates the fields and emits SubmitMsg when valid.
func (m Model) submit() (Model, tea.Cmd) {
	m.formError = ""

	reg := m.Registrant()
	if err := reg.Validate(); err != nil {
		m.formError = err.Error()
		return m, nil
	}

	return m, func() tea.Msg {
		return SubmitMsg{Registrant: reg}
	}
}

// View renders the modal.
func (m Model) View() string {
	width := 40
	sectionWidth := width - 2

	nameSection := styles.RenderFormSection([]string{m.nameInput.View()}, "Nombre", "requerido", sectionWidth, m.focused == FieldName, styles.AccentColor)
	dniSection := styles.RenderFormSection([]string{m.dniInput.View()}, "DNI", "máx 11", sectionWidth, m.focused == FieldDNI, styles.AccentColor)
	phoneSection := styles.RenderFormSection([]string{m.phoneInput.View()}, "Celular", "máx 9", sectionWidth, m.focused == FieldPhone, styles.AccentColor)

	checkbox := "[ ]"
	if m.consent {
		checkbox = "[x]"
	}
	consentStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	if m.focused == FieldConsent {
		consentStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.AccentColor)
	}
	consentLine := consentStyle.Render(checkbox + " Acepto los términos y condiciones")

	errorLine := ""
	if m.formError != "" {
		errorLine = lipgloss.NewStyle().Foreground(styles.StatusErrorColor).Render(m.formError)
	}

	submitStyle := styles.PrimaryButtonStyle
	if m.focused == FieldSubmit {
		submitStyle = styles.PrimaryButtonFocusedStyle
	}
	submitButton := submitStyle.Render(" ¡GIRA Y GANA! ")

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor)
	borderStyle := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)
	titleBorder := borderStyle.Render(strings.Repeat("─", width))

	contentPadding := lipgloss.NewStyle().PaddingLeft(1)

	content := contentPadding.Render(titleStyle.Render("Regístrate para jugar")) + "\n" +
		titleBorder + "\n\n" +
		contentPadding.Render(nameSection) + "\n\n" +
		contentPadding.Render(dniSection) + "\n\n" +
		contentPadding.Render(phoneSection) + "\n\n" +
		contentPadding.Render(consentLine) + "\n\n" +
		contentPadding.Render(m.terms) + "\n"

	if errorLine != "" {
		content += "\n" + contentPadding.Render(errorLine) + "\n"
	}

	content += "\n" + contentPadding.Render(" "+submitButton) + "\n"

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.AccentColor).
		Padding(0, 1).
		Render(content)

	if m.width == 0 || m.height == 0 {
		return box
	}
	return box
}

// Overlay renders the form centered on top of a background view.
func (m Model) Overlay(bg string) string {
	cfg := overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}
	return overlay.Place(cfg, m.View(), bg)
}
