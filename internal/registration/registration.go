// Package registration holds the kiosk's registration state machine.
//
// A visit starts in StateAwaitingRegistration and moves to StateRegistered
// exactly once; there is no path back within a visit. The spin action is
// gated on the Registered state.
package registration

import (
	"errors"
	"strings"
)

// Input layer limits. Presence is the only thing re-checked at submission.
const (
	MaxDNILen   = 11
	MaxPhoneLen = 9
)

// State is the registration lifecycle position.
type State int

const (
	StateAwaitingRegistration State = iota
	StateRegistered
)

func (s State) String() string {
	switch s {
	case StateAwaitingRegistration:
		return "awaiting_registration"
	case StateRegistered:
		return "registered"
	default:
		return "unknown"
	}
}

// Registrant carries the user-entered identity fields. Created empty on
// visit start, mutated field by field by the form, consumed once on spin.
type Registrant struct {
	Name            string
	DNI             string
	PhoneNumber     string
	ConsentAccepted bool
}

// Validation failures. These never reach the network; the form surfaces
// them by keeping the submit action disabled.
var (
	ErrMissingFields = errors.New("nombre, DNI y teléfono son obligatorios")
	ErrNoConsent     = errors.New("debes aceptar los términos y condiciones")
	ErrAlreadyDone   = errors.New("el registro ya fue completado")
)

// Validate checks the transition precondition: all three identity fields
// non-empty after trimming and consent given.
func (r Registrant) Validate() error {
	if strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.DNI) == "" ||
		strings.TrimSpace(r.PhoneNumber) == "" {
		return ErrMissingFields
	}
	if !r.ConsentAccepted {
		return ErrNoConsent
	}
	return nil
}

// Machine is the per-visit registration state machine.
type Machine struct {
	state      State
	registrant Registrant
}

// NewMachine starts a visit in StateAwaitingRegistration.
func NewMachine() *Machine {
	return &Machine{state: StateAwaitingRegistration}
}

// State returns the current lifecycle position.
func (m *Machine) State() State {
	return m.state
}

// Registered reports whether the terminal transition has happened.
func (m *Machine) Registered() bool {
	return m.state == StateRegistered
}

// Registrant returns the captured identity. Zero value until Registered.
func (m *Machine) Registrant() Registrant {
	return m.registrant
}

// Register attempts the AwaitingRegistration → Registered transition.
// The transition is irreversible; a second call is rejected.
func (m *Machine) Register(r Registrant) error {
	if m.state == StateRegistered {
		return ErrAlreadyDone
	}
	if err := r.Validate(); err != nil {
		return err
	}

	r.Name = strings.TrimSpace(r.Name)
	r.DNI = strings.TrimSpace(r.DNI)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)

	m.registrant = r
	m.state = StateRegistered
	return nil
}
