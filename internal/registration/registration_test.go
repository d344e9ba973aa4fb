package registration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMachine_ValidTransition(t *testing.T) {
	m := NewMachine()
	require.Equal(t, StateAwaitingRegistration, m.State())
	require.False(t, m.Registered())

	err := m.Register(Registrant{
		Name:            "  Juan Pérez ",
		DNI:             "12345678",
		PhoneNumber:     "987654321",
		ConsentAccepted: true,
	})

	require.NoError(t, err)
	assert.True(t, m.Registered())
	assert.Equal(t, "Juan Pérez", m.Registrant().Name, "fields are trimmed on capture")
}

func TestMachine_TransitionIsIrreversible(t *testing.T) {
	m := NewMachine()
	valid := Registrant{Name: "Juan", DNI: "1", PhoneNumber: "9", ConsentAccepted: true}
	require.NoError(t, m.Register(valid))

	err := m.Register(valid)
	require.ErrorIs(t, err, ErrAlreadyDone)
	assert.True(t, m.Registered())
}

func TestMachine_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		r       Registrant
		wantErr error
	}{
		{"all empty", Registrant{}, ErrMissingFields},
		{"whitespace name", Registrant{Name: "   ", DNI: "1", PhoneNumber: "9", ConsentAccepted: true}, ErrMissingFields},
		{"whitespace dni", Registrant{Name: "a", DNI: "\t", PhoneNumber: "9", ConsentAccepted: true}, ErrMissingFields},
		{"whitespace phone", Registrant{Name: "a", DNI: "1", PhoneNumber: " ", ConsentAccepted: true}, ErrMissingFields},
		{"no consent", Registrant{Name: "a", DNI: "1", PhoneNumber: "9"}, ErrNoConsent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			err := m.Register(tt.r)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, StateAwaitingRegistration, m.State())
		})
	}
}

// Any registrant with a blank identity field or without consent must never
// reach the Registered state.
func TestMachine_InvalidNeverTransitions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		blank := rapid.StringMatching(`[ \t]*`)
		filled := rapid.StringMatching(`[ \t]*\S[\S ]*`)

		r := Registrant{
			Name:            rapid.OneOf(blank, filled).Draw(t, "name"),
			DNI:             rapid.OneOf(blank, filled).Draw(t, "dni"),
			PhoneNumber:     rapid.OneOf(blank, filled).Draw(t, "phone"),
			ConsentAccepted: rapid.Bool().Draw(t, "consent"),
		}

		valid := r.ConsentAccepted &&
			strings.TrimSpace(r.Name) != "" &&
			strings.TrimSpace(r.DNI) != "" &&
			strings.TrimSpace(r.PhoneNumber) != ""

		m := NewMachine()
		err := m.Register(r)

		if valid {
			if err != nil {
				t.Fatalf("valid registrant rejected: %v", err)
			}
			if !m.Registered() {
				t.Fatalf("valid registrant did not transition")
			}
		} else {
			if err == nil {
				t.Fatalf("invalid registrant %+v accepted", r)
			}
			if m.Registered() {
				t.Fatalf("invalid registrant %+v transitioned", r)
			}
		}
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_registration", StateAwaitingRegistration.String())
	assert.Equal(t, "registered", StateRegistered.String())
	assert.Equal(t, "unknown", State(99).String())
}
