// Package api is the client for the remote campaign API.
//
// The API itself is an external collaborator; this package consumes four
// calls: store lookup, register-spin, registrations listing and stores
// listing. Service is the seam the UI depends on so tests and demo mode can
// substitute the in-memory client.
package api

import (
	"context"
	"fmt"
	"time"
)

// Store is a physical or logical outlet scoped to the campaign.
type Store struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpinRequest carries one registration plus spin attempt.
type SpinRequest struct {
	StoreID     string `json:"storeId"`
	Campaign    string `json:"campaign"`
	Name        string `json:"name"`
	DNI         string `json:"dni"`
	PhoneNumber string `json:"phoneNumber"`
}

// SpinOutcome is the result of a register-spin call. It is transient: the
// play screen hands it to the result screen as navigation state and then
// discards it.
type SpinOutcome struct {
	Success    bool
	PrizeName  string
	RegisterID string
}

// Won reports whether the outcome carries a prize.
func (o SpinOutcome) Won() bool {
	return o.Success && o.PrizeName != ""
}

// RegistrationRecord is an immutable snapshot of a persisted registration.
// The listing is replaced wholesale on every successful fetch; records are
// never mutated in place.
type RegistrationRecord struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"store_id"`
	PrizeID     string    `json:"prize_id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	DNI         string    `json:"dni"`
	Campaign    string    `json:"campaign"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	StoreName   string    `json:"store_name"`
	PrizeName   string    `json:"prize_name"`
	PhotoURL    string    `json:"photo_url"`
}

// Won reports whether the record holds an awarded prize.
func (r RegistrationRecord) Won() bool {
	return r.PrizeName != ""
}

// Error is a structured non-2xx response from the campaign API. Its Message
// is the server-provided text surfaced to the user; transport failures are
// ordinary wrapped errors and never of this type.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// Service is the set of remote calls the kiosk and dashboard consume.
type Service interface {
	// GetStore resolves a store's display name by id.
	GetStore(ctx context.Context, storeID string) (Store, error)

	// ListStores returns the stores participating in the campaign.
	ListStores(ctx context.Context, page, limit int) ([]Store, error)

	// RegisterSpin submits identity fields and requests a prize outcome.
	RegisterSpin(ctx context.Context, req SpinRequest) (SpinOutcome, error)

	// ListRegistrations returns the latest registrations, optionally
	// filtered by store. limit <= 0 leaves the page size to the server.
	ListRegistrations(ctx context.Context, storeID string, limit int) ([]RegistrationRecord, error)
}
