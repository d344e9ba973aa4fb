package api

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryClient is an in-memory Service used by demo mode and tests. It keeps
// the same observable behavior as the remote API: stores are looked up by id,
// spins append registration records, listings filter by store.
type MemoryClient struct {
	mu       sync.Mutex
	campaign string
	stores   []Store
	records  []RegistrationRecord

	// wheel holds upcoming prize outcomes, consumed one per spin.
	// An empty string is a losing spin. When exhausted every spin loses.
	wheel []string

	now func() time.Time
}

// NewMemoryClient creates an in-memory Service seeded with the given stores.
func NewMemoryClient(campaign string, stores []Store) *MemoryClient {
	return &MemoryClient{
		campaign: campaign,
		stores:   stores,
		now:      time.Now,
	}
}

// NewDemoClient creates a MemoryClient seeded with demo stores and a small
// prize wheel, so the kiosk can run without a backend.
func NewDemoClient(campaign string) *MemoryClient {
	c := NewMemoryClient(campaign, []Store{
		{ID: "105", Name: "Plaza Norte"},
		{ID: "212", Name: "Mall del Sur"},
		{ID: "307", Name: "Jockey Plaza"},
	})
	c.wheel = []string{"Polo", "", "Gorra", "", "", "Mochila"}
	return c
}

// SetWheel replaces the upcoming prize outcomes.
func (c *MemoryClient) SetWheel(prizes []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wheel = prizes
}

// SetClock overrides the record timestamp source.
func (c *MemoryClient) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// GetStore implements Service.
func (c *MemoryClient) GetStore(ctx context.Context, storeID string) (Store, error) {
	if err := ctx.Err(); err != nil {
		return Store{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.stores {
		if s.ID == storeID {
			return s, nil
		}
	}
	return Store{}, &Error{StatusCode: 404, Message: "tienda no encontrada"}
}

// ListStores implements Service.
func (c *MemoryClient) ListStores(ctx context.Context, page, limit int) ([]Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Store, len(c.stores))
	copy(out, c.stores)
	return out, nil
}

// RegisterSpin implements Service.
func (c *MemoryClient) RegisterSpin(ctx context.Context, req SpinRequest) (SpinOutcome, error) {
	if err := ctx.Err(); err != nil {
		return SpinOutcome{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.DNI) == "" ||
		strings.TrimSpace(req.PhoneNumber) == "" {
		return SpinOutcome{}, &Error{StatusCode: 400, Message: "faltan datos del participante"}
	}

	var storeName string
	for _, s := range c.stores {
		if s.ID == req.StoreID {
			storeName = s.Name
		}
	}
	if storeName == "" {
		return SpinOutcome{}, &Error{StatusCode: 404, Message: "tienda no encontrada"}
	}

	var prize string
	if len(c.wheel) > 0 {
		prize = c.wheel[0]
		c.wheel = c.wheel[1:]
	}

	record := RegistrationRecord{
		ID:          uuid.NewString(),
		StoreID:     req.StoreID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		DNI:         req.DNI,
		Campaign:    req.Campaign,
		Status:      "registered",
		CreatedAt:   c.now().UTC(),
		StoreName:   storeName,
		PrizeName:   prize,
	}
	c.records = append([]RegistrationRecord{record}, c.records...)

	return SpinOutcome{Success: true, PrizeName: prize, RegisterID: record.ID}, nil
}

// ListRegistrations implements Service.
func (c *MemoryClient) ListRegistrations(ctx context.Context, storeID string, limit int) ([]RegistrationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []RegistrationRecord
	for _, r := range c.records {
		if storeID != "" && r.StoreID != storeID {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ Service = (*MemoryClient)(nil)
