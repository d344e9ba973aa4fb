// Package registry is the read path over past registrations: filtered
// listing with last-request-wins cancellation, plus the unbounded fetches
// backing spreadsheet exports.
package registry

import (
	"context"
	"sync"

	"ruleta/internal/api"
	"ruleta/internal/log"
)

// exportLimit matches the dashboard's unbounded-fetch convention.
const exportLimit = 99999

// Result is the outcome of one listing fetch. Generation identifies which
// filter change produced it; stale generations must never reach the screen.
type Result struct {
	Generation int
	StoreID    string
	Records    []api.RegistrationRecord
	Err        error

	// Superseded is set when the fetch was cancelled by a newer one and
	// its records, even if present, must be discarded.
	Superseded bool
}

// Viewer coordinates list fetches so that only the result for the most
// recent filter can update visible state. Issuing a new fetch
// cancels the previous one; a cancelled fetch that races to completion is
// flagged Superseded.
type Viewer struct {
	svc api.Service

	mu         sync.Mutex
	generation int
	cancel     context.CancelFunc
}

// NewViewer creates a Viewer over the given API service.
func NewViewer(svc api.Service) *Viewer {
	return &Viewer{svc: svc}
}

// List begins a fetch for the given store filter (empty = all stores) and
// returns a function that performs it. Any still-pending previous fetch is
// cancelled immediately. The returned function is safe to run from a
// tea.Cmd goroutine.
func (v *Viewer) List(storeID string) func() Result {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.generation++
	generation := v.generation
	v.mu.Unlock()

	return func() Result {
		records, err := v.svc.ListRegistrations(ctx, storeID, 0)

		// Checked after the response resolves: a fetch cancelled while in
		// flight may still have produced records, and they must not win.
		if ctx.Err() != nil {
			return Result{Generation: generation, StoreID: storeID, Superseded: true}
		}
		if err != nil {
			log.ErrorErr(log.CatRegistry, "Listing fetch failed", err, "store", storeID)
		}
		return Result{Generation: generation, StoreID: storeID, Records: records, Err: err}
	}
}

// Current reports whether the given generation is still the latest filter.
func (v *Viewer) Current(generation int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return generation == v.generation
}

// Close cancels any in-flight fetch. Called on dashboard teardown.
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// FetchAll retrieves every matching record for an export (empty storeID =
// whole campaign). Unlike List this is not cancellable by filter changes;
// exports run to completion or fail loudly.
func (v *Viewer) FetchAll(ctx context.Context, storeID string) ([]api.RegistrationRecord, error) {
	return v.svc.ListRegistrations(ctx, storeID, exportLimit)
}
