package registry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleta/internal/api"
)

// gateService blocks ListRegistrations until released, per call.
type gateService struct {
	api.Service
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func newGateService(inner api.Service) *gateService {
	return &gateService{Service: inner, gates: make(map[string]chan struct{})}
}

func (g *gateService) gate(storeID string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[storeID]
	if !ok {
		ch = make(chan struct{})
		g.gates[storeID] = ch
	}
	return ch
}

func (g *gateService) ListRegistrations(ctx context.Context, storeID string, limit int) ([]api.RegistrationRecord, error) {
	select {
	case <-g.gate(storeID):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.Service.ListRegistrations(context.Background(), storeID, limit)
}

func seededClient(t *testing.T) *api.MemoryClient {
	t.Helper()
	mem := api.NewMemoryClient("C", []api.Store{
		{ID: "105", Name: "Plaza Norte"},
		{ID: "212", Name: "Mall del Sur"},
	})
	for _, id := range []string{"105", "212", "105"} {
		_, err := mem.RegisterSpin(context.Background(), api.SpinRequest{
			StoreID: id, Name: "a", DNI: "b", PhoneNumber: "c",
		})
		require.NoError(t, err)
	}
	return mem
}

func TestViewer_List(t *testing.T) {
	v := NewViewer(seededClient(t))

	res := v.List("105")()
	require.NoError(t, res.Err)
	assert.False(t, res.Superseded)
	assert.Len(t, res.Records, 2)
	assert.True(t, v.Current(res.Generation))
}

func TestViewer_LastRequestWins(t *testing.T) {
	gate := newGateService(seededClient(t))
	v := NewViewer(gate)

	// First fetch blocks on the gate; the second supersedes it.
	first := v.List("105")
	second := v.List("212")

	results := make(chan Result, 2)
	go func() { results <- first() }()
	go func() { results <- second() }()

	// Release both fetches. The first was already cancelled by the second.
	close(gate.gate("105"))
	close(gate.gate("212"))

	byStore := map[string]Result{}
	for i := 0; i < 2; i++ {
		select {
		case r := <-results:
			byStore[r.StoreID] = r
		case <-time.After(2 * time.Second):
			t.Fatal("fetch did not settle")
		}
	}

	assert.True(t, byStore["105"].Superseded, "superseded fetch must be discarded")
	assert.Empty(t, byStore["105"].Records)

	require.False(t, byStore["212"].Superseded)
	require.NoError(t, byStore["212"].Err)
	assert.Len(t, byStore["212"].Records, 1)

	assert.False(t, v.Current(byStore["105"].Generation))
	assert.True(t, v.Current(byStore["212"].Generation))
}

func TestViewer_ErrorKeepsGeneration(t *testing.T) {
	v := NewViewer(api.NewMemoryClient("C", nil))

	// Cancel the context mid-flight by closing the viewer before running.
	fetch := v.List("105")
	v.Close()

	res := fetch()
	assert.True(t, res.Superseded)
}

func TestViewer_FetchAll(t *testing.T) {
	v := NewViewer(seededClient(t))

	all, err := v.FetchAll(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := v.FetchAll(context.Background(), "212")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}
