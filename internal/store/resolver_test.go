package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleta/internal/api"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"bare id", "105", "105"},
		{"path segment", "/105", "105"},
		{"path with query", "/105?store=212", "105"},
		{"query only", "/?store=105", "105"},
		{"stores screen keeps context", "/tiendas?store=105", "105"},
		{"root", "/", ""},
		{"empty", "", ""},
		{"reserved exit", "/exit", ""},
		{"reserved registros", "/registros", ""},
		{"nested path uses first segment", "/105/extra", "105"},
		{"full url", "http://kiosk.local/105", "105"},
		{"whitespace", "  /105  ", "105"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLocation(tt.location))
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Plaza Norte", DisplayName("105", "Plaza Norte"))
	assert.Equal(t, "Tienda: 105", DisplayName("105", ""))
}

// countingService wraps the memory client to count lookups.
type countingService struct {
	api.Service
	calls int
}

func (c *countingService) GetStore(ctx context.Context, id string) (api.Store, error) {
	c.calls++
	return c.Service.GetStore(ctx, id)
}

func TestResolver_ResolveAndCache(t *testing.T) {
	mem := api.NewMemoryClient("C", []api.Store{{ID: "105", Name: "Plaza Norte"}})
	svc := &countingService{Service: mem}
	r := NewResolver(svc)

	ctx := context.Background()
	assert.Equal(t, "Plaza Norte", r.Resolve(ctx, "105"))
	assert.Equal(t, "Plaza Norte", r.Resolve(ctx, "105"))
	assert.Equal(t, 1, svc.calls, "second resolve must hit the cache")
}

func TestResolver_FailureIsNonFatal(t *testing.T) {
	mem := api.NewMemoryClient("C", nil)
	r := NewResolver(mem)

	name := r.Resolve(context.Background(), "999")
	assert.Empty(t, name)
	assert.Equal(t, "Tienda: 999", DisplayName("999", name))
}

func TestResolver_Forget(t *testing.T) {
	mem := api.NewMemoryClient("C", []api.Store{{ID: "105", Name: "Plaza Norte"}})
	svc := &countingService{Service: mem}
	r := NewResolver(svc)

	ctx := context.Background()
	require.Equal(t, "Plaza Norte", r.Resolve(ctx, "105"))
	r.Forget(ctx, "105")
	require.Equal(t, "Plaza Norte", r.Resolve(ctx, "105"))
	assert.Equal(t, 2, svc.calls)
}

func TestResolver_EmptyID(t *testing.T) {
	svc := &countingService{Service: api.NewMemoryClient("C", nil)}
	r := NewResolver(svc)

	assert.Empty(t, r.Resolve(context.Background(), ""))
	assert.Zero(t, svc.calls)
}
