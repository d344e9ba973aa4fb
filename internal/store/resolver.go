// Package store derives the active store context from a navigational
// location and resolves its display name from the campaign API.
package store

import (
	"context"
	"net/url"
	"strings"

	"ruleta/internal/api"
	"ruleta/internal/cachemanager"
	"ruleta/internal/log"
)

// reserved path segments that never name a store.
var reserved = map[string]bool{
	"":          true,
	"tiendas":   true,
	"exit":      true,
	"registros": true,
}

// ParseLocation extracts a store identifier from a navigational location.
// The first path segment takes precedence over the "store" query parameter;
// reserved segments (tiendas, exit, registros) yield no store id.
//
// Accepted forms: "105", "/105", "/105?x=y", "/?store=105",
// "/tiendas?store=105", full URLs.
func ParseLocation(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}

	u, err := url.Parse(location)
	if err != nil {
		// Not URL-shaped: treat the whole string as a bare id.
		return location
	}

	segment := strings.Trim(u.Path, "/")
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}
	if !reserved[segment] {
		return segment
	}

	return u.Query().Get("store")
}

// DisplayName renders the advisory store label: the resolved name when
// known, otherwise the raw identifier.
func DisplayName(storeID, storeName string) string {
	if storeName != "" {
		return storeName
	}
	return "Tienda: " + storeID
}

// Resolver fetches store display names, caching them for the lifetime of
// the process (the duration of one visit).
type Resolver struct {
	svc   api.Service
	cache cachemanager.CacheManager[string, string]
}

// NewResolver creates a Resolver backed by the given API service.
func NewResolver(svc api.Service) *Resolver {
	return &Resolver{
		svc: svc,
		cache: cachemanager.NewInMemoryCacheManager[string, string](
			"store-names", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
	}
}

// Resolve looks up the display name for storeID. Failure is non-fatal by
// contract: it is logged and the empty string is returned so callers fall
// back to DisplayName's raw-id rendering. No retries.
func (r *Resolver) Resolve(ctx context.Context, storeID string) string {
	if storeID == "" {
		return ""
	}

	if name, ok := r.cache.Get(ctx, storeID); ok {
		return name
	}

	s, err := r.svc.GetStore(ctx, storeID)
	if err != nil {
		log.ErrorErr(log.CatStore, "Store lookup failed", err, "store", storeID)
		return ""
	}

	r.cache.Set(ctx, storeID, s.Name, cachemanager.NoExpiration)
	log.Debug(log.CatStore, "Resolved store name", "store", storeID, "name", s.Name)
	return s.Name
}

// Forget drops a cached name so the next Resolve re-fetches it. Used when
// the active store changes mid-visit.
func (r *Resolver) Forget(ctx context.Context, storeID string) {
	_ = r.cache.Delete(ctx, storeID)
}
