package authz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []DeniedEvent
}

func (s *recordingSink) RecordDenial(_ context.Context, event DeniedEvent) {
	s.events = append(s.events, event)
}

func newTestGate(t *testing.T, catalog PermissionCatalog, sink AuditSink) *Gate {
	t.Helper()
	table := NewRuleTable([]EndpointRule{
		{Method: "POST", Pattern: "/api/auth/sign-in", Public: true},
		{Method: "POST", Pattern: "/api/stores", Public: true},
		{Method: "*", Pattern: "/api/stores/*/copypoints/*/services/**", Module: "SALES"},
		{Method: "*", Pattern: "/api/stores/*/copypoints/**", Module: "COPYPOINT_MANAGEMENT"},
	})
	return NewGate(table, NewContextBuilder(catalog), NewEngine(), sink)
}

func serveThroughGate(gate *Gate, req *http.Request) (*httptest.ResponseRecorder, bool) {
	reached := false
	handler := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, reached
}

func TestGate_PublicExemptSkipsCatalog(t *testing.T) {
	catalog := &stubCatalog{}
	gate := newTestGate(t, catalog, nil)

	// No identity attached at all.
	req := httptest.NewRequest("POST", "/api/stores", nil)
	rec, reached := serveThroughGate(gate, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Empty(t, catalog.calls, "public-exempt requests must not touch the catalog")
}

func TestGate_OptionsAlwaysAllowed(t *testing.T) {
	catalog := &stubCatalog{}
	gate := newTestGate(t, catalog, nil)

	req := httptest.NewRequest("OPTIONS", "/api/widgets/99", nil)
	rec, reached := serveThroughGate(gate, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Empty(t, catalog.calls)
}

func TestGate_CopypointGrantAllows(t *testing.T) {
	catalog := &stubCatalog{grants: map[string]ModuleSet{
		"copypoint:12": NewModuleSet("SALES"),
	}}
	gate := newTestGate(t, catalog, nil)

	req := httptest.NewRequest("GET", "/api/stores/5/copypoints/12/services", nil)
	req = req.WithContext(ContextWithIdentity(req.Context(), Identity{ID: 7, Status: "active"}))
	rec, reached := serveThroughGate(gate, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestGate_StoreGrantDoesNotCascadeToCopypoint(t *testing.T) {
	// The identity holds SALES at store:5 but nothing at copypoint:12.
	// The catalog is queried for the exact resolved scope, so the store
	// grant never applies.
	catalog := &stubCatalog{grants: map[string]ModuleSet{
		"store:5": NewModuleSet("SALES"),
	}}
	sink := &recordingSink{}
	gate := newTestGate(t, catalog, sink)

	req := httptest.NewRequest("GET", "/api/stores/5/copypoints/12/services", nil)
	req = req.WithContext(ContextWithIdentity(req.Context(), Identity{ID: 7, Status: "active"}))
	rec, reached := serveThroughGate(gate, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
	assert.JSONEq(t, `{"error": "permission denied"}`, rec.Body.String())

	require.Len(t, sink.events, 1)
	assert.Equal(t, ReasonNoGrant, sink.events[0].Reason)
	assert.Equal(t, CopypointScope(12), sink.events[0].Scope)
	assert.Equal(t, int64(7), sink.events[0].IdentityID)
}

func TestGate_UnmappedEndpointDenied(t *testing.T) {
	catalog := &stubCatalog{grants: map[string]ModuleSet{
		"global": NewModuleSet("SALES", "STORE_MANAGEMENT"),
	}}
	sink := &recordingSink{}
	gate := newTestGate(t, catalog, sink)

	req := httptest.NewRequest("GET", "/api/widgets/99", nil)
	req = req.WithContext(ContextWithIdentity(req.Context(), Identity{ID: 7, Status: "active"}))
	rec, reached := serveThroughGate(gate, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
	require.Len(t, sink.events, 1)
	assert.Equal(t, ReasonUnmappedEndpoint, sink.events[0].Reason)
}

func TestGate_MissingIdentityDenied(t *testing.T) {
	sink := &recordingSink{}
	gate := newTestGate(t, &stubCatalog{}, sink)

	req := httptest.NewRequest("GET", "/api/stores/5/copypoints/12/services", nil)
	rec, reached := serveThroughGate(gate, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
	require.Len(t, sink.events, 1)
	assert.Equal(t, ReasonIdentityMissing, sink.events[0].Reason)
}

func TestGate_CatalogFailureDeniesNeverAllows(t *testing.T) {
	catalog := &stubCatalog{err: errors.New("connection refused")}
	sink := &recordingSink{}
	gate := newTestGate(t, catalog, sink)

	req := httptest.NewRequest("GET", "/api/stores/5/copypoints/12/services", nil)
	req = req.WithContext(ContextWithIdentity(req.Context(), Identity{ID: 7, Status: "active"}))
	rec, reached := serveThroughGate(gate, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
	require.Len(t, sink.events, 1)
	assert.Equal(t, ReasonCatalogUnavailable, sink.events[0].Reason)
}

func TestGate_NilSinkTolerated(t *testing.T) {
	gate := newTestGate(t, &stubCatalog{}, nil)

	req := httptest.NewRequest("GET", "/api/stores/5/copypoints/12/services", nil)
	req = req.WithContext(ContextWithIdentity(req.Context(), Identity{ID: 7, Status: "active"}))
	rec, _ := serveThroughGate(gate, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
