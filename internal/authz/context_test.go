package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	grants map[string]ModuleSet
	err    error
	calls  []TenantScope
}

func (c *stubCatalog) GrantsFor(_ context.Context, _ int64, scope TenantScope) (ModuleSet, error) {
	c.calls = append(c.calls, scope)
	if c.err != nil {
		return nil, c.err
	}
	return c.grants[scope.String()], nil
}

func TestContextBuilder_Build(t *testing.T) {
	catalog := &stubCatalog{grants: map[string]ModuleSet{
		"copypoint:12": NewModuleSet("SALES"),
	}}
	builder := NewContextBuilder(catalog)
	identity := &Identity{ID: 7, Email: "clerk@example.com", Status: "active"}

	authzCtx, err := builder.Build(context.Background(), identity, "GET", "/api/stores/5/copypoints/12/services")
	require.NoError(t, err)

	assert.Equal(t, CopypointScope(12), authzCtx.Scope)
	assert.True(t, authzCtx.AllowedModules.Has("SALES"))
	assert.Equal(t, "GET", authzCtx.Method)
	assert.Equal(t, "/api/stores/5/copypoints/12/services", authzCtx.Path)
	assert.Equal(t, int64(7), authzCtx.Identity.ID)

	// The catalog is queried with the resolved scope, nothing broader.
	require.Len(t, catalog.calls, 1)
	assert.Equal(t, CopypointScope(12), catalog.calls[0])
}

func TestContextBuilder_Build_IdentityMissing(t *testing.T) {
	builder := NewContextBuilder(&stubCatalog{})

	_, err := builder.Build(context.Background(), nil, "GET", "/api/stores/5")
	assert.ErrorIs(t, err, ErrIdentityMissing)
}

func TestContextBuilder_Build_CatalogFailure(t *testing.T) {
	catalog := &stubCatalog{err: errors.New("connection refused")}
	builder := NewContextBuilder(catalog)

	_, err := builder.Build(context.Background(), &Identity{ID: 7}, "GET", "/api/stores/5")
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestContextBuilder_Build_NilGrantSetBecomesEmpty(t *testing.T) {
	builder := NewContextBuilder(&stubCatalog{})

	authzCtx, err := builder.Build(context.Background(), &Identity{ID: 7}, "GET", "/api/stores/5")
	require.NoError(t, err)
	assert.NotNil(t, authzCtx.AllowedModules)
	assert.Empty(t, authzCtx.AllowedModules)
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()

	_, ok := IdentityFromContext(ctx)
	assert.False(t, ok)

	ctx = ContextWithIdentity(ctx, Identity{ID: 7, Email: "clerk@example.com"})
	identity, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), identity.ID)
}
