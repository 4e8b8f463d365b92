package grants

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/copypoint/cp-backend/internal/authz"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	grants authz.ModuleSet
	err    error
	calls  int
}

func (c *countingCatalog) GrantsFor(context.Context, int64, authz.TenantScope) (authz.ModuleSet, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.grants, nil
}

func newTestCache(t *testing.T, inner authz.PermissionCatalog, ttl time.Duration) (*CachedCatalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCachedCatalog(inner, client, ttl), mr
}

func TestCachedCatalog_ReadThrough(t *testing.T) {
	inner := &countingCatalog{grants: authz.NewModuleSet("SALES")}
	cache, _ := newTestCache(t, inner, time.Minute)

	ctx := context.Background()
	scope := authz.CopypointScope(12)

	modules, err := cache.GrantsFor(ctx, 7, scope)
	require.NoError(t, err)
	assert.True(t, modules.Has("SALES"))
	assert.Equal(t, 1, inner.calls)

	modules, err = cache.GrantsFor(ctx, 7, scope)
	require.NoError(t, err)
	assert.True(t, modules.Has("SALES"))
	assert.Equal(t, 1, inner.calls, "second read must come from cache")
}

func TestCachedCatalog_EmptySetCached(t *testing.T) {
	inner := &countingCatalog{grants: authz.NewModuleSet()}
	cache, _ := newTestCache(t, inner, time.Minute)

	ctx := context.Background()
	scope := authz.StoreScope(5)

	modules, err := cache.GrantsFor(ctx, 7, scope)
	require.NoError(t, err)
	assert.Empty(t, modules)

	_, err = cache.GrantsFor(ctx, 7, scope)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedCatalog_ExpiryRefetches(t *testing.T) {
	inner := &countingCatalog{grants: authz.NewModuleSet("SALES")}
	cache, mr := newTestCache(t, inner, time.Second)

	ctx := context.Background()
	scope := authz.CopypointScope(12)

	_, err := cache.GrantsFor(ctx, 7, scope)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = cache.GrantsFor(ctx, 7, scope)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedCatalog_ScopesKeyedSeparately(t *testing.T) {
	inner := &countingCatalog{grants: authz.NewModuleSet("SALES")}
	cache, _ := newTestCache(t, inner, time.Minute)

	ctx := context.Background()

	_, err := cache.GrantsFor(ctx, 7, authz.StoreScope(5))
	require.NoError(t, err)
	_, err = cache.GrantsFor(ctx, 7, authz.CopypointScope(12))
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "different scopes must not share entries")
}

func TestCachedCatalog_InnerErrorPropagates(t *testing.T) {
	inner := &countingCatalog{err: errors.New("connection refused")}
	cache, _ := newTestCache(t, inner, time.Minute)

	_, err := cache.GrantsFor(context.Background(), 7, authz.StoreScope(5))
	assert.Error(t, err)
}

func TestCachedCatalog_RedisDownFallsThrough(t *testing.T) {
	inner := &countingCatalog{grants: authz.NewModuleSet("SALES")}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := NewCachedCatalog(inner, client, time.Minute)

	mr.Close()

	modules, err := cache.GrantsFor(context.Background(), 7, authz.StoreScope(5))
	require.NoError(t, err)
	assert.True(t, modules.Has("SALES"))
}
