package grants

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/copypoint/cp-backend/internal/authz"
	"github.com/copypoint/cp-backend/internal/logging"
	"github.com/redis/go-redis/v9"
)

// CachedCatalog is a short-TTL read-through cache in front of a permission
// catalog. Cached grants may be stale for at most the TTL; that window is an
// accepted trade-off, not a bug. Cache failures fall through to the inner
// catalog, and inner failures propagate so callers deny.
type CachedCatalog struct {
	inner  authz.PermissionCatalog
	client *redis.Client
	ttl    time.Duration
}

func NewCachedCatalog(inner authz.PermissionCatalog, client *redis.Client, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

var _ authz.PermissionCatalog = (*CachedCatalog)(nil)

func (c *CachedCatalog) GrantsFor(ctx context.Context, identityID int64, scope authz.TenantScope) (authz.ModuleSet, error) {
	key := grantCacheKey(identityID, scope)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var codes []string
		if jsonErr := json.Unmarshal([]byte(cached), &codes); jsonErr == nil {
			return authz.NewModuleSet(codes...), nil
		}
		// Unreadable entry; fall through and overwrite it.
	} else if err != redis.Nil {
		logging.Warn("Grant cache read failed", "key", key, "error", err)
	}

	modules, err := c.inner.GrantsFor(ctx, identityID, scope)
	if err != nil {
		return nil, err
	}

	// Empty sets are cached too, so identities without grants do not hit
	// the database on every request.
	payload, err := json.Marshal(modules.Codes())
	if err == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			logging.Warn("Grant cache write failed", "key", key, "error", setErr)
		}
	}

	return modules, nil
}

func grantCacheKey(identityID int64, scope authz.TenantScope) string {
	return fmt.Sprintf("grants:%d:%s", identityID, scope)
}
