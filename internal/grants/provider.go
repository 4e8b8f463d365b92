// Package grants implements the permission catalog: resolving which modules
// an identity may use inside one tenant scope, expanded through the two role
// hierarchies (store administrators and copypoint employees).
package grants

import (
	"context"
	"fmt"

	"github.com/copypoint/cp-backend/internal/authz"
)

// GrantStore reads the raw role data. Both methods expand
// grant -> role -> permission -> module and filter to active modules and
// active grants.
type GrantStore interface {
	StoreModules(ctx context.Context, userID, storeID int64) ([]string, error)
	CopypointModules(ctx context.Context, userID, copypointID int64) ([]string, error)
}

// Provider resolves grants for exactly the scope it is asked about.
//
// Policy decision: a store administrator grant does NOT cascade to the
// store's copypoints. A request scoped to copypoint 12 consults only
// copypoint-employee grants on copypoint 12, even when the identity
// administers the owning store. Scope nesting is a path fact, not a
// permission fact.
type Provider struct {
	store GrantStore
}

func NewProvider(store GrantStore) *Provider {
	return &Provider{store: store}
}

var _ authz.PermissionCatalog = (*Provider)(nil)

// GrantsFor returns the module set for one exact scope. Identities with no
// grants get an empty set, not an error. Global scope always resolves to an
// empty set: no role hierarchy grants modules outside a tenant, so
// non-public global endpoints stay unreachable by design.
func (p *Provider) GrantsFor(ctx context.Context, identityID int64, scope authz.TenantScope) (authz.ModuleSet, error) {
	var (
		codes []string
		err   error
	)
	switch scope.Kind {
	case authz.ScopeStore:
		codes, err = p.store.StoreModules(ctx, identityID, scope.ID)
	case authz.ScopeCopypoint:
		codes, err = p.store.CopypointModules(ctx, identityID, scope.ID)
	case authz.ScopeGlobal:
		return authz.NewModuleSet(), nil
	default:
		return nil, fmt.Errorf("unknown scope kind %d", scope.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("loading grants for user %d in %s: %w", identityID, scope, err)
	}
	return authz.NewModuleSet(codes...), nil
}
