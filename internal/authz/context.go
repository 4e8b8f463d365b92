package authz

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrIdentityMissing    = errors.New("authz: no authenticated identity attached to request")
	ErrCatalogUnavailable = errors.New("authz: permission catalog unavailable")
)

// Identity is the authenticated principal attached to a request by the
// authentication layer. The engine never authenticates; it only consumes.
type Identity struct {
	ID     int64
	Email  string
	Status string
}

type identityContextKey struct{}

// ContextWithIdentity attaches the authenticated identity to the context.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, &identity)
}

// IdentityFromContext extracts the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(identityContextKey{}).(*Identity)
	if !ok || v == nil {
		return Identity{}, false
	}
	return *v, true
}

// Context is the decision-ready view of one request: who is asking, which
// tenant scope the path targets, and which modules the catalog grants there.
// Immutable once built.
type Context struct {
	Identity       Identity
	Scope          TenantScope
	AllowedModules ModuleSet
	Method         string
	Path           string
}

// ContextBuilder assembles authorization contexts from the resolved path
// scope and the permission catalog.
type ContextBuilder struct {
	catalog PermissionCatalog
}

func NewContextBuilder(catalog PermissionCatalog) *ContextBuilder {
	return &ContextBuilder{catalog: catalog}
}

// Build resolves the request's tenant scope and loads the identity's grants
// for it. A nil identity yields ErrIdentityMissing; a catalog failure wraps
// ErrCatalogUnavailable so callers deny instead of allowing.
func (b *ContextBuilder) Build(ctx context.Context, identity *Identity, method, path string) (Context, error) {
	if identity == nil {
		return Context{}, ErrIdentityMissing
	}

	scope := ResolveScope(path)

	modules, err := b.catalog.GrantsFor(ctx, identity.ID, scope)
	if err != nil {
		return Context{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if modules == nil {
		modules = NewModuleSet()
	}

	return Context{
		Identity:       *identity,
		Scope:          scope,
		AllowedModules: modules,
		Method:         method,
		Path:           path,
	}, nil
}
