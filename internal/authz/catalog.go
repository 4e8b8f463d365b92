package authz

import (
	"context"
	"sort"
)

// ModuleSet is the set of module codes an identity may use within one scope.
type ModuleSet map[string]struct{}

func NewModuleSet(codes ...string) ModuleSet {
	set := make(ModuleSet, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

func (s ModuleSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the module codes in sorted order.
func (s ModuleSet) Codes() []string {
	codes := make([]string, 0, len(s))
	for c := range s {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// PermissionCatalog supplies the module grants an identity holds in one exact
// scope, resolved through the role hierarchies by the implementation.
//
// Implementations must return an empty set, not an error, when the identity
// holds no grants in that scope, and must never fall back to another scope
// implicitly: any cross-scope inheritance is the provider's documented policy
// decision, never assumed here.
type PermissionCatalog interface {
	GrantsFor(ctx context.Context, identityID int64, scope TenantScope) (ModuleSet, error)
}
