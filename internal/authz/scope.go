package authz

import (
	"fmt"
	"strconv"
	"strings"
)

// ScopeKind tags a TenantScope value.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeStore
	ScopeCopypoint
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeStore:
		return "store"
	case ScopeCopypoint:
		return "copypoint"
	default:
		return "global"
	}
}

// TenantScope identifies which tenant a request operates within: a specific
// store, a specific copypoint, or no tenant at all. It is derived from the
// request path and never persisted.
type TenantScope struct {
	Kind ScopeKind
	ID   int64
}

func GlobalScope() TenantScope {
	return TenantScope{Kind: ScopeGlobal}
}

func StoreScope(id int64) TenantScope {
	return TenantScope{Kind: ScopeStore, ID: id}
}

func CopypointScope(id int64) TenantScope {
	return TenantScope{Kind: ScopeCopypoint, ID: id}
}

func (s TenantScope) String() string {
	if s.Kind == ScopeGlobal {
		return "global"
	}
	return fmt.Sprintf("%s:%d", s.Kind, s.ID)
}

// ResolveScope derives the tenant scope from a request path. A copypoint
// segment always wins over a store segment because it is the more specific
// scope; the owning store stays resolvable through the copypoint itself.
// A keyword followed by a non-numeric segment is treated as no id found,
// so malformed paths degrade to a broader scope instead of failing.
func ResolveScope(path string) TenantScope {
	segments := strings.Split(strings.Trim(path, "/"), "/")

	var (
		storeID, copypointID     int64
		haveStore, haveCopypoint bool
	)
	for i := 0; i+1 < len(segments); i++ {
		id, err := strconv.ParseInt(segments[i+1], 10, 64)
		if err != nil {
			continue
		}
		switch segments[i] {
		case "stores":
			if !haveStore {
				storeID = id
				haveStore = true
			}
		case "copypoints":
			if !haveCopypoint {
				copypointID = id
				haveCopypoint = true
			}
		}
	}

	switch {
	case haveCopypoint:
		return CopypointScope(copypointID)
	case haveStore:
		return StoreScope(storeID)
	default:
		return GlobalScope()
	}
}
