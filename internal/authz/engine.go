package authz

// Reason explains a deny. Reasons stay in server-side logs and audit records;
// clients see a uniform response body regardless of which reason fired.
type Reason string

const (
	ReasonNoGrant            Reason = "no-grant"
	ReasonUnmappedEndpoint   Reason = "unmapped-endpoint"
	ReasonIdentityMissing    Reason = "identity-missing"
	ReasonCatalogUnavailable Reason = "catalog-unavailable"
	ReasonScopeMismatch      Reason = "scope-mismatch"
)

// Decision is the outcome of evaluating one request.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Engine is the pure decision function. It holds no mutable state, so one
// instance serves any number of concurrent requests.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Decide evaluates a built context against the matched rule:
//
//  1. public-exempt rule: allow, skipping module checks entirely
//  2. no rule matched: deny unmapped-endpoint (fail closed on missing config)
//  3. required module absent from the allowed set: deny no-grant
//  4. otherwise allow
func (e *Engine) Decide(authzCtx Context, rule *EndpointRule) Decision {
	if rule != nil && rule.Public {
		return Allow()
	}
	if rule == nil {
		return Deny(ReasonUnmappedEndpoint)
	}
	if !authzCtx.AllowedModules.Has(rule.Module) {
		return Deny(ReasonNoGrant)
	}
	return Allow()
}
