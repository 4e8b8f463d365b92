package authz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/copypoint/cp-backend/internal/logging"
)

// DeniedEvent is the audit record of one denied request.
type DeniedEvent struct {
	IdentityID int64
	Method     string
	Path       string
	Scope      TenantScope
	Reason     Reason
	OccurredAt time.Time
}

// AuditSink receives denied decisions for the audit trail. Implementations
// must not block the request path on failure.
type AuditSink interface {
	RecordDenial(ctx context.Context, event DeniedEvent)
}

// Gate orchestrates authorization once per request: match the rule, build
// the context, evaluate, and short-circuit denies with a 403. Public-exempt
// endpoints are recognized before any identity or catalog work so that
// unauthenticated requests never trigger identity-dependent lookups.
type Gate struct {
	rules   *RuleTable
	builder *ContextBuilder
	engine  *Engine
	audit   AuditSink
}

func NewGate(rules *RuleTable, builder *ContextBuilder, engine *Engine, audit AuditSink) *Gate {
	return &Gate{
		rules:   rules,
		builder: builder,
		engine:  engine,
		audit:   audit,
	}
}

func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Preflight requests carry no credentials and are always exempt.
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		rule := g.rules.Match(r.Method, r.URL.Path)
		if rule != nil && rule.Public {
			next.ServeHTTP(w, r)
			return
		}

		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			g.deny(w, r, 0, Deny(ReasonIdentityMissing))
			return
		}

		authzCtx, err := g.builder.Build(r.Context(), &identity, r.Method, r.URL.Path)
		if err != nil {
			reason := ReasonCatalogUnavailable
			if errors.Is(err, ErrIdentityMissing) {
				reason = ReasonIdentityMissing
			} else {
				logging.Error("Permission catalog lookup failed",
					"user_id", identity.ID,
					"path", r.URL.Path,
					"error", err)
			}
			g.deny(w, r, identity.ID, Deny(reason))
			return
		}

		decision := g.engine.Decide(authzCtx, rule)
		if !decision.Allowed {
			g.deny(w, r, identity.ID, decision)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *Gate) deny(w http.ResponseWriter, r *http.Request, identityID int64, decision Decision) {
	logging.Warn("Request denied",
		"method", r.Method,
		"path", r.URL.Path,
		"user_id", identityID,
		"reason", string(decision.Reason))

	if g.audit != nil {
		g.audit.RecordDenial(r.Context(), DeniedEvent{
			IdentityID: identityID,
			Method:     r.Method,
			Path:       r.URL.Path,
			Scope:      ResolveScope(r.URL.Path),
			Reason:     decision.Reason,
			OccurredAt: time.Now().UTC(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	// The reason stays server-side; clients get a uniform body.
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "permission denied"})
}
