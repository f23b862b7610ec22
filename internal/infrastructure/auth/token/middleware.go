package token

import (
	"context"
	"net/http"
	"strings"

	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

type contextKey string

const (
	ContextKeyClaims contextKey = "auth_claims"
)

var (
	ErrMissingAuthHeader = errors.Unauthorized("missing authorization header")
	ErrInvalidAuthFormat = errors.Unauthorized("invalid authorization format")
	ErrAccessDenied      = errors.Forbidden("access denied")
)

// Verifier validates a raw bearer token.
type Verifier interface {
	Verify(raw string) (*Claims, error)
}

// FailureHandler writes the response for a rejected request.
type FailureHandler func(w http.ResponseWriter, r *http.Request, err error)

// Middleware authenticates requests with bearer tokens.
type Middleware struct {
	verifier  Verifier
	logger    logging.Logger
	onFailure FailureHandler
}

// NewMiddleware creates a Middleware.  onFailure renders the error; a nil
// handler writes a bare 401/403 status.
func NewMiddleware(v Verifier, logger logging.Logger, onFailure FailureHandler) *Middleware {
	if onFailure == nil {
		onFailure = func(w http.ResponseWriter, _ *http.Request, err error) {
			w.WriteHeader(errors.HTTPStatusForCode(errors.GetCode(err)))
		}
	}
	return &Middleware{verifier: v, logger: logger, onFailure: onFailure}
}

// Authenticate rejects requests without a valid token and stores the claims
// on the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := extractBearerToken(r)
		if err != nil {
			m.fail(w, r, err)
			return
		}
		claims, err := m.verifier.Verify(raw)
		if err != nil {
			m.fail(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireRole rejects authenticated requests whose role differs from role.
// It must run after Authenticate.
func (m *Middleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				m.fail(w, r, ErrMissingAuthHeader)
				return
			}
			if claims.Role != role {
				m.fail(w, r, ErrAccessDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) fail(w http.ResponseWriter, r *http.Request, err error) {
	m.logger.Warn("Authentication failed",
		logging.String("path", r.URL.Path),
		logging.String("ip", r.RemoteAddr),
		logging.Err(err),
	)
	if errors.GetCode(err) != errors.CodeForbidden {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	m.onFailure(w, r, err)
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingAuthHeader
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrInvalidAuthFormat
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")), nil
}

// WithClaims stores claims on ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ContextKeyClaims, c)
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ContextKeyClaims).(*Claims)
	return c, ok
}

// UserIDFromContext returns the authenticated user id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	c, ok := ClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return c.Subject, true
}

//Personal.AI order the ending
