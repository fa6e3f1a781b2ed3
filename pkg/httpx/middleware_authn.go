package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sindh-police/spims/pkg/jwtx"
	"github.com/sindh-police/spims/pkg/slogx"
)

// IdentityResolver maps a verified token subject to a live identity. It must
// fail for subjects whose account no longer exists.
type IdentityResolver func(ctx context.Context, userID string) (Identity, error)

// AuthnMiddleware verifies the bearer token and resolves its subject to a
// live user before admitting the request. Missing, malformed, expired and
// orphaned tokens all end in the same 401.
func AuthnMiddleware(v jwtx.Verifier, resolve IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "you are not logged in, please log in to get access")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, "your session has expired, please log in again")
				} else {
					writeBearerError(w, "invalid token, please log in again")
				}
				log.Warn("jwt verify failed", "err", err)
				return
			}

			identity, err := resolve(ctx, claims.Subject)
			if err != nil {
				writeBearerError(w, "the user belonging to this token no longer exists")
				log.Warn("token subject not resolvable", "sub", claims.Subject, "err", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(ctx, identity)))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, FailBody{Status: "fail", Message: desc})
}
