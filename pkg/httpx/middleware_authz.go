package httpx

import (
	"net/http"
	"strings"
)

// RequireRoles admits only callers holding one of the listed roles. It must
// be chained after AuthnMiddleware; an unauthenticated request here is a
// misconfiguration and also ends in 403, never a silent pass.
func RequireRoles(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if ok {
				if _, ok := want[identity.Role]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeRoleError(w, allowed...)
		})
	}
}

// Forbidden is distinct from the 401 bearer error: the caller is known, just
// not senior enough.
func writeRoleError(w http.ResponseWriter, allowed ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(allowed, " ")+`"`)
	WriteJSON(w, http.StatusForbidden, FailBody{
		Status:  "fail",
		Message: "you do not have permission to perform this action",
	})
}
