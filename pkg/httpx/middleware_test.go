package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sindh-police/spims/pkg/httpx"
	"github.com/sindh-police/spims/pkg/jwtx"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestVerifier(t *testing.T) *jwtx.HS256 {
	t.Helper()
	h, err := jwtx.NewHS256(testSecret, "spims-test", time.Hour)
	require.NoError(t, err)
	return h
}

func okResolver(id httpx.Identity) httpx.IdentityResolver {
	return func(ctx context.Context, userID string) (httpx.Identity, error) {
		id.ID = userID
		return id, nil
	}
}

func echoIdentityHandler(t *testing.T, want httpx.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := httpx.IdentityFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, want, got)
		w.WriteHeader(http.StatusOK)
	})
}

func decodeFail(t *testing.T, rec *httptest.ResponseRecorder) httpx.FailBody {
	t.Helper()
	var body httpx.FailBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthnMiddleware(t *testing.T) {
	verifier := newTestVerifier(t)

	identity := httpx.Identity{ID: "user-1", Username: "akhan", FullName: "A. Khan", Role: "SSP"}
	secured := httpx.Chain(echoIdentityHandler(t, identity),
		httpx.AuthnMiddleware(verifier, okResolver(identity)),
	)

	t.Run("missing bearer token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/personnel", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
		require.Equal(t, "fail", decodeFail(t, rec).Status)
	})

	t.Run("garbage bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/personnel", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		issuedAt := time.Now().Add(-2 * time.Hour)
		verifier.Now = func() time.Time { return issuedAt }
		token, err := verifier.Sign("user-1")
		require.NoError(t, err)
		verifier.Now = time.Now

		req := httptest.NewRequest(http.MethodGet, "/api/personnel", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, decodeFail(t, rec).Message, "expired")
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		token, err := verifier.Sign("user-gone")
		require.NoError(t, err)

		gone := httpx.Chain(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}),
			httpx.AuthnMiddleware(verifier, func(ctx context.Context, userID string) (httpx.Identity, error) {
				return httpx.Identity{}, errors.New("not found")
			}),
		)

		req := httptest.NewRequest(http.MethodGet, "/api/personnel", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		gone.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, decodeFail(t, rec).Message, "no longer exists")
	})

	t.Run("valid token reaches the handler with identity bound", func(t *testing.T) {
		token, err := verifier.Sign("user-1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/personnel", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	verifier := newTestVerifier(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	request := func(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
		t.Helper()
		token, err := verifier.Sign("user-1")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodDelete, "/api/personnel/p1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("role mismatch is 403 not 401", func(t *testing.T) {
		secured := httpx.Chain(handler,
			httpx.AuthnMiddleware(verifier, okResolver(httpx.Identity{Role: "CONSTABLE"})),
			httpx.RequireRoles("IG", "DIG"),
		)

		rec := request(t, secured)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, decodeFail(t, rec).Message, "permission")
	})

	t.Run("matching role passes", func(t *testing.T) {
		secured := httpx.Chain(handler,
			httpx.AuthnMiddleware(verifier, okResolver(httpx.Identity{Role: "DIG"})),
			httpx.RequireRoles("IG", "DIG"),
		)

		require.Equal(t, http.StatusOK, request(t, secured).Code)
	})

	t.Run("no identity in context is forbidden", func(t *testing.T) {
		secured := httpx.Chain(handler, httpx.RequireRoles("IG"))

		rec := httptest.NewRecorder()
		secured.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
