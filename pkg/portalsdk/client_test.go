package portalsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubBackend fakes just enough of the API for the client: a fixed login
// account plus a protected listing endpoint.
func stubBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds.Username != "akhan" || creds.Password != "secret password" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":  "fail",
				"message": "incorrect username or password",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(authResponse{
			Status: "success",
			Token:  "bearer-akhan",
			Data: authData{User: Profile{
				ID:        "u1",
				FullName:  "Ayesha Khan",
				Role:      "SSP",
				Dashboard: "/ssp-dashboard",
			}},
		})
	})

	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var params RegisterParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))

		if params.Email == "taken@police.test" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":        "fail",
				"message":       "an account with this email already exists",
				"conflictField": "email",
			})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(authResponse{
			Status: "success",
			Token:  "bearer-new",
			Data: authData{User: Profile{
				ID:        "u2",
				FullName:  params.FullName,
				Role:      "CONSTABLE",
				Dashboard: "/constable-dashboard",
			}},
		})
	})

	mux.HandleFunc("GET /api/personnel", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer bearer-akhan" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":  "fail",
				"message": "invalid token, please log in again",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "success",
			"results": 0,
			"data":    map[string]any{"personnel": []any{}},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLogin(t *testing.T) {
	backend := stubBackend(t)
	client := NewClient(backend.URL + "/")
	ctx := context.Background()

	t.Run("caches token and profile", func(t *testing.T) {
		session, err := client.Login(ctx, "akhan", "secret password")
		require.NoError(t, err)
		require.True(t, session.LoggedIn())
		require.Equal(t, "bearer-akhan", session.Token())
		require.Equal(t, "SSP", session.Profile().Role)
		require.Equal(t, "/ssp-dashboard", session.Profile().Dashboard)
	})

	t.Run("bad credentials surface the API error", func(t *testing.T) {
		_, err := client.Login(ctx, "akhan", "wrong")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, "incorrect username or password", apiErr.Message)
	})
}

func TestClientRegister(t *testing.T) {
	backend := stubBackend(t)
	client := NewClient(backend.URL)
	ctx := context.Background()

	t.Run("returns a live session", func(t *testing.T) {
		session, err := client.Register(ctx, RegisterParams{
			FullName: "New Officer",
			Email:    "new@police.test",
			Username: "newofficer",
			Password: "long enough",
			Role:     "constable",
		})
		require.NoError(t, err)
		require.True(t, session.LoggedIn())
		require.Equal(t, "/constable-dashboard", session.Profile().Dashboard)
	})

	t.Run("duplicate carries the conflict field", func(t *testing.T) {
		_, err := client.Register(ctx, RegisterParams{Email: "taken@police.test"})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "email", apiErr.ConflictField)
	})
}

func TestSessionRequests(t *testing.T) {
	backend := stubBackend(t)
	client := NewClient(backend.URL)
	ctx := context.Background()

	t.Run("attaches the bearer token", func(t *testing.T) {
		session, err := client.Login(ctx, "akhan", "secret password")
		require.NoError(t, err)

		var out struct {
			Status string `json:"status"`
		}
		require.NoError(t, session.Get(ctx, "/api/personnel", &out))
		require.Equal(t, "success", out.Status)
	})

	t.Run("a 401 clears the session", func(t *testing.T) {
		session := newSession(client, "stale-token", Profile{ID: "u1"})

		err := session.Get(ctx, "/api/personnel", nil)
		require.ErrorIs(t, err, ErrSessionExpired)
		require.False(t, session.LoggedIn())
		require.Empty(t, session.Token())

		// Once cleared, requests fail locally without hitting the server.
		err = session.Get(ctx, "/api/personnel", nil)
		require.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestGuardRoute(t *testing.T) {
	client := NewClient("http://unused")

	sspSession := newSession(client, "token", Profile{
		ID:        "u1",
		Role:      "SSP",
		Dashboard: "/ssp-dashboard",
	})

	t.Run("not logged in redirects to login with the origin", func(t *testing.T) {
		decision := GuardRoute(nil, "/ig-dashboard", "IG")
		require.Equal(t, RedirectLogin, decision.Action)
		require.Equal(t, "/login", decision.Target)
		require.Equal(t, "/ig-dashboard", decision.From)

		loggedOut := newSession(client, "token", Profile{})
		loggedOut.Logout()
		decision = GuardRoute(loggedOut, "/ssp-dashboard", "SSP")
		require.Equal(t, RedirectLogin, decision.Action)
	})

	t.Run("no role restriction allows any session", func(t *testing.T) {
		decision := GuardRoute(sspSession, "/profile")
		require.Equal(t, Allow, decision.Action)
	})

	t.Run("matching role allows", func(t *testing.T) {
		decision := GuardRoute(sspSession, "/ssp-dashboard", "IG", "SSP")
		require.Equal(t, Allow, decision.Action)
	})

	t.Run("wrong role bounces to own dashboard", func(t *testing.T) {
		decision := GuardRoute(sspSession, "/ig-dashboard", "IG")
		require.Equal(t, RedirectUnauthorized, decision.Action)
		require.Equal(t, "/ssp-dashboard", decision.Target)
	})
}
