package portalsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Session is an authenticated session: the cached bearer token plus the
// profile the server returned with it. Any 401 from the server clears the
// session, mirroring the portal's forced-logout behaviour.
type Session struct {
	client *Client

	mu      sync.RWMutex
	token   string
	profile Profile
}

func newSession(client *Client, token string, profile Profile) *Session {
	return &Session{
		client:  client,
		token:   token,
		profile: profile,
	}
}

// Token returns the cached bearer token, empty once the session is cleared.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Profile returns the cached user profile.
func (s *Session) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// LoggedIn reports whether the session still holds a token.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Logout clears the cached token and profile.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.profile = Profile{}
}

// Get performs an authenticated GET and decodes the response into target.
func (s *Session) Get(ctx context.Context, path string, target any) error {
	return s.do(ctx, http.MethodGet, path, nil, target, http.StatusOK)
}

// Post performs an authenticated POST with a JSON payload.
func (s *Session) Post(ctx context.Context, path string, payload, target any) error {
	return s.do(ctx, http.MethodPost, path, payload, target, http.StatusCreated)
}

// Patch performs an authenticated PATCH with a JSON payload.
func (s *Session) Patch(ctx context.Context, path string, payload, target any) error {
	return s.do(ctx, http.MethodPatch, path, payload, target, http.StatusOK)
}

// Delete performs an authenticated DELETE expecting 204.
func (s *Session) Delete(ctx context.Context, path string) error {
	return s.do(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}

func (s *Session) do(ctx context.Context, method, path string, payload, target any, expectedStatus int) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return ErrSessionExpired
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	// A 401 means the token no longer works (expired, or the account is
	// gone). Drop the session so the caller redirects to login.
	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		s.Logout()
		return ErrSessionExpired
	}

	return decodeResponse(resp, target, expectedStatus)
}
