package portalsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrSessionExpired is returned once the server has answered 401; the local
// session is cleared and the caller should send the user back to login.
var ErrSessionExpired = errors.New("portalsdk: session expired, please log in again")

// Client talks to the SPIMS backend. It provides the unauthenticated auth
// operations and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// Login authenticates and returns a live session caching the bearer token
// and profile, the way the portal caches them after a successful login.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var resp authResponse
	err := c.postJSON(ctx, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return newSession(c, resp.Token, resp.Data.User), nil
}

// Register creates an account and returns a live session for it.
func (c *Client) Register(ctx context.Context, params RegisterParams) (*Session, error) {
	var resp authResponse
	if err := c.postJSON(ctx, "/api/auth/register", params, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return newSession(c, resp.Token, resp.Data.User), nil
}

// ForgotPassword requests a reset link. The backend answers identically for
// known and unknown addresses.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	var resp messageResponse
	return c.postJSON(ctx, "/api/auth/forgot-password", map[string]string{
		"email": email,
	}, &resp, http.StatusOK)
}

// ResetPassword consumes a reset token and returns a fresh session.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (*Session, error) {
	body, err := json.Marshal(map[string]string{"password": newPassword})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.url("/api/auth/reset-password/"+token), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var resp authResponse
	if err := decodeResponse(httpResp, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, resp.Token, resp.Data.User), nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, target any, expectedStatus int) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return decodeResponse(resp, target, expectedStatus)
}

// decodeResponse decodes the body into target, or returns a typed APIError
// for non-2xx responses.
func decodeResponse(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseAPIError(resp.StatusCode, bodyBytes)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func parseAPIError(statusCode int, body []byte) error {
	var failBody struct {
		Message       string `json:"message"`
		ConflictField string `json:"conflictField"`
	}
	_ = json.Unmarshal(body, &failBody)
	if failBody.Message == "" {
		failBody.Message = http.StatusText(statusCode)
	}
	return &APIError{
		StatusCode:    statusCode,
		Message:       failBody.Message,
		ConflictField: failBody.ConflictField,
	}
}
