package portalsdk

import "fmt"

// Profile is the sanitized user view returned by the auth endpoints.
type Profile struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	Dashboard string `json:"dashboard"`
}

type authData struct {
	User Profile `json:"user"`
}

// authResponse is the token envelope returned by register, login and
// reset-password.
type authResponse struct {
	Status string   `json:"status"`
	Token  string   `json:"token"`
	Data   authData `json:"data"`
}

// messageResponse is the body of endpoints that return only a status and a
// human-readable message.
type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode    int
	Message       string
	ConflictField string // set on duplicate-identity registration failures
}

func (e *APIError) Error() string {
	if e.ConflictField != "" {
		return fmt.Sprintf("portalsdk: %s (status %d, conflict on %s)", e.Message, e.StatusCode, e.ConflictField)
	}
	return fmt.Sprintf("portalsdk: %s (status %d)", e.Message, e.StatusCode)
}

// RegisterParams mirrors the registration form.
type RegisterParams struct {
	FullName    string `json:"fullName"`
	BadgeNumber string `json:"badgeNumber"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}
