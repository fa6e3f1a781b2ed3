package http

import (
	"net/http"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/service"
	"github.com/sindh-police/spims/pkg/httpx"
)

// AuthHandler serves registration, login and the password reset flow.
type AuthHandler struct {
	Auth     *service.AuthService
	Recorder *service.ActivityRecorder
}

type userPayload struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	Dashboard string `json:"dashboard"`
}

type authData struct {
	User userPayload `json:"user"`
}

// authResponse is the fixed token envelope returned by register, login and
// reset-password.
type authResponse struct {
	Status string   `json:"status"`
	Token  string   `json:"token"`
	Data   authData `json:"data"`
}

func (h *AuthHandler) tokenEnvelope(user domain.User, token string) authResponse {
	return authResponse{
		Status: "success",
		Token:  token,
		Data: authData{
			User: userPayload{
				ID:        user.ID,
				FullName:  user.FullName,
				Role:      user.Role,
				Dashboard: h.Auth.Dashboard(user.Role),
			},
		},
	}
}

type registerRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	BadgeNumber string `json:"badgeNumber" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.Auth.Register(r.Context(), service.RegisterParams{
		FullName:    req.FullName,
		BadgeNumber: req.BadgeNumber,
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		Role:        req.Role,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.record(r, user.ID, "register", domain.EntityUser, user.ID, map[string]any{
		"role": user.Role,
	})
	httpx.WriteJSON(w, http.StatusCreated, h.tokenEnvelope(user, token))
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.record(r, user.ID, "login", domain.EntityUser, user.ID, nil)
	httpx.WriteJSON(w, http.StatusOK, h.tokenEnvelope(user, token))
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Auth.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Identical response for known and unknown addresses.
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "if that email address is registered, a reset link has been sent",
	})
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.Auth.ResetPassword(r.Context(), r.PathValue("token"), req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.record(r, user.ID, "password_reset", domain.EntityUser, user.ID, nil)
	httpx.WriteJSON(w, http.StatusOK, h.tokenEnvelope(user, token))
}

// HandleLogout records the sign-out in the activity trail. Bearer tokens are
// stateless, so the client discards its token and the server only audits.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	identity, _ := httpx.IdentityFromContext(r.Context())

	h.record(r, identity.ID, "logout", domain.EntityUser, identity.ID, nil)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "logged out successfully",
	})
}

func (h *AuthHandler) record(r *http.Request, userID, action, entityType, entityID string, details map[string]any) {
	recordActivity(h.Recorder, r, userID, action, entityType, entityID, details)
}
