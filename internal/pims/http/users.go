package http

import (
	"net/http"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/service"
	"github.com/sindh-police/spims/pkg/httpx"
)

// UsersHandler serves sanitized account listings for senior ranks.
type UsersHandler struct {
	Users *service.UserService
}

// accountPayload is the sanitized account view. Password hashes and reset
// token state never appear here.
type accountPayload struct {
	ID          string     `json:"id"`
	FullName    string     `json:"fullName"`
	BadgeNumber string     `json:"badgeNumber"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func toAccountPayload(u domain.User) accountPayload {
	return accountPayload{
		ID:          u.ID,
		FullName:    u.FullName,
		BadgeNumber: u.BadgeNumber,
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload := make([]accountPayload, 0, len(users))
	for _, u := range users {
		payload = append(payload, toAccountPayload(u))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"results": len(payload),
		"data":    map[string]any{"users": payload},
	})
}
