package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/service"
	"github.com/sindh-police/spims/pkg/httpx"
)

// ActivityHandler serves the audit trail read side.
type ActivityHandler struct {
	Activities *service.ActivityService
}

type activityPayload struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	IPAddress  string         `json:"ipAddress,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func toActivityPayload(a domain.Activity) activityPayload {
	return activityPayload{
		ID:         a.ID,
		UserID:     a.UserID,
		Action:     a.Action,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Details:    a.Details,
		IPAddress:  a.IPAddress,
		CreatedAt:  a.CreatedAt,
	}
}

func (h *ActivityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	activities, err := h.Activities.ListRecent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload := make([]activityPayload, 0, len(activities))
	for _, a := range activities {
		payload = append(payload, toActivityPayload(a))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"results": len(payload),
		"data":    map[string]any{"activities": payload},
	})
}
