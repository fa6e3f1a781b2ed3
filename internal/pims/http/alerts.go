package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/service"
	"github.com/sindh-police/spims/pkg/httpx"
)

// AlertHandler serves district-wide emergency broadcasts.
type AlertHandler struct {
	Alerts   *service.AlertService
	Recorder *service.ActivityRecorder
}

type alertPayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	AlertType   string    `json:"alertType"`
	Severity    string    `json:"severity"`
	Districts   []string  `json:"districts"`
	IssuedBy    string    `json:"issuedBy"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toAlertPayload(a domain.Alert) alertPayload {
	return alertPayload{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		AlertType:   a.AlertType,
		Severity:    a.Severity,
		Districts:   a.Districts,
		IssuedBy:    a.IssuedBy,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (h *AlertHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	page, _ := strconv.Atoi(q.Get("page"))

	result, err := h.Alerts.List(r.Context(), q.Get("status"), limit, page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload := make([]alertPayload, 0, len(result.Alerts))
	for _, a := range result.Alerts {
		payload = append(payload, toAlertPayload(a))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"results": len(payload),
		"total":   result.Total,
		"data":    map[string]any{"alerts": payload},
	})
}

type createAlertRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	AlertType   string   `json:"alertType" validate:"required"`
	Severity    string   `json:"severity" validate:"required"`
	Districts   []string `json:"districts" validate:"required,min=1"`
}

func (h *AlertHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	actor, _ := httpx.IdentityFromContext(r.Context())
	a, err := h.Alerts.Create(r.Context(), service.CreateAlertParams{
		Title:       req.Title,
		Description: req.Description,
		AlertType:   req.AlertType,
		Severity:    req.Severity,
		Districts:   req.Districts,
		IssuedBy:    actor.ID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	recordActivity(h.Recorder, r, actor.ID, "alert_issued", domain.EntityAlert, a.ID,
		map[string]any{"alertType": a.AlertType, "severity": a.Severity})
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"data":   map[string]any{"alert": toAlertPayload(a)},
	})
}

type updateAlertStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *AlertHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateAlertStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.Alerts.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	actor, _ := httpx.IdentityFromContext(r.Context())
	recordActivity(h.Recorder, r, actor.ID, "alert_status_changed", domain.EntityAlert, a.ID,
		map[string]any{"status": a.Status})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"alert": toAlertPayload(a)},
	})
}

func (h *AlertHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Alerts.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	actor, _ := httpx.IdentityFromContext(r.Context())
	recordActivity(h.Recorder, r, actor.ID, "alert_deleted", domain.EntityAlert, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
