package http

import (
	"net/http"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/service"
	"github.com/sindh-police/spims/pkg/httpx"
)

// PersonnelHandler serves officer service records.
type PersonnelHandler struct {
	Personnel *service.PersonnelService
	Recorder  *service.ActivityRecorder
}

type personnelPayload struct {
	ID                string    `json:"id"`
	FullName          string    `json:"fullName"`
	Rank              string    `json:"rank"`
	BadgeNumber       string    `json:"badgeNumber"`
	District          string    `json:"district"`
	Station           string    `json:"station"`
	DateOfJoining     string    `json:"dateOfJoining"`
	CurrentAssignment string    `json:"currentAssignment,omitempty"`
	ContactNumber     string    `json:"contactNumber"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

const dateOnly = "2006-01-02"

func toPersonnelPayload(p domain.Personnel) personnelPayload {
	return personnelPayload{
		ID:                p.ID,
		FullName:          p.FullName,
		Rank:              p.Rank,
		BadgeNumber:       p.BadgeNumber,
		District:          p.District,
		Station:           p.Station,
		DateOfJoining:     p.DateOfJoining.Format(dateOnly),
		CurrentAssignment: p.CurrentAssignment,
		ContactNumber:     p.ContactNumber,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (h *PersonnelHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.Personnel.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload := make([]personnelPayload, 0, len(records))
	for _, p := range records {
		payload = append(payload, toPersonnelPayload(p))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"results": len(payload),
		"data":    map[string]any{"personnel": payload},
	})
}

func (h *PersonnelHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Personnel.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"personnel": toPersonnelPayload(p)},
	})
}

type createPersonnelRequest struct {
	FullName          string `json:"fullName" validate:"required"`
	Rank              string `json:"rank" validate:"required"`
	BadgeNumber       string `json:"badgeNumber" validate:"required"`
	District          string `json:"district" validate:"required"`
	Station           string `json:"station" validate:"required"`
	DateOfJoining     string `json:"dateOfJoining" validate:"required"`
	CurrentAssignment string `json:"currentAssignment"`
	ContactNumber     string `json:"contactNumber" validate:"required"`
}

func (h *PersonnelHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPersonnelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	joined, err := time.Parse(dateOnly, req.DateOfJoining)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "dateOfJoining must be in YYYY-MM-DD format")
		return
	}

	p, err := h.Personnel.Create(r.Context(), service.CreatePersonnelParams{
		FullName:          req.FullName,
		Rank:              req.Rank,
		BadgeNumber:       req.BadgeNumber,
		District:          req.District,
		Station:           req.Station,
		DateOfJoining:     joined,
		CurrentAssignment: req.CurrentAssignment,
		ContactNumber:     req.ContactNumber,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.record(r, "personnel_created", p.ID, map[string]any{"badgeNumber": p.BadgeNumber})
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"data":   map[string]any{"personnel": toPersonnelPayload(p)},
	})
}

type updatePersonnelRequest struct {
	FullName          *string `json:"fullName"`
	Rank              *string `json:"rank"`
	District          *string `json:"district"`
	Station           *string `json:"station"`
	CurrentAssignment *string `json:"currentAssignment"`
	ContactNumber     *string `json:"contactNumber"`
	IsActive          *bool   `json:"isActive"`
}

func (h *PersonnelHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updatePersonnelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.Personnel.Update(r.Context(), r.PathValue("id"), service.UpdatePersonnelParams{
		FullName:          req.FullName,
		Rank:              req.Rank,
		District:          req.District,
		Station:           req.Station,
		CurrentAssignment: req.CurrentAssignment,
		ContactNumber:     req.ContactNumber,
		IsActive:          req.IsActive,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.record(r, "personnel_updated", p.ID, nil)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"personnel": toPersonnelPayload(p)},
	})
}

func (h *PersonnelHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Personnel.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.record(r, "personnel_deleted", id, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *PersonnelHandler) record(r *http.Request, action, entityID string, details map[string]any) {
	actor, _ := httpx.IdentityFromContext(r.Context())
	recordActivity(h.Recorder, r, actor.ID, action, domain.EntityPersonnel, entityID, details)
}
