package http

import (
	"net/http"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/service"
	"github.com/sindh-police/spims/internal/pims/store"
	"github.com/sindh-police/spims/pkg/httpx"
)

// CrimeHandler serves case registration and progress tracking.
type CrimeHandler struct {
	Crimes   *service.CrimeService
	Recorder *service.ActivityRecorder
}

type crimePayload struct {
	ID          string     `json:"id"`
	CaseNumber  string     `json:"caseNumber"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	District    string     `json:"district"`
	Address     string     `json:"address,omitempty"`
	CrimeType   string     `json:"crimeType"`
	Severity    string     `json:"severity"`
	ReportedBy  string     `json:"reportedBy"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
}

func toCrimePayload(c domain.CrimeReport) crimePayload {
	return crimePayload{
		ID:          c.ID,
		CaseNumber:  c.CaseNumber,
		Title:       c.Title,
		Description: c.Description,
		District:    c.District,
		Address:     c.Address,
		CrimeType:   c.CrimeType,
		Severity:    c.Severity,
		ReportedBy:  c.ReportedBy,
		AssignedTo:  c.AssignedTo,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		ClosedAt:    c.ClosedAt,
	}
}

func (h *CrimeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	reports, err := h.Crimes.List(r.Context(), store.CrimeFilter{
		Status:    q.Get("status"),
		District:  q.Get("district"),
		CrimeType: q.Get("crimeType"),
		Severity:  q.Get("severity"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload := make([]crimePayload, 0, len(reports))
	for _, c := range reports {
		payload = append(payload, toCrimePayload(c))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"results": len(payload),
		"data":    map[string]any{"crimes": payload},
	})
}

func (h *CrimeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.Crimes.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"crime": toCrimePayload(c)},
	})
}

type createCrimeRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	District    string `json:"district" validate:"required"`
	Address     string `json:"address"`
	CrimeType   string `json:"crimeType" validate:"required"`
	Severity    string `json:"severity" validate:"required"`
}

func (h *CrimeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCrimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	actor, _ := httpx.IdentityFromContext(r.Context())
	c, err := h.Crimes.Create(r.Context(), service.CreateCrimeParams{
		Title:       req.Title,
		Description: req.Description,
		District:    req.District,
		Address:     req.Address,
		CrimeType:   req.CrimeType,
		Severity:    req.Severity,
		ReportedBy:  actor.ID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	recordActivity(h.Recorder, r, actor.ID, "crime_reported", domain.EntityCrimeReport, c.ID,
		map[string]any{"caseNumber": c.CaseNumber})
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"data":   map[string]any{"crime": toCrimePayload(c)},
	})
}

type updateCrimeRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	District    *string `json:"district"`
	Address     *string `json:"address"`
	Severity    *string `json:"severity"`
	AssignedTo  *string `json:"assignedTo"`
	Status      *string `json:"status"`
}

func (h *CrimeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateCrimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.Crimes.Update(r.Context(), r.PathValue("id"), service.UpdateCrimeParams{
		Title:       req.Title,
		Description: req.Description,
		District:    req.District,
		Address:     req.Address,
		Severity:    req.Severity,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	actor, _ := httpx.IdentityFromContext(r.Context())
	recordActivity(h.Recorder, r, actor.ID, "crime_updated", domain.EntityCrimeReport, c.ID, nil)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"crime": toCrimePayload(c)},
	})
}
