package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/store"
	"github.com/sindh-police/spims/pkg/idx"
)

// CrimeService manages case registration and progress.
type CrimeService struct {
	store store.Store

	Now func() time.Time
}

func NewCrimeService(st store.Store) *CrimeService {
	return &CrimeService{store: st, Now: time.Now}
}

func (s *CrimeService) List(ctx context.Context, f store.CrimeFilter) ([]domain.CrimeReport, error) {
	if f.Status != "" && !domain.ValidCrimeStatus(f.Status) {
		return nil, validationf("unknown status %q", f.Status)
	}
	if f.CrimeType != "" && !domain.ValidCrimeType(f.CrimeType) {
		return nil, validationf("unknown crime type %q", f.CrimeType)
	}
	if f.Severity != "" && !domain.ValidSeverity(f.Severity) {
		return nil, validationf("unknown severity %q", f.Severity)
	}
	return s.store.CrimeReports().ListCrimeReports(ctx, f)
}

func (s *CrimeService) Get(ctx context.Context, id string) (domain.CrimeReport, error) {
	c, err := s.store.CrimeReports().GetCrimeReportByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.CrimeReport{}, ErrNotFound
	}
	return c, err
}

type CreateCrimeParams struct {
	Title       string
	Description string
	District    string
	Address     string
	CrimeType   string
	Severity    string
	ReportedBy  string // authenticated user id, set by the handler
}

// Create registers a new case. The case number is derived from the creation
// time; its uniqueness is enforced by the store.
func (s *CrimeService) Create(ctx context.Context, p CreateCrimeParams) (domain.CrimeReport, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" || p.District == "" {
		return domain.CrimeReport{}, validationf("title and district are required")
	}
	if !domain.ValidCrimeType(p.CrimeType) {
		return domain.CrimeReport{}, validationf("unknown crime type %q", p.CrimeType)
	}
	if !domain.ValidSeverity(p.Severity) {
		return domain.CrimeReport{}, validationf("unknown severity %q", p.Severity)
	}

	now := s.Now().UTC()
	id := idx.New().String()
	rec := domain.CrimeReport{
		ID:          id,
		CaseNumber:  fmt.Sprintf("FIR-%s-%s", now.Format("20060102"), id[len(id)-6:]),
		Title:       p.Title,
		Description: p.Description,
		District:    p.District,
		Address:     p.Address,
		CrimeType:   p.CrimeType,
		Severity:    p.Severity,
		ReportedBy:  p.ReportedBy,
		Status:      domain.CrimeReported,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CrimeReports().CreateCrimeReport(ctx, rec); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.CrimeReport{}, &DuplicateError{Field: "caseNumber"}
		}
		return domain.CrimeReport{}, err
	}
	return rec, nil
}

// UpdateCrimeParams carries a partial update. Nil fields are untouched.
type UpdateCrimeParams struct {
	Title       *string
	Description *string
	District    *string
	Address     *string
	Severity    *string
	AssignedTo  *string
	Status      *string
}

func (s *CrimeService) Update(ctx context.Context, id string, p UpdateCrimeParams) (domain.CrimeReport, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return domain.CrimeReport{}, err
	}

	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return domain.CrimeReport{}, validationf("title cannot be empty")
		}
		rec.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		rec.Description = *p.Description
	}
	if p.District != nil {
		rec.District = *p.District
	}
	if p.Address != nil {
		rec.Address = *p.Address
	}
	if p.Severity != nil {
		if !domain.ValidSeverity(*p.Severity) {
			return domain.CrimeReport{}, validationf("unknown severity %q", *p.Severity)
		}
		rec.Severity = *p.Severity
	}
	if p.AssignedTo != nil {
		rec.AssignedTo = *p.AssignedTo
	}

	now := s.Now().UTC()
	if p.Status != nil {
		if !domain.ValidCrimeStatus(*p.Status) {
			return domain.CrimeReport{}, validationf("unknown status %q", *p.Status)
		}
		rec.Status = *p.Status
		// Stamp closure once; reopening clears it.
		switch rec.Status {
		case domain.CrimeClosed, domain.CrimeResolved:
			if rec.ClosedAt == nil {
				rec.ClosedAt = &now
			}
		default:
			rec.ClosedAt = nil
		}
	}
	rec.UpdatedAt = now

	if err := s.store.CrimeReports().UpdateCrimeReport(ctx, rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CrimeReport{}, ErrNotFound
		}
		return domain.CrimeReport{}, err
	}
	return rec, nil
}
