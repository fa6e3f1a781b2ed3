package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/store"
	"github.com/sindh-police/spims/pkg/idx"
)

// AlertService manages district-wide emergency broadcasts.
type AlertService struct {
	store store.Store

	Now func() time.Time
}

func NewAlertService(st store.Store) *AlertService {
	return &AlertService{store: st, Now: time.Now}
}

// AlertPage is one page of alerts plus the total for the requested status.
type AlertPage struct {
	Alerts []domain.Alert
	Total  int
}

const defaultAlertPageSize = 20

// List returns a page of alerts. An empty status defaults to active; page is
// 1-based.
func (s *AlertService) List(ctx context.Context, status string, limit, page int) (AlertPage, error) {
	if status == "" {
		status = domain.AlertActive
	}
	if !domain.ValidAlertStatus(status) {
		return AlertPage{}, validationf("unknown status %q", status)
	}
	if limit <= 0 {
		limit = defaultAlertPageSize
	}
	if limit > 100 {
		limit = 100
	}
	if page < 1 {
		page = 1
	}

	total, err := s.store.Alerts().CountAlerts(ctx, status)
	if err != nil {
		return AlertPage{}, err
	}
	alerts, err := s.store.Alerts().ListAlerts(ctx, status, limit, (page-1)*limit)
	if err != nil {
		return AlertPage{}, err
	}
	return AlertPage{Alerts: alerts, Total: total}, nil
}

func (s *AlertService) Get(ctx context.Context, id string) (domain.Alert, error) {
	a, err := s.store.Alerts().GetAlertByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Alert{}, ErrNotFound
	}
	return a, err
}

type CreateAlertParams struct {
	Title       string
	Description string
	AlertType   string
	Severity    string
	Districts   []string
	IssuedBy    string // authenticated user id, set by the handler
}

func (s *AlertService) Create(ctx context.Context, p CreateAlertParams) (domain.Alert, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.Alert{}, validationf("title is required")
	}
	if !domain.ValidAlertType(p.AlertType) {
		return domain.Alert{}, validationf("unknown alert type %q", p.AlertType)
	}
	if !domain.ValidSeverity(p.Severity) {
		return domain.Alert{}, validationf("unknown severity %q", p.Severity)
	}
	if len(p.Districts) == 0 {
		return domain.Alert{}, validationf("at least one district is required")
	}

	now := s.Now().UTC()
	rec := domain.Alert{
		ID:          idx.New().String(),
		Title:       p.Title,
		Description: p.Description,
		AlertType:   p.AlertType,
		Severity:    p.Severity,
		Districts:   p.Districts,
		IssuedBy:    p.IssuedBy,
		Status:      domain.AlertActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Alerts().CreateAlert(ctx, rec); err != nil {
		return domain.Alert{}, err
	}
	return rec, nil
}

// UpdateStatus moves an alert between active/resolved/archived.
func (s *AlertService) UpdateStatus(ctx context.Context, id, status string) (domain.Alert, error) {
	if !domain.ValidAlertStatus(status) {
		return domain.Alert{}, validationf("unknown status %q", status)
	}
	if err := s.store.Alerts().UpdateAlertStatus(ctx, id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Alert{}, ErrNotFound
		}
		return domain.Alert{}, err
	}
	return s.Get(ctx, id)
}

func (s *AlertService) Delete(ctx context.Context, id string) error {
	err := s.store.Alerts().DeleteAlert(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
