package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/store"
	"github.com/sindh-police/spims/pkg/idx"
)

// Pakistani mobile numbers: optional +92 or leading 0, then 3xxxxxxxxx.
var contactNumberRe = regexp.MustCompile(`^(\+92|0)?3[0-9]{9}$`)

// PersonnelService manages officer service records.
type PersonnelService struct {
	store store.Store

	Now func() time.Time
}

func NewPersonnelService(st store.Store) *PersonnelService {
	return &PersonnelService{store: st, Now: time.Now}
}

type CreatePersonnelParams struct {
	FullName          string
	Rank              string
	BadgeNumber       string
	District          string
	Station           string
	DateOfJoining     time.Time
	CurrentAssignment string
	ContactNumber     string
}

func (s *PersonnelService) List(ctx context.Context) ([]domain.Personnel, error) {
	return s.store.Personnel().ListPersonnel(ctx)
}

func (s *PersonnelService) Get(ctx context.Context, id string) (domain.Personnel, error) {
	p, err := s.store.Personnel().GetPersonnelByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Personnel{}, ErrNotFound
	}
	return p, err
}

func (s *PersonnelService) Create(ctx context.Context, p CreatePersonnelParams) (domain.Personnel, error) {
	p.FullName = strings.TrimSpace(p.FullName)
	p.BadgeNumber = strings.TrimSpace(p.BadgeNumber)

	if p.FullName == "" || p.BadgeNumber == "" || p.District == "" || p.Station == "" {
		return domain.Personnel{}, validationf("fullName, badgeNumber, district and station are required")
	}
	if !domain.ValidRank(p.Rank) {
		return domain.Personnel{}, validationf("unknown rank %q", p.Rank)
	}
	if !contactNumberRe.MatchString(p.ContactNumber) {
		return domain.Personnel{}, validationf("invalid contact number")
	}

	now := s.Now().UTC()
	if p.DateOfJoining.After(now) {
		return domain.Personnel{}, validationf("date of joining cannot be in the future")
	}

	rec := domain.Personnel{
		ID:                idx.New().String(),
		FullName:          p.FullName,
		Rank:              p.Rank,
		BadgeNumber:       p.BadgeNumber,
		District:          p.District,
		Station:           p.Station,
		DateOfJoining:     p.DateOfJoining,
		CurrentAssignment: p.CurrentAssignment,
		ContactNumber:     p.ContactNumber,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.Personnel().CreatePersonnel(ctx, rec); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Personnel{}, &DuplicateError{Field: "badgeNumber"}
		}
		return domain.Personnel{}, err
	}
	return rec, nil
}

// UpdatePersonnelParams carries a partial update. Nil fields are untouched.
type UpdatePersonnelParams struct {
	FullName          *string
	Rank              *string
	District          *string
	Station           *string
	CurrentAssignment *string
	ContactNumber     *string
	IsActive          *bool
}

func (s *PersonnelService) Update(ctx context.Context, id string, p UpdatePersonnelParams) (domain.Personnel, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return domain.Personnel{}, err
	}

	if p.FullName != nil {
		if strings.TrimSpace(*p.FullName) == "" {
			return domain.Personnel{}, validationf("fullName cannot be empty")
		}
		rec.FullName = strings.TrimSpace(*p.FullName)
	}
	if p.Rank != nil {
		if !domain.ValidRank(*p.Rank) {
			return domain.Personnel{}, validationf("unknown rank %q", *p.Rank)
		}
		rec.Rank = *p.Rank
	}
	if p.District != nil {
		rec.District = *p.District
	}
	if p.Station != nil {
		rec.Station = *p.Station
	}
	if p.CurrentAssignment != nil {
		rec.CurrentAssignment = *p.CurrentAssignment
	}
	if p.ContactNumber != nil {
		if !contactNumberRe.MatchString(*p.ContactNumber) {
			return domain.Personnel{}, validationf("invalid contact number")
		}
		rec.ContactNumber = *p.ContactNumber
	}
	if p.IsActive != nil {
		rec.IsActive = *p.IsActive
	}
	rec.UpdatedAt = s.Now().UTC()

	if err := s.store.Personnel().UpdatePersonnel(ctx, rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Personnel{}, ErrNotFound
		}
		return domain.Personnel{}, err
	}
	return rec, nil
}

func (s *PersonnelService) Delete(ctx context.Context, id string) error {
	err := s.store.Personnel().DeletePersonnel(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
