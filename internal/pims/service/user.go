package service

import (
	"context"
	"errors"

	"github.com/sindh-police/spims/internal/pims/domain"
	"github.com/sindh-police/spims/internal/pims/store"
)

// UserService serves account reads. The access gate also resolves bearer
// subjects through it so tokens for deleted accounts stop working.
type UserService struct {
	store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, err := s.store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrNotFound
	}
	return u, err
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().ListUsers(ctx)
}
