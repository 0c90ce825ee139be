package users

import (
	"context"
	"errors"
	"fmt"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if id <= 0 {
		return User{}, fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// Ensure returns the user, creating it under its placeholder name when it does not exist yet.
func (s *Service) Ensure(ctx context.Context, id int64) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if id <= 0 {
		return User{}, fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	return s.Repo.GetOrCreate(ctx, id, DefaultName(id))
}
