package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
	ErrInvalidInput  = errors.New("invalid input")
)

type Repo interface {
	Create(ctx context.Context, id int64, name string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	// GetOrCreate returns the user with id, inserting it with name first when absent.
	GetOrCreate(ctx context.Context, id int64, name string) (User, error)
}
