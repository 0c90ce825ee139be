package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, id int64, name string) (User, error) {
	const query = `
INSERT INTO users (id, name)
VALUES ($1, $2)
RETURNING id, name, created_at`
	var user User
	err := r.DB.QueryRowContext(ctx, query, id, name).Scan(&user.ID, &user.Name, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrAlreadyExists
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (User, error) {
	const query = `
SELECT id, name, created_at
FROM users
WHERE id = $1`
	var user User
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// GetOrCreate tolerates a concurrent insert of the same id: the conflict is ignored and the row read back.
func (r *PGRepo) GetOrCreate(ctx context.Context, id int64, name string) (User, error) {
	const insert = `
INSERT INTO users (id, name)
VALUES ($1, $2)
ON CONFLICT (id) DO NOTHING`
	if _, err := r.DB.ExecContext(ctx, insert, id, name); err != nil {
		return User{}, err
	}
	return r.GetByID(ctx, id)
}
