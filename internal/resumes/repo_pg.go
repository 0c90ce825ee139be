package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, original_text, edited_text, feedback, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, userID int64, originalText string) (Resume, error) {
	const query = `
INSERT INTO resumes (user_id, original_text)
VALUES ($1, $2)
RETURNING ` + resumeColumns
	return scanResume(r.DB.QueryRowContext(ctx, query, userID, originalText))
}

func (r *PGRepo) List(ctx context.Context) ([]Resume, error) {
	const query = `SELECT ` + resumeColumns + ` FROM resumes ORDER BY id`
	return r.query(ctx, query)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID int64) ([]Resume, error) {
	const query = `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY id`
	return r.query(ctx, query, userID)
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (Resume, error) {
	const query = `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	return scanResume(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) UpdateFeedback(ctx context.Context, id int64, editedText, feedback string) (Resume, error) {
	const query = `
UPDATE resumes
SET edited_text = $2, feedback = $3, updated_at = now()
WHERE id = $1
RETURNING ` + resumeColumns
	return scanResume(r.DB.QueryRowContext(ctx, query, id, editedText, feedback))
}

func (r *PGRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM resumes WHERE user_id = $1`, userID)
}

func (r *PGRepo) CountReviewedByUser(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM resumes WHERE user_id = $1 AND edited_text IS NOT NULL`, userID)
}

func (r *PGRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Resume, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResume(row scanner) (Resume, error) {
	var res Resume
	var edited, feedback sql.NullString
	err := row.Scan(&res.ID, &res.UserID, &res.OriginalText, &edited, &feedback, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if edited.Valid {
		res.EditedText = &edited.String
	}
	if feedback.Valid {
		res.Feedback = &feedback.String
	}
	return res, nil
}
