package interviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const (
	questionColumns = `id, user_id, company, role, question_text, created_at`
	answerColumns   = `id, question_id, answer_text, score, feedback, created_at, updated_at`
)

func (r *PGRepo) CreateQuestions(ctx context.Context, userID int64, company, role string, texts []string) ([]Question, error) {
	const query = `
INSERT INTO questions (user_id, company, role, question_text)
VALUES ($1, $2, $3, $4)
RETURNING ` + questionColumns
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	out := make([]Question, 0, len(texts))
	for _, text := range texts {
		q, err := scanQuestion(tx.QueryRowContext(ctx, query, userID, company, role, text))
		if err != nil {
			return nil, fmt.Errorf("insert question: %w", err)
		}
		out = append(out, q)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepo) ListQuestionsByUser(ctx context.Context, userID int64) ([]Question, error) {
	const query = `SELECT ` + questionColumns + ` FROM questions WHERE user_id = $1 ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetQuestion(ctx context.Context, id int64) (Question, error) {
	const query = `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	q, err := scanQuestion(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrQuestionNotFound
	}
	return q, err
}

func (r *PGRepo) CreateAnswer(ctx context.Context, questionID int64, text string) (Answer, error) {
	const query = `
INSERT INTO answers (question_id, answer_text)
VALUES ($1, $2)
RETURNING ` + answerColumns
	a, err := scanAnswer(r.DB.QueryRowContext(ctx, query, questionID, text))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return Answer{}, ErrQuestionNotFound
		}
		return Answer{}, err
	}
	return a, nil
}

func (r *PGRepo) GetAnswer(ctx context.Context, id int64) (Answer, error) {
	const query = `SELECT ` + answerColumns + ` FROM answers WHERE id = $1`
	a, err := scanAnswer(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Answer{}, ErrAnswerNotFound
	}
	return a, err
}

func (r *PGRepo) UpdateEvaluation(ctx context.Context, id int64, score float64, feedback string) (Answer, error) {
	const query = `
UPDATE answers
SET score = $2, feedback = $3, updated_at = now()
WHERE id = $1
RETURNING ` + answerColumns
	a, err := scanAnswer(r.DB.QueryRowContext(ctx, query, id, score, feedback))
	if errors.Is(err, sql.ErrNoRows) {
		return Answer{}, ErrAnswerNotFound
	}
	return a, err
}

func (r *PGRepo) ListAnswersByUser(ctx context.Context, userID int64) ([]AnswerWithQuestion, error) {
	const query = `
SELECT a.id, a.question_id, a.answer_text, a.score, a.feedback, a.created_at, a.updated_at, q.question_text
FROM answers a
JOIN questions q ON q.id = a.question_id
WHERE q.user_id = $1
ORDER BY a.id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AnswerWithQuestion{}
	for rows.Next() {
		var item AnswerWithQuestion
		var score sql.NullFloat64
		var feedback sql.NullString
		if err := rows.Scan(&item.ID, &item.QuestionID, &item.AnswerText, &score, &feedback, &item.CreatedAt, &item.UpdatedAt, &item.QuestionText); err != nil {
			return nil, err
		}
		setEvaluation(&item.Answer, score, feedback)
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountQuestionsByUser(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM questions WHERE user_id = $1`, userID)
}

func (r *PGRepo) CountAnswersByUser(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, `
SELECT COUNT(*) FROM answers a JOIN questions q ON q.id = a.question_id
WHERE q.user_id = $1`, userID)
}

func (r *PGRepo) CountEvaluatedAnswersByUser(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, `
SELECT COUNT(*) FROM answers a JOIN questions q ON q.id = a.question_id
WHERE q.user_id = $1 AND a.score IS NOT NULL`, userID)
}

func (r *PGRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row scanner) (Question, error) {
	var q Question
	err := row.Scan(&q.ID, &q.UserID, &q.Company, &q.Role, &q.QuestionText, &q.CreatedAt)
	return q, err
}

func scanAnswer(row scanner) (Answer, error) {
	var a Answer
	var score sql.NullFloat64
	var feedback sql.NullString
	if err := row.Scan(&a.ID, &a.QuestionID, &a.AnswerText, &score, &feedback, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return Answer{}, err
	}
	setEvaluation(&a, score, feedback)
	return a, nil
}

func setEvaluation(a *Answer, score sql.NullFloat64, feedback sql.NullString) {
	if score.Valid {
		a.Score = &score.Float64
	}
	if feedback.Valid {
		a.Feedback = &feedback.String
	}
}
