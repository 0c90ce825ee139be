package interviews

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	questionCols = []string{"id", "user_id", "company", "role", "question_text", "created_at"}
	answerCols   = []string{"id", "question_id", "answer_text", "score", "feedback", "created_at", "updated_at"}
)

func newMock(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateQuestionsInTransaction(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO questions").
		WithArgs(int64(1), "Acme", "SRE", "Q1?").
		WillReturnRows(sqlmock.NewRows(questionCols).AddRow(int64(10), int64(1), "Acme", "SRE", "Q1?", now))
	mock.ExpectQuery("INSERT INTO questions").
		WithArgs(int64(1), "Acme", "SRE", "Q2?").
		WillReturnRows(sqlmock.NewRows(questionCols).AddRow(int64(11), int64(1), "Acme", "SRE", "Q2?", now))
	mock.ExpectCommit()

	qs, err := repo.CreateQuestions(context.Background(), 1, "Acme", "SRE", []string{"Q1?", "Q2?"})
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, int64(11), qs[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoCreateQuestionsRollsBack(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO questions").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.CreateQuestions(context.Background(), 1, "Acme", "SRE", []string{"Q1?"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoCreateAnswerMissingQuestion(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("INSERT INTO answers").
		WithArgs(int64(4), "text").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.CreateAnswer(context.Background(), 4, "text")
	require.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestPGRepoUpdateEvaluation(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("UPDATE answers").
		WithArgs(int64(2), 3.5, "ok").
		WillReturnRows(sqlmock.NewRows(answerCols).AddRow(int64(2), int64(1), "text", 3.5, "ok", now, now))

	a, err := repo.UpdateEvaluation(context.Background(), 2, 3.5, "ok")
	require.NoError(t, err)
	require.NotNil(t, a.Score)
	assert.Equal(t, 3.5, *a.Score)
}

func TestPGRepoGetAnswerMissing(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM answers WHERE id = \\$1").
		WithArgs(int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetAnswer(context.Background(), 8)
	require.ErrorIs(t, err, ErrAnswerNotFound)
}

func TestPGRepoListAnswersByUser(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("FROM answers a\\s+JOIN questions q").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(append(answerCols, "question_text")).
			AddRow(int64(1), int64(3), "a", nil, nil, now, now, "Q?").
			AddRow(int64(2), int64(3), "b", 4.0, "fine", now, now, "Q?"))

	list, err := repo.ListAnswersByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].Evaluated())
	assert.True(t, list[1].Evaluated())
	assert.Equal(t, "Q?", list[1].QuestionText)
}

func TestPGRepoCountEvaluated(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("a.score IS NOT NULL").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := repo.CountEvaluatedAnswersByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPGRepoListQuestionsByUser(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM questions WHERE user_id = \\$1 ORDER BY id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(questionCols).
			AddRow(int64(1), int64(3), "Acme", "SRE", "Q1?", now).
			AddRow(int64(2), int64(3), "Acme", "SRE", "Q2?", now))

	qs, err := repo.ListQuestionsByUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "Q2?", qs[1].QuestionText)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoGetQuestionMissing(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM questions WHERE id = \\$1").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetQuestion(context.Background(), 404)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
