package interviews

import (
	"context"
	"errors"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrInvalidInput     = errors.New("invalid input")
)

type Repo interface {
	// CreateQuestions stores one row per text, all or none.
	CreateQuestions(ctx context.Context, userID int64, company, role string, texts []string) ([]Question, error)
	ListQuestionsByUser(ctx context.Context, userID int64) ([]Question, error)
	GetQuestion(ctx context.Context, id int64) (Question, error)

	CreateAnswer(ctx context.Context, questionID int64, text string) (Answer, error)
	GetAnswer(ctx context.Context, id int64) (Answer, error)
	UpdateEvaluation(ctx context.Context, id int64, score float64, feedback string) (Answer, error)
	// ListAnswersByUser joins through questions, ordered by answer id.
	ListAnswersByUser(ctx context.Context, userID int64) ([]AnswerWithQuestion, error)

	CountQuestionsByUser(ctx context.Context, userID int64) (int, error)
	CountAnswersByUser(ctx context.Context, userID int64) (int, error)
	CountEvaluatedAnswersByUser(ctx context.Context, userID int64) (int, error)
}
