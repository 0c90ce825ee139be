package interviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobprep-backend/internal/coach"
	"jobprep-backend/internal/users"
)

// ErrCoach marks failures of the model-backed operations.
var ErrCoach = errors.New("coach failed")

type Users interface {
	Ensure(ctx context.Context, id int64) (users.User, error)
	GetByID(ctx context.Context, id int64) (users.User, error)
}

type Coach interface {
	GenerateQuestions(ctx context.Context, company, role string) ([]string, error)
	EvaluateAnswer(ctx context.Context, answer string) (coach.Evaluation, error)
}

type Service struct {
	Repo  Repo
	Users Users
	Coach Coach
}

// GenerateQuestions asks the coach for questions and stores one row per question.
// Nothing is stored when generation fails.
func (s *Service) GenerateQuestions(ctx context.Context, userID int64, company, role string) ([]Question, error) {
	if userID <= 0 || strings.TrimSpace(company) == "" || strings.TrimSpace(role) == "" {
		return nil, fmt.Errorf("%w: user_id, company and role are required", ErrInvalidInput)
	}
	texts, err := s.Coach.GenerateQuestions(ctx, company, role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCoach, err)
	}
	if _, err := s.Users.Ensure(ctx, userID); err != nil {
		return nil, fmt.Errorf("ensure user %d: %w", userID, err)
	}
	if len(texts) == 0 {
		return []Question{}, nil
	}
	return s.Repo.CreateQuestions(ctx, userID, company, role, texts)
}

// ListQuestions returns the user's stored questions; the user must exist.
func (s *Service) ListQuestions(ctx context.Context, userID int64) ([]Question, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.Repo.ListQuestionsByUser(ctx, userID)
}

func (s *Service) CreateAnswer(ctx context.Context, questionID int64, text string) (Answer, error) {
	if strings.TrimSpace(text) == "" {
		return Answer{}, fmt.Errorf("%w: answer_text is required", ErrInvalidInput)
	}
	if _, err := s.Repo.GetQuestion(ctx, questionID); err != nil {
		return Answer{}, err
	}
	return s.Repo.CreateAnswer(ctx, questionID, text)
}

// Evaluate grades the stored answer and records score and feedback.
func (s *Service) Evaluate(ctx context.Context, answerID int64) (Answer, error) {
	answer, err := s.Repo.GetAnswer(ctx, answerID)
	if err != nil {
		return Answer{}, err
	}
	eval, err := s.Coach.EvaluateAnswer(ctx, answer.AnswerText)
	if err != nil {
		return Answer{}, fmt.Errorf("%w: %w", ErrCoach, err)
	}
	return s.Repo.UpdateEvaluation(ctx, answerID, eval.Score, eval.Feedback)
}
