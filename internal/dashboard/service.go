// Package dashboard aggregates per-user activity counts.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jobprep-backend/internal/users"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (users.User, error)
}

type ResumeCounter interface {
	CountByUser(ctx context.Context, userID int64) (int, error)
	CountReviewedByUser(ctx context.Context, userID int64) (int, error)
}

type InterviewCounter interface {
	CountQuestionsByUser(ctx context.Context, userID int64) (int, error)
	CountAnswersByUser(ctx context.Context, userID int64) (int, error)
	CountEvaluatedAnswersByUser(ctx context.Context, userID int64) (int, error)
}

// Summary is a user's dashboard.
type Summary struct {
	UserID                int64  `json:"user_id"`
	UserName              string `json:"user_name"`
	TotalResumes          int    `json:"total_resumes"`
	ReviewedResumes       int    `json:"reviewed_resumes"`
	TotalQuestions        int    `json:"total_questions"`
	TotalAnswers          int    `json:"total_answers"`
	TotalEvaluatedAnswers int    `json:"total_evaluated_answers"`
}

type Service struct {
	Users      UserLookup
	Resumes    ResumeCounter
	Interviews InterviewCounter
}

// Summary fails with users.ErrNotFound for unknown users.
func (s *Service) Summary(ctx context.Context, userID int64) (Summary, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	out := Summary{UserID: user.ID, UserName: user.Name}

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int, fn func(context.Context, int64) (int, error)) {
		g.Go(func() error {
			n, err := fn(gctx, userID)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	count(&out.TotalResumes, s.Resumes.CountByUser)
	count(&out.ReviewedResumes, s.Resumes.CountReviewedByUser)
	count(&out.TotalQuestions, s.Interviews.CountQuestionsByUser)
	count(&out.TotalAnswers, s.Interviews.CountAnswersByUser)
	count(&out.TotalEvaluatedAnswers, s.Interviews.CountEvaluatedAnswersByUser)
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return out, nil
}
