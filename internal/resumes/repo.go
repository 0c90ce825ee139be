package resumes

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("resume not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo interface {
	Create(ctx context.Context, userID int64, originalText string) (Resume, error)
	List(ctx context.Context) ([]Resume, error)
	ListByUser(ctx context.Context, userID int64) ([]Resume, error)
	GetByID(ctx context.Context, id int64) (Resume, error)
	// UpdateFeedback sets the edited text and feedback pair. original_text is never touched.
	UpdateFeedback(ctx context.Context, id int64, editedText, feedback string) (Resume, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	CountReviewedByUser(ctx context.Context, userID int64) (int, error)
}
