package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"jobprep-backend/internal/coach"
	"jobprep-backend/internal/extract"
	"jobprep-backend/internal/shared/storage/object"
	"jobprep-backend/internal/shared/telemetry"
	"jobprep-backend/internal/users"
)

// UserEnsurer creates the owning user on first use.
type UserEnsurer interface {
	Ensure(ctx context.Context, id int64) (users.User, error)
}

// Coach is the slice of coach.Service resumes depend on.
type Coach interface {
	ResumeFeedback(ctx context.Context, original string) (coach.Feedback, error)
	GenerateResume(ctx context.Context, in coach.GenerateResumeInput) (string, error)
}

type Service struct {
	Repo  Repo
	Users UserEnsurer
	Coach Coach
	// Uploads keeps the raw bytes of file uploads. Optional.
	Uploads object.ObjectStore
}

func (s *Service) List(ctx context.Context) ([]Resume, error) {
	return s.Repo.List(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Upload stores a resume, creating its user first when the id is unseen.
func (s *Service) Upload(ctx context.Context, userID int64, text string) (Resume, error) {
	if userID <= 0 {
		return Resume{}, fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return Resume{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if _, err := s.Users.Ensure(ctx, userID); err != nil {
		return Resume{}, fmt.Errorf("ensure user %d: %w", userID, err)
	}
	return s.Repo.Create(ctx, userID, text)
}

// UploadFile extracts the text of a PDF, DOCX or plain text file and stores it like Upload.
func (s *Service) UploadFile(ctx context.Context, userID int64, fileName, contentType string, data []byte) (Resume, error) {
	text, err := extract.Text(ctx, data, contentType, fileName)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) || errors.Is(err, extract.ErrNoText) {
			return Resume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return Resume{}, fmt.Errorf("extract %s: %w", fileName, err)
	}
	resume, err := s.Upload(ctx, userID, text)
	if err != nil {
		return Resume{}, err
	}
	if s.Uploads != nil {
		key := UploadKey(userID, resume.ID, fileName)
		kind := extract.DetectType(contentType, fileName, data)
		if _, err := s.Uploads.Put(ctx, key, kind, bytes.NewReader(data)); err != nil {
			telemetry.Warn("resume.upload_store_failed", map[string]any{
				"resume_id": resume.ID,
				"key":       key,
				"error":     err,
			})
		}
	}
	return resume, nil
}

// UploadKey is the object key of an uploaded source file.
func UploadKey(userID, resumeID int64, fileName string) string {
	return fmt.Sprintf("uploads/user_%d/resume_%d%s", userID, resumeID, strings.ToLower(filepath.Ext(fileName)))
}

// Feedback rewrites the resume and records the edited text and feedback.
// Nothing is written unless both model calls complete.
func (s *Service) Feedback(ctx context.Context, id int64) (Resume, error) {
	resume, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	fb, err := s.Coach.ResumeFeedback(ctx, resume.OriginalText)
	if err != nil {
		return Resume{}, fmt.Errorf("resume feedback: %w", err)
	}
	return s.Repo.UpdateFeedback(ctx, id, fb.EditedText, fb.Feedback)
}

func (s *Service) Generate(ctx context.Context, in coach.GenerateResumeInput) (string, error) {
	text, err := s.Coach.GenerateResume(ctx, in)
	if errors.Is(err, coach.ErrInvalidInput) {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return text, err
}
