package resumes

import (
	"context"
	"errors"

	"jobprep-backend/internal/coach"
	"jobprep-backend/internal/users"
)

type stubCoach struct {
	feedback    coach.Feedback
	generated   string
	err         error
	lastInput   coach.GenerateResumeInput
	lastOrig    string
	feedbackHit int
}

func (s *stubCoach) ResumeFeedback(_ context.Context, original string) (coach.Feedback, error) {
	s.feedbackHit++
	s.lastOrig = original
	return s.feedback, s.err
}

func (s *stubCoach) GenerateResume(_ context.Context, in coach.GenerateResumeInput) (string, error) {
	s.lastInput = in
	if in.ExperienceYears < 0 {
		return "", coach.ErrInvalidInput
	}
	return s.generated, s.err
}

var errCoach = errors.New("coach exploded")

func newTestService(c *stubCoach) (*Service, *users.MemoryRepo) {
	userRepo := users.NewMemoryRepo()
	return &Service{
		Repo:  NewMemoryRepo(),
		Users: users.NewService(userRepo),
		Coach: c,
	}, userRepo
}
