// Package coach composes LLM calls and reply parsing into the coaching operations.
package coach

import (
	"context"
	"errors"
	"fmt"
)

// QuestionCount is how many questions a generation asks for.
const QuestionCount = 5

var ErrInvalidInput = errors.New("invalid input")

// Chatter sends one system/user prompt pair and returns the reply text.
type Chatter interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

type Service struct {
	llm Chatter
}

func NewService(llm Chatter) *Service {
	return &Service{llm: llm}
}

// Feedback is a rewritten resume with an explanation of the edits.
type Feedback struct {
	EditedText string
	Feedback   string
}

// ResumeFeedback rewrites original, then asks the model to explain the edits.
func (s *Service) ResumeFeedback(ctx context.Context, original string) (Feedback, error) {
	edited, err := s.ask(ctx, "edit", map[string]any{"Original": original})
	if err != nil {
		return Feedback{}, err
	}
	review, err := s.ask(ctx, "review", map[string]any{"Original": original, "Edited": edited})
	if err != nil {
		return Feedback{}, err
	}
	return Feedback{EditedText: edited, Feedback: review}, nil
}

type GenerateResumeInput struct {
	Name            string
	Role            string
	ExperienceYears int
	ExperienceList  string
}

// GenerateResume writes a cover letter from the applicant's details. The reply is returned verbatim.
func (s *Service) GenerateResume(ctx context.Context, in GenerateResumeInput) (string, error) {
	if in.ExperienceYears < 0 {
		return "", fmt.Errorf("%w: experience_years must not be negative", ErrInvalidInput)
	}
	return s.ask(ctx, "generate", in)
}

// GenerateQuestions asks for behavioral questions for a company and role.
func (s *Service) GenerateQuestions(ctx context.Context, company, role string) ([]string, error) {
	raw, err := s.ask(ctx, "questions", map[string]any{"Company": company, "Role": role, "Count": QuestionCount})
	if err != nil {
		return nil, err
	}
	return ParseQuestions(raw), nil
}

// EvaluateAnswer grades an interview answer.
func (s *Service) EvaluateAnswer(ctx context.Context, answer string) (Evaluation, error) {
	raw, err := s.ask(ctx, "evaluate", map[string]any{"Answer": answer})
	if err != nil {
		return Evaluation{}, err
	}
	return ParseEvaluation(raw), nil
}

func (s *Service) ask(ctx context.Context, prompt string, data any) (string, error) {
	if s == nil || s.llm == nil {
		return "", errors.New("coach service not configured")
	}
	system, err := render(prompt+"_system.txt", data)
	if err != nil {
		return "", err
	}
	user, err := render(prompt+"_user.txt", data)
	if err != nil {
		return "", err
	}
	return s.llm.Chat(ctx, system, user)
}
