package coach

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	system string
	user   string
}

type scriptedChatter struct {
	replies []string
	calls   []call
	err     error
}

func (s *scriptedChatter) Chat(_ context.Context, system, user string) (string, error) {
	s.calls = append(s.calls, call{system: system, user: user})
	if s.err != nil {
		return "", s.err
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func TestResumeFeedbackTwoCalls(t *testing.T) {
	chat := &scriptedChatter{replies: []string{"Polished text.", "1) Tightened the opening."}}
	svc := NewService(chat)

	fb, err := svc.ResumeFeedback(context.Background(), "raw text")
	require.NoError(t, err)
	assert.Equal(t, Feedback{EditedText: "Polished text.", Feedback: "1) Tightened the opening."}, fb)

	require.Len(t, chat.calls, 2)
	assert.Equal(t, "raw text", chat.calls[0].user)
	assert.Equal(t, "Original:\nraw text\n\nEdited:\nPolished text.", chat.calls[1].user)
	assert.NotEqual(t, chat.calls[0].system, chat.calls[1].system)
}

func TestGenerateResumeVerbatim(t *testing.T) {
	chat := &scriptedChatter{replies: []string{"Dear hiring team,\n..."}}
	svc := NewService(chat)

	out, err := svc.GenerateResume(context.Background(), GenerateResumeInput{
		Name: "Kim", Role: "Backend Engineer", ExperienceYears: 3, ExperienceList: "Go, Postgres",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dear hiring team,\n...", out)

	require.Len(t, chat.calls, 1)
	assert.Contains(t, chat.calls[0].user, "Name: Kim")
	assert.Contains(t, chat.calls[0].user, "Target role: Backend Engineer")
	assert.Contains(t, chat.calls[0].user, "Years of experience: 3")
	assert.Contains(t, chat.calls[0].user, "Experience summary: Go, Postgres")
}

func TestGenerateResumeRejectsNegativeYears(t *testing.T) {
	chat := &scriptedChatter{}
	_, err := NewService(chat).GenerateResume(context.Background(), GenerateResumeInput{ExperienceYears: -1})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, chat.calls)
}

func TestGenerateQuestionsParses(t *testing.T) {
	chat := &scriptedChatter{replies: []string{"1. What was the situation?\n2. How did you respond?"}}

	qs, err := NewService(chat).GenerateQuestions(context.Background(), "Acme", "SRE")
	require.NoError(t, err)
	assert.Equal(t, []string{"What was the situation?", "How did you respond?"}, qs)
	assert.Contains(t, chat.calls[0].user, "Company: Acme")
	assert.Contains(t, chat.calls[0].user, "Role: SRE")
	assert.Contains(t, chat.calls[0].user, "Write 5 behavioral")
}

func TestEvaluateAnswerParses(t *testing.T) {
	chat := &scriptedChatter{replies: []string{"Score: 4.0\nGood structured answer."}}

	eval, err := NewService(chat).EvaluateAnswer(context.Background(), "I led the migration.")
	require.NoError(t, err)
	assert.Equal(t, Evaluation{Score: 4, Feedback: "Good structured answer."}, eval)
	assert.Equal(t, "Interview answer: I led the migration.", chat.calls[0].user)
}

func TestChatErrorPropagates(t *testing.T) {
	chat := &scriptedChatter{err: context.Canceled}
	_, err := NewService(chat).EvaluateAnswer(context.Background(), "x")
	require.ErrorIs(t, err, context.Canceled)
}

func TestDegradedNoticeBecomesFeedback(t *testing.T) {
	chat := &scriptedChatter{replies: []string{"LLM call failed: timed out after 1m0s"}}
	eval, err := NewService(chat).EvaluateAnswer(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, Evaluation{Score: 0, Feedback: "LLM call failed: timed out after 1m0s"}, eval)
}

func TestEvaluateAnswerNonFiniteScoreIsZero(t *testing.T) {
	chat := &scriptedChatter{replies: []string{"Score: NaN\nVague answer."}}

	eval, err := NewService(chat).EvaluateAnswer(context.Background(), "I did things.")
	require.NoError(t, err)
	assert.Equal(t, Evaluation{Score: 0, Feedback: "Vague answer."}, eval)

	body, err := json.Marshal(map[string]any{"score": eval.Score, "feedback": eval.Feedback})
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":0,"feedback":"Vague answer."}`, string(body))
}
