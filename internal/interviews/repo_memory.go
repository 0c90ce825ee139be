package interviews

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu             sync.RWMutex
	nextQuestionID int64
	nextAnswerID   int64
	questions      []Question
	answers        []Answer
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) CreateQuestions(ctx context.Context, userID int64, company, role string, texts []string) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	out := make([]Question, 0, len(texts))
	for _, text := range texts {
		r.nextQuestionID++
		q := Question{ID: r.nextQuestionID, UserID: userID, Company: company, Role: role, QuestionText: text, CreatedAt: now}
		r.questions = append(r.questions, q)
		out = append(out, q)
	}
	return out, nil
}

func (r *MemoryRepo) ListQuestionsByUser(ctx context.Context, userID int64) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Question{}
	for _, q := range r.questions {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *MemoryRepo) GetQuestion(ctx context.Context, id int64) (Question, error) {
	if err := ctx.Err(); err != nil {
		return Question{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, ErrQuestionNotFound
}

func (r *MemoryRepo) CreateAnswer(ctx context.Context, questionID int64, text string) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.questionOwner(questionID) == 0 {
		return Answer{}, ErrQuestionNotFound
	}
	r.nextAnswerID++
	now := time.Now().UTC()
	a := Answer{ID: r.nextAnswerID, QuestionID: questionID, AnswerText: text, CreatedAt: now, UpdatedAt: now}
	r.answers = append(r.answers, a)
	return a, nil
}

func (r *MemoryRepo) GetAnswer(ctx context.Context, id int64) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.answers {
		if a.ID == id {
			return a, nil
		}
	}
	return Answer{}, ErrAnswerNotFound
}

func (r *MemoryRepo) UpdateEvaluation(ctx context.Context, id int64, score float64, feedback string) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.answers {
		if r.answers[i].ID == id {
			r.answers[i].Score = &score
			r.answers[i].Feedback = &feedback
			r.answers[i].UpdatedAt = time.Now().UTC()
			return r.answers[i], nil
		}
	}
	return Answer{}, ErrAnswerNotFound
}

func (r *MemoryRepo) ListAnswersByUser(ctx context.Context, userID int64) ([]AnswerWithQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	texts := make(map[int64]string)
	for _, q := range r.questions {
		if q.UserID == userID {
			texts[q.ID] = q.QuestionText
		}
	}
	out := []AnswerWithQuestion{}
	for _, a := range r.answers {
		if text, ok := texts[a.QuestionID]; ok {
			out = append(out, AnswerWithQuestion{Answer: a, QuestionText: text})
		}
	}
	return out, nil
}

func (r *MemoryRepo) CountQuestionsByUser(ctx context.Context, userID int64) (int, error) {
	list, err := r.ListQuestionsByUser(ctx, userID)
	return len(list), err
}

func (r *MemoryRepo) CountAnswersByUser(ctx context.Context, userID int64) (int, error) {
	list, err := r.ListAnswersByUser(ctx, userID)
	return len(list), err
}

func (r *MemoryRepo) CountEvaluatedAnswersByUser(ctx context.Context, userID int64) (int, error) {
	list, err := r.ListAnswersByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range list {
		if a.Evaluated() {
			n++
		}
	}
	return n, nil
}

// questionOwner returns the owning user id, or 0 when the question is unknown. Caller holds the lock.
func (r *MemoryRepo) questionOwner(id int64) int64 {
	for _, q := range r.questions {
		if q.ID == id {
			return q.UserID
		}
	}
	return 0
}
