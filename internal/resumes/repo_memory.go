package resumes

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	resumes []Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, userID int64, originalText string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	resume := Resume{ID: r.nextID, UserID: userID, OriginalText: originalText, CreatedAt: now, UpdatedAt: now}
	r.resumes = append(r.resumes, resume)
	return resume, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Resume, error) {
	return r.filter(ctx, func(Resume) bool { return true })
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID int64) ([]Resume, error) {
	return r.filter(ctx, func(res Resume) bool { return res.UserID == userID })
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		return r.resumes[i], nil
	}
	return Resume{}, ErrNotFound
}

func (r *MemoryRepo) UpdateFeedback(ctx context.Context, id int64, editedText, feedback string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return Resume{}, ErrNotFound
	}
	r.resumes[i].EditedText = &editedText
	r.resumes[i].Feedback = &feedback
	r.resumes[i].UpdatedAt = time.Now().UTC()
	return r.resumes[i], nil
}

func (r *MemoryRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	list, err := r.ListByUser(ctx, userID)
	return len(list), err
}

func (r *MemoryRepo) CountReviewedByUser(ctx context.Context, userID int64) (int, error) {
	list, err := r.filter(ctx, func(res Resume) bool { return res.UserID == userID && res.Reviewed() })
	return len(list), err
}

func (r *MemoryRepo) filter(ctx context.Context, keep func(Resume) bool) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Resume{}
	for _, res := range r.resumes {
		if keep(res) {
			out = append(out, res)
		}
	}
	return out, nil
}

// index assumes the caller holds the lock.
func (r *MemoryRepo) index(id int64) int {
	for i, res := range r.resumes {
		if res.ID == id {
			return i
		}
	}
	return -1
}
