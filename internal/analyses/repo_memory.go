package analyses

import (
	"context"
	"sort"
	"sync"
	"time"

	"resume-insight/internal/analysis"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Analysis)}
}

// Create stores a new analysis.
func (r *MemoryRepo) Create(ctx context.Context, a Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[a.ID] = a
	return nil
}

// GetByID returns an analysis by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.data[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return a, nil
}

// GetOrCreateForDocument reuses the latest analysis for a document or creates a new one.
func (r *MemoryRepo) GetOrCreateForDocument(ctx context.Context, a Analysis, allowRetry bool) (Analysis, bool, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest Analysis
	found := false
	for _, existing := range r.data {
		if existing.UserID != a.UserID || existing.DocumentID != a.DocumentID {
			continue
		}
		if !found || existing.CreatedAt.After(latest.CreatedAt) {
			latest = existing
			found = true
		}
	}

	if found {
		switch latest.Status {
		case StatusQueued, StatusProcessing, StatusCompleted:
			return latest, false, nil
		case StatusFailed:
			if !allowRetry {
				return latest, false, ErrRetryRequired
			}
		}
	}

	r.data[a.ID] = a
	return a, true, nil
}

// MarkProcessing transitions an analysis to processing.
func (r *MemoryRepo) MarkProcessing(ctx context.Context, analysisID string, startedAt time.Time) error {
	return r.update(ctx, analysisID, func(a *Analysis) {
		a.Status = StatusProcessing
		a.StartedAt = &startedAt
	})
}

// MarkCompleted stores the report and transitions the analysis to completed.
func (r *MemoryRepo) MarkCompleted(ctx context.Context, analysisID string, report analysis.Report, completedAt time.Time) error {
	return r.update(ctx, analysisID, func(a *Analysis) {
		a.Status = StatusCompleted
		a.Report = &report
		a.ErrorCode = ""
		a.ErrorMessage = ""
		a.CompletedAt = &completedAt
	})
}

// MarkFailed records a failure code and transitions the analysis to failed.
func (r *MemoryRepo) MarkFailed(ctx context.Context, analysisID, code, message string, completedAt time.Time) error {
	return r.update(ctx, analysisID, func(a *Analysis) {
		a.Status = StatusFailed
		a.ErrorCode = code
		a.ErrorMessage = message
		a.CompletedAt = &completedAt
	})
}

// ListByUser returns analyses for a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	out := make([]Analysis, 0)
	for _, a := range r.data {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Analysis{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

func (r *MemoryRepo) update(ctx context.Context, analysisID string, apply func(*Analysis)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.data[analysisID]
	if !ok {
		return ErrNotFound
	}
	apply(&a)
	r.data[analysisID] = a
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
