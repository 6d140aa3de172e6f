package analyses

import (
	"context"
	"time"

	"resume-insight/internal/analysis"
)

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, a Analysis) error
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	// GetOrCreateForDocument reuses the latest analysis for the document when
	// it is queued, processing, or completed. A failed latest analysis is
	// reused unless allowRetry is set, in which case ErrRetryRequired is
	// returned to the caller that did not opt in. The bool reports whether a
	// new analysis row was created.
	GetOrCreateForDocument(ctx context.Context, a Analysis, allowRetry bool) (Analysis, bool, error)
	MarkProcessing(ctx context.Context, analysisID string, startedAt time.Time) error
	MarkCompleted(ctx context.Context, analysisID string, report analysis.Report, completedAt time.Time) error
	MarkFailed(ctx context.Context, analysisID, code, message string, completedAt time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error)
}
