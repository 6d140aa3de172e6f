package analyses

import (
	"time"

	"resume-insight/internal/analysis"
)

// Analysis statuses.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Analysis represents a resume evaluation job for a stored document.
type Analysis struct {
	ID             string           `json:"id"`
	DocumentID     string           `json:"documentId,omitempty"`
	UserID         string           `json:"userId"`
	JobDescription string           `json:"jobDescription"`
	JobRole        string           `json:"jobRole"`
	Status         string           `json:"status"`
	Report         *analysis.Report `json:"report,omitempty"`
	ErrorCode      string           `json:"errorCode,omitempty"`
	ErrorMessage   string           `json:"errorMessage,omitempty"`
	StartedAt      *time.Time       `json:"startedAt,omitempty"`
	CompletedAt    *time.Time       `json:"completedAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}
