package analyses

import (
	"time"

	"resume-insight/internal/analysis"
)

// AnalysisResponse is the outward-facing representation of an analysis.
type AnalysisResponse struct {
	AnalysisID   string           `json:"analysisId"`
	DocumentID   string           `json:"documentId,omitempty"`
	JobRole      string           `json:"jobRole,omitempty"`
	Status       string           `json:"status"`
	Report       *analysis.Report `json:"report,omitempty"`
	ErrorCode    string           `json:"errorCode,omitempty"`
	ErrorMessage string           `json:"errorMessage,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	CompletedAt  *time.Time       `json:"completedAt,omitempty"`
}

func toResponse(a Analysis) AnalysisResponse {
	return AnalysisResponse{
		AnalysisID:   a.ID,
		DocumentID:   a.DocumentID,
		JobRole:      a.JobRole,
		Status:       a.Status,
		Report:       a.Report,
		ErrorCode:    a.ErrorCode,
		ErrorMessage: a.ErrorMessage,
		CreatedAt:    a.CreatedAt,
		CompletedAt:  a.CompletedAt,
	}
}
