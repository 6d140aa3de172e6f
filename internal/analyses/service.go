package analyses

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"resume-insight/internal/analysis"
	"resume-insight/internal/documents"
	"resume-insight/internal/extract"
	"resume-insight/internal/queue"
	"resume-insight/internal/shared/metrics"
	"resume-insight/internal/shared/storage/object"
	"resume-insight/internal/shared/telemetry"
)

// Service contains business logic for analyses.
type Service struct {
	Repo   Repo
	Docs   documents.DocumentsRepo
	Store  object.ObjectStore
	Engine *analysis.Analyzer
	Queue  queue.Client
}

// AnalyzeText runs the evaluation pipeline synchronously on raw text.
// Nothing is persisted; the caller gets the report directly.
func (s *Service) AnalyzeText(ctx context.Context, in analysis.Input) (analysis.Report, error) {
	start := time.Now()
	metrics.IncAnalysisStarted()

	report, err := s.Engine.Analyze(ctx, in)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.sync.failed", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"error":      err.Error(),
		})
		return analysis.Report{}, err
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("analysis.sync.completed", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"ats_score":   report.ATSScore,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
	return report, nil
}

// StartForDocument queues an analysis for a stored document, reusing the
// latest analysis when one is already in flight or completed. The bool
// reports whether a new analysis was created and enqueued.
func (s *Service) StartForDocument(ctx context.Context, userID, documentID, jobDescription, jobRole string, allowRetry bool) (Analysis, bool, error) {
	if userID == "" || documentID == "" {
		return Analysis{}, false, ErrInvalidInput
	}

	if _, err := s.Docs.GetByID(ctx, userID, documentID); err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return Analysis{}, false, ErrNotFound
		}
		return Analysis{}, false, err
	}

	a := Analysis{
		ID:             uuid.NewString(),
		DocumentID:     documentID,
		UserID:         userID,
		JobDescription: jobDescription,
		JobRole:        jobRole,
		Status:         StatusQueued,
		CreatedAt:      time.Now().UTC(),
	}

	a, created, err := s.Repo.GetOrCreateForDocument(ctx, a, allowRetry)
	if err != nil {
		return a, false, err
	}
	if !created {
		return a, false, nil
	}

	requestID := requestIDFromContext(ctx)
	telemetry.Info("analysis.queued", map[string]any{
		"request_id":  requestID,
		"analysis_id": a.ID,
		"document_id": documentID,
	})

	if s.Queue == nil {
		// No queue configured: process in the API process itself.
		go func() {
			bg, cancel := context.WithTimeout(backgroundWithRequestID(ctx), 2*time.Minute)
			defer cancel()
			if err := s.Process(bg, a.ID); err != nil {
				telemetry.Error("analysis.inline.failed", map[string]any{
					"request_id":  requestID,
					"analysis_id": a.ID,
					"error":       err.Error(),
				})
			}
		}()
		return a, true, nil
	}

	msg := queue.Message{
		AnalysisID: a.ID,
		RequestID:  requestID,
		EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
		Version:    1,
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		now := time.Now().UTC()
		if markErr := s.Repo.MarkFailed(ctx, a.ID, ErrorCodeInternal, "enqueue failed", now); markErr != nil {
			telemetry.Error("analysis.mark_failed", map[string]any{
				"analysis_id": a.ID,
				"error":       markErr.Error(),
			})
		}
		return a, false, fmt.Errorf("enqueue analysis %s: %w", a.ID, err)
	}

	return a, true, nil
}

// Get returns an analysis owned by the user.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	a, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if a.UserID != userID {
		return Analysis{}, ErrNotFound
	}
	return a, nil
}

// List returns analyses for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Process runs one queued analysis end to end: load the document, extract
// its text, run the evaluation pipeline, and persist the outcome. It is
// idempotent: completed analyses are returned as-is.
func (s *Service) Process(ctx context.Context, analysisID string) error {
	a, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return fmt.Errorf("load analysis %s: %w", analysisID, err)
	}
	if a.Status == StatusCompleted {
		return nil
	}

	start := time.Now()
	metrics.IncAnalysisStarted()
	if err := s.Repo.MarkProcessing(ctx, a.ID, start.UTC()); err != nil {
		return fmt.Errorf("mark processing %s: %w", a.ID, err)
	}
	telemetry.Info("analysis.processing", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"analysis_id":       a.ID,
		"document_id":       a.DocumentID,
		"status_transition": StatusQueued + "->" + StatusProcessing,
	})

	text, err := s.documentText(ctx, a)
	if err != nil {
		return s.fail(ctx, a, ErrorCodeExtraction, err, start)
	}

	report, err := s.Engine.Analyze(ctx, analysis.Input{
		ResumeText: text,
		JobDesc:    a.JobDescription,
		JobRole:    a.JobRole,
	})
	if err != nil {
		code := ErrorCodeInternal
		if errors.Is(err, analysis.ErrCollaborator) {
			code = ErrorCodeCollaborator
		}
		return s.fail(ctx, a, code, err, start)
	}

	now := time.Now().UTC()
	if err := s.Repo.MarkCompleted(ctx, a.ID, report, now); err != nil {
		return fmt.Errorf("mark completed %s: %w", a.ID, err)
	}

	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs)
	telemetry.Info("analysis.completed", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"analysis_id":       a.ID,
		"document_id":       a.DocumentID,
		"ats_score":         report.ATSScore,
		"duration_ms":       durationMs,
		"status_transition": StatusProcessing + "->" + StatusCompleted,
	})
	return nil
}

func (s *Service) documentText(ctx context.Context, a Analysis) (string, error) {
	doc, err := s.Docs.GetByID(ctx, a.UserID, a.DocumentID)
	if err != nil {
		return "", fmt.Errorf("load document %s: %w", a.DocumentID, err)
	}

	if doc.ExtractedTextKey != "" {
		body, err := s.Store.Open(ctx, doc.ExtractedTextKey)
		if err == nil {
			defer body.Close()
			raw, readErr := io.ReadAll(body)
			if readErr == nil {
				return string(raw), nil
			}
		}
		// Fall through and re-extract when the cached copy is unreadable.
	}

	text, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		return "", err
	}
	if err := s.Docs.UpdateExtraction(ctx, a.UserID, doc.ID, doc.StorageKey+".extracted.txt", time.Now().UTC()); err != nil {
		telemetry.Error("document.extraction.record", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
	}
	return text, nil
}

func (s *Service) fail(ctx context.Context, a Analysis, code string, cause error, start time.Time) error {
	now := time.Now().UTC()
	if err := s.Repo.MarkFailed(ctx, a.ID, code, cause.Error(), now); err != nil {
		telemetry.Error("analysis.mark_failed", map[string]any{
			"analysis_id": a.ID,
			"error":       err.Error(),
		})
	}
	metrics.IncAnalysisFailed()
	telemetry.Error("analysis.failed", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"analysis_id":       a.ID,
		"document_id":       a.DocumentID,
		"error_code":        code,
		"error":             cause.Error(),
		"duration_ms":       float64(time.Since(start).Microseconds()) / 1000.0,
		"status_transition": StatusProcessing + "->" + StatusFailed,
	})
	return fmt.Errorf("analysis %s failed (%s): %w", a.ID, code, cause)
}
