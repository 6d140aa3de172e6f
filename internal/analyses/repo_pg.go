package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-insight/internal/analysis"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `
id, document_id, user_id, job_description, job_role, status, report,
error_code, error_message, started_at, completed_at, created_at`

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, a Analysis) error {
	return createWith(ctx, r.DB, a)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func createWith(ctx context.Context, db execer, a Analysis) error {
	const query = `
INSERT INTO analyses (id, document_id, user_id, job_description, job_role, status, report, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	report, err := marshalReport(a.Report)
	if err != nil {
		return err
	}
	var documentID sql.NullString
	if a.DocumentID != "" {
		documentID = sql.NullString{String: a.DocumentID, Valid: true}
	}
	_, err = db.ExecContext(ctx, query,
		a.ID,
		documentID,
		a.UserID,
		a.JobDescription,
		a.JobRole,
		a.Status,
		report,
		a.CreatedAt,
	)
	return err
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	query := `
SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, analysisID)
	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return a, err
}

// GetOrCreateForDocument returns the latest analysis for a document or creates a new one.
func (r *PGRepo) GetOrCreateForDocument(ctx context.Context, a Analysis, allowRetry bool) (Analysis, bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Analysis{}, false, err
	}
	defer tx.Rollback()

	// Serialize per-document to avoid duplicate analysis creation.
	if _, err := tx.ExecContext(ctx, `SELECT id FROM documents WHERE id = $1 AND user_id = $2 FOR UPDATE`, a.DocumentID, a.UserID); err != nil {
		return Analysis{}, false, err
	}

	latestQuery := `
SELECT ` + analysisColumns + `
FROM analyses
WHERE document_id = $1 AND user_id = $2 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT 1`
	latest, err := scanAnalysis(tx.QueryRowContext(ctx, latestQuery, a.DocumentID, a.UserID))
	if err == nil {
		switch latest.Status {
		case StatusQueued, StatusProcessing, StatusCompleted:
			if err := tx.Commit(); err != nil {
				return Analysis{}, false, err
			}
			return latest, false, nil
		case StatusFailed:
			if !allowRetry {
				if err := tx.Commit(); err != nil {
					return Analysis{}, false, err
				}
				return latest, false, ErrRetryRequired
			}
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, false, err
	}

	if err := createWith(ctx, tx, a); err != nil {
		return Analysis{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return Analysis{}, false, err
	}
	return a, true, nil
}

// MarkProcessing transitions an analysis to processing.
func (r *PGRepo) MarkProcessing(ctx context.Context, analysisID string, startedAt time.Time) error {
	const query = `
UPDATE analyses
SET status = $1, started_at = $2, updated_at = now()
WHERE id = $3 AND deleted_at IS NULL`
	return r.exec(ctx, query, StatusProcessing, startedAt, analysisID)
}

// MarkCompleted stores the report and transitions the analysis to completed.
func (r *PGRepo) MarkCompleted(ctx context.Context, analysisID string, report analysis.Report, completedAt time.Time) error {
	const query = `
UPDATE analyses
SET status = $1, report = $2, error_code = NULL, error_message = NULL, completed_at = $3, updated_at = now()
WHERE id = $4 AND deleted_at IS NULL`
	payload, err := marshalReport(&report)
	if err != nil {
		return err
	}
	return r.exec(ctx, query, StatusCompleted, payload, completedAt, analysisID)
}

// MarkFailed records a failure code and transitions the analysis to failed.
func (r *PGRepo) MarkFailed(ctx context.Context, analysisID, code, message string, completedAt time.Time) error {
	const query = `
UPDATE analyses
SET status = $1, error_code = $2, error_message = $3, completed_at = $4, updated_at = now()
WHERE id = $5 AND deleted_at IS NULL`
	return r.exec(ctx, query, StatusFailed, code, message, completedAt, analysisID)
}

// ListByUser returns analyses for a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	query := `
SELECT ` + analysisColumns + `
FROM analyses
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3`
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var documentID sql.NullString
	var report sql.NullString
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var startedAt sql.NullTime
	var completedAt sql.NullTime
	err := row.Scan(
		&a.ID,
		&documentID,
		&a.UserID,
		&a.JobDescription,
		&a.JobRole,
		&a.Status,
		&report,
		&errorCode,
		&errorMessage,
		&startedAt,
		&completedAt,
		&a.CreatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	a.DocumentID = documentID.String
	a.ErrorCode = errorCode.String
	a.ErrorMessage = errorMessage.String
	if startedAt.Valid {
		a.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	if report.Valid && report.String != "" {
		var parsed analysis.Report
		if err := json.Unmarshal([]byte(report.String), &parsed); err != nil {
			return Analysis{}, fmt.Errorf("decode report for analysis %s: %w", a.ID, err)
		}
		a.Report = &parsed
	}
	return a, nil
}

func marshalReport(report *analysis.Report) (any, error) {
	if report == nil {
		return nil, nil
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return string(payload), nil
}

var _ Repo = (*PGRepo)(nil)
