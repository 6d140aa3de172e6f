package analyses

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrRetryRequired         = errors.New("retry required")
	ErrJobQueueNotConfigured = errors.New("job queue not configured")
)

const (
	ErrorCodeValidation   = "validation_error"
	ErrorCodeCollaborator = "collaborator_unavailable"
	ErrorCodeExtraction   = "extraction_error"
	ErrorCodeStorage      = "storage_error"
	ErrorCodeInternal     = "internal_error"
)
