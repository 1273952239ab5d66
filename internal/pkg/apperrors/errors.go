package apperrors

import "errors"

// Common errors
var (
	// ErrInvalidArgument is returned when a caller-supplied parameter is
	// rejected before any store access happens.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidationFailed marks a malformed source record. Row-level and
	// non-fatal: the offending row is skipped, the batch continues.
	ErrValidationFailed = errors.New("validation failed")

	// ErrSourceNotFound is returned when a declared catalog source has no
	// readable data.
	ErrSourceNotFound = errors.New("catalog source not found")

	// ErrSchemaNotInitialized is returned when the catalog or embedding
	// tables are queried before the migrations have run. Recoverable by
	// running setup, so it is surfaced distinctly from generic database
	// failures.
	ErrSchemaNotInitialized = errors.New("schema not initialized")

	// ErrDatabase wraps connectivity or constraint failures that abort the
	// current stage.
	ErrDatabase = errors.New("database error")

	// ErrEmbeddingExists is returned when an embedding insert hits the
	// unique course_id constraint without replace semantics.
	ErrEmbeddingExists = errors.New("embedding already exists for course")

	// ErrAborted is returned when a destructive operation is refused by the
	// confirmation capability. No side effects have happened.
	ErrAborted = errors.New("operation aborted")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Detail  string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetail attaches a safe, user-facing detail message
func (e *CustomError) WithDetail(detail string) *CustomError {
	e.Detail = detail
	return e
}

// NewDatabaseError wraps a store failure with a message for the current stage
func NewDatabaseError(message string) error {
	return &CustomError{
		Err:     ErrDatabase,
		Message: message,
	}
}

// NewInvalidArgumentError creates a parameter rejection error with a message
func NewInvalidArgumentError(message string) error {
	return &CustomError{
		Err:     ErrInvalidArgument,
		Message: message,
	}
}
