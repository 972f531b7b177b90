package domain

import "errors"

var (
	// ErrNotFound indicates the referenced project, page, or frame does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a write would violate a uniqueness constraint,
	// such as two frames of one project sharing a number.
	ErrConflict = errors.New("conflict")

	// ErrCrossProject indicates an attempt to link a frame to a page that
	// belongs to a different project.
	ErrCrossProject = errors.New("page belongs to a different project")

	// ErrInternal marks persistence failures that are reported generically.
	ErrInternal = errors.New("internal error")
)

// ValidationError reports input that fails a domain rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError returns a *ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InternalError wraps an unexpected failure of operation Op. Its message
// never includes the cause; the cause stays reachable through errors.Is
// and errors.As for logging.
type InternalError struct {
	Op    string
	Cause error
}

func (e *InternalError) Error() string {
	return e.Op + ": internal error"
}

func (e *InternalError) Unwrap() []error {
	return []error{ErrInternal, e.Cause}
}

// Internal wraps err as an *InternalError unless it is nil or already one of
// the errors callers are expected to act on.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrCrossProject) || errors.Is(err, ErrInternal) || IsValidation(err) {
		return err
	}
	return &InternalError{Op: op, Cause: err}
}
