package custom_error

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

// Error taxonomy for the checkout core. Handlers map these to HTTP statuses,
// nothing below the handler layer knows about HTTP.

type NotFoundError struct {
	resource string
	key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.resource, e.key)
}

func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{resource: resource, key: key}
}

type ValidationError struct {
	field  string
	reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.field, e.reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{field: field, reason: reason}
}

// ConflictError covers state conflicts detected inside the atomic update:
// insufficient quantity, already-returned checkout. The transaction is rolled
// back, nothing is retried.
type ConflictError struct {
	reason string
}

func (e *ConflictError) Error() string {
	return e.reason
}

func NewConflictError(reason string) *ConflictError {
	return &ConflictError{reason: reason}
}

// TransientStoreError marks connectivity or serialization failures that the
// caller may safely retry.
type TransientStoreError struct {
	message string
	code    string
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

type UniqueViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23505")
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

type ForeignKeyViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23503")
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", f.message, f.code)
}

func WrapDBError(message, code string) error {
	switch code {
	case "23505":
		return &UniqueViolationError{
			message: message,
			code:    code,
		}
	case "23503":
		return &ForeignKeyViolationError{
			message: "Value is already used by other resources " + message,
			code:    code,
		}
	case "40001", "40P01", "08000", "08003", "08006", "57014":
		return &TransientStoreError{
			message: message,
			code:    code,
		}
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}

// HTTPStatus maps an error from the taxonomy to the response status handlers
// should answer with. Unknown errors map to 500.
func HTTPStatus(err error) int {
	var (
		notFound   *NotFoundError
		validation *ValidationError
		conflict   *ConflictError
		transient  *TransientStoreError
		unique     *UniqueViolationError
		foreignKey *ForeignKeyViolationError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict), errors.As(err, &unique), errors.As(err, &foreignKey):
		return http.StatusConflict
	case errors.As(err, &transient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WrapStoreError classifies a database/sql error coming out of a repository.
// Postgres errors go through WrapDBError by code; dropped connections become
// transient; anything else is wrapped as-is.
func WrapStoreError(message string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return WrapDBError(message, string(pqErr.Code))
	}
	if errors.Is(err, sql.ErrConnDone) {
		return WrapDBError(message, "08003")
	}
	return fmt.Errorf("%s: %w", message, err)
}
