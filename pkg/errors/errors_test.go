package custom_error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", NewNotFoundError("item", "42"), http.StatusNotFound},
		{"validation", NewValidationError("quantity", "must be positive"), http.StatusBadRequest},
		{"conflict", NewConflictError("insufficient quantity"), http.StatusConflict},
		{"unique violation", WrapDBError("duplicate", "23505"), http.StatusConflict},
		{"serialization failure", WrapDBError("retry me", "40001"), http.StatusServiceUnavailable},
		{"wrapped not found", fmt.Errorf("checkout failed: %w", NewNotFoundError("user", "jhuang")), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestWrapDBError(t *testing.T) {
	var unique *UniqueViolationError
	assert.ErrorAs(t, WrapDBError("dup", "23505"), &unique)

	var fk *ForeignKeyViolationError
	assert.ErrorAs(t, WrapDBError("fk", "23503"), &fk)

	var transient *TransientStoreError
	assert.ErrorAs(t, WrapDBError("conn", "08006"), &transient)

	err := WrapDBError("odd", "99999")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "uncategorized")
}
