package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabaseErrorClassifiesCause(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		status   int
		sentinel error
	}{
		{"postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "idx_services_slug"`), http.StatusConflict, ErrAlreadyExists},
		{"sqlite duplicate", errors.New("UNIQUE constraint failed: services.slug"), http.StatusConflict, ErrAlreadyExists},
		{"foreign key", errors.New("FOREIGN KEY constraint failed"), http.StatusBadRequest, ErrForeignKeyConstraint},
		{"not found", errors.New("record not found"), http.StatusNotFound, ErrNotFound},
		{"connection", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, ErrDatabaseConnection},
		{"other", errors.New("syntax error"), http.StatusInternalServerError, ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("update", "service", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Contains(t, err.GetFullError(), tt.cause.Error())
		})
	}
}

func TestValidationErrors(t *testing.T) {
	v := ValidationErrors{}
	require.NoError(t, v.OrNil())

	v.Add("name", "The name field is required.")
	v.Add("name", "ignored")
	v.Merge(ValidationErrors{"faqs.0.id": "The selected faqs.0.id is invalid.", "name": "ignored"})

	err := v.OrNil()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation failed: faqs.0.id: The selected faqs.0.id is invalid.; name: The name field is required.", err.Error())

	apiErr := NewValidationError(v)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "The name field is required.", apiErr.Fields["name"])
	assert.ErrorIs(t, apiErr, ErrValidation)
}

func TestUniqueConstraintViolationKeepsCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: categories.slug")
	err := fmt.Errorf("create: %w", NewUniqueConstraintViolationError("category", "slug", cause))

	assert.True(t, IsUniqueConstraintViolationError(err))
	var apiErr *ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "slug", apiErr.Field)
	assert.Contains(t, apiErr.GetFullError(), cause.Error())
}

func TestConfigErrors(t *testing.T) {
	missing := NewEnvironmentVariableError("JWT_SECRET")
	assert.ErrorIs(t, missing, ErrEnvironmentVariable)
	assert.Equal(t, "JWT_SECRET", missing.Field)
	assert.Contains(t, missing.Error(), "JWT_SECRET")

	invalid := NewConfigError("STORAGE_DRIVER", errors.New(`unsupported driver "ftp"`))
	assert.ErrorIs(t, invalid, ErrConfigMissing)
	assert.Contains(t, invalid.GetFullError(), `unsupported driver "ftp"`)
}
