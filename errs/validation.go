package errs

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// ValidationErrors maps a form field (e.g. "name", "faqs.1.id") to a message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Add records msg for field unless the field already has a message.
func (v ValidationErrors) Add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

// Merge copies every entry of other that v does not already hold.
func (v ValidationErrors) Merge(other ValidationErrors) {
	for field, msg := range other {
		v.Add(field, msg)
	}
}

// OrNil returns nil when there is nothing to report, so callers can return it as an error.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func NewValidationError(fields ValidationErrors) *ApiErr {
	copied := make(map[string]string, len(fields))
	for k, msg := range fields {
		copied[k] = msg
	}
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrValidation,
		Details:    "The given data was invalid",
		Fields:     copied,
		Cause:      fields,
	}
}

