package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Third-Party Service Errors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrPartialFailure    = errors.New("partial failure")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing       = errors.New("configuration missing")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

func NewRateLimitError(service string, retryAfter time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimitExceeded,
		Details:    fmt.Sprintf("Rate limit exceeded for %s, retry after %s", service, retryAfter),
		Field:      "rate_limit",
	}
}

// NewPartialFailureError reports that some of a set of independent steps failed.
func NewPartialFailureError(operation string, failedSteps []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrPartialFailure,
		Details:    fmt.Sprintf("%s failed for: %s", operation, strings.Join(failedSteps, ", ")),
	}
}

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("Environment variable %s is not set or invalid", varName),
		Field:      varName,
	}
}

func IsPartialFailureError(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}
