package github

import (
	"errors"
	"fmt"

	"github.com/google/go-github/v68/github"
)

// APIError is a non-success response from the GitHub API, normalized
// from go-github's error types so callers can report status and reason
// without depending on the SDK.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error (status %d)", e.StatusCode)
}

// MergeRejectedError is returned when the merge endpoint accepts the
// call but reports merged: false. The Reason is the API-provided text.
type MergeRejectedError struct {
	Reason string
}

// Error implements the error interface.
func (e *MergeRejectedError) Error() string {
	return fmt.Sprintf("merge rejected: %s", e.Reason)
}

// normalizeError converts go-github error responses into APIError,
// passing other errors (transport failures, context cancellation)
// through unchanged.
func normalizeError(err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		apiErr := &APIError{Message: errResp.Message}
		if errResp.Response != nil {
			apiErr.StatusCode = errResp.Response.StatusCode
		}
		return apiErr
	}
	return err
}
