package github

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-github/v68/github"
)

// TestAPIError_Error tests error message formatting
func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *APIError
		wantMsg string
	}{
		{
			name: "error with message",
			err: &APIError{
				StatusCode: 404,
				Message:    "Not found",
			},
			wantMsg: "GitHub API error (status 404): Not found",
		},
		{
			name: "error without message",
			err: &APIError{
				StatusCode: 500,
			},
			wantMsg: "GitHub API error (status 500)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.wantMsg {
				t.Errorf("APIError.Error() = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}

func TestMergeRejectedError_Error(t *testing.T) {
	err := &MergeRejectedError{Reason: "Head branch was modified"}
	want := "merge rejected: Head branch was modified"
	if got := err.Error(); got != want {
		t.Errorf("MergeRejectedError.Error() = %v, want %v", got, want)
	}
}

func TestNormalizeError(t *testing.T) {
	sdkErr := &github.ErrorResponse{
		Response: &http.Response{StatusCode: 422},
		Message:  "Validation Failed",
	}
	wrapped := fmt.Errorf("outer: %w", sdkErr)

	var apiErr *APIError
	if got := normalizeError(wrapped); !errors.As(got, &apiErr) {
		t.Fatalf("normalizeError() = %v, want APIError", got)
	}
	if apiErr.StatusCode != 422 || apiErr.Message != "Validation Failed" {
		t.Errorf("APIError = %+v", apiErr)
	}

	plain := errors.New("connection refused")
	if got := normalizeError(plain); got != plain {
		t.Errorf("normalizeError() changed a non-API error: %v", got)
	}
}
