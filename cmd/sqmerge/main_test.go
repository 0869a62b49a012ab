package main

import (
	"context"
	"strings"
	"testing"
)

func TestRun_InvalidPRNumber(t *testing.T) {
	tests := []string{"abc", "0", "-4", "1.5", ""}
	for _, arg := range tests {
		t.Run(arg, func(t *testing.T) {
			err := run(context.Background(), arg)
			if err == nil || !strings.Contains(err.Error(), "invalid PR number") {
				t.Errorf("run(%q) error = %v, want invalid PR number", arg, err)
			}
		})
	}
}
