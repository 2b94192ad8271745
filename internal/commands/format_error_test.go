package commands

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	apierrors "github.com/diogo/askgemini/internal/errors"
)

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "ctx"); got != "" {
		t.Fatalf("expected empty for nil error, got %s", got)
	}
}

func TestFormatErrorMessage_APIError(t *testing.T) {
	e := apierrors.NewAPIErrorWithBody(500, "/models/gemini:generateContent", "failure", "detailed body")
	out := formatErrorMessage(fmt.Errorf("generation failed: %w", e), "Error")

	for _, want := range []string{"HTTP Status: 500", "Endpoint: /models/gemini:generateContent", "detailed body"} {
		if !strings.Contains(out, want) {
			t.Errorf("message missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "Hint") {
		t.Errorf("a response body replaces the hint: %s", out)
	}
}

func TestFormatErrorMessage_Hints(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing key", fmt.Errorf("%w: set GEMINI_API_KEY", apierrors.ErrMissingAPIKey), "GEMINI_API_KEY"},
		{"auth", apierrors.NewAPIError(403, "/models", "forbidden"), "API key is valid"},
		{"rate limit", apierrors.NewAPIError(429, "/models", "slow down"), "usage limit"},
		{"network", apierrors.NewNetworkError("POST", "/models", errors.New("dial tcp")), "internet connection"},
		{"voice", apierrors.NewCapabilityError("voice input", "missing"), "voice_command"},
		{"empty", apierrors.ErrEmptyInput, "argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatErrorMessage(tt.err, "Error")
			if !strings.Contains(out, "Hint") || !strings.Contains(out, tt.want) {
				t.Errorf("message = %s, want hint containing %q", out, tt.want)
			}
		})
	}
}

func TestFormatErrorMessage_Plain(t *testing.T) {
	out := formatErrorMessage(errors.New("something odd"), "Error")
	if !strings.Contains(out, "Error: something odd") {
		t.Errorf("message = %s", out)
	}
	if strings.Contains(out, "Hint") {
		t.Errorf("unknown errors get no hint: %s", out)
	}
}
