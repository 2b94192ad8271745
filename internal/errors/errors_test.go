package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(400, "test-endpoint", "test API error")

	expected := "API error [400] at test-endpoint: test API error"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrRequestFailed) {
		t.Error("Expected APIError to match ErrRequestFailed")
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Error("APIError should not match ErrMalformedResponse")
	}
}

func TestAPIErrorWithoutStatus(t *testing.T) {
	err := NewAPIError(0, "ep", "boom")
	if err.Error() != "API error at ep: boom" {
		t.Errorf("Error() = %s", err.Error())
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("generate content", "http://x", cause)

	if !errors.Is(err, ErrRequestFailed) {
		t.Error("Expected NetworkError to match ErrRequestFailed")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected NetworkError to unwrap to its cause")
	}
	if !IsNetworkError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsNetworkError should see through wrapping")
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("no text", "candidates.0.content.parts.0.text")

	if !errors.Is(err, ErrMalformedResponse) {
		t.Error("Expected ParseError to match ErrMalformedResponse")
	}
	if errors.Is(err, ErrRequestFailed) {
		t.Error("ParseError should not match ErrRequestFailed")
	}

	expected := "parse error: no text (path candidates.0.content.parts.0.text)"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

func TestCapabilityError(t *testing.T) {
	err := NewCapabilityError("voice input", "")
	if err.Error() != "voice input is not supported" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, ErrCapabilityUnsupported) {
		t.Error("Expected CapabilityError to match ErrCapabilityUnsupported")
	}
}

func TestIsRemoteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"api error", NewAPIError(500, "ep", "x"), true},
		{"network error", NewNetworkError("op", "ep", errors.New("x")), true},
		{"parse error", NewParseError("x", ""), true},
		{"wrapped parse error", fmt.Errorf("ask: %w", NewParseError("x", "")), true},
		{"empty input", ErrEmptyInput, false},
		{"capability", NewCapabilityError("voice", ""), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRemoteError(tt.err); got != tt.want {
				t.Errorf("IsRemoteError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHelpers(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewAPIErrorWithBody(403, "ep", "denied", "{\"error\":{}}"))

	if GetHTTPStatus(err) != 403 {
		t.Errorf("GetHTTPStatus() = %d", GetHTTPStatus(err))
	}
	if GetEndpoint(err) != "ep" {
		t.Errorf("GetEndpoint() = %q", GetEndpoint(err))
	}
	if GetResponseBody(err) != "{\"error\":{}}" {
		t.Errorf("GetResponseBody() = %q", GetResponseBody(err))
	}
	if !IsAuthError(err) {
		t.Error("403 should be an auth error")
	}
	if IsRateLimitError(err) {
		t.Error("403 is not a rate limit error")
	}
	if GetEndpoint(NewNetworkError("op", "net-ep", errors.New("x"))) != "net-ep" {
		t.Error("GetEndpoint() should read NetworkError endpoint")
	}
	if !IsMissingAPIKey(fmt.Errorf("load: %w", ErrMissingAPIKey)) {
		t.Error("IsMissingAPIKey() should see through wrapping")
	}
	if GetHTTPStatus(errors.New("plain")) != 0 {
		t.Error("GetHTTPStatus() should be 0 for plain errors")
	}
}
