// Package errors provides custom error types for the askgemini client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrEmptyInput            = errors.New("please enter a question")
	ErrRequestFailed         = errors.New("request failed")
	ErrMalformedResponse     = errors.New("malformed response")
	ErrCapabilityUnsupported = errors.New("capability unsupported")
	ErrRequestInFlight       = errors.New("a request is already in progress")
	ErrMissingAPIKey         = errors.New("no API key configured")
)

// NetworkError represents a transport-level failure
type NetworkError struct {
	Operation string
	Endpoint  string
	Cause     error
}

func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error during %s at %s: %v", e.Operation, e.Endpoint, e.Cause)
	}
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *NetworkError) Is(target error) bool {
	if target == ErrRequestFailed {
		return true
	}
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, cause error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Cause: cause}
}

// APIError represents a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// Is allows comparison with sentinel errors
func (e *APIError) Is(target error) bool {
	if target == ErrRequestFailed {
		return true
	}
	_, ok := target.(*APIError)
	return ok
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NewAPIErrorWithBody creates a new APIError carrying the response body
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	e := NewAPIError(statusCode, endpoint, message)
	e.Body = body
	return e
}

// ParseError represents a response that lacks the expected shape
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error: %s (path %s)", e.Message, e.Path)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrMalformedResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// CapabilityError reports a platform capability that is not available
type CapabilityError struct {
	Capability string
	Reason     string
}

func (e *CapabilityError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is not supported", e.Capability)
	}
	return fmt.Sprintf("%s is not supported: %s", e.Capability, e.Reason)
}

// Is allows comparison with sentinel errors
func (e *CapabilityError) Is(target error) bool {
	if target == ErrCapabilityUnsupported {
		return true
	}
	_, ok := target.(*CapabilityError)
	return ok
}

// NewCapabilityError creates a new CapabilityError
func NewCapabilityError(capability, reason string) *CapabilityError {
	return &CapabilityError{Capability: capability, Reason: reason}
}

// VoiceError carries the error code reported by a speech recognizer
type VoiceError struct {
	Code string
}

func (e *VoiceError) Error() string {
	return fmt.Sprintf("voice input error: %s", e.Code)
}

// NewVoiceError creates a new VoiceError
func NewVoiceError(code string) *VoiceError {
	return &VoiceError{Code: code}
}

// IsRemoteError reports whether err came from either remote failure mode.
// Callers recover from both in the same way.
func IsRemoteError(err error) bool {
	return errors.Is(err, ErrRequestFailed) || errors.Is(err, ErrMalformedResponse)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsAuthError reports whether the API rejected the credential
func IsAuthError(err error) bool {
	status := GetHTTPStatus(err)
	return status == 401 || status == 403
}

// IsRateLimitError reports whether the API returned a quota error
func IsRateLimitError(err error) bool {
	return GetHTTPStatus(err) == 429
}

// IsMissingAPIKey reports whether no credential was configured
func IsMissingAPIKey(err error) bool {
	return errors.Is(err, ErrMissingAPIKey)
}

// GetHTTPStatus extracts the HTTP status code, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint extracts the endpoint from a remote error
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}

// GetResponseBody extracts the captured response body, if any
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}
