// Package api provides the Gemini generateContent client implementations.
package api

// GJSON paths into generateContent responses.
const (
	// PathCandidateText is the only part of a successful response that is consumed:
	// the first candidate's first text part.
	PathCandidateText = "candidates.0.content.parts.0.text"

	// Error envelope returned with non-2xx statuses
	PathErrorMessage = "error.message"
	PathErrorStatus  = "error.status"
)
