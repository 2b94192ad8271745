package voice

import "context"

// StaticRecognizer returns a fixed transcript or error. It stands in for a
// microphone in tests and demos.
type StaticRecognizer struct {
	Transcript string
	Err        error
}

// Capture returns the configured result
func (s StaticRecognizer) Capture(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Transcript, s.Err
}
