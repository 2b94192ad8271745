package api

import (
	"context"
	"fmt"
	"sync"
)

// MockResponse is one scripted reply of MockGenerator
type MockResponse struct {
	Text string
	Err  error
}

// MockGenerator is a scripted Generator for tests. Responses are consumed in
// order; once exhausted, the last one repeats. Safe for concurrent use.
type MockGenerator struct {
	mu        sync.Mutex
	responses []MockResponse
	prompts   []string

	// Func, when set, takes precedence over the scripted responses
	Func func(ctx context.Context, prompt string) (string, error)
}

// Ensure MockGenerator implements Generator
var _ Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a mock with scripted responses
func NewMockGenerator(responses ...MockResponse) *MockGenerator {
	return &MockGenerator{responses: responses}
}

// GenerateContent records prompt and returns the next scripted response
func (m *MockGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	fn := m.Func
	var resp MockResponse
	if fn == nil {
		if len(m.responses) == 0 {
			m.mu.Unlock()
			return "", fmt.Errorf("mock generator: no response scripted")
		}
		resp = m.responses[0]
		if len(m.responses) > 1 {
			m.responses = m.responses[1:]
		}
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return resp.Text, resp.Err
}

// Prompts returns every prompt received, in call order
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Calls returns the number of GenerateContent calls
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
