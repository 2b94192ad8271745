package api

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/diogo/askgemini/internal/prompt"
)

// Answerer fetches the primary answer for a prompt decision
type Answerer struct {
	gen    Generator
	logger *zap.Logger
}

// NewAnswerer creates an Answerer
func NewAnswerer(gen Generator, logger *zap.Logger) *Answerer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Answerer{gen: gen, logger: logger}
}

// Ask sends the decided prompt once and caps brief answers. The returned
// text is still raw markup.
func (a *Answerer) Ask(ctx context.Context, d prompt.Decision) (string, error) {
	raw, err := a.gen.GenerateContent(ctx, d.Text)
	if err != nil {
		return "", fmt.Errorf("ask: %w", err)
	}

	capped := d.Cap(raw)
	if capped != raw {
		a.logger.Debug("brief answer capped", zap.Int("raw_len", len(raw)))
	}
	return capped, nil
}

// Suggester derives follow-up questions from an answer
type Suggester struct {
	gen Generator
}

// NewSuggester creates a Suggester
func NewSuggester(gen Generator) *Suggester {
	return &Suggester{gen: gen}
}

// Suggest asks the model for follow-up questions about rawAnswer and parses
// its line-oriented reply.
func (s *Suggester) Suggest(ctx context.Context, rawAnswer string) ([]string, error) {
	text, err := s.gen.GenerateContent(ctx, prompt.FollowUp(rawAnswer))
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return prompt.ParseSuggestions(text), nil
}
