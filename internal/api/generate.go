package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/askgemini/internal/errors"
)

// maxErrorBody limits how much of a failed response is kept for diagnostics
const maxErrorBody = 4096

// Generator performs one prompt/answer exchange with the model.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Ensure GeminiClient implements Generator
var _ Generator = (*GeminiClient)(nil)

type textPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []textPart `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

// buildPayload wraps the prompt as the single text part of a single content
func buildPayload(prompt string) ([]byte, error) {
	return json.Marshal(generateRequest{
		Contents: []content{{Parts: []textPart{{Text: prompt}}}},
	})
}

// GenerateContent sends prompt and returns the first candidate's first text part.
// It makes exactly one request and never retries.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	payload, err := buildPayload(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	endpoint := c.Endpoint()
	start := time.Now()
	c.logger.Debug("generate content",
		zap.String("endpoint", endpoint),
		zap.Int("prompt_len", len(prompt)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkError("generate content", endpoint, redactURL(err, endpoint))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := gjson.GetBytes(body, PathErrorMessage).String()
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		c.logger.Warn("generate content failed",
			zap.Int("status", resp.StatusCode),
			zap.String("api_status", gjson.GetBytes(body, PathErrorStatus).String()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return "", apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, message, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierrors.NewNetworkError("read response", endpoint, err)
	}

	text, err := parseResponse(body)
	if err != nil {
		return "", err
	}

	c.logger.Debug("generate content done",
		zap.Int("answer_len", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}

// parseResponse extracts the consumed text path from a response body
func parseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	text := gjson.GetBytes(body, PathCandidateText)
	if !text.Exists() {
		return "", apierrors.NewParseError("no candidate text in response", PathCandidateText)
	}
	if text.Type != gjson.String {
		return "", apierrors.NewParseError("candidate text is not a string", PathCandidateText)
	}
	return text.String(), nil
}

// redactURL keeps the API key out of transport error messages
func redactURL(err error, endpoint string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: endpoint, Err: urlErr.Err}
	}
	return err
}
