package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	apierrors "github.com/diogo/askgemini/internal/errors"
)

// SDKClient implements Generator on top of the official Gen AI SDK.
type SDKClient struct {
	clientConfig
	client *genai.Client
}

// Ensure SDKClient implements Generator
var _ Generator = (*SDKClient)(nil)

// NewSDKClient creates a client for the Gemini API backend of the SDK
func NewSDKClient(ctx context.Context, apiKey string, opts ...ClientOption) (*SDKClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key cannot be empty")
	}

	cfg := newClientConfig(opts)
	base, version := splitBaseURL(cfg.baseURL)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    base,
			APIVersion: version,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &SDKClient{clientConfig: cfg, client: client}, nil
}

// Model returns the model identifier
func (c *SDKClient) Model() string {
	return c.model
}

// Endpoint returns the generateContent URL the SDK will call
func (c *SDKClient) Endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
}

// GenerateContent sends prompt through the SDK and returns the first
// candidate's first text part.
func (c *SDKClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	endpoint := c.Endpoint()
	start := time.Now()
	c.logger.Debug("generate content (sdk)",
		zap.String("endpoint", endpoint),
		zap.Int("prompt_len", len(prompt)),
	)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		if apiErr, ok := asGenaiAPIError(err); ok {
			c.logger.Warn("generate content failed",
				zap.Int("status", apiErr.Code),
				zap.String("api_status", apiErr.Status),
				zap.Duration("elapsed", time.Since(start)),
			)
			return "", apierrors.NewAPIError(apiErr.Code, endpoint, apiErr.Message)
		}
		return "", apierrors.NewNetworkError("generate content", endpoint, err)
	}

	text, err := firstText(resp)
	if err != nil {
		return "", err
	}

	c.logger.Debug("generate content done",
		zap.Int("answer_len", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}

// asGenaiAPIError matches the SDK's API error whether it was returned by
// value or by pointer.
func asGenaiAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

// firstText mirrors PathCandidateText for typed SDK responses
func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", apierrors.NewParseError("no candidates in response", PathCandidateText)
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return "", apierrors.NewParseError("no content parts in first candidate", PathCandidateText)
	}
	// Function call parts decode with empty Text; thought parts are not answers.
	if part := cand.Content.Parts[0]; part.Text == "" || part.Thought {
		return "", apierrors.NewParseError("first part has no text", PathCandidateText)
	}
	return cand.Content.Parts[0].Text, nil
}

// splitBaseURL turns ".../v1beta" into the SDK's separate base URL and
// API version settings.
func splitBaseURL(baseURL string) (string, string) {
	baseURL = strings.TrimRight(baseURL, "/")
	idx := strings.LastIndex(baseURL, "/")
	if idx < 0 {
		return baseURL + "/", ""
	}
	last := baseURL[idx+1:]
	if strings.HasPrefix(last, "v1") {
		return baseURL[:idx+1], last
	}
	return baseURL + "/", ""
}
