package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/diogo/askgemini/internal/config"
)

// clientConfig holds the settings shared by both backends
type clientConfig struct {
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption is a function that configures a client
type ClientOption func(*clientConfig)

// WithModel sets the model identifier used in the request path
func WithModel(model string) ClientOption {
	return func(c *clientConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL sets the API base URL, e.g. https://generativelanguage.googleapis.com/v1beta
func WithBaseURL(baseURL string) ClientOption {
	return func(c *clientConfig) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each request. Zero keeps the transport default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newClientConfig(opts []ClientOption) clientConfig {
	cfg := clientConfig{
		model:      config.DefaultModel,
		baseURL:    config.DefaultBaseURL,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// GeminiClient calls the generateContent REST endpoint with an API key
type GeminiClient struct {
	clientConfig
	apiKey string
}

// NewClient creates a new GeminiClient
func NewClient(apiKey string, opts ...ClientOption) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key cannot be empty")
	}

	return &GeminiClient{
		clientConfig: newClientConfig(opts),
		apiKey:       apiKey,
	}, nil
}

// Model returns the model identifier
func (c *GeminiClient) Model() string {
	return c.model
}

// Endpoint returns the generateContent URL without the credential
func (c *GeminiClient) Endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
}

// requestURL returns the endpoint with the API key query parameter
func (c *GeminiClient) requestURL() string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	return c.Endpoint() + "?" + q.Encode()
}
