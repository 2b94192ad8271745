package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/diogo/askgemini/internal/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		opts      []ClientOption
		wantErr   bool
		wantModel string
		wantURL   string
	}{
		{
			name:      "defaults",
			apiKey:    "k",
			wantModel: config.DefaultModel,
			wantURL:   "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent",
		},
		{
			name:      "custom model and base url",
			apiKey:    "k",
			opts:      []ClientOption{WithModel("gemini-2.5-pro"), WithBaseURL("http://localhost:8080/v1/")},
			wantModel: "gemini-2.5-pro",
			wantURL:   "http://localhost:8080/v1/models/gemini-2.5-pro:generateContent",
		},
		{
			name:      "blank options ignored",
			apiKey:    "k",
			opts:      []ClientOption{WithModel(""), WithBaseURL(""), WithHTTPClient(nil), WithLogger(nil)},
			wantModel: config.DefaultModel,
			wantURL:   "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent",
		},
		{
			name:    "empty key",
			apiKey:  "  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, tt.opts...)
			if tt.wantErr {
				if err == nil {
					t.Error("NewClient() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewClient() unexpected error: %v", err)
			}
			if client.Model() != tt.wantModel {
				t.Errorf("Model() = %s, want %s", client.Model(), tt.wantModel)
			}
			if client.Endpoint() != tt.wantURL {
				t.Errorf("Endpoint() = %s, want %s", client.Endpoint(), tt.wantURL)
			}
		})
	}
}

func TestRequestURLCarriesKey(t *testing.T) {
	client, _ := NewClient("a b&c")
	got := client.requestURL()
	if !strings.HasSuffix(got, "?key=a+b%26c") {
		t.Errorf("requestURL() = %s, want escaped key query", got)
	}
	if strings.Contains(client.Endpoint(), "key=") {
		t.Error("Endpoint() must not include the key")
	}
}

func TestWithTimeout(t *testing.T) {
	client, _ := NewClient("k", WithTimeout(5*time.Second))
	if client.httpClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", client.httpClient.Timeout)
	}

	client, _ = NewClient("k", WithTimeout(0))
	if client.httpClient.Timeout != 0 {
		t.Errorf("zero timeout should keep the transport default, got %v", client.httpClient.Timeout)
	}
}

func TestWithHTTPClient(t *testing.T) {
	hc := &http.Client{}
	client, _ := NewClient("k", WithHTTPClient(hc))
	if client.httpClient != hc {
		t.Error("WithHTTPClient() not applied")
	}
}

func TestNewGenerator(t *testing.T) {
	cfg := config.DefaultConfig()

	gen, err := NewGenerator(context.Background(), cfg, "k", nil)
	if err != nil {
		t.Fatalf("NewGenerator() returned error: %v", err)
	}
	if _, ok := gen.(*GeminiClient); !ok {
		t.Errorf("rest backend produced %T", gen)
	}

	cfg.Backend = config.BackendSDK
	gen, err = NewGenerator(context.Background(), cfg, "k", nil)
	if err != nil {
		t.Fatalf("NewGenerator(sdk) returned error: %v", err)
	}
	if _, ok := gen.(*SDKClient); !ok {
		t.Errorf("sdk backend produced %T", gen)
	}

	cfg.Backend = "carrier-pigeon"
	if _, err := NewGenerator(context.Background(), cfg, "k", nil); err == nil {
		t.Error("unknown backend should fail")
	}
}
