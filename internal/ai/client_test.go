package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestOpenAIClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("expected /v1/chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected Authorization=Bearer test-key, got %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type=application/json, got %s", r.Header.Get("Content-Type"))
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("expected default model gpt-4o-mini, got %s", req.Model)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %+v", req.ResponseFormat)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(req.Messages))
		}
		if req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected roles %s, %s", req.Messages[0].Role, req.Messages[1].Role)
		}
		if req.Messages[1].Content != "Learn JavaScript" {
			t.Errorf("expected user content to be the goal, got %q", req.Messages[1].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse{
			ID: "chatcmpl-123",
			Choices: []chatChoice{{
				Message:      chatMessage{Role: "assistant", Content: `{"title":"x"}`},
				FinishReason: "stop",
			}},
		})
	}))
	defer server.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL + "/"})

	got, err := c.Complete(context.Background(), decompositionRequest("Learn JavaScript"))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != `{"title":"x"}` {
		t.Errorf("expected first choice content, got %q", got)
	}
}

func TestOpenAIClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "api error message",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			wantErr: "API error (401): Incorrect API key provided",
		},
		{
			name:    "plain error body",
			status:  http.StatusBadGateway,
			body:    "upstream unavailable",
			wantErr: "API error (502): upstream unavailable",
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"id":"chatcmpl-1","choices":[]}`,
			wantErr: "no choices",
		},
		{
			name:    "undecodable body",
			status:  http.StatusOK,
			body:    "not json",
			wantErr: "decoding response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewOpenAIClient(OpenAIConfig{APIKey: "k", BaseURL: server.URL})
			_, err := c.Complete(context.Background(), decompositionRequest("goal"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOpenAIClientTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := NewOpenAIClient(OpenAIConfig{
		APIKey:  "k",
		BaseURL: server.URL,
		Timeout: 20 * time.Millisecond,
	})

	_, err := c.Complete(context.Background(), decompositionRequest("goal"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestNewOpenAIClientDefaults(t *testing.T) {
	c := NewOpenAIClient(OpenAIConfig{})
	if c.Model() != "gpt-4o-mini" {
		t.Errorf("expected default model, got %s", c.Model())
	}
	if c.config.BaseURL != "https://api.openai.com" {
		t.Errorf("expected default base URL, got %s", c.config.BaseURL)
	}
	if c.config.HTTPClient == nil {
		t.Error("expected an HTTP client")
	}
}
