package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alan-mat/reviewscout/internal/llm"
	"github.com/alan-mat/reviewscout/internal/provider"
	"github.com/alan-mat/reviewscout/internal/provider/openai"
)

func newServer(t *testing.T, content string, got *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path '%s'", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  openai.DefaultModel,
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": content},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerate(t *testing.T) {
	var body map[string]any
	srv := newServer(t, "```json\n{}\n```", &body)
	defer srv.Close()

	p := openai.New(provider.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	resp, err := p.Generate(context.Background(), llm.FromPrompt("Find reviews for ACME"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if body["model"] != openai.DefaultModel {
		t.Errorf("expected model '%s', got '%v'", openai.DefaultModel, body["model"])
	}

	text, err := resp.Text()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if text != "```json\n{}\n```" {
		t.Errorf("unexpected text '%s'", text)
	}
}

func TestGenerateModelOverride(t *testing.T) {
	var body map[string]any
	srv := newServer(t, "{}", &body)
	defer srv.Close()

	p := openai.New(provider.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1", Model: "gpt-4o-mini-search-preview"})
	req := llm.FromPrompt("x")
	req.ModelName = "custom"
	if _, err := p.Generate(context.Background(), req); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if body["model"] != "custom" {
		t.Errorf("expected request model to win, got '%v'", body["model"])
	}
}

func TestGenerateEmptyContent(t *testing.T) {
	var body map[string]any
	srv := newServer(t, "", &body)
	defer srv.Close()

	p := openai.New(provider.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	resp, err := p.Generate(context.Background(), llm.FromPrompt("x"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := resp.Text(); !errors.Is(err, llm.ErrNoText) {
		t.Errorf("expected ErrNoText, got %v", err)
	}
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	p := openai.New(provider.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	if _, err := p.Generate(context.Background(), llm.FromPrompt("x")); err == nil {
		t.Error("expected api error to be returned")
	}
}
