package cohere

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/alan-mat/reviewscout/internal/llm"
	"github.com/alan-mat/reviewscout/internal/provider"
	cohere "github.com/cohere-ai/cohere-go/v2"
)

func TestGenerate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat" {
			t.Errorf("unexpected path '%s'", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"text":          `{"reviews":[]}`,
			"generation_id": "gen-1",
			"documents": []map[string]string{
				{"id": "web-search_0", "title": "Forum", "url": "https://forum.example/acme"},
				{"id": "web-search_1", "title": "Forum", "url": "https://forum.example/acme"},
			},
		})
	}))
	defer srv.Close()

	p := New(provider.Config{APIKey: "test-key", BaseURL: srv.URL})
	resp, err := p.Generate(context.Background(), llm.FromPrompt("Find reviews for ACME"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if body["message"] != "Find reviews for ACME" {
		t.Errorf("expected prompt as message, got '%v'", body["message"])
	}
	if body["model"] != DefaultModel {
		t.Errorf("expected model '%s', got '%v'", DefaultModel, body["model"])
	}
	connectors, _ := body["connectors"].([]any)
	if len(connectors) != 1 {
		t.Fatalf("expected one connector, got %v", body["connectors"])
	}
	if c, _ := connectors[0].(map[string]any); c["id"] != webSearchConnector {
		t.Errorf("expected '%s' connector, got %v", webSearchConnector, connectors[0])
	}

	text, err := resp.Text()
	if err != nil || text != `{"reviews":[]}` {
		t.Errorf("unexpected text '%s' (err %v)", text, err)
	}

	expected := []llm.Source{{Title: "Forum", URI: "https://forum.example/acme"}}
	if got := resp.(llm.SourceProvider).Sources(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected sources %v, got %v", expected, got)
	}
}

func TestParseResponseEmpty(t *testing.T) {
	for _, resp := range []*cohere.NonStreamedChatResponse{nil, {}} {
		if _, err := parseResponse(resp).Text(); !errors.Is(err, llm.ErrNoText) {
			t.Errorf("expected ErrNoText, got %v", err)
		}
	}
}
