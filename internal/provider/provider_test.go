package provider_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/alan-mat/reviewscout/internal/llm"
	"github.com/alan-mat/reviewscout/internal/provider"
)

type stubGenerator struct {
	conf provider.Config
}

func (g stubGenerator) Generate(ctx context.Context, req *llm.Request) (llm.Response, error) {
	return llm.TextMessage(req.Prompt), nil
}

func init() {
	provider.Register("stub", provider.Provider{
		New: func(ctx context.Context, conf provider.Config) (llm.Generator, error) {
			return stubGenerator{conf: conf}, nil
		},
		APIKeyEnv:    "STUB_API_KEY",
		DefaultModel: "stub-1",
	})
	provider.Register("broken", provider.Provider{
		New: func(ctx context.Context, conf provider.Config) (llm.Generator, error) {
			return nil, errors.New("no client")
		},
		APIKeyEnv: "BROKEN_API_KEY",
	})
}

func TestNew(t *testing.T) {
	g, err := provider.New(context.Background(), "stub", provider.Config{APIKey: "key"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	stub, ok := g.(stubGenerator)
	if !ok {
		t.Fatalf("expected stubGenerator, got %T", g)
	}
	if stub.conf.Model != "stub-1" {
		t.Errorf("expected default model 'stub-1', got '%s'", stub.conf.Model)
	}

	g, _ = provider.New(context.Background(), "stub", provider.Config{APIKey: "key", Model: "stub-2"})
	if m := g.(stubGenerator).conf.Model; m != "stub-2" {
		t.Errorf("expected configured model 'stub-2', got '%s'", m)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		conf     provider.Config
		target   error
	}{
		{
			name:     "unknown provider",
			provider: "nope",
			conf:     provider.Config{APIKey: "key"},
			target:   provider.ErrInvalidProviderType,
		},
		{
			name:     "missing key",
			provider: "stub",
			conf:     provider.Config{},
			target:   provider.ErrMissingAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.New(context.Background(), tt.provider, tt.conf)
			if !errors.Is(err, tt.target) {
				t.Errorf("expected error '%v', got '%v'", tt.target, err)
			}
		})
	}

	_, err := provider.New(context.Background(), "broken", provider.Config{APIKey: "key"})
	if err == nil {
		t.Error("expected factory error to be returned")
	}
}

func TestNewMissingKeyNamesVariable(t *testing.T) {
	tests := []struct {
		conf     provider.Config
		expected string
	}{
		{provider.Config{}, "STUB_API_KEY"},
		{provider.Config{APIKeyEnv: "MY_STUB_KEY"}, "MY_STUB_KEY"},
	}

	for _, tt := range tests {
		_, err := provider.New(context.Background(), "stub", tt.conf)
		if !errors.Is(err, provider.ErrMissingAPIKey) {
			t.Fatalf("expected ErrMissingAPIKey, got %v", err)
		}
		if !strings.Contains(err.Error(), tt.expected) {
			t.Errorf("expected error to name %s, got '%v'", tt.expected, err)
		}
	}
}

func TestRegisterTwice(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	provider.Register("stub", provider.Provider{})
}

func TestNames(t *testing.T) {
	names := provider.Names()
	for _, n := range []string{"stub", "broken"} {
		if !slices.Contains(names, n) {
			t.Errorf("expected '%s' in %v", n, names)
		}
	}
}
