package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/alan-mat/reviewscout/internal/llm"
	"github.com/alan-mat/reviewscout/internal/registry"
)

var (
	ErrInvalidProviderType = errors.New("no provider found for given name")
	ErrMissingAPIKey       = errors.New("api key is not set")
)

// Config holds the explicit credentials and endpoint settings
// a provider is constructed with.
type Config struct {
	APIKey string
	// APIKeyEnv names the variable APIKey was read from. It only
	// shapes error messages and defaults to the provider's variable.
	APIKeyEnv string
	// BaseURL overrides the SDK's default endpoint when set.
	BaseURL string
	// Model is used when a request does not name one.
	Model string
}

type Factory func(ctx context.Context, conf Config) (llm.Generator, error)

// Provider describes a registered model backend.
type Provider struct {
	New          Factory
	APIKeyEnv    string
	DefaultModel string
}

var providers = registry.New[string, Provider]()

// Register makes a provider available under name.
// Provider packages call it from their init function.
// It panics if name is registered twice.
func Register(name string, p Provider) {
	if providers.Exists(name) {
		panic(fmt.Sprintf("provider: Register called twice for '%s'", name))
	}
	providers.Register(name, p)
}

func Lookup(name string) (Provider, error) {
	p, ok := providers.Get(name)
	if !ok {
		return Provider{}, fmt.Errorf("%w: '%s' (available: %v)", ErrInvalidProviderType, name, Names())
	}
	return p, nil
}

// Names lists registered providers in registration order.
func Names() []string {
	return providers.Keys()
}

// New constructs the generator registered under name. An empty
// conf.Model falls back to the provider's default model.
func New(ctx context.Context, name string, conf Config) (llm.Generator, error) {
	p, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	if conf.APIKey == "" {
		env := conf.APIKeyEnv
		if env == "" {
			env = p.APIKeyEnv
		}
		return nil, fmt.Errorf("%w: provider '%s' reads it from %s", ErrMissingAPIKey, name, env)
	}

	if conf.Model == "" {
		conf.Model = p.DefaultModel
	}

	g, err := p.New(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider '%s': %w", name, err)
	}
	return g, nil
}
