package cohere

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/alan-mat/reviewscout/internal/llm"
	"github.com/alan-mat/reviewscout/internal/provider"
	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

const (
	Name         = "cohere"
	DefaultModel = "command-r-08-2024"
	APIKeyEnv    = "COHERE_API_KEY"

	webSearchConnector = "web-search"
)

func init() {
	provider.Register(Name, provider.Provider{
		New: func(ctx context.Context, conf provider.Config) (llm.Generator, error) {
			return New(conf), nil
		},
		APIKeyEnv:    APIKeyEnv,
		DefaultModel: DefaultModel,
	})
}

type CohereProvider struct {
	client *cohereclient.Client
	model  string
}

// New creates a provider. No client side timeout is set.
func New(conf provider.Config) *CohereProvider {
	httpClient := &http.Client{}
	if conf.BaseURL != "" {
		if u, err := url.Parse(conf.BaseURL); err == nil {
			httpClient.Transport = baseURLTransport{base: u, next: http.DefaultTransport}
		} else {
			slog.Warn("ignoring invalid cohere base url", "url", conf.BaseURL, "err", err)
		}
	}

	model := conf.Model
	if model == "" {
		model = DefaultModel
	}

	return &CohereProvider{
		client: cohereclient.NewClient(
			cohereclient.WithToken(conf.APIKey),
			cohereclient.WithHTTPClient(httpClient),
		),
		model: model,
	}
}

// baseURLTransport sends every request to base instead of the
// SDK's default host, keeping the request path.
type baseURLTransport struct {
	base *url.URL
	next http.RoundTripper
}

func (t baseURLTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = t.base.Scheme
	r.URL.Host = t.base.Host
	r.URL.Path = strings.TrimSuffix(t.base.Path, "/") + r.URL.Path
	r.Host = t.base.Host
	return t.next.RoundTrip(r)
}

func (p CohereProvider) Generate(ctx context.Context, req *llm.Request) (llm.Response, error) {
	if len(req.SafetyOverrides) > 0 {
		slog.Debug("cohere does not support per category safety overrides, ignoring", "overrides", req.SafetyOverrides)
	}

	model := p.model
	if req.ModelName != "" {
		model = req.ModelName
	}

	cohereReq := &cohere.ChatRequest{
		Message: req.Prompt,
		Model:   &model,
	}
	if req.Search {
		cohereReq.Connectors = []*cohere.ChatConnector{
			{Id: webSearchConnector},
		}
	}

	resp, err := p.client.Chat(ctx, cohereReq)
	if err != nil {
		return nil, err
	}

	return parseResponse(resp), nil
}

type CohereResponse struct {
	message llm.Message
	sources []llm.Source
}

func (r CohereResponse) Text() (string, error) {
	return r.message.Text()
}

func (r CohereResponse) Sources() []llm.Source {
	return r.sources
}

func parseResponse(resp *cohere.NonStreamedChatResponse) CohereResponse {
	var r CohereResponse
	if resp == nil {
		return r
	}

	if resp.Text != "" {
		r.message = llm.TextMessage(resp.Text)
	}

	seen := make(map[string]bool)
	for _, doc := range resp.Documents {
		uri := doc["url"]
		if uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true
		r.sources = append(r.sources, llm.Source{
			Title: doc["title"],
			URI:   uri,
		})
	}

	return r
}
