package gemini

import (
	"context"
	"fmt"

	"github.com/alan-mat/reviewscout/internal/llm"
	"github.com/alan-mat/reviewscout/internal/provider"
	"google.golang.org/genai"
)

const (
	Name         = "gemini"
	DefaultModel = "gemini-1.5-pro-latest"
	APIKeyEnv    = "GEMINI_API_KEY"
)

func init() {
	provider.Register(Name, provider.Provider{
		New: func(ctx context.Context, conf provider.Config) (llm.Generator, error) {
			p, err := New(ctx, conf)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		APIKeyEnv:    APIKeyEnv,
		DefaultModel: DefaultModel,
	})
}

var harmCategories = map[llm.HarmCategory]genai.HarmCategory{
	llm.HarmCategoryHarassment: genai.HarmCategoryHarassment,
	llm.HarmCategoryHateSpeech: genai.HarmCategoryHateSpeech,
}

type GeminiProvider struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, conf provider.Config) (*GeminiProvider, error) {
	cc := &genai.ClientConfig{
		APIKey:  conf.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if conf.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: conf.BaseURL}
	}

	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := conf.Model
	if model == "" {
		model = DefaultModel
	}

	return &GeminiProvider{
		client: c,
		model:  model,
	}, nil
}

func (p GeminiProvider) Generate(ctx context.Context, req *llm.Request) (llm.Response, error) {
	config := &genai.GenerateContentConfig{}

	if req.Search {
		config.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}

	for _, c := range req.SafetyOverrides {
		category, ok := harmCategories[c]
		if !ok {
			return nil, fmt.Errorf("unsupported harm category '%s'", c)
		}
		config.SafetySettings = append(config.SafetySettings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}

	modelName := p.model
	if req.ModelName != "" {
		modelName = req.ModelName
	}

	resp, err := p.client.Models.GenerateContent(ctx, modelName, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, err
	}

	return parseResponse(resp), nil
}

// GeminiResponse holds the first candidate of a generate call
// together with the pages its search grounding cited.
type GeminiResponse struct {
	message llm.Message
	sources []llm.Source
}

func (r GeminiResponse) Text() (string, error) {
	return r.message.Text()
}

func (r GeminiResponse) Sources() []llm.Source {
	return r.sources
}

func parseResponse(resp *genai.GenerateContentResponse) GeminiResponse {
	var r GeminiResponse
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return r
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			if part.Text == "" {
				r.message.Parts = append(r.message.Parts, llm.MessagePart{Type: llm.MessagePartTypeUnknown})
				continue
			}
			r.message.Parts = append(r.message.Parts, llm.NewTextPart(part.Text))
		}
	}

	if gm := candidate.GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			r.sources = append(r.sources, llm.Source{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}

	return r
}
