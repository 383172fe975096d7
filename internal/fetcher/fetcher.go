// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

// Package fetcher runs a single review search: it builds the prompt,
// invokes the model once and interprets the answer.
package fetcher

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alan-mat/reviewscout/internal/llm"
	"github.com/alan-mat/reviewscout/internal/prompt"
	"github.com/alan-mat/reviewscout/internal/review"
)

// DefaultSafetyOverrides are relaxed so the model may quote
// hostile reviews verbatim.
var DefaultSafetyOverrides = []llm.HarmCategory{
	llm.HarmCategoryHarassment,
	llm.HarmCategoryHateSpeech,
}

// Outcome is the product of one fetch.
type Outcome struct {
	Topic   string
	Result  review.Result
	Sources []llm.Source
	// Problems holds validation findings when validation is enabled.
	// They never change Result.
	Problems error
}

type Fetcher struct {
	generator llm.Generator
	logger    *slog.Logger

	model    string
	validate bool
}

type Option func(*Fetcher)

// WithModel sets the model name sent with the request,
// overriding the provider's default.
func WithModel(name string) Option {
	return func(f *Fetcher) {
		f.model = name
	}
}

// WithValidation decodes successful results into [review.SearchResult]
// and reports schema problems in [Outcome.Problems].
func WithValidation(enabled bool) Option {
	return func(f *Fetcher) {
		f.validate = enabled
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

func New(g llm.Generator, opts ...Option) *Fetcher {
	f := &Fetcher{
		generator: g,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch searches negative reviews about topic. A model response that
// cannot be parsed is not an error, it is reported through the returned
// result. Errors are [ErrEmptyTopic] or an [InvocationError].
func (f *Fetcher) Fetch(ctx context.Context, topic string) (*Outcome, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrEmptyTopic
	}

	req := llm.FromPrompt(prompt.Build(topic))
	req.ModelName = f.model
	req.SafetyOverrides = DefaultSafetyOverrides

	f.logger.Info("starting review search", "topic", topic, "model", f.model)
	resp, err := f.generator.Generate(ctx, req)
	if err != nil {
		return nil, InvocationError{Topic: topic, Err: err}
	}
	f.logger.Info("search finished, processing result", "topic", topic)

	out := &Outcome{
		Topic:  topic,
		Result: review.Interpret(resp),
	}

	if out.Result.Failed() {
		f.logger.Warn("model response could not be parsed",
			"topic", topic,
			"err", out.Result.Err(),
			"response", out.Result.Failure().RawResponse,
		)
	}

	if sp, ok := resp.(llm.SourceProvider); ok {
		out.Sources = sp.Sources()
	}

	if f.validate && !out.Result.Failed() {
		sr, err := review.Validate(out.Result)
		if err != nil {
			out.Problems = err
			f.logger.Warn("result does not match the expected schema", "topic", topic, "err", err)
		}
		if sr != nil {
			f.logger.Debug("validated result", "reviews", len(sr.Reviews), "total_count", sr.TotalCount)
		}
	}

	return out, nil
}
