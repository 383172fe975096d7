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

package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrNoText is returned by [Response.Text] when the model
// produced no text payload at all.
var ErrNoText = errors.New("response contains no text")

// Generator sends a single request to a hosted model and returns its response.
type Generator interface {
	Generate(ctx context.Context, req *Request) (Response, error)
}

// Response is the narrow view of a model response used by the review
// interpreter. Implementations return [ErrNoText] if there is nothing to read.
type Response interface {
	Text() (string, error)
}

// SourceProvider is implemented by responses that expose the web pages
// the model grounded its answer on.
type SourceProvider interface {
	Sources() []Source
}

// Source is a web page cited by the model.
type Source struct {
	Title string
	URI   string
}

// HarmCategory names a content-safety category whose blocking
// may be relaxed for a request.
type HarmCategory string

const (
	HarmCategoryHarassment HarmCategory = "harassment"
	HarmCategoryHateSpeech HarmCategory = "hate_speech"
)

// Request contains everything a [Generator] needs for one call.
type Request struct {
	// Required
	Prompt string

	// Optional params
	ModelName string
	// Search enables the provider's web search capability.
	Search bool
	// SafetyOverrides lists categories for which blocking is turned off.
	SafetyOverrides []HarmCategory
}

// FromPrompt returns a request for prompt with web search enabled
// and no safety overrides.
func FromPrompt(prompt string) *Request {
	return &Request{
		Prompt: prompt,
		Search: true,
	}
}

// Message contains a single model message, consisting of many parts.
type Message struct {
	Parts []MessagePart
}

// TextMessage is a helper function that returns a Message
// with a single text part.
func TextMessage(text string) Message {
	return Message{
		Parts: []MessagePart{NewTextPart(text)},
	}
}

// Text joins all text parts of m. It returns [ErrNoText]
// if m has no text part.
func (m Message) Text() (string, error) {
	var (
		sb    strings.Builder
		found bool
	)
	for _, p := range m.Parts {
		t, err := p.Text()
		if err != nil {
			continue
		}
		found = true
		sb.WriteString(t)
	}
	if !found {
		return "", ErrNoText
	}
	return sb.String(), nil
}

// MessagePart is a single part of a model message.
type MessagePart struct {
	Type MessagePartType
	text *string
}

// NewTextPart creates a new [MessagePart] containing a text payload.
func NewTextPart(text string) MessagePart {
	return MessagePart{
		Type: MessagePartTypeText,
		text: &text,
	}
}

// Text returns the text payload.
// Error returns not-nil if the part's type is not text,
// or if the text payload is nil.
func (p MessagePart) Text() (string, error) {
	if p.Type != MessagePartTypeText {
		return "", MismatchMessagePartTypeError{
			Wanted: MessagePartTypeText,
			Real:   p.Type,
		}
	}

	if p.text == nil {
		return "", NilPayloadError{Type: MessagePartTypeText}
	}

	return *p.text, nil
}

// MessagePartType specifies the payload type of a message part.
type MessagePartType string

const (
	MessagePartTypeText    MessagePartType = "text"
	MessagePartTypeUnknown MessagePartType = "unknown"
)
