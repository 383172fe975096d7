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

// Package review interprets model output as a review search result
// and writes it to disk.
package review

import (
	"bytes"
	"encoding/json"
)

// ParseFailureMessage is the error text stored when the model
// output could not be parsed.
const ParseFailureMessage = "Failed to parse JSON from model."

// ReviewRecord is a single review as requested from the model.
// Only Review is expected to be non-empty.
type ReviewRecord struct {
	Name   string `json:"name"`
	Review string `json:"review" validate:"required"`
	City   string `json:"city"`
	Date   string `json:"date"`
}

// SearchResult is the payload shape the model is asked to return.
type SearchResult struct {
	Reviews     []ReviewRecord `json:"reviews" validate:"required,dive"`
	TotalCount  int            `json:"total_count" validate:"gte=0"`
	SearchTopic string         `json:"search_topic" validate:"required"`
}

// ParseFailure replaces the payload when the model output was not JSON.
type ParseFailure struct {
	Error       string `json:"error"`
	RawResponse string `json:"raw_response"`
}

// Result is either the model's JSON payload or a [ParseFailure].
type Result struct {
	payload json.RawMessage
	doc     node
	failure *ParseFailure
	cause   error
}

func NewFailure(raw string) Result {
	return Result{
		failure: &ParseFailure{
			Error:       ParseFailureMessage,
			RawResponse: raw,
		},
	}
}

func (r Result) Failed() bool {
	return r.failure != nil
}

// Failure returns the parse failure, or nil if the result holds a payload.
func (r Result) Failure() *ParseFailure {
	return r.failure
}

// Err reports why the result is a failure. It is nil for a payload.
func (r Result) Err() error {
	if r.failure == nil {
		return nil
	}
	if r.cause == nil {
		return ErrInvalidJSON
	}
	return r.cause
}

// Payload returns the model's JSON as returned, or nil for a failure.
func (r Result) Payload() json.RawMessage {
	return r.payload
}

// Indent renders the result as JSON indented with indent. Keys keep
// the model's order, a repeated key keeps its last value and
// non-ASCII text is written as UTF-8 rather than escaped.
func (r Result) Indent(indent string) ([]byte, error) {
	var buf bytes.Buffer

	if r.failure == nil {
		if err := r.doc.encode(&buf, indent, 0); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(r.failure); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
