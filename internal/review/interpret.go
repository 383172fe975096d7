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

package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alan-mat/reviewscout/internal/llm"
)

// ErrInvalidJSON is reported by [Result.Err] when the model text,
// once unfenced, is not a single JSON value.
var ErrInvalidJSON = errors.New("model returned invalid JSON")

var (
	// fencedBlock matches a payload wrapped in a single code fence. The
	// closing fence must end the text, so fences inside the payload stay.
	fencedBlock = regexp.MustCompile("(?s)^```[\\w+-]*[ \\t]*\\r?\\n?(.*?)\\r?\\n?[ \\t]*```$")
	// openFence matches the opening line of a fence that was never closed.
	openFence = regexp.MustCompile("^```[\\w+-]*[ \\t]*\\r?\\n")
	// closeFence matches a closing fence left without its opening line.
	closeFence = regexp.MustCompile("\\r?\\n?[ \\t]*```$")
)

// StripFences trims text and removes a Markdown code fence that wraps
// all of it, or the lone opening or closing line of one. Other text is
// returned trimmed.
func StripFences(text string) string {
	text = strings.TrimSpace(text)

	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	if loc := openFence.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[loc[1]:])
	}

	if loc := closeFence.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[:loc[0]])
	}

	return text
}

// Interpret reads the text of resp and parses it as JSON. It never
// fails: a response without text or with malformed JSON yields a
// [ParseFailure] result whose Err tells which.
func Interpret(resp llm.Response) Result {
	if resp == nil {
		r := NewFailure("")
		r.cause = llm.ErrNoText
		return r
	}

	text, err := resp.Text()
	if err != nil {
		r := NewFailure("")
		r.cause = err
		return r
	}

	cleaned := StripFences(text)
	doc, err := decodeDocument([]byte(cleaned))
	if err != nil {
		r := NewFailure(text)
		r.cause = fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		return r
	}

	return Result{payload: json.RawMessage(cleaned), doc: doc}
}
