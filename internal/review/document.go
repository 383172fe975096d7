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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type nodeKind int

const (
	kindScalar nodeKind = iota
	kindObject
	kindArray
)

type member struct {
	key   string
	value node
}

// node is a decoded JSON value that remembers object key order.
type node struct {
	kind    nodeKind
	members []member
	items   []node
	scalar  any
}

// decodeDocument parses data into an ordered tree. Numbers are kept as
// written. A repeated object key keeps its first position and takes
// the last value.
func decodeDocument(data []byte) (node, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return node{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := readNode(dec)
	if err != nil {
		return node{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return node{}, errors.New("unexpected data after top-level value")
	}
	return n, nil
}

func readNode(dec *json.Decoder) (node, error) {
	tok, err := dec.Token()
	if err != nil {
		return node{}, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return node{kind: kindScalar, scalar: tok}, nil
	}

	switch delim {
	case '{':
		n := node{kind: kindObject}
		index := make(map[string]int)
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return node{}, err
			}
			key, ok := kt.(string)
			if !ok {
				return node{}, fmt.Errorf("unexpected object key %v", kt)
			}
			v, err := readNode(dec)
			if err != nil {
				return node{}, err
			}
			if i, seen := index[key]; seen {
				n.members[i].value = v
				continue
			}
			index[key] = len(n.members)
			n.members = append(n.members, member{key: key, value: v})
		}
		if _, err := dec.Token(); err != nil {
			return node{}, err
		}
		return n, nil

	case '[':
		n := node{kind: kindArray}
		for dec.More() {
			v, err := readNode(dec)
			if err != nil {
				return node{}, err
			}
			n.items = append(n.items, v)
		}
		if _, err := dec.Token(); err != nil {
			return node{}, err
		}
		return n, nil
	}

	return node{}, fmt.Errorf("unexpected delimiter %v", delim)
}

// encode writes n with one level of indent per depth. Strings are
// written as decoded, so escaped non-ASCII text comes out as UTF-8.
func (n node) encode(buf *bytes.Buffer, indent string, depth int) error {
	switch n.kind {
	case kindObject:
		if len(n.members) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, m := range n.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			if err := encodeScalar(buf, m.key); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := m.value.encode(buf, indent, depth+1); err != nil {
				return err
			}
		}
		newline(buf, indent, depth)
		buf.WriteByte('}')

	case kindArray:
		if len(n.items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			if err := item.encode(buf, indent, depth+1); err != nil {
				return err
			}
		}
		newline(buf, indent, depth)
		buf.WriteByte(']')

	default:
		return encodeScalar(buf, n.scalar)
	}
	return nil
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}

func encodeScalar(buf *bytes.Buffer, v any) error {
	if num, ok := v.(json.Number); ok {
		buf.WriteString(num.String())
		return nil
	}

	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
