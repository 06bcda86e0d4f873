// Package gojson tokenizes JSON input with goccy/go-json for the binder.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	json "github.com/goccy/go-json"

	eng "github.com/reoring/lightjson/internal/engine"
)

// Name identifies this driver in configuration.
const Name = "gojson"

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// goSource does not track byte offsets; Location always reports -1.
type goSource struct {
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
// The stream is not validated; missing or stray separators go unnoticed.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &goSource{dec: dec, lastOffset: -1}
}

// ErrInvalid reports input that go-json's validator rejects.
var ErrInvalid = errors.New("gojson: invalid JSON")

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
// Decoder.Token does not check separators, so b is validated up front.
func NewBytes(b []byte) eng.TokenSource {
	if !json.Valid(b) {
		return errSource{ErrInvalid}
	}
	return NewReader(bytes.NewReader(b))
}

type errSource struct{ err error }

func (s errSource) NextToken() (eng.Token, error) { return eng.Token{}, s.err }

func (errSource) Location() int64 { return -1 }

func (s *goSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: s.lastOffset}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject, Offset: s.lastOffset}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: s.lastOffset}, nil
		default:
			s.pop()
			return eng.Token{Kind: eng.KindEndArray, Offset: s.lastOffset}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v, Offset: s.lastOffset}, nil
			}
		}
		s.scalarDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: s.lastOffset}, nil
	case bool:
		s.scalarDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: s.lastOffset}, nil
	case json.Number:
		s.scalarDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: s.lastOffset}, nil
	case float64:
		s.scalarDone()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: s.lastOffset}, nil
	}
	s.scalarDone()
	return eng.Token{Kind: eng.KindNull, Offset: s.lastOffset}, nil
}

func (s *goSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.scalarDone()
}

// scalarDone marks the enclosing object as waiting for its next key.
func (s *goSource) scalarDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject {
			top.expectingKey = true
		}
	}
}

func (s *goSource) Location() int64 { return s.lastOffset }
