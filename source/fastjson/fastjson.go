// Package fastjson tokenizes JSON input with github.com/valyala/fastjson.
//
// fastjson parses the whole document up front; the token source then replays
// the parsed value, so malformed input fails on the first NextToken call.
package fastjson

import (
	"io"

	"github.com/valyala/fastjson"

	eng "github.com/reoring/lightjson/internal/engine"
)

// Name identifies this driver in configuration.
const Name = "fastjson"

type replaySource struct {
	toks []eng.Token
	pos  int
	err  error
}

// NewBytes parses b and returns an engine.TokenSource over its tokens.
// Location is unknown (-1).
func NewBytes(b []byte) eng.TokenSource {
	if err := fastjson.ValidateBytes(b); err != nil {
		return &replaySource{err: err}
	}
	var p fastjson.Parser
	v, err := p.ParseBytes(b)
	if err != nil {
		return &replaySource{err: err}
	}
	s := &replaySource{}
	s.emit(v)
	return s
}

func (s *replaySource) emit(v *fastjson.Value) {
	switch v.Type() {
	case fastjson.TypeObject:
		o, _ := v.Object()
		s.toks = append(s.toks, eng.Token{Kind: eng.KindBeginObject, Offset: -1})
		o.Visit(func(key []byte, m *fastjson.Value) {
			s.toks = append(s.toks, eng.Token{Kind: eng.KindKey, String: string(key), Offset: -1})
			s.emit(m)
		})
		s.toks = append(s.toks, eng.Token{Kind: eng.KindEndObject, Offset: -1})
	case fastjson.TypeArray:
		elems, _ := v.Array()
		s.toks = append(s.toks, eng.Token{Kind: eng.KindBeginArray, Offset: -1})
		for _, e := range elems {
			s.emit(e)
		}
		s.toks = append(s.toks, eng.Token{Kind: eng.KindEndArray, Offset: -1})
	case fastjson.TypeString:
		str, _ := v.StringBytes()
		s.toks = append(s.toks, eng.Token{Kind: eng.KindString, String: string(str), Offset: -1})
	case fastjson.TypeNumber:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindNumber, Number: v.String(), Offset: -1})
	case fastjson.TypeTrue, fastjson.TypeFalse:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindBool, Bool: v.Type() == fastjson.TypeTrue, Offset: -1})
	default:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindNull, Offset: -1})
	}
}

func (s *replaySource) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *replaySource) Location() int64 { return -1 }
