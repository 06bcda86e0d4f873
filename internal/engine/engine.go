package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/reoring/lightjson/jsontree"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData reports content after the first complete JSON value.
var ErrTrailingData = errors.New("engine: trailing data after top-level value")

// BuildTree consumes exactly one JSON value from src and returns it as a tree.
// Anything but EOF after the value is an error.
func BuildTree(src TokenSource) (jsontree.Value, error) {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return jsontree.Value{}, io.ErrUnexpectedEOF
		}
		return jsontree.Value{}, err
	}
	v, err := buildValue(src, tok)
	if err != nil {
		return jsontree.Value{}, err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return jsontree.Value{}, err
		}
		return jsontree.Value{}, ErrTrailingData
	}
	return v, nil
}

func buildValue(src TokenSource, tok Token) (jsontree.Value, error) {
	switch tok.Kind {
	case KindBeginObject:
		return buildObject(src)
	case KindBeginArray:
		return buildArray(src)
	case KindString:
		return jsontree.String(tok.String), nil
	case KindNumber:
		if !validNumber(tok.Number) {
			return jsontree.Value{}, fmt.Errorf("engine: invalid number %q at offset %d", tok.Number, tok.Offset)
		}
		return jsontree.Number(json.Number(tok.Number)), nil
	case KindBool:
		return jsontree.Bool(tok.Bool), nil
	case KindNull:
		return jsontree.Null(), nil
	default:
		return jsontree.Value{}, fmt.Errorf("engine: unexpected token kind %d at offset %d", tok.Kind, tok.Offset)
	}
}

func buildObject(src TokenSource) (jsontree.Value, error) {
	var b jsontree.ObjectBuilder
	for {
		tok, err := src.NextToken()
		if err != nil {
			return jsontree.Value{}, unexpectedEOF(err)
		}
		if tok.Kind == KindEndObject {
			return b.Build(), nil
		}
		if tok.Kind != KindKey {
			return jsontree.Value{}, fmt.Errorf("engine: expected object key at offset %d", tok.Offset)
		}
		vt, err := src.NextToken()
		if err != nil {
			return jsontree.Value{}, unexpectedEOF(err)
		}
		v, err := buildValue(src, vt)
		if err != nil {
			return jsontree.Value{}, err
		}
		b.Set(tok.String, v)
	}
}

func buildArray(src TokenSource) (jsontree.Value, error) {
	elems := []jsontree.Value{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return jsontree.Value{}, unexpectedEOF(err)
		}
		if tok.Kind == KindEndArray {
			return jsontree.Array(elems), nil
		}
		v, err := buildValue(src, tok)
		if err != nil {
			return jsontree.Value{}, err
		}
		elems = append(elems, v)
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// validNumber reports whether s is a JSON number literal:
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func validNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		i = digits(s, i)
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		j := digits(s, i+1)
		if j == i+1 {
			return false
		}
		i = j
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		j := digits(s, i)
		if j == i {
			return false
		}
		i = j
	}
	return i == len(s)
}

func digits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}
