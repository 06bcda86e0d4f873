package engine

import (
	"strconv"
	"strings"
)

// EnforceOptions controls runtime enforcement while tokens are consumed.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn).
	IssueSink func(SimpleIssue)
}

// Enabled reports whether any enforcement is configured.
func (o EnforceOptions) Enabled() bool {
	return o.OnDuplicate != DupIgnore || o.MaxDepth > 0 || o.MaxBytes > 0
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind      containerKind
	path      string
	keys      map[string]struct{}
	key       string // pending member key; empty between members
	nextIndex int
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth and maximum consumed bytes. When opt enables nothing,
// inner is returned unchanged.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if !opt.Enabled() {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		path := e.valuePath()
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f.kind = kindObject
			if e.opt.OnDuplicate != DupIgnore {
				f.keys = make(map[string]struct{})
			}
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: "parse_error", Path: pointerOrRoot(path), Message: "max depth exceeded"}}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.keys != nil {
				if _, dup := top.keys[tok.String]; dup {
					si := SimpleIssue{
						Code:    "duplicate_key",
						Path:    joinPointer(top.path, tok.String),
						Message: "key '" + tok.String + "' duplicated",
					}
					if e.opt.OnDuplicate == DupError {
						return Token{}, IssueError{si}
					}
					if e.opt.IssueSink != nil {
						e.opt.IssueSink(si)
					}
				}
				top.keys[tok.String] = struct{}{}
			}
			top.key = tok.String
		}
	default:
		e.valuePath()
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off > e.opt.MaxBytes {
			return Token{}, IssueError{SimpleIssue{Code: "truncated", Path: "/", Message: "max bytes exceeded"}}
		}
	}
	return tok, nil
}

// valuePath returns the pointer of the value starting at the current token
// and advances array indices.
func (e *enforcingTokenSource) valuePath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.kind == kindArray {
		p := joinPointer(top.path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return p
	}
	return joinPointer(top.path, top.key)
}

// valueDone closes the pending member of the enclosing object, if any.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject {
			top.key = ""
		}
	}
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
