package lightjson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/lightjson/i18n"
	"github.com/reoring/lightjson/internal/bind"
	eng "github.com/reoring/lightjson/internal/engine"
)

// Issue codes
const (
	// Root failures: Decode returns them as its error.
	CodeEmptyInput      = "empty_input"
	CodeParseError      = "parse_error"
	CodeNotInstantiable = bind.CodeNotInstantiable
	CodeTruncated       = "truncated"
	CodeDuplicateKey    = "duplicate_key"

	// Field failures: reported in Result.Issues, binding continues.
	CodeRequired    = bind.CodeRequired
	CodeInvalidType = bind.CodeInvalidType
	CodeOverflow    = bind.CodeOverflow
	CodeTooLong     = bind.CodeTooLong

	// CodeDigestUnavailable is a warning: the value was bound but not cached.
	CodeDigestUnavailable = "digest_unavailable"
)

// Issue describes one problem met while decoding.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a list of problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is sees through Issues.
func (iss Issues) Unwrap() []error {
	var errs []error
	for _, it := range iss {
		if it.Cause != nil {
			errs = append(errs, it.Cause)
		}
	}
	return errs
}

// Has reports whether any issue carries code.
func (iss Issues) Has(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func newIssue(code, path string, cause error, data map[string]string) Issue {
	if path == "" {
		path = "/"
	}
	return Issue{Path: path, Code: code, Message: i18n.T(code, data), Cause: cause}
}

func singleIssue(code string, cause error) Issues {
	return Issues{newIssue(code, "/", cause, nil)}
}

// toIssues maps parser and enforcement errors to Issues; anything unknown
// is a parse_error at the root.
func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		it := newIssue(ie.Code, ie.Path, err, nil)
		if ie.Message != "" {
			it.Message = ie.Message
		}
		return Issues{it}
	}
	return singleIssue(CodeParseError, err)
}

func fromBind(in []bind.Issue) Issues {
	if len(in) == 0 {
		return nil
	}
	out := make(Issues, len(in))
	for i, it := range in {
		out[i] = Issue{Path: it.Path, Code: it.Code, Message: it.Message, Cause: it.Cause}
	}
	return out
}
