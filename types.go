package lightjson

import (
	"fmt"
	"strings"

	eng "github.com/reoring/lightjson/internal/engine"
)

// Severity expresses how a parser reacts to a questionable input.
type Severity int

const (
	Ignore Severity = iota
	Warn            // Report in Result.Issues and continue.
	Error           // Fail the decode.
)

func (s Severity) String() string {
	switch s {
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "ignore"
	}
}

// ParseSeverity accepts "ignore", "warn" and "error" (case-insensitive).
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return Ignore, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return Ignore, fmt.Errorf("lightjson: unknown severity %q", s)
}

// ParseOpt bundles parsing limits. The zero value parses without limits and
// keeps the last of duplicated keys.
type ParseOpt struct {
	OnDuplicateKey Severity
	MaxDepth       int   // Maximum container nesting; 0 disables the check.
	MaxBytes       int64 // Maximum input size; 0 disables the check.
}

// fingerprint distinguishes cache entries produced under different limits.
func (o ParseOpt) fingerprint() string {
	return fmt.Sprintf("%d/%d/%d:", o.OnDuplicateKey, o.MaxDepth, o.MaxBytes)
}

func (o ParseOpt) enforce(sink func(eng.SimpleIssue)) eng.EnforceOptions {
	eo := eng.EnforceOptions{MaxDepth: o.MaxDepth, MaxBytes: o.MaxBytes, IssueSink: sink}
	switch o.OnDuplicateKey {
	case Warn:
		eo.OnDuplicate = eng.DupWarn
	case Error:
		eo.OnDuplicate = eng.DupError
	}
	return eo
}
