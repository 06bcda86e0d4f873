package lightjson

import (
	"fmt"
	"sync"

	eng "github.com/reoring/lightjson/internal/engine"
	"github.com/reoring/lightjson/jsontree"
	fastjsonsrc "github.com/reoring/lightjson/source/fastjson"
	gojsonsrc "github.com/reoring/lightjson/source/gojson"
	jsonsrc "github.com/reoring/lightjson/source/json"
	yamlsrc "github.com/reoring/lightjson/source/yaml"
)

// Parser turns raw input into a JSON value tree via a pluggable SPI.
// Non-fatal findings (duplicate keys under Warn) are returned as warnings;
// fatal ones as an Issues error.
type Parser interface {
	Name() string
	Parse(data []byte, opt ParseOpt) (v jsontree.Value, warnings Issues, err error)
}

// tokenParser drives a token source through the enforcement wrapper and
// builds the tree.
type tokenParser struct {
	name string
	open func([]byte) eng.TokenSource
}

func (p tokenParser) Name() string { return p.name }

func (p tokenParser) Parse(data []byte, opt ParseOpt) (jsontree.Value, Issues, error) {
	if err := checkSize(data, opt); err != nil {
		return jsontree.Value{}, nil, err
	}
	var warnings Issues
	sink := func(si eng.SimpleIssue) {
		warnings = append(warnings, Issue{Path: si.Path, Code: si.Code, Message: si.Message})
	}
	src := eng.WrapWithEnforcement(p.open(data), opt.enforce(sink))
	v, err := eng.BuildTree(src)
	if err != nil {
		return jsontree.Value{}, warnings, toIssues(err)
	}
	return v, warnings, nil
}

type yamlParser struct{}

func (yamlParser) Name() string { return yamlsrc.Name }

// Parse converts the first YAML document. yaml.v3 rejects duplicate mapping
// keys itself, so OnDuplicateKey has no effect here.
func (yamlParser) Parse(data []byte, opt ParseOpt) (jsontree.Value, Issues, error) {
	if err := checkSize(data, opt); err != nil {
		return jsontree.Value{}, nil, err
	}
	v, err := yamlsrc.Decode(data)
	if err != nil {
		return jsontree.Value{}, nil, toIssues(err)
	}
	if opt.MaxDepth > 0 && depth(v) > opt.MaxDepth {
		return jsontree.Value{}, nil, Issues{{Path: "/", Code: CodeParseError, Message: "max depth exceeded"}}
	}
	return v, nil, nil
}

func checkSize(data []byte, opt ParseOpt) error {
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return Issues{{Path: "/", Code: CodeTruncated, Message: "max bytes exceeded"}}
	}
	return nil
}

func depth(v jsontree.Value) int {
	var inner int
	switch v.Kind() {
	case jsontree.KindObject:
		for _, k := range v.Keys() {
			m, _ := v.Get(k)
			inner = max(inner, depth(m))
		}
	case jsontree.KindArray:
		elems, _ := v.Elems()
		for _, e := range elems {
			inner = max(inner, depth(e))
		}
	default:
		return 0
	}
	return inner + 1
}

// JSONParser parses with encoding/json.
func JSONParser() Parser { return tokenParser{name: jsonsrc.Name, open: jsonsrc.NewBytes} }

// GoJSONParser parses with github.com/goccy/go-json.
func GoJSONParser() Parser { return tokenParser{name: gojsonsrc.Name, open: gojsonsrc.NewBytes} }

// FastJSONParser parses with github.com/valyala/fastjson.
func FastJSONParser() Parser { return tokenParser{name: fastjsonsrc.Name, open: fastjsonsrc.NewBytes} }

// YAMLParser parses YAML documents restricted to the JSON data model.
func YAMLParser() Parser { return yamlParser{} }

// ParserByName returns the parser registered under name ("json", "gojson",
// "fastjson" or "yaml").
func ParserByName(name string) (Parser, error) {
	switch name {
	case jsonsrc.Name:
		return JSONParser(), nil
	case gojsonsrc.Name, "":
		return GoJSONParser(), nil
	case fastjsonsrc.Name:
		return FastJSONParser(), nil
	case yamlsrc.Name:
		return YAMLParser(), nil
	}
	return nil, fmt.Errorf("lightjson: unknown parser %q", name)
}

var (
	parserMu      sync.RWMutex
	defaultParser = GoJSONParser()
)

// SetDefaultParser replaces the parser used by binders built without
// WithParser; nil values are ignored.
func SetDefaultParser(p Parser) {
	if p == nil {
		return
	}
	parserMu.Lock()
	defaultParser = p
	parserMu.Unlock()
}

// UseDefaultParser restores the go-json backed parser.
func UseDefaultParser() { SetDefaultParser(GoJSONParser()) }

// DefaultParser returns the current process-wide parser.
func DefaultParser() Parser {
	parserMu.RLock()
	defer parserMu.RUnlock()
	return defaultParser
}
