package lightjson

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"

	"github.com/reoring/lightjson/internal/bind"
	"github.com/reoring/lightjson/internal/cache"
	"github.com/reoring/lightjson/internal/schema"
	"github.com/reoring/lightjson/jsontree"
)

// Defaulter is implemented by records that need non-zero initial values.
// SetDefaults runs on every freshly allocated record, nested ones included,
// before any field is bound; fields absent from the input keep these values.
type Defaulter = schema.Defaulter

// Result is a bound record together with the fields that could not be bound.
type Result[T any] struct {
	Value  *T
	Issues Issues // Field failures and parser warnings, in field order.
	Cached bool   // Value came from the cache and is shared with earlier calls.
}

// FromJSON binds text into a new T using the default Binder. It returns nil
// when text is empty, is not a JSON object or T is not a struct. Fields
// that cannot be bound keep their initial value.
//
// Results are cached: identical text returns the same *T. Callers must not
// modify it.
func FromJSON[T any](text string) *T {
	res, err := DecodeString[T](defaultBinder, text)
	if err != nil {
		return nil
	}
	return res.Value
}

// DecodeString is Decode for string input.
func DecodeString[T any](b *Binder, text string) (Result[T], error) {
	return Decode[T](b, []byte(text))
}

// Decode binds data into a new T. The error, an Issues value, is reserved for
// failures that leave no record at all: empty input, malformed input, a
// non-object root or a T that cannot be instantiated. A nil b selects the
// default Binder.
func Decode[T any](b *Binder, data []byte) (Result[T], error) {
	if b == nil {
		b = defaultBinder
	}
	return decode[T](b, b.parserFor(), data, "")
}

// FromYAML binds a YAML document into a new T. The document must use only
// the JSON data model. Results are cached apart from JSON input.
func FromYAML[T any](b *Binder, data []byte) (Result[T], error) {
	if b == nil {
		b = defaultBinder
	}
	return decode[T](b, YAMLParser(), data, "yaml:")
}

func decode[T any](b *Binder, p Parser, data []byte, space string) (res Result[T], err error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	log := b.logger().With().Str("type", t.String()).Str("parser", p.Name()).Logger()

	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{}
			err = singleIssue(CodeParseError, fmt.Errorf("lightjson: panic while binding: %v", r))
			log.Error().Interface("panic", r).Msg("bind aborted")
		}
		if err != nil {
			b.metrics.observeBind("error")
		}
	}()

	if len(bytes.TrimSpace(data)) == 0 {
		return res, b.rootFailure(&log, singleIssue(CodeEmptyInput, nil))
	}
	if t.Kind() != reflect.Struct {
		return res, b.rootFailure(&log, Issues{newIssue(CodeNotInstantiable, "/", schema.ErrNotInstantiable, map[string]string{"type": t.String()})})
	}

	var (
		key      cache.Key
		cacheOK  = b.cache != nil
		warnings Issues
	)
	if cacheOK {
		sum, derr := b.digest(data)
		if derr != nil {
			cacheOK = false
			warnings = append(warnings, newIssue(CodeDigestUnavailable, "/", derr, nil))
			log.Warn().Err(derr).Msg("digest failed, caching skipped")
		} else {
			key = cache.Key{Type: t, Digest: space + b.opt.fingerprint() + sum}
			if e, ok := b.cache.Get(key); ok {
				b.metrics.observeCache(true)
				log.Trace().Str("digest", key.Digest).Msg("cache hit")
				iss, _ := e.Issues.(Issues)
				b.metrics.observeBind(outcome(iss))
				return Result[T]{Value: e.Value.(*T), Issues: iss, Cached: true}, nil
			}
			b.metrics.observeCache(false)
		}
	}

	tree, pw, perr := p.Parse(data, b.opt)
	if perr != nil {
		return res, b.rootFailure(&log, toIssues(perr))
	}
	warnings = append(warnings, pw...)
	if tree.Kind() != jsontree.KindObject {
		return res, b.rootFailure(&log, Issues{newIssue(CodeParseError, "/", fmt.Errorf("lightjson: root is %s, want object", tree.Kind()), nil)})
	}

	ptr, ierr := schema.New(t)
	if ierr != nil {
		return res, b.rootFailure(&log, Issues{newIssue(CodeNotInstantiable, "/", ierr, map[string]string{"type": t.String()})})
	}
	fields := fromBind(bind.Record(tree, ptr.Elem(), log))
	b.metrics.observeIssues(fields)

	var all Issues
	if len(warnings)+len(fields) > 0 {
		all = append(append(Issues{}, warnings...), fields...)
		// Cached issues are shared; appends by one caller must not reach another.
		all = all[:len(all):len(all)]
	}
	v := ptr.Interface().(*T)
	if cacheOK {
		b.cache.Put(key, cache.Entry{Value: v, Issues: all})
	}
	b.metrics.observeBind(outcome(all))

	if ev := log.Trace(); ev.Enabled() {
		ev.Str("value", spew.Sdump(v)).Int("issues", len(all)).Msg("bound")
	} else {
		log.Debug().Int("issues", len(all)).Msg("bound")
	}
	return Result[T]{Value: v, Issues: all}, nil
}

func (b *Binder) rootFailure(log *zerolog.Logger, iss Issues) error {
	ev := log.Warn().Str("code", iss[0].Code).Str("path", iss[0].Path)
	if iss[0].Cause != nil {
		ev = ev.Err(iss[0].Cause)
	}
	ev.Msg("decode failed")
	return iss
}

func outcome(iss Issues) string {
	if len(iss) == 0 {
		return "ok"
	}
	return "partial"
}
