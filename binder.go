package lightjson

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/reoring/lightjson/internal/cache"
)

// Cache is a result cache that several Binders may share.
type Cache = cache.LRU

// NewCache returns a Cache with the given budget in estimated bytes; a
// non-positive capacity selects 512 KiB.
func NewCache(capacity int64) *Cache { return cache.New(capacity) }

// Binder decodes input into records and memoizes the results. A Binder is
// safe for concurrent use. The zero value is not usable; call New.
type Binder struct {
	cache   *cache.LRU // nil disables caching
	parser  Parser     // nil selects DefaultParser at call time
	digest  Digest
	log     *zerolog.Logger // nil selects the global zerolog logger at info level
	metrics *Metrics
	opt     ParseOpt
}

type binderOptions struct {
	cache     *cache.LRU
	noCache   bool
	capacity  int64
	entryCost int64
	parser    Parser
	digest    Digest
	log       *zerolog.Logger
	metrics   *Metrics
	parse     ParseOpt
}

// Option configures a Binder.
type Option func(*binderOptions)

// WithCache shares an existing cache. Evictions in a shared cache are not
// counted by this binder's Metrics.
func WithCache(c *Cache) Option {
	return func(o *binderOptions) { o.cache = c }
}

// WithoutCache disables memoization: every call parses and binds.
func WithoutCache() Option {
	return func(o *binderOptions) { o.noCache = true }
}

// WithCapacity sets the cache budget in estimated bytes.
func WithCapacity(bytes int64) Option {
	return func(o *binderOptions) { o.capacity = bytes }
}

// WithFixedEntryCost charges every cache entry n bytes instead of walking
// the bound value.
func WithFixedEntryCost(n int64) Option {
	return func(o *binderOptions) { o.entryCost = n }
}

// WithParser pins the parser used by Decode.
func WithParser(p Parser) Option {
	return func(o *binderOptions) { o.parser = p }
}

// WithDigest replaces the md5 input fingerprint.
func WithDigest(d Digest) Option {
	return func(o *binderOptions) { o.digest = d }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *binderOptions) { o.log = &l }
}

// WithMetrics records activity into m.
func WithMetrics(m *Metrics) Option {
	return func(o *binderOptions) { o.metrics = m }
}

// WithParseOptions sets the parsing limits.
func WithParseOptions(opt ParseOpt) Option {
	return func(o *binderOptions) { o.parse = opt }
}

// New builds a Binder. Without options it owns a DefaultCapacity cache,
// keys entries by md5 and parses with DefaultParser.
func New(opts ...Option) *Binder {
	var o binderOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	b := &Binder{
		parser:  o.parser,
		digest:  o.digest,
		log:     o.log,
		metrics: o.metrics,
		opt:     o.parse,
	}
	if b.digest == nil {
		b.digest = MD5
	}
	switch {
	case o.noCache:
	case o.cache != nil:
		b.cache = o.cache
	default:
		copts := []cache.Option{cache.WithEvict(b.evicted)}
		if o.entryCost > 0 {
			copts = append(copts, cache.WithFixedCost(o.entryCost))
		}
		b.cache = cache.New(o.capacity, copts...)
	}
	return b
}

func (b *Binder) evicted(k cache.Key, _ cache.Entry) {
	b.metrics.observeEviction()
	b.logger().Trace().Str("type", k.Type.String()).Str("digest", k.Digest).Msg("cache eviction")
}

func (b *Binder) logger() *zerolog.Logger {
	if b.log != nil {
		return b.log
	}
	l := log.Logger.Level(zerolog.InfoLevel)
	return &l
}

func (b *Binder) parserFor() Parser {
	if b.parser != nil {
		return b.parser
	}
	return DefaultParser()
}

// ClearCache drops every memoized result of b.
func (b *Binder) ClearCache() {
	if b.cache != nil {
		b.cache.Clear()
	}
}

// CacheLen reports the number of memoized results.
func (b *Binder) CacheLen() int {
	if b.cache == nil {
		return 0
	}
	return b.cache.Len()
}

var defaultBinder = New()

// Default returns the process-wide Binder behind FromJSON.
func Default() *Binder { return defaultBinder }

// ClearCache empties the process-wide cache.
func ClearCache() { defaultBinder.ClearCache() }
