package lightjson

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/reoring/lightjson/config"
)

// NewFromConfig builds a Binder from loaded settings. Extra options are
// applied after the configured ones. A zero cache capacity disables caching.
func NewFromConfig(cfg config.Config, opts ...Option) (*Binder, error) {
	p, err := ParserByName(cfg.Parser.Driver)
	if err != nil {
		return nil, err
	}
	d, err := DigestByName(cfg.Cache.Digest)
	if err != nil {
		return nil, err
	}
	dup, err := ParseSeverity(cfg.Parser.DuplicateKeys)
	if err != nil {
		return nil, err
	}
	lvl := zerolog.InfoLevel
	if cfg.Log.Level != "" {
		if lvl, err = zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return nil, fmt.Errorf("lightjson: log level: %w", err)
		}
	}

	base := []Option{
		WithParser(p),
		WithDigest(d),
		WithParseOptions(ParseOpt{OnDuplicateKey: dup, MaxDepth: cfg.Parser.MaxDepth, MaxBytes: cfg.Parser.MaxBytes}),
		WithLogger(log.Logger.Level(lvl)),
		WithFixedEntryCost(cfg.Cache.EntryCost),
	}
	if cfg.Cache.Capacity > 0 {
		base = append(base, WithCapacity(cfg.Cache.Capacity))
	} else {
		base = append(base, WithoutCache())
	}
	return New(append(base, opts...)...), nil
}
