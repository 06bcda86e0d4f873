// Package config loads binder settings from defaults, an optional file and
// LIGHTJSON_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. LIGHTJSON_CACHE_CAPACITY.
const EnvPrefix = "LIGHTJSON"

// Config mirrors the recognized keys.
type Config struct {
	Cache  CacheConfig
	Parser ParserConfig
	Log    LogConfig
}

type CacheConfig struct {
	Capacity  int64  // cache.capacity, estimated bytes; 0 disables caching
	Digest    string // cache.digest: md5 | xxhash
	EntryCost int64  // cache.entry_cost: fixed cost per entry, 0 estimates
}

type ParserConfig struct {
	Driver        string // parser.driver: gojson | json | fastjson | yaml
	MaxDepth      int    // parser.max_depth
	MaxBytes      int64  // parser.max_bytes
	DuplicateKeys string // parser.duplicate_keys: ignore | warn | error
}

type LogConfig struct {
	Level string // log.level: zerolog level name
}

// SetDefaults installs the built-in defaults into v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("cache.capacity", 512<<10)
	v.SetDefault("cache.digest", "md5")
	v.SetDefault("cache.entry_cost", 0)
	v.SetDefault("parser.driver", "gojson")
	v.SetDefault("parser.max_depth", 0)
	v.SetDefault("parser.max_bytes", 0)
	v.SetDefault("parser.duplicate_keys", "ignore")
	v.SetDefault("log.level", "info")
}

// Load reads path (any format viper understands; empty for none) over the
// defaults, then applies environment overrides.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return FromViper(v), nil
}

// FromViper extracts a Config from an already prepared viper instance.
func FromViper(v *viper.Viper) Config {
	return Config{
		Cache: CacheConfig{
			Capacity:  v.GetInt64("cache.capacity"),
			Digest:    v.GetString("cache.digest"),
			EntryCost: v.GetInt64("cache.entry_cost"),
		},
		Parser: ParserConfig{
			Driver:        v.GetString("parser.driver"),
			MaxDepth:      v.GetInt("parser.max_depth"),
			MaxBytes:      v.GetInt64("parser.max_bytes"),
			DuplicateKeys: v.GetString("parser.duplicate_keys"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}
}
