package lightjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/lightjson"
	"github.com/reoring/lightjson/config"
)

func TestNewFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Parser.Driver = "json"
	cfg.Parser.DuplicateKeys = "error"
	cfg.Cache.Digest = "xxhash"

	b, err := lightjson.NewFromConfig(cfg)
	require.NoError(t, err)

	_, err = lightjson.DecodeString[bean0](b, `{"a":"x","a":"y","b":1}`)
	iss, ok := lightjson.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, lightjson.CodeDuplicateKey, iss[0].Code)

	_, err = lightjson.DecodeString[bean0](b, `{"a":"x","b":1}`)
	require.NoError(t, err)
	res, err := lightjson.DecodeString[bean0](b, `{"a":"x","b":1}`)
	require.NoError(t, err)
	assert.True(t, res.Cached)
}

func TestNewFromConfig_ZeroCapacityDisablesCache(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Cache.Capacity = 0

	b, err := lightjson.NewFromConfig(cfg)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		res, err := lightjson.DecodeString[bean0](b, `{"a":"x","b":1}`)
		require.NoError(t, err)
		assert.False(t, res.Cached)
	}
}

func TestNewFromConfig_Invalid(t *testing.T) {
	base, err := config.Load("")
	require.NoError(t, err)

	for name, mutate := range map[string]func(*config.Config){
		"driver":   func(c *config.Config) { c.Parser.Driver = "xml" },
		"digest":   func(c *config.Config) { c.Cache.Digest = "sha0" },
		"severity": func(c *config.Config) { c.Parser.DuplicateKeys = "loud" },
		"level":    func(c *config.Config) { c.Log.Level = "chatty" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			_, err := lightjson.NewFromConfig(cfg)
			assert.Error(t, err)
		})
	}
}
