package lightjson

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoggerDefaultsToInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, New().logger().GetLevel())
	assert.Equal(t, zerolog.InfoLevel, Default().logger().GetLevel())

	b := New(WithLogger(zerolog.Nop().Level(zerolog.TraceLevel)))
	assert.Equal(t, zerolog.TraceLevel, b.logger().GetLevel())
}

func TestParseOptFingerprint(t *testing.T) {
	assert.Equal(t, "0/0/0:", ParseOpt{}.fingerprint())
	assert.NotEqual(t, ParseOpt{}.fingerprint(), ParseOpt{OnDuplicateKey: Error}.fingerprint())
	assert.NotEqual(t, ParseOpt{MaxDepth: 1}.fingerprint(), ParseOpt{MaxBytes: 1}.fingerprint())
}
