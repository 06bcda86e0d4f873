package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	t.Cleanup(func() { SetLanguage("en") })

	assert.Equal(t, "key id not found", T("required", map[string]string{"key": "id"}))
	assert.Equal(t, "invalid type: expected INT, got string",
		T("invalid_type", map[string]string{"expected": "INT", "got": "string"}))

	SetLanguage("ja")
	assert.Equal(t, "キー id がありません", T("required", map[string]string{"key": "id"}))

	SetLanguage("fr")
	assert.Equal(t, "input is empty", T("empty_input", nil))
}

func TestTranslator_UnknownCodeAndPlaceholders(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))
	// missing data leaves the placeholder in place
	assert.Equal(t, "key {key} not found", T("required", nil))
}

func TestSetTranslator(t *testing.T) {
	t.Cleanup(func() { SetTranslator(nil) })

	SetTranslator(upper{})
	assert.Equal(t, "X:overflow", T("overflow", nil))

	SetTranslator(nil)
	assert.Equal(t, "parse error", T("parse_error", nil))
}
