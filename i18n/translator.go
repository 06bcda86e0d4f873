package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional details to embed in the message (for example,
// "expected", "got" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates
// reference data with {name}; unknown placeholders are left as-is.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"empty_input":        "input is empty",
		"parse_error":        "parse error",
		"not_instantiable":   "type {type} cannot be instantiated",
		"required":           "key {key} not found",
		"invalid_type":       "invalid type: expected {expected}, got {got}",
		"overflow":           "value {got} does not fit {type}",
		"too_long":           "array of {got} elements exceeds length {max}",
		"duplicate_key":      "duplicate key",
		"truncated":          "truncated",
		"digest_unavailable": "digest unavailable, result not cached",
	},
	"ja": {
		"empty_input":        "入力が空です",
		"parse_error":        "解析エラー",
		"not_instantiable":   "型 {type} を生成できません",
		"required":           "キー {key} がありません",
		"invalid_type":       "型が不正です: {expected} を期待しましたが {got} でした",
		"overflow":           "値 {got} は {type} に収まりません",
		"too_long":           "配列の要素数 {got} が長さ {max} を超えています",
		"duplicate_key":      "キーが重複しています",
		"truncated":          "打ち切られました",
		"digest_unavailable": "ダイジェストを計算できないためキャッシュしません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
