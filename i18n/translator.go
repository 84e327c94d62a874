package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for validation codes.
// data provides values substituted into {name} placeholders (for example
// "field", "min" or "max").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalogue = map[string]map[string]string{
	"en": {
		"required":       "The {field} field is required.",
		"out_of_range":   "The field {field} must be between {min} and {max}.",
		"string_length":  "The field {field} must be a string with a minimum length of {min} and a maximum length of {max}.",
		"too_short":      "The field {field} must be a string or array type with a minimum length of '{min}'.",
		"too_long":       "The field {field} must be a string or array type with a maximum length of '{max}'.",
		"pattern":        "The field {field} must match the regular expression '{pattern}'.",
		"invalid_format": "The {field} field is not a valid {format}.",
		"invalid":        "The field {field} is invalid.",
	},
	"ja": {
		"required":       "{field} は必須です",
		"out_of_range":   "{field} は {min} から {max} の範囲で指定してください",
		"string_length":  "{field} は {min} 文字以上 {max} 文字以下で指定してください",
		"too_short":      "{field} は {min} 件以上必要です",
		"too_long":       "{field} は {max} 件以下にしてください",
		"pattern":        "{field} は正規表現 '{pattern}' に一致する必要があります",
		"invalid_format": "{field} の {format} 形式が不正です",
		"invalid":        "{field} が不正です",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := catalogue[t.lang][code]
	if !ok {
		msg, ok = catalogue["en"][code]
	}
	if !ok {
		return code
	}
	return expand(msg, data)
}

// expand replaces {key} placeholders with values from data. Unknown
// placeholders are left as-is.
func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
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
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
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
