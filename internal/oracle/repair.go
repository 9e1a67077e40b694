package oracle

import (
	"encoding/json"
	"strings"
)

// Repair tries to pull a JSON object out of free-form completion text.
// The chain is: direct parse, then the first-to-last-brace substring,
// then a best-effort character cleanup (single quotes, newlines, trailing
// commas). Returns nil when no structured result can be recovered; the
// caller substitutes its fixed default.
func Repair(text string) map[string]any {
	if text == "" {
		return nil
	}

	if m := tryParse(text); m != nil {
		return m
	}

	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		candidate := text[start : end+1]
		if m := tryParse(candidate); m != nil {
			return m
		}
		// The cleanup pass works best on the brace-delimited chunk.
		text = candidate
	}

	fixed := strings.NewReplacer(
		"'", `"`,
		"\n", " ",
		",}", "}",
		", ]", "]",
	).Replace(text)
	return tryParse(strings.TrimSpace(fixed))
}

func tryParse(s string) map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	return m
}

// StringField reads a string value from a repaired object; ok is false
// when the key is absent or not a string.
func StringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}
