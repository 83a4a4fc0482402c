// Package fieldmap normalizes free-text form field names so that
// inconsistent client naming ("Full Name", "full-name", "fullName ")
// collapses onto one stored key.
package fieldmap

import (
	"strings"
	"unicode"
)

// NormalizeKey trims the key, lower-cases it and collapses every run of
// non-alphanumeric characters into a single underscore.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(strings.ToLower(key))

	var b strings.Builder
	b.Grow(len(key))
	pendingSep := false
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// NormalizeAndFilter maps raw form fields onto normalized keys and, when a
// whitelist is configured, drops every key outside it. A nil or empty
// whitelist keeps all fields. Later duplicates of a normalized key win.
func NormalizeAndFilter(raw map[string]any, whitelist []string) map[string]any {
	out := make(map[string]any, len(raw))

	var allowed map[string]struct{}
	if len(whitelist) > 0 {
		allowed = make(map[string]struct{}, len(whitelist))
		for _, k := range whitelist {
			allowed[NormalizeKey(k)] = struct{}{}
		}
	}

	for k, v := range raw {
		nk := NormalizeKey(k)
		if nk == "" {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[nk]; !ok {
				continue
			}
		}
		out[nk] = v
	}
	return out
}
