// Package scanpayload recovers a candidate ticket identifier from the
// heterogeneous payloads scanning clients submit: bare codes, JSON blobs,
// base64-wrapped JSON, or already-parsed objects. Extraction is pure and
// never panics; lookup lives in the resolver service.
package scanpayload

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field-name variants checked on objects, highest priority first. Keys are
// compared after lower-casing and stripping underscores, so "ticket_code",
// "ticketCode" and "TicketCode" all land on "ticketcode".
var fieldPriority = []string{
	"ticketcode",
	"ticketid",
	"ticketnumber",
	"ticket",
	"id",
	"code",
	"tid",
	"t",
}

var (
	tokenRe    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{2,31}$`)
	digitRunRe = regexp.MustCompile(`[0-9]{3,12}`)
)

// Traversal bounds for adversarial or degenerate payloads.
const (
	maxDepth       = 8
	maxNodes       = 256
	maxDecodeSteps = 3
)

// Extract pulls a plausible ticket identifier out of a raw scan payload.
// It returns false when nothing identifier-shaped is found.
func Extract(raw string) (string, bool) {
	return extractString(raw, 0)
}

func extractString(raw string, step int) (string, bool) {
	if step >= maxDecodeSteps {
		return "", false
	}

	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	// Whole string already identifier-shaped.
	if tokenRe.MatchString(s) {
		return s, true
	}

	// JSON object or array.
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			if id, ok := FromValue(v); ok {
				return id, true
			}
		}
	}

	// Base64-wrapped token or JSON.
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
	} {
		decoded, err := enc.DecodeString(s)
		if err != nil || !utf8.Valid(decoded) {
			continue
		}
		if id, ok := extractString(string(decoded), step+1); ok {
			return id, true
		}
	}

	// Last resort: a digit run buried in an otherwise messy string.
	if run := digitRunRe.FindString(s); run != "" {
		return run, true
	}

	return "", false
}

type node struct {
	value any
	depth int
}

// FromValue extracts an identifier from an already-parsed payload. Top-level
// priority fields win; otherwise a bounded breadth-first walk of nested
// objects and arrays finds the first match. The walk is iterative so hostile
// nesting cannot blow the stack.
func FromValue(v any) (string, bool) {
	queue := []node{{value: v, depth: 0}}
	visited := 0

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		visited++
		if visited > maxNodes || n.depth > maxDepth {
			return "", false
		}

		switch val := n.value.(type) {
		case map[string]any:
			if id, ok := matchPriorityFields(val); ok {
				return id, true
			}
			for _, k := range sortedKeys(val) {
				switch val[k].(type) {
				case map[string]any, []any:
					queue = append(queue, node{value: val[k], depth: n.depth + 1})
				}
			}
		case []any:
			for _, item := range val {
				queue = append(queue, node{value: item, depth: n.depth + 1})
			}
		case string:
			if id, ok := candidate(val); ok {
				return id, true
			}
		}
	}

	return "", false
}

// ContainsValue reports whether any scalar anywhere in v matches id. Used by
// the resolver's bounded fallback scan over historically inconsistent
// records.
func ContainsValue(v any, id string) bool {
	queue := []node{{value: v, depth: 0}}
	visited := 0

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		visited++
		if visited > maxNodes || n.depth > maxDepth {
			return false
		}

		switch val := n.value.(type) {
		case map[string]any:
			for _, k := range sortedKeys(val) {
				queue = append(queue, node{value: val[k], depth: n.depth + 1})
			}
		case []any:
			for _, item := range val {
				queue = append(queue, node{value: item, depth: n.depth + 1})
			}
		default:
			if c, ok := scalarString(val); ok && c == id {
				return true
			}
		}
	}

	return false
}

func matchPriorityFields(m map[string]any) (string, bool) {
	normalized := make(map[string]any, len(m))
	for k, v := range m {
		nk := strings.ReplaceAll(strings.ToLower(k), "_", "")
		if _, exists := normalized[nk]; !exists {
			normalized[nk] = v
		}
	}

	for _, f := range fieldPriority {
		v, ok := normalized[f]
		if !ok {
			continue
		}
		if c, ok := scalarString(v); ok {
			if id, ok := candidate(c); ok {
				return id, true
			}
		}
	}
	return "", false
}

// candidate validates a field value as identifier-shaped, tolerating
// whitespace and, failing that, salvaging an embedded digit run.
func candidate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if tokenRe.MatchString(s) {
		return s, true
	}
	if run := digitRunRe.FindString(s); run != "" {
		return run, true
	}
	return "", false
}

// scalarString stringifies the scalar types a decoded JSON payload can
// carry. Numbers are rendered without an exponent so numeric ticket codes
// round-trip (999999, not 9.99999e+05).
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case json.Number:
		return val.String(), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	default:
		return "", false
	}
}

// sortedKeys makes map traversal deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
