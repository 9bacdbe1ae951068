package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NormalizeKeywords coerces the heterogeneous keyword representations found
// in stored knowledge points into a flat, deduplicated list of trimmed
// non-empty strings. Accepted shapes:
//
//   - []string
//   - a JSON-encoded string such as `["a","b"]` (the legacy TEXT column)
//   - a list of objects carrying a "keyword" or "text" field
//   - any mix of the above inside one list
//
// Unparseable JSON yields an empty result. NormalizeKeywords never fails;
// the ambiguous shape must not leak past this boundary.
func NormalizeKeywords(raw any) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case nil:
		case string:
			add(val)
		case []string:
			for _, s := range val {
				add(s)
			}
		case []any:
			for _, item := range val {
				walk(item)
			}
		case map[string]any:
			if kw, ok := val["keyword"].(string); ok && strings.TrimSpace(kw) != "" {
				add(kw)
				return
			}
			if txt, ok := val["text"].(string); ok && strings.TrimSpace(txt) != "" {
				add(txt)
				return
			}
			add(fmt.Sprint(val))
		default:
			add(fmt.Sprint(val))
		}
	}

	switch val := raw.(type) {
	case nil:
		return out
	case string:
		// Legacy rows store the keyword list JSON-encoded in a TEXT
		// column. A string that does not decode to a list yields an
		// empty result rather than an error.
		var decoded []any
		if err := json.Unmarshal([]byte(val), &decoded); err != nil {
			return out
		}
		walk(decoded)
	default:
		walk(val)
	}

	return out
}
