package loader

import (
	"reflect"
)

// TryDecode attempts to parse a string leaf as serialized structured data
// (JSON, YAML, TOML, NDJSON, JWT). It returns the decoded structure and
// true only when the result is a map or slice; plain strings, numbers, and
// other scalars report false so ordinary text is never rewritten.
func TryDecode(value string) (any, bool) {
	if value == "" {
		return nil, false
	}
	parsed, err := Load(value)
	if err != nil {
		return nil, false
	}
	if isStructured(parsed) {
		return parsed, true
	}
	return nil, false
}

// maxDecodeDepth bounds RecursiveDecode against pathological inputs where
// every decoded layer exposes another serialized string.
const maxDecodeDepth = 20

// RecursiveDecode walks a document and replaces every string leaf that
// parses as serialized data with its decoded structure, recursively.
func RecursiveDecode(node any) any {
	return recursiveDecode(node, 0)
}

func recursiveDecode(node any, depth int) any {
	if depth > maxDecodeDepth {
		return node
	}

	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = recursiveDecode(item, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = recursiveDecode(item, depth+1)
		}
		return out
	case string:
		if decoded, ok := TryDecode(v); ok {
			return recursiveDecode(decoded, depth+1)
		}
		return v
	default:
		return node
	}
}

// isStructured reports whether v is a map or slice (i.e. worth replacing a
// string leaf with).
func isStructured(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	kind := reflect.ValueOf(v).Kind()
	return kind == reflect.Map || kind == reflect.Slice
}
