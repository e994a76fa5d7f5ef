// Package shaper holds the pure helpers that sit between the API client and
// its callers: outbound payload cleaning and display projections.
package shaper

import "encoding/json"

// nestedConfigKeys are sub-objects that are dropped entirely when nothing
// meaningful is left in them after cleaning.
var nestedConfigKeys = []string{"voice", "model"}

// CleanPayload returns a copy of data with every nil or empty-string map
// value and list element removed, recursively. Afterwards the voice and model
// sub-objects are removed when all of their remaining values are falsy.
// The input is not modified.
func CleanPayload(data map[string]any) map[string]any {
	cleaned := cleanMap(data)

	for _, key := range nestedConfigKeys {
		sub, ok := cleaned[key].(map[string]any)
		if ok && !anyTruthy(sub) {
			delete(cleaned, key)
		}
	}

	return cleaned
}

func cleanValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cleanMap(t)
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			if isBlank(item) {
				continue
			}
			out = append(out, cleanValue(item))
		}
		return out
	case []map[string]any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			out = append(out, cleanMap(item))
		}
		return out
	case []string:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item != "" {
				out = append(out, item)
			}
		}
		return out
	default:
		return v
	}
}

func cleanMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if isBlank(v) {
			continue
		}
		out[k] = cleanValue(v)
	}
	return out
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	default:
		return false
	}
}

func anyTruthy(m map[string]any) bool {
	for _, v := range m {
		if truthy(v) {
			return true
		}
	}
	return false
}

// truthy follows the usual dynamic-language notion: nil, false, zero
// numbers, empty strings and empty containers are falsy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case []map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
