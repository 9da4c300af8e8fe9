package document

import "strconv"

// Tolerant lookup helpers. A missing key or a wrong-typed value reads as
// absent; failures never propagate beyond the single field involved.

func sub(m map[string]any, key string) (map[string]any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key].(map[string]any)
	return v, ok
}

func list(m map[string]any, key string) ([]any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key].([]any)
	return v, ok
}

func str(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key].(string)
	return v, ok
}

// stringish accepts both string and numeric ids; the API is not consistent
// about which it returns for scan identifiers.
func stringish(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	switch v := m[key].(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}

func num(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func boolean(m map[string]any, key string) (bool, bool) {
	if m == nil {
		return false, false
	}
	v, ok := m[key].(bool)
	return v, ok
}

func strList(m map[string]any, key string) []string {
	items, ok := list(m, key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func nestedNum(m map[string]any, section, key string) (float64, bool) {
	inner, ok := sub(m, section)
	if !ok {
		return 0, false
	}
	return num(inner, key)
}
