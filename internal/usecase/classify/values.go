package classify

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Model output is loosely typed, so fields are read from a generic map and
// coerced one by one instead of failing the whole decode on a bad field.

func decodeObject(raw string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("decode response: not a JSON object")
	}
	return obj, nil
}

// asString renders v like a loose string conversion; nil becomes "".
func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// asNumber returns v when it is a JSON number.
func asNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// asStrings keeps the string elements of a JSON array.
func asStrings(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// truthy reports whether v would count as true in a boolean context:
// false, 0, "", null and missing are false; everything else is true.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

func trimmed(v any) string {
	return strings.TrimSpace(asString(v))
}
