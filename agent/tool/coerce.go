package tool

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LLM tool arguments arrive as decoded JSON, so integers usually show up as
// float64 and some models quote numbers as strings. Both are accepted.

func coerceInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("value %v is not an integer", n)
		}
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("value of type %T is not an integer", v)
	}
}

func coerceFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not a number", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("value of type %T is not a number", v)
	}
}

func coerceString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("value of type %T is not a string", v)
	}
	return s, nil
}

// itemField looks up a cart item key in both snake_case and the Chinook
// PascalCase spelling, since models copy either form from the schema docs.
func itemField(item map[string]any, snake, pascal string) (any, bool) {
	if v, ok := item[snake]; ok {
		return v, true
	}
	v, ok := item[pascal]
	return v, ok
}
