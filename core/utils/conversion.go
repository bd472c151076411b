package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToFloat converts various types to float64 using explicit type switching.
// It handles floats, integers, json.Number and numeric strings. The second
// result is false when val holds no number.
func ToFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case *string:
		if v == nil {
			return 0, false
		}
		return ToFloat(*v)
	case nil:
		return 0, false
	default:
		f, err := strconv.ParseFloat(fmt.Sprintf("%v", v), 64)
		return f, err == nil
	}
}

// ToInt64 converts integers, whole floats and numeric strings to int64.
func ToInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i, err == nil
	default:
		f, ok := ToFloat(v)
		if !ok || f != float64(int64(f)) {
			return 0, false
		}
		return int64(f), true
	}
}
