package service

import (
	"fmt"
	"time"
)

func todayStr() string {
	return time.Now().Format("2006-01-02")
}

// strField reads a string value out of a decoded envelope map, coercing
// numbers the way the spreadsheet endpoint sometimes returns ids.
func strField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// intField reads a numeric value out of a decoded envelope map.
func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func floatField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func boolField(m map[string]any, key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		return v != 0
	default:
		return false
	}
}

// rows extracts a list of record maps from an envelope data field.
func rows(m map[string]any, key string) []map[string]any {
	if m == nil {
		return nil
	}
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		if rec, ok := r.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}
