package host

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// FormatResult formats an execution result in source syntax: lists as
// (list ...), strings quoted, and nil as the empty string.
func FormatResult(result any) string {
	switch val := result.(type) {
	case nil:
		return ""

	case bool:
		return strconv.FormatBool(val)

	case int:
		return strconv.Itoa(val)

	case int64:
		return strconv.FormatInt(val, 10)

	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)

	case string:
		return strconv.Quote(val)

	case []any:
		return formatList(val)

	case map[string]any:
		return formatMap(val)

	case *Lambda:
		return val.String()

	case fmt.Stringer:
		return val.String()

	default:
		if reflect.TypeOf(val).Kind() == reflect.Func {
			return "(builtin)"
		}

		return fmt.Sprintf("%v", val)
	}
}

func formatList(vals []any) string {
	parts := make([]string, 0, len(vals)+1)
	parts = append(parts, "list")

	for _, v := range vals {
		s := FormatResult(v)
		if s == "" {
			s = "nil"
		}

		parts = append(parts, s)
	}

	return "(" + strings.Join(parts, " ") + ")"
}

// formatMap formats a map as a list of (key value) pairs sorted by key.
func formatMap(m map[string]any) string {
	keys := slices.Sorted(maps.Keys(m))

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = "(" + k + " " + FormatResult(m[k]) + ")"
	}

	return "(" + strings.Join(parts, " ") + ")"
}
