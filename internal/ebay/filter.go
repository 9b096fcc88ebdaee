package ebay

import (
	"fmt"
	"slices"
	"strings"
)

// BuildFilter renders conditions as a Browse API filter string. Each pair
// becomes key:value, slice values are joined with "|" and pairs with ",".
// Keys are emitted in sorted order.
//
//	BuildFilter(map[string]any{"price": "[10..50]", "conditionIds": []int{1000, 3000}})
//	// "conditionIds:1000|3000,price:[10..50]"
func BuildFilter(conditions map[string]any) string {
	if len(conditions) == 0 {
		return ""
	}

	keys := make([]string, 0, len(conditions))
	for k := range conditions {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+":"+filterValue(conditions[k]))
	}
	return strings.Join(pairs, ",")
}

func filterValue(v any) string {
	switch vv := v.(type) {
	case []string:
		return strings.Join(vv, "|")
	case []any:
		return joinAny(vv)
	case []int:
		return joinAny(vv)
	case []int64:
		return joinAny(vv)
	case []float64:
		return joinAny(vv)
	case []bool:
		return joinAny(vv)
	default:
		return fmt.Sprint(v)
	}
}

func joinAny[T any](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, "|")
}
