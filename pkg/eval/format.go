package eval

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValue renders an evaluated value the way the learner should see it.
func FormatValue(v any) string {
	switch n := v.(type) {
	case nil:
		return "null"
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", n)
	}
}

// InferType names the simulated type of a value for the variable panel.
func InferType(v any) string {
	switch n := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int, int64, float64:
		return "number"
	case string:
		if strings.HasPrefix(n, "[") && strings.HasSuffix(n, "]") {
			return "array"
		}
		return "string"
	default:
		return "unknown"
	}
}
