package response

import (
	"math"

	"github.com/tidwall/gjson"
)

// Truthy applies loose truthiness to a JSON field: missing, null, false,
// zero, NaN and the empty string are false, everything else is true.
func Truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num != 0 && !math.IsNaN(r.Num)
	case gjson.String:
		return r.Str != ""
	case gjson.JSON:
		return true
	default:
		return false
	}
}

// ExitCode returns a numeric exit_code as reported, or nil when the field
// is absent or not a number.
func ExitCode(r gjson.Result) *float64 {
	if r.Type != gjson.Number {
		return nil
	}
	code := r.Num
	return &code
}
