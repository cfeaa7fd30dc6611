package infer

import (
	"strconv"
	"strings"

	"github.com/agentic-research/settingsgen/api"
	"github.com/tidwall/gjson"
)

// LogLevelMarker is matched case-insensitively against keys and section
// names to force TypeLogLevel.
const LogLevelMarker = "loglevel"

// IsLogLevelKey reports whether key names a log-level field or section.
func IsLogLevelKey(key string) bool {
	return strings.Contains(strings.ToLower(key), LogLevelMarker)
}

// Infer maps a JSON value to its semantic type. First match wins:
//  1. inLogLevelSection forces TypeLogLevel, whatever the JSON kind.
//  2. A key containing "loglevel" (any case) is TypeLogLevel.
//  3. Otherwise the JSON kind decides; arrays look at their first element.
func Infer(key string, v gjson.Result, inLogLevelSection bool) api.Type {
	if inLogLevelSection || IsLogLevelKey(key) {
		return api.TypeLogLevel
	}
	switch v.Type {
	case gjson.String:
		return api.TypeString
	case gjson.Number:
		if IsIntegerLiteral(v.Raw) {
			return api.TypeInt
		}
		return api.TypeDouble
	case gjson.True, gjson.False:
		return api.TypeBool
	case gjson.JSON:
		if v.IsArray() {
			return inferArray(v)
		}
	}
	return api.TypeObject
}

// inferArray assumes homogeneous arrays and looks at the first element only.
// Empty arrays, nested arrays and arrays of objects fall back to StringArray.
func inferArray(v gjson.Result) api.Type {
	elems := v.Array()
	if len(elems) == 0 {
		return api.TypeStringArray
	}
	first := elems[0]
	switch first.Type {
	case gjson.Number:
		if IsIntegerLiteral(first.Raw) {
			return api.TypeIntArray
		}
		return api.TypeDoubleArray
	case gjson.True, gjson.False:
		return api.TypeBoolArray
	default:
		return api.TypeStringArray
	}
}

// IsIntegerLiteral reports whether a JSON number literal has no fraction or
// exponent and fits in an int64. "3.0" is not an integer literal.
func IsIntegerLiteral(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, ".eE") {
		return false
	}
	_, err := strconv.ParseInt(raw, 10, 64)
	return err == nil
}
