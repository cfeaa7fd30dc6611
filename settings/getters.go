package settings

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Each getter returns its type's default when the key is absent, null, or
// cannot be converted. Array getters never return nil.

// String reads key as a string. Default "".
func String(s Scope, key string) string {
	v, ok := present(s, key)
	if !ok {
		return ""
	}
	out, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return out
}

// Int reads key as an int. Non-integral numbers do not convert. Default 0.
func Int(s Scope, key string) int {
	v, ok := present(s, key)
	if !ok || !integral(v) {
		return 0
	}
	out, err := cast.ToIntE(v)
	if err != nil {
		return 0
	}
	return out
}

// Float64 reads key as a float64. Default 0.
func Float64(s Scope, key string) float64 {
	v, ok := present(s, key)
	if !ok {
		return 0
	}
	out, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return out
}

// Bool reads key as a bool ("true", "1", true...). Default false.
func Bool(s Scope, key string) bool {
	v, ok := present(s, key)
	if !ok {
		return false
	}
	out, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return out
}

// Strings reads key as a []string. Default empty.
func Strings(s Scope, key string) []string {
	v, ok := present(s, key)
	if !ok {
		return []string{}
	}
	out, err := cast.ToStringSliceE(v)
	if err != nil || out == nil {
		return []string{}
	}
	return out
}

// Ints reads key as a []int. Any unconvertible element yields the default.
func Ints(s Scope, key string) []int {
	v, ok := present(s, key)
	if !ok {
		return []int{}
	}
	items, err := elements(v)
	if err != nil {
		return []int{}
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		if !integral(item) {
			return []int{}
		}
		n, err := cast.ToIntE(item)
		if err != nil {
			return []int{}
		}
		out = append(out, n)
	}
	return out
}

// Float64s reads key as a []float64. Default empty.
func Float64s(s Scope, key string) []float64 {
	v, ok := present(s, key)
	if !ok {
		return []float64{}
	}
	items, err := elements(v)
	if err != nil {
		return []float64{}
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		f, err := cast.ToFloat64E(item)
		if err != nil {
			return []float64{}
		}
		out = append(out, f)
	}
	return out
}

// Bools reads key as a []bool. Default empty.
func Bools(s Scope, key string) []bool {
	v, ok := present(s, key)
	if !ok {
		return []bool{}
	}
	out, err := cast.ToBoolSliceE(v)
	if err != nil || out == nil {
		return []bool{}
	}
	return out
}

// Level reads key as a LogLevel name or number. Default LogLevelNone.
func Level(s Scope, key string) LogLevel {
	v, ok := present(s, key)
	if !ok {
		return LogLevelNone
	}
	if _, isString := v.(string); !isString && !integral(v) {
		return LogLevelNone
	}
	text, err := cast.ToStringE(v)
	if err != nil {
		return LogLevelNone
	}
	level, err := ParseLogLevel(text)
	if err != nil {
		return LogLevelNone
	}
	return level
}

// Value returns the raw value for key, or nil.
func Value(s Scope, key string) any {
	v, _ := present(s, key)
	return v
}

// elements accepts decoded JSON arrays and whitespace separated strings
// (the shape environment overrides arrive in).
func elements(v any) ([]any, error) {
	if text, ok := v.(string); ok {
		fields := strings.Fields(text)
		items := make([]any, len(fields))
		for i, f := range fields {
			items[i] = f
		}
		return items, nil
	}
	return cast.ToSliceE(v)
}

func present(s Scope, key string) (any, bool) {
	v, ok := s.Lookup(key)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// integral rejects floating point values with a fractional part; cast
// would silently truncate them.
func integral(v any) bool {
	switch n := v.(type) {
	case float64:
		return n == math.Trunc(n) && !math.IsInf(n, 0)
	case float32:
		f := float64(n)
		return f == math.Trunc(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}
