package model

import (
	"math"
	"regexp"
)

// safeStringPattern is an allow-list character class: letters (including
// Unicode), digits, space and a small set of identifier punctuation.
// Markup, quoting and script metacharacters all fall outside it.
var safeStringPattern = regexp.MustCompile(`^[\p{L}\p{N} ._@-]*$`)

// IsInteger reports whether the value is an integer under the engine's wire
// semantics: native Go integer types, or a float carrying no fractional part
// (JSON decoding hands integral numbers over as float64).
func IsInteger(v interface{}) bool {
	switch n := v.(type) {
	case int, int32, int64:
		return true
	case float64:
		return !math.IsNaN(n) && !math.IsInf(n, 0) && n == math.Trunc(n)
	case float32:
		f := float64(n)
		return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
	default:
		return false
	}
}

// IsString reports whether the value is a string.
func IsString(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

// IsBool reports whether the value is a boolean.
func IsBool(v interface{}) bool {
	_, ok := v.(bool)
	return ok
}

// IsNull reports whether the value is absent.
func IsNull(v interface{}) bool {
	return v == nil
}

// IsSafeString reports whether the value is a string free of markup, script
// and quoting metacharacters. Write rules use this for every string field.
func IsSafeString(v interface{}) bool {
	s, ok := v.(string)
	return ok && safeStringPattern.MatchString(s)
}

// IsStringSlice reports whether the value is a sequence of strings, accepting
// the []interface{} shape produced by JSON decoding.
func IsStringSlice(v interface{}) bool {
	switch e := v.(type) {
	case []string:
		return true
	case []interface{}:
		for _, item := range e {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}
