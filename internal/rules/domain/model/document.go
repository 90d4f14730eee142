package model

import (
	"math"
	"reflect"
)

// Document is the schemaless field map a write proposes or a lookup returns.
// A nil Document means the document does not exist.
type Document map[string]interface{}

// Exists reports whether the document is present in the store.
func (d Document) Exists() bool {
	return d != nil
}

// Has reports whether the field is present with a non-null value.
func (d Document) Has(field string) bool {
	v, ok := d[field]
	return ok && v != nil
}

// Field returns the raw field value, or nil when absent.
func (d Document) Field(field string) interface{} {
	if d == nil {
		return nil
	}
	return d[field]
}

// String returns the field as a string.
func (d Document) String(field string) (string, bool) {
	s, ok := d.Field(field).(string)
	return s, ok
}

// Bool returns the field as a bool.
func (d Document) Bool(field string) (bool, bool) {
	b, ok := d.Field(field).(bool)
	return b, ok
}

// Int returns the field as an int64, accepting the numeric representations
// JSON and BSON decoding produce for integral values.
func (d Document) Int(field string) (int64, bool) {
	return AsInt(d.Field(field))
}

// StringSlice returns the field as a []string. Decoded JSON arrays arrive as
// []interface{}; every element must be a string.
func (d Document) StringSlice(field string) ([]string, bool) {
	switch v := d.Field(field).(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// AsInt converts a decoded numeric value to int64 when it is integral.
func AsInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case float32:
		f := float64(n)
		if f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// ValuesEqual compares two field values, treating numerically equal integral
// representations (int vs float64 from JSON decoding) as equal.
func ValuesEqual(a, b interface{}) bool {
	if ai, ok := AsInt(a); ok {
		if bi, ok := AsInt(b); ok {
			return ai == bi
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}
