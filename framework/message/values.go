package message

import (
	"fmt"
	"maps"
	"net/url"
	"sort"
	"strconv"
)

// ── Parameter values ──────────────────────────────────────────────────────────

// Value is one node of a decoded parameter tree: query parameters, cookies
// and parsed bodies. The concrete types are String, Number, Bool, List and
// Map; a nil Value stands for null.
//
//	switch v := req.ParsedBody().(type) {
//	case message.Map:
//	    name := v.String("name")
//	case message.List:
//	    ...
//	case nil:
//	    // no body
//	}
type Value interface {
	isValue()
}

type (
	String string
	Number float64
	Bool   bool
	List   []Value
	Map    map[string]Value
)

func (String) isValue() {}
func (Number) isValue() {}
func (Bool) isValue()   {}
func (List) isValue()   {}
func (Map) isValue()    {}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	for i, v := range l {
		out[i] = cloneValue(v)
	}
	return out
}

// Clone returns a deep copy of the map.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// Has reports whether key is present.
func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// String returns the value at key rendered as a string, or "" when absent.
func (m Map) String(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case String:
		return string(s)
	case Number:
		return strconv.FormatFloat(float64(s), 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(bool(s))
	}
	return fmt.Sprint(Native(v))
}

// Merge returns a new map with the entries of others laid over m, later
// maps winning on key collisions.
func (m Map) Merge(others ...Map) Map {
	out := make(Map, len(m))
	maps.Copy(out, m)
	for _, o := range others {
		maps.Copy(out, o)
	}
	return out
}

// Native converts the map to plain Go values (map[string]any, []any,
// string, float64, bool, nil), e.g. for JSON encoding or struct decoding.
func (m Map) Native() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Native(v)
	}
	return out
}

// Native converts the list to plain Go values.
func (l List) Native() []any {
	if l == nil {
		return nil
	}
	out := make([]any, len(l))
	for i, v := range l {
		out[i] = Native(v)
	}
	return out
}

// Native converts any Value to plain Go values.
func Native(v Value) any {
	switch t := v.(type) {
	case String:
		return string(t)
	case Number:
		return float64(t)
	case Bool:
		return bool(t)
	case List:
		return t.Native()
	case Map:
		return t.Native()
	}
	return nil
}

// FromNative converts decoded Go data into a Value tree. It accepts the
// shapes produced by encoding/json and net/url plus common scalar types;
// anything else is rendered with fmt.Sprint as a String.
func FromNative(v any) Value {
	switch t := v.(type) {
	case nil:
		return nil
	case Value:
		return cloneValue(t)
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(t)
	case int:
		return Number(t)
	case int64:
		return Number(t)
	case int32:
		return Number(t)
	case uint:
		return Number(t)
	case uint64:
		return Number(t)
	case []any:
		out := make(List, len(t))
		for i, e := range t {
			out[i] = FromNative(e)
		}
		return out
	case []string:
		out := make(List, len(t))
		for i, e := range t {
			out[i] = String(e)
		}
		return out
	case map[string]any:
		out := make(Map, len(t))
		for k, e := range t {
			out[k] = FromNative(e)
		}
		return out
	case map[string]string:
		out := make(Map, len(t))
		for k, e := range t {
			out[k] = String(e)
		}
		return out
	case map[string][]string:
		return FromValues(t)
	case url.Values:
		return FromValues(t)
	}
	return String(fmt.Sprint(v))
}

// FromValues converts url.Values into a Map. A key with a single value maps
// to a String, a key with several values to a List of String.
func FromValues(values url.Values) Map {
	out := make(Map, len(values))
	for k, vals := range values {
		switch len(vals) {
		case 0:
			out[k] = String("")
		case 1:
			out[k] = String(vals[0])
		default:
			list := make(List, len(vals))
			for i, s := range vals {
				list[i] = String(s)
			}
			out[k] = list
		}
	}
	return out
}

// Keys returns the map's keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneValue(v Value) Value {
	switch t := v.(type) {
	case List:
		return t.Clone()
	case Map:
		return t.Clone()
	}
	return v
}
