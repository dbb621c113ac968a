// Package value implements the structured-value tree used for every
// request and response payload: a small, explicit sum type instead of
// bare interface{}, plus a fluent builder and a text codec (§4.8, §6).
//
// JSON tokenizing itself is treated as an external concern (spec §1)
// and is left to encoding/json; this package owns the tree shape, the
// builder state machine, and the pretty-printing contract (sorted keys)
// that the rest of the catalogue depends on.
package value

import (
	"sort"

	"github.com/pkg/errors"
)

// Kind discriminates the cases of Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindDict
)

// Value is the structured-value tree's node type. The zero Value is
// Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	dict map[string]Value
}

func Null() Value                 { return Value{kind: KindNull} }
func Bool(b bool) Value           { return Value{kind: KindBool, b: b} }
func Int(i int64) Value           { return Value{kind: KindInt, i: i} }
func Float(f float64) Value       { return Value{kind: KindFloat, f: f} }
func String(s string) Value       { return Value{kind: KindString, s: s} }
func Array(items ...Value) Value  { return Value{kind: KindArray, arr: items} }

// Dict builds a dict Value from a map. No key order is kept, here or
// by Builder (both store dicts as maps); output is sorted
// lexicographically regardless (§6).
func Dict(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindDict, dict: cp}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int64(v.f), true
	}
	return 0, false
}

func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Get looks up a key in a dict Value. ok is false if v isn't a dict or
// the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindDict {
		return Value{}, false
	}
	val, ok := v.dict[key]
	return val, ok
}

// Keys returns the dict's keys, sorted. Returns nil for a non-dict.
func (v Value) Keys() []string {
	if v.kind != KindDict {
		return nil
	}
	keys := make([]string, 0, len(v.dict))
	for k := range v.dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString/GetInt/GetFloat/GetArray/GetDict are convenience lookups
// combining Get and the matching As* accessor; errs if the key is
// missing or has the wrong shape.
func (v Value) GetString(key string) (string, error) {
	val, ok := v.Get(key)
	if !ok {
		return "", errors.Errorf("missing field %q", key)
	}
	s, ok := val.AsString()
	if !ok {
		return "", errors.Errorf("field %q is not a string", key)
	}
	return s, nil
}

func (v Value) GetInt(key string) (int64, error) {
	val, ok := v.Get(key)
	if !ok {
		return 0, errors.Errorf("missing field %q", key)
	}
	i, ok := val.AsInt()
	if !ok {
		return 0, errors.Errorf("field %q is not a number", key)
	}
	return i, nil
}

func (v Value) GetFloat(key string) (float64, error) {
	val, ok := v.Get(key)
	if !ok {
		return 0, errors.Errorf("missing field %q", key)
	}
	f, ok := val.AsFloat()
	if !ok {
		return 0, errors.Errorf("field %q is not a number", key)
	}
	return f, nil
}

func (v Value) GetArray(key string) ([]Value, error) {
	val, ok := v.Get(key)
	if !ok {
		return nil, errors.Errorf("missing field %q", key)
	}
	arr, ok := val.AsArray()
	if !ok {
		return nil, errors.Errorf("field %q is not an array", key)
	}
	return arr, nil
}

func (v Value) GetDict(key string) (Value, error) {
	val, ok := v.Get(key)
	if !ok {
		return Value{}, errors.Errorf("missing field %q", key)
	}
	if val.kind != KindDict {
		return Value{}, errors.Errorf("field %q is not an object", key)
	}
	return val, nil
}
