package value

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Parse reads a single structured-value document from r. Tokenizing is
// delegated to encoding/json (spec §1 treats JSON parsing itself as an
// external concern); this function only owns the mapping from decoded
// Go values onto the Value tree.
func Parse(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Value{}, errors.Wrap(err, "parsing document")
	}
	return fromRaw(raw)
}

// ParseString is a convenience wrapper around Parse for tests.
func ParseString(s string) (Value, error) {
	return Parse(bytes.NewReader([]byte(s)))
}

func fromRaw(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, errors.Wrapf(err, "parsing number %q", x.String())
		}
		return Float(f), nil
	case string:
		return String(x), nil
	case []interface{}:
		items := make([]Value, 0, len(x))
		for _, elem := range x {
			v, err := fromRaw(elem)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Value{kind: KindArray, arr: items}, nil
	case map[string]interface{}:
		dict := make(map[string]Value, len(x))
		for k, elem := range x {
			v, err := fromRaw(elem)
			if err != nil {
				return Value{}, errors.Wrapf(err, "field %q", k)
			}
			dict[k] = v
		}
		return Value{kind: KindDict, dict: dict}, nil
	default:
		return Value{}, errors.Errorf("unsupported JSON value of type %T", x)
	}
}

// Print renders v as pretty-printed text with lexicographically sorted
// keys (§6), the document's output contract.
func Print(v Value) string {
	return string(mustMarshalIndent(toRaw(v)))
}

// Write writes Print(v) to w.
func Write(w io.Writer, v Value) error {
	_, err := io.WriteString(w, Print(v))
	return err
}

func toRaw(v Value) interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, elem := range v.arr {
			out[i] = toRaw(elem)
		}
		return out
	case KindDict:
		out := make(map[string]interface{}, len(v.dict))
		for k, elem := range v.dict {
			out[k] = toRaw(elem)
		}
		return out
	default:
		return nil
	}
}

// mustMarshalIndent relies on the fact that encoding/json always emits
// map[string]interface{} keys in sorted order.
func mustMarshalIndent(v interface{}) []byte {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// toRaw only ever produces JSON-representable values, so this
		// cannot happen.
		panic(errors.Wrap(err, "marshaling structured value"))
	}
	return b
}
