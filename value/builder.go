package value

import "github.com/pkg/errors"

// Builder is a fluent state machine for constructing a Value tree,
// matching the design note in spec §9: states are top, in-array,
// expecting-key and expecting-value-for-key, and each call is only
// valid in a subset of them. An invalid call records an error instead
// of panicking; Build surfaces the first one.
type Builder struct {
	frames []frame
	root   Value
	built  bool
	err    error
}

type frameKind int

const (
	frameArray frameKind = iota
	frameDict
	frameDictKey // a key has been given; the next call must supply the value
)

type frame struct {
	kind  frameKind
	arr   []Value
	dict  map[string]Value
	key   string
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) fail(msg string) *Builder {
	if b.err == nil {
		b.err = errors.New(msg)
	}
	return b
}

func (b *Builder) top() *frame {
	if len(b.frames) == 0 {
		return nil
	}
	return &b.frames[len(b.frames)-1]
}

// StartDict opens a new dict, either as the document root, an array
// element, or the value for a pending key.
func (b *Builder) StartDict() *Builder {
	if b.err != nil {
		return b
	}
	return b.push(frame{kind: frameDict, dict: map[string]Value{}})
}

// StartArray opens a new array.
func (b *Builder) StartArray() *Builder {
	if b.err != nil {
		return b
	}
	return b.push(frame{kind: frameArray})
}

func (b *Builder) push(f frame) *Builder {
	if b.built {
		return b.fail("builder already finished")
	}
	t := b.top()
	if t == nil && b.built {
		return b.fail("value already set at top level")
	}
	if t != nil {
		switch t.kind {
		case frameArray, frameDictKey:
			// valid: array accepts any element; a pending key accepts
			// any value.
		case frameDict:
			return b.fail("expected Key before a value in a dict")
		}
	}
	b.frames = append(b.frames, f)
	return b
}

// Key sets the key for the next value in the current dict. Only valid
// immediately inside a dict frame.
func (b *Builder) Key(key string) *Builder {
	if b.err != nil {
		return b
	}
	t := b.top()
	if t == nil || t.kind != frameDict {
		return b.fail("Key called outside a dict")
	}
	t.kind = frameDictKey
	t.key = key
	return b
}

// Value appends a scalar (or pre-built) Value at the current position:
// as the document root, as the next array element, or as the value for
// a pending key.
func (b *Builder) Value(v Value) *Builder {
	if b.err != nil {
		return b
	}
	if b.built {
		return b.fail("builder already finished")
	}
	t := b.top()
	if t == nil {
		if b.built {
			return b.fail("value already set at top level")
		}
		b.root = v
		b.built = true
		return b
	}
	switch t.kind {
	case frameArray:
		t.arr = append(t.arr, v)
	case frameDictKey:
		t.dict[t.key] = v
		t.kind = frameDict
	case frameDict:
		return b.fail("expected Key before a value in a dict")
	}
	return b
}

func (b *Builder) Null() *Builder         { return b.Value(Null()) }
func (b *Builder) Bool(x bool) *Builder   { return b.Value(Bool(x)) }
func (b *Builder) Int(x int64) *Builder   { return b.Value(Int(x)) }
func (b *Builder) Float(x float64) *Builder { return b.Value(Float(x)) }
func (b *Builder) String(x string) *Builder { return b.Value(String(x)) }

// EndDict closes the innermost dict frame, folding it into its parent
// (or the root).
func (b *Builder) EndDict() *Builder {
	if b.err != nil {
		return b
	}
	t := b.top()
	if t == nil || t.kind != frameDict {
		return b.fail("EndDict without a matching StartDict")
	}
	b.frames = b.frames[:len(b.frames)-1]
	return b.Value(Value{kind: KindDict, dict: t.dict})
}

// EndArray closes the innermost array frame.
func (b *Builder) EndArray() *Builder {
	if b.err != nil {
		return b
	}
	t := b.top()
	if t == nil || t.kind != frameArray {
		return b.fail("EndArray without a matching StartArray")
	}
	b.frames = b.frames[:len(b.frames)-1]
	arr := t.arr
	if arr == nil {
		arr = []Value{}
	}
	return b.Value(Value{kind: KindArray, arr: arr})
}

// Build finalizes the tree. It fails if any frame is still open or no
// value was ever set.
func (b *Builder) Build() (Value, error) {
	if b.err != nil {
		return Value{}, b.err
	}
	if len(b.frames) != 0 {
		return Value{}, errors.New("unterminated dict or array")
	}
	if !b.built {
		return Value{}, errors.New("no value built")
	}
	return b.root, nil
}
