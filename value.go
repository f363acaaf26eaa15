package annotated

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which alternative of the Value sum type is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindI64
	KindU64
	KindF64
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindI64:
		return "i64"
	case KindU64:
		return "u64"
	case KindF64:
		return "f64"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// AnnotatedMap is the insertion-ordered mapping used for every JSON object
// in the value tree, and for every Object<T> container field (spec §9: "a
// plain hash map is insufficient" for canonical output). A plain Go map
// cannot round-trip key order, so objects are backed by an ordered map
// instead.
type AnnotatedMap[T any] = *orderedmap.OrderedMap[string, Annotated[T]]

// Object is an AnnotatedMap of raw Values — the object alternative of Value
// itself.
type Object = AnnotatedMap[Value]

// NewObject creates an empty, insertion-ordered Object.
func NewObject() Object {
	return NewAnnotatedMap[Value]()
}

// NewAnnotatedMap creates an empty, insertion-ordered AnnotatedMap[T].
func NewAnnotatedMap[T any]() AnnotatedMap[T] {
	return orderedmap.New[string, Annotated[T]]()
}

// Value is the untyped JSON-like sum type every domain field is parsed
// from and serialized back to. It is a closed set of alternatives; there is
// no "extra" or "unknown" variant.
type Value struct {
	kind Kind

	b bool
	i int64
	u uint64
	f float64
	s string
	a []Annotated[Value]
	o Object
}

// Null returns the Value representing JSON null.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// I64 wraps a signed 64-bit integer.
func I64(i int64) Value { return Value{kind: KindI64, i: i} }

// U64 wraps an unsigned 64-bit integer too large to fit in int64.
func U64(u uint64) Value { return Value{kind: KindU64, u: u} }

// F64 wraps a floating point number.
func F64(f float64) Value { return Value{kind: KindF64, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a sequence of annotated values.
func Array(items []Annotated[Value]) Value { return Value{kind: KindArray, a: items} }

// ObjectValue wraps an insertion-ordered object.
func ObjectValue(o Object) Value { return Value{kind: KindObject, o: o} }

// Kind reports which alternative is populated.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null alternative.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload, if v is a KindBool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsI64 returns the signed integer payload, if v is a KindI64.
func (v Value) AsI64() (int64, bool) { return v.i, v.kind == KindI64 }

// AsU64 returns the unsigned integer payload, if v is a KindU64.
func (v Value) AsU64() (uint64, bool) { return v.u, v.kind == KindU64 }

// AsF64 returns the float payload, if v is a KindF64.
func (v Value) AsF64() (float64, bool) { return v.f, v.kind == KindF64 }

// AsString returns the string payload, if v is a KindString.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsArray returns the array payload, if v is a KindArray.
func (v Value) AsArray() ([]Annotated[Value], bool) { return v.a, v.kind == KindArray }

// AsObject returns the object payload, if v is a KindObject.
func (v Value) AsObject() (Object, bool) { return v.o, v.kind == KindObject }

// TypeName returns the human name used in "expected <type-name>" messages
// when a Value itself (rather than a converted domain type) is being
// described, e.g. for diagnostics.
func (v Value) TypeName() string { return v.kind.String() }
