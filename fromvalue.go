package annotated

// FromValueFunc decodes a concrete, present, non-null Value into T. It is
// only ever invoked once totality (absence/null passthrough) has already
// been handled by FromValue, so it never needs to special-case those.
type FromValueFunc[T any] func(v Value, m Meta) Annotated[T]

// FromValue implements the total FromValue contract (spec §4.4) generically
// for any domain type T:
//
//  1. Totality — decode never panics or returns an error; mismatches become
//     an annotation.
//  2. Null passthrough — Some(Null) becomes None, meta preserved.
//  3. Absence passthrough — None stays None, meta preserved.
//  4. Meta preservation — the incoming meta always survives into the result.
//
// decode is responsible only for the "value present and not null" case,
// including calling Mismatch itself when the Value's kind doesn't fit T.
func FromValue[T any](a Annotated[Value], decode FromValueFunc[T]) Annotated[T] {
	if a.Value == nil {
		return Annotated[T]{Meta: a.Meta}
	}
	v := *a.Value
	if v.IsNull() {
		return Annotated[T]{Meta: a.Meta}
	}
	return decode(v, a.Meta)
}

// Mismatch builds the canonical "expected <typeName>" rejection used by
// every FromValue implementation when the input Value's kind doesn't match
// what T expects. The rejected value is captured in Meta for re-rendering.
func Mismatch[T any](typeName string, v Value, m Meta) Annotated[T] {
	m.AddUnexpectedValueError(typeName, v)
	return Annotated[T]{Meta: m}
}

// Required enforces spec §4.6's `required = true` attribute: an absent
// field becomes a synthesized "value required" error instead of silently
// staying empty.
func Required[T any](a Annotated[T]) Annotated[T] {
	if a.Value != nil {
		return a
	}
	if !a.Meta.IsEmpty() {
		// Already carries a more specific error (e.g. a type mismatch); don't
		// stack a generic one on top of it.
		return a
	}
	m := a.Meta
	m.AddError("value required", nil)
	return Annotated[T]{Meta: m}
}

// NonEmpty enforces spec §4.6's `nonempty = true` attribute on a slice-like
// field: an empty collection is treated the same as a required-violation.
func NonEmpty[T any](a Annotated[[]T]) Annotated[[]T] {
	if a.Value != nil && len(*a.Value) == 0 {
		m := a.Meta
		m.AddError("value required", nil)
		return Annotated[[]T]{Meta: m}
	}
	return a
}

// StringFromValue accepts only KindString; everything else is rejected as
// "expected a string".
func StringFromValue(a Annotated[Value]) Annotated[string] {
	return FromValue(a, func(v Value, m Meta) Annotated[string] {
		if s, ok := v.AsString(); ok {
			return Annotated[string]{Value: &s, Meta: m}
		}
		return Mismatch[string]("a string", v, m)
	})
}

// BoolFromValue accepts only KindBool.
func BoolFromValue(a Annotated[Value]) Annotated[bool] {
	return FromValue(a, func(v Value, m Meta) Annotated[bool] {
		if b, ok := v.AsBool(); ok {
			return Annotated[bool]{Value: &b, Meta: m}
		}
		return Mismatch[bool]("a boolean", v, m)
	})
}

// Uint64FromValue accepts KindU64 directly, and KindI64 when
// non-negative (a losslessly convertible integer per spec §4.4).
func Uint64FromValue(a Annotated[Value]) Annotated[uint64] {
	return FromValue(a, func(v Value, m Meta) Annotated[uint64] {
		if u, ok := v.AsU64(); ok {
			return Annotated[uint64]{Value: &u, Meta: m}
		}
		if i, ok := v.AsI64(); ok && i >= 0 {
			u := uint64(i)
			return Annotated[uint64]{Value: &u, Meta: m}
		}
		return Mismatch[uint64]("an unsigned integer", v, m)
	})
}

// Int64FromValue accepts KindI64 directly, and KindU64 when it fits in the
// signed range.
func Int64FromValue(a Annotated[Value]) Annotated[int64] {
	return FromValue(a, func(v Value, m Meta) Annotated[int64] {
		if i, ok := v.AsI64(); ok {
			return Annotated[int64]{Value: &i, Meta: m}
		}
		if u, ok := v.AsU64(); ok && u <= 1<<63-1 {
			i := int64(u)
			return Annotated[int64]{Value: &i, Meta: m}
		}
		return Mismatch[int64]("an integer", v, m)
	})
}

// Float64FromValue accepts KindF64, plus the integer kinds (widened
// losslessly for the common case of a JSON integer feeding a float field).
func Float64FromValue(a Annotated[Value]) Annotated[float64] {
	return FromValue(a, func(v Value, m Meta) Annotated[float64] {
		if f, ok := v.AsF64(); ok {
			return Annotated[float64]{Value: &f, Meta: m}
		}
		if i, ok := v.AsI64(); ok {
			f := float64(i)
			return Annotated[float64]{Value: &f, Meta: m}
		}
		if u, ok := v.AsU64(); ok {
			f := float64(u)
			return Annotated[float64]{Value: &f, Meta: m}
		}
		return Mismatch[float64]("a number", v, m)
	})
}

// ValueFromValue is the identity FromValue for Value itself (spec §4.1:
// "Value has no FromValue beyond identity").
func ValueFromValue(a Annotated[Value]) Annotated[Value] {
	return a
}

// ArrayFromValue decodes a KindArray element-wise using elem, matching
// spec §4.4's Array<T> rule: non-arrays are rejected wholesale.
func ArrayFromValue[T any](a Annotated[Value], elem func(Annotated[Value]) Annotated[T]) Annotated[[]Annotated[T]] {
	return FromValue(a, func(v Value, m Meta) Annotated[[]Annotated[T]] {
		items, ok := v.AsArray()
		if !ok {
			return Mismatch[[]Annotated[T]]("an array", v, m)
		}
		out := make([]Annotated[T], len(items))
		for i, it := range items {
			out[i] = elem(it)
		}
		return Annotated[[]Annotated[T]]{Value: &out, Meta: m}
	})
}

// ObjectFromValue decodes a KindObject value-wise using elem, matching
// spec §4.4's Object<T> rule. Key order is preserved.
func ObjectFromValue[T any](a Annotated[Value], elem func(Annotated[Value]) Annotated[T]) Annotated[AnnotatedMap[T]] {
	return FromValue(a, func(v Value, m Meta) Annotated[AnnotatedMap[T]] {
		obj, ok := v.AsObject()
		if !ok {
			return Mismatch[AnnotatedMap[T]]("an object", v, m)
		}
		out := NewAnnotatedMap[T]()
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, elem(pair.Value))
		}
		return Annotated[AnnotatedMap[T]]{Value: &out, Meta: m}
	})
}
