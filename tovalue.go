package annotated

// ToValueFunc encodes a present T into its canonical Value form. It is
// never asked to handle the absent cases — ToValue does that.
type ToValueFunc[T any] func(v T) Value

// ToValue implements the inverse of FromValue (spec §4.5):
//
//   - (None, empty)            -> absent result, field omitted entirely.
//   - (None, meta-with-original) -> the captured original is re-emitted,
//     if any, so the caller gets the best reconstruction available; the
//     error itself still lives in Meta for the "_meta" tree.
//   - (Some(v), _)             -> encode(v)'s canonical form, Meta preserved.
func ToValue[T any](a Annotated[T], encode ToValueFunc[T]) Annotated[Value] {
	if a.Value == nil {
		if orig := a.Meta.original; orig != nil {
			return Annotated[Value]{Value: orig, Meta: a.Meta}
		}
		return Annotated[Value]{Meta: a.Meta}
	}
	v := encode(*a.Value)
	return Annotated[Value]{Value: &v, Meta: a.Meta}
}

// StringToValue is the canonical encoding of a string: identity.
func StringToValue(a Annotated[string]) Annotated[Value] {
	return ToValue(a, func(s string) Value { return String(s) })
}

// BoolToValue is the canonical encoding of a bool: identity.
func BoolToValue(a Annotated[bool]) Annotated[Value] {
	return ToValue(a, func(b bool) Value { return Bool(b) })
}

// Uint64ToValue picks the narrowest integer tag: spec §4.1 says ToValue
// chooses I64 when the value fits the signed range, U64 otherwise.
func Uint64ToValue(a Annotated[uint64]) Annotated[Value] {
	return ToValue(a, func(u uint64) Value {
		if u <= 1<<63-1 {
			return I64(int64(u))
		}
		return U64(u)
	})
}

// Int64ToValue always fits I64 by construction.
func Int64ToValue(a Annotated[int64]) Annotated[Value] {
	return ToValue(a, func(i int64) Value { return I64(i) })
}

// Float64ToValue is the canonical encoding of a float: identity.
func Float64ToValue(a Annotated[float64]) Annotated[Value] {
	return ToValue(a, func(f float64) Value { return F64(f) })
}

// ValueToValue is the identity ToValue for Value itself.
func ValueToValue(a Annotated[Value]) Annotated[Value] {
	return a
}

// ArrayToValue encodes a []Annotated[T] field element-wise.
func ArrayToValue[T any](a Annotated[[]Annotated[T]], elem func(Annotated[T]) Annotated[Value]) Annotated[Value] {
	return ToValue(a, func(items []Annotated[T]) Value {
		out := make([]Annotated[Value], len(items))
		for i, it := range items {
			out[i] = elem(it)
		}
		return Array(out)
	})
}

// ObjectToValue encodes an AnnotatedMap[T] field value-wise, preserving key
// order.
func ObjectToValue[T any](a Annotated[AnnotatedMap[T]], elem func(Annotated[T]) Annotated[Value]) Annotated[Value] {
	return ToValue(a, func(m AnnotatedMap[T]) Value {
		out := NewObject()
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, elem(pair.Value))
		}
		return ObjectValue(out)
	})
}
