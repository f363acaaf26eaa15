// Package annotated implements the annotated value model and the
// bidirectional FromValue/ToValue mapping layer described for this
// repository's event-ingestion data layer: a loosely-typed JSON value tree
// on one side, strictly-typed domain records on the other, with a Meta
// sidecar threading parse errors and processing hints through every field
// in between.
package annotated

// Annotated is the universal field carrier: an optional value paired with
// its Meta sidecar. There are four canonical shapes a caller will see:
//
//  1. (Some(v), empty)                  — successful value.
//  2. (None, empty)                     — absent; the field was not provided.
//  3. (None, errors + original)         — failed parse; original retained.
//  4. (Some(v), remarks)                — value present but annotated by a
//     processor.
type Annotated[T any] struct {
	Value *T
	Meta  Meta
}

// New wraps a value with no accompanying metadata.
func New[T any](v T) Annotated[T] {
	return Annotated[T]{Value: &v}
}

// Empty returns an absent field with no metadata — the field was simply
// never provided.
func Empty[T any]() Annotated[T] {
	return Annotated[T]{}
}

// FromError builds a failed-parse Annotated: no value, one error recorded,
// with the rejected payload captured for later re-rendering.
func FromError[T any](message string, original *Value) Annotated[T] {
	var m Meta
	m.AddError(message, original)
	return Annotated[T]{Meta: m}
}

// IsAbsent reports whether a has no value at all (shapes 2 and 3 above).
func (a Annotated[T]) IsAbsent() bool {
	return a.Value == nil
}

// Get returns the contained value and whether it was present.
func (a Annotated[T]) Get() (T, bool) {
	if a.Value == nil {
		var zero T
		return zero, false
	}
	return *a.Value, true
}

// MapValue applies f to a present value, leaving Meta and absence untouched.
func (a Annotated[T]) MapValue(f func(T) T) Annotated[T] {
	if a.Value == nil {
		return a
	}
	v := f(*a.Value)
	return Annotated[T]{Value: &v, Meta: a.Meta}
}

// AndThen chains a fallible-looking transform: f is only invoked when a
// value is present, and it is responsible for folding its own outcome
// (including any new Meta) into the result. Meta from a is merged in
// first so f only needs to add what's new.
func AndThen[T, U any](a Annotated[T], f func(T) Annotated[U]) Annotated[U] {
	if a.Value == nil {
		return Annotated[U]{Meta: a.Meta}
	}
	out := f(*a.Value)
	out.Meta = a.Meta.Merge(out.Meta)
	return out
}

// WithRemark returns a copy of a with remark appended to its Meta.
func (a Annotated[T]) WithRemark(remark string) Annotated[T] {
	m := a.Meta
	m.AddRemark(remark)
	return Annotated[T]{Value: a.Value, Meta: m}
}

// Deleted returns the "processor removed this field" shape: no value, with
// a remark recorded and the original value stashed so ToValue can still
// reconstruct a best-effort output if nothing else claims it.
func Deleted[T any](a Annotated[T], remark string, original *Value) Annotated[T] {
	m := a.Meta
	m.AddRemark(remark)
	if original != nil {
		m.SetOriginalValue(*original)
	}
	return Annotated[T]{Meta: m}
}
