package annotated

// Field is one declared, ordered entry of a record's canonical Object
// encoding. Domain records (Request, Frame, Stacktrace, ...) build a slice
// of these, in declaration order, to hand off to Record.
type Field struct {
	Key   string
	Value Annotated[Value]
}

// Record assembles the canonical Object for a domain record: declared
// fields first, in declaration order, followed by the `other` sink's keys
// in their original insertion order (spec §4.5: "other keys appended after
// declared fields in insertion order").
//
// Per-field omission (absent, empty meta -> field entirely missing from
// the encoded object) isn't decided here — every Field's Annotated[Value]
// is carried through verbatim, and the JSON encoder (see jsonencode.go)
// resolves omit-vs-null-vs-original uniformly for every object entry,
// whether it came from a declared field or a plain Object<T> container.
func Record(fields []Field, other Object) Value {
	obj := NewObject()
	for _, f := range fields {
		obj.Set(f.Key, f.Value)
	}
	if other != nil {
		for pair := other.Oldest(); pair != nil; pair = pair.Next() {
			if _, exists := obj.Get(pair.Key); !exists {
				obj.Set(pair.Key, pair.Value)
			}
		}
	}
	return ObjectValue(obj)
}

// GetField looks up key in obj, returning a true absence (shape 2: None,
// empty) when the key was never provided at all.
func GetField(obj Object, key string) Annotated[Value] {
	if v, ok := obj.Get(key); ok {
		return v
	}
	return Empty[Value]()
}

// OtherFields returns every entry of obj whose key is not in declared, in
// original insertion order — the `additional_properties` sink (spec §4.6).
func OtherFields(obj Object, declared map[string]bool) Object {
	other := NewObject()
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if !declared[pair.Key] {
			other.Set(pair.Key, pair.Value)
		}
	}
	return other
}
