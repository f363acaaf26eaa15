package event

import (
	"strings"

	"github.com/ingestcore/annotated"
	"github.com/ingestcore/annotated/internal/queryparam"
)

// Query is an insertion-ordered map of query string parameters.
type Query = annotated.AnnotatedMap[string]

// QueryFromValue accepts either a raw query string (with or without a
// leading '?') or an object. Object values are normally strings (or null),
// but legacy producers sometimes sent a nested object/array value for a
// single parameter; rather than reject those outright, the nested value is
// re-serialized to a compact JSON string so nothing is lost.
func QueryFromValue(a annotated.Annotated[annotated.Value]) annotated.Annotated[Query] {
	return annotated.FromValue(a, func(v annotated.Value, m annotated.Meta) annotated.Annotated[Query] {
		if s, ok := v.AsString(); ok {
			qs := strings.TrimPrefix(s, "?")
			parsed := queryparam.Parse(qs)
			out := annotated.NewAnnotatedMap[string]()
			for pair := parsed.Oldest(); pair != nil; pair = pair.Next() {
				out.Set(pair.Key, annotated.New(pair.Value))
			}
			return annotated.Annotated[Query]{Value: &out, Meta: m}
		}
		if obj, ok := v.AsObject(); ok {
			out := annotated.NewAnnotatedMap[string]()
			for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
				out.Set(pair.Key, queryEntryFromValue(pair.Value))
			}
			return annotated.Annotated[Query]{Value: &out, Meta: m}
		}
		return annotated.Mismatch[Query]("query-string or map", v, m)
	})
}

func queryEntryFromValue(a annotated.Annotated[annotated.Value]) annotated.Annotated[string] {
	if a.Value != nil {
		switch a.Value.Kind() {
		case annotated.KindObject, annotated.KindArray:
			// Legacy nested value: keep the meta, re-encode the data as a
			// JSON string instead of rejecting it outright.
			encoded := string(annotated.EncodeValueJSON(*a.Value))
			return annotated.Annotated[string]{Value: &encoded, Meta: a.Meta}
		}
	}
	return annotated.StringFromValue(a)
}

// QueryToValue encodes Query back into a plain object.
func QueryToValue(a annotated.Annotated[Query]) annotated.Annotated[annotated.Value] {
	return annotated.ObjectToValue(a, annotated.StringToValue)
}
