package event

import (
	"github.com/ingestcore/annotated"
	"github.com/ingestcore/annotated/header"
)

// Headers is an insertion-ordered map from canonicalized header name to
// value.
type Headers = annotated.AnnotatedMap[string]

// HeadersFromValue accepts either an array of [key, value] pairs (the wire
// shape many SDKs send headers in, since a header name can repeat) or a
// plain object. Either way every key is run through header.Normalize.
//
// A pair with a string key but a non-string value is kept under its
// normalized name with the value's own "expected a string" error. Items
// that aren't a two-element array, or whose key isn't a string, don't get
// silently dropped: whatever raw shape was recoverable is collected into a
// container-level "invalid non-header values" error so the producer can
// still see what was rejected.
func HeadersFromValue(a annotated.Annotated[annotated.Value]) annotated.Annotated[Headers] {
	return annotated.FromValue(a, func(v annotated.Value, m annotated.Meta) annotated.Annotated[Headers] {
		if items, ok := v.AsArray(); ok {
			out := annotated.NewAnnotatedMap[string]()
			var badItems []annotated.Annotated[annotated.Value]
			for _, item := range items {
				if pair, ok := itemAsPair(item); ok {
					keyAnn := annotated.StringFromValue(pair[0])
					if keyAnn.Value != nil {
						valAnn := annotated.StringFromValue(pair[1])
						entryMeta := item.Meta.Merge(valAnn.Meta)
						out.Set(header.Normalize(*keyAnn.Value), annotated.Annotated[string]{Value: valAnn.Value, Meta: entryMeta})
						continue
					}
					if pair[0].Value != nil && pair[1].Value != nil {
						badItems = append(badItems, annotated.New(annotated.Array([]annotated.Annotated[annotated.Value]{
							annotated.New(*pair[0].Value), annotated.New(*pair[1].Value),
						})))
					}
					continue
				}
				if item.Value != nil {
					badItems = append(badItems, annotated.New(*item.Value))
				}
			}
			if len(badItems) > 0 {
				bad := annotated.Array(badItems)
				m.AddError("invalid non-header values", &bad)
			}
			return annotated.Annotated[Headers]{Value: &out, Meta: m}
		}
		if obj, ok := v.AsObject(); ok {
			out := annotated.NewAnnotatedMap[string]()
			for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
				out.Set(header.Normalize(pair.Key), annotated.StringFromValue(pair.Value))
			}
			return annotated.Annotated[Headers]{Value: &out, Meta: m}
		}
		return annotated.Mismatch[Headers]("headers", v, m)
	})
}

// HeadersToValue encodes Headers back into a plain object.
func HeadersToValue(a annotated.Annotated[Headers]) annotated.Annotated[annotated.Value] {
	return annotated.ObjectToValue(a, annotated.StringToValue)
}

func itemAsPair(item annotated.Annotated[annotated.Value]) ([2]annotated.Annotated[annotated.Value], bool) {
	if item.Value == nil {
		return [2]annotated.Annotated[annotated.Value]{}, false
	}
	arr, ok := item.Value.AsArray()
	if !ok || len(arr) != 2 {
		return [2]annotated.Annotated[annotated.Value]{}, false
	}
	return [2]annotated.Annotated[annotated.Value]{arr[0], arr[1]}, true
}
