package event

import "github.com/ingestcore/annotated"

// Breadcrumb is one entry in the trail of events leading up to an issue —
// a log line, a navigation, a network call — recorded the same way the
// core record types are, so it gets the same PII handling and
// forward-compatible "other" bucket as everything else.
//
// process_func="process_breadcrumb"
type Breadcrumb struct {
	Timestamp annotated.Annotated[string] `attr:"required"`
	Type      annotated.Annotated[string] `attr:"field=ty"`
	Category  annotated.Annotated[string] `attr:"max_chars=short_path"`
	Level     annotated.Annotated[string] `attr:"max_chars=enumlike"`
	Message   annotated.Annotated[string] `attr:"pii_kind=freeform,max_chars=summary"`
	Data      annotated.Annotated[annotated.Object] `attr:"pii_kind=databag,bag_size=small"`
	Other     annotated.Object `attr:"additional_properties"`
}

var breadcrumbFields = map[string]bool{
	"timestamp": true, "ty": true, "category": true, "level": true,
	"message": true, "data": true,
}

// BreadcrumbFromValue decodes a single breadcrumb, requiring a timestamp.
func BreadcrumbFromValue(a annotated.Annotated[annotated.Value]) annotated.Annotated[Breadcrumb] {
	return annotated.FromValue(a, func(v annotated.Value, m annotated.Meta) annotated.Annotated[Breadcrumb] {
		obj, ok := v.AsObject()
		if !ok {
			return annotated.Mismatch[Breadcrumb]("a breadcrumb", v, m)
		}
		b := Breadcrumb{
			Timestamp: annotated.Required(annotated.StringFromValue(annotated.GetField(obj, "timestamp"))),
			Type:      annotated.StringFromValue(annotated.GetField(obj, "ty")),
			Category:  annotated.StringFromValue(annotated.GetField(obj, "category")),
			Level:     annotated.StringFromValue(annotated.GetField(obj, "level")),
			Message:   annotated.StringFromValue(annotated.GetField(obj, "message")),
			Data:      annotated.ObjectFromValue(annotated.GetField(obj, "data"), annotated.ValueFromValue),
			Other:     annotated.OtherFields(obj, breadcrumbFields),
		}
		return annotated.Annotated[Breadcrumb]{Value: &b, Meta: m}
	})
}

// BreadcrumbToValue encodes a breadcrumb back to its canonical object form.
func BreadcrumbToValue(a annotated.Annotated[Breadcrumb]) annotated.Annotated[annotated.Value] {
	return annotated.ToValue(a, func(b Breadcrumb) annotated.Value {
		fields := []annotated.Field{
			{Key: "timestamp", Value: annotated.StringToValue(b.Timestamp)},
			{Key: "ty", Value: annotated.StringToValue(b.Type)},
			{Key: "category", Value: annotated.StringToValue(b.Category)},
			{Key: "level", Value: annotated.StringToValue(b.Level)},
			{Key: "message", Value: annotated.StringToValue(b.Message)},
			{Key: "data", Value: annotated.ObjectToValue(b.Data, annotated.ValueToValue)},
		}
		return annotated.Record(fields, b.Other)
	})
}
