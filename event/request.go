package event

import "github.com/ingestcore/annotated"

// Request holds HTTP request information captured alongside an event.
//
// process_func="process_request"
type Request struct {
	URL                 annotated.Annotated[string]          `attr:"pii_kind=freeform,max_chars=path"`
	Method              annotated.Annotated[string]
	Data                annotated.Annotated[annotated.Value] `attr:"pii_kind=databag,bag_size=large"`
	QueryString         annotated.Annotated[Query]           `attr:"pii_kind=databag,bag_size=small"`
	Fragment            annotated.Annotated[string]          `attr:"pii_kind=freeform,max_chars=summary"`
	Cookies             annotated.Annotated[Cookies]         `attr:"pii_kind=databag,bag_size=medium"`
	Headers             annotated.Annotated[Headers]         `attr:"pii_kind=databag,bag_size=large"`
	Env                 annotated.Annotated[annotated.Object] `attr:"pii_kind=databag,bag_size=large"`
	InferredContentType annotated.Annotated[string]
	Other               annotated.Object `attr:"additional_properties,pii_kind=databag"`
}

var requestFields = map[string]bool{
	"url": true, "method": true, "data": true, "query_string": true,
	"fragment": true, "cookies": true, "headers": true, "env": true,
	"inferred_content_type": true,
}

// RequestFromValue decodes request information from an object.
func RequestFromValue(a annotated.Annotated[annotated.Value]) annotated.Annotated[Request] {
	return annotated.FromValue(a, func(v annotated.Value, m annotated.Meta) annotated.Annotated[Request] {
		obj, ok := v.AsObject()
		if !ok {
			return annotated.Mismatch[Request]("a request", v, m)
		}
		r := Request{
			URL:                 annotated.StringFromValue(annotated.GetField(obj, "url")),
			Method:              annotated.StringFromValue(annotated.GetField(obj, "method")),
			Data:                annotated.ValueFromValue(annotated.GetField(obj, "data")),
			QueryString:         QueryFromValue(annotated.GetField(obj, "query_string")),
			Fragment:            annotated.StringFromValue(annotated.GetField(obj, "fragment")),
			Cookies:             CookiesFromValue(annotated.GetField(obj, "cookies")),
			Headers:             HeadersFromValue(annotated.GetField(obj, "headers")),
			Env:                 annotated.ObjectFromValue(annotated.GetField(obj, "env"), annotated.ValueFromValue),
			InferredContentType: annotated.StringFromValue(annotated.GetField(obj, "inferred_content_type")),
			Other:               annotated.OtherFields(obj, requestFields),
		}
		return annotated.Annotated[Request]{Value: &r, Meta: m}
	})
}

// RequestToValue encodes Request back to its canonical object form.
func RequestToValue(a annotated.Annotated[Request]) annotated.Annotated[annotated.Value] {
	return annotated.ToValue(a, func(r Request) annotated.Value {
		fields := []annotated.Field{
			{Key: "url", Value: annotated.StringToValue(r.URL)},
			{Key: "method", Value: annotated.StringToValue(r.Method)},
			{Key: "data", Value: annotated.ValueToValue(r.Data)},
			{Key: "query_string", Value: QueryToValue(r.QueryString)},
			{Key: "fragment", Value: annotated.StringToValue(r.Fragment)},
			{Key: "cookies", Value: CookiesToValue(r.Cookies)},
			{Key: "headers", Value: HeadersToValue(r.Headers)},
			{Key: "env", Value: annotated.ObjectToValue(r.Env, annotated.ValueToValue)},
			{Key: "inferred_content_type", Value: annotated.StringToValue(r.InferredContentType)},
		}
		return annotated.Record(fields, r.Other)
	})
}
