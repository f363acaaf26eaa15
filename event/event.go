package event

import "github.com/ingestcore/annotated"

// Event is the top-level aggregate tying a single ingested occurrence's
// request, stacktrace, breadcrumb trail and identity together. It's the
// root of the traversal: processing an ingested payload starts here.
//
// process_func="process_event"
type Event struct {
	EventID     annotated.Annotated[EventID]
	Request     annotated.Annotated[Request]
	Stacktrace  annotated.Annotated[Stacktrace]
	Breadcrumbs annotated.Annotated[[]annotated.Annotated[Breadcrumb]]
	Other       annotated.Object `attr:"additional_properties"`
}

var eventFields = map[string]bool{
	"event_id": true, "request": true, "stacktrace": true, "breadcrumbs": true,
}

// EventFromValue decodes a full event payload.
func EventFromValue(a annotated.Annotated[annotated.Value]) annotated.Annotated[Event] {
	return annotated.FromValue(a, func(v annotated.Value, m annotated.Meta) annotated.Annotated[Event] {
		obj, ok := v.AsObject()
		if !ok {
			return annotated.Mismatch[Event]("an event", v, m)
		}
		e := Event{
			EventID:     EventIDFromValue(annotated.GetField(obj, "event_id")),
			Request:     RequestFromValue(annotated.GetField(obj, "request")),
			Stacktrace:  StacktraceFromValue(annotated.GetField(obj, "stacktrace")),
			Breadcrumbs: annotated.ArrayFromValue(annotated.GetField(obj, "breadcrumbs"), BreadcrumbFromValue),
			Other:       annotated.OtherFields(obj, eventFields),
		}
		return annotated.Annotated[Event]{Value: &e, Meta: m}
	})
}

// EventToValue encodes an event back to its canonical object form.
func EventToValue(a annotated.Annotated[Event]) annotated.Annotated[annotated.Value] {
	return annotated.ToValue(a, func(e Event) annotated.Value {
		fields := []annotated.Field{
			{Key: "event_id", Value: EventIDToValue(e.EventID)},
			{Key: "request", Value: RequestToValue(e.Request)},
			{Key: "stacktrace", Value: StacktraceToValue(e.Stacktrace)},
			{Key: "breadcrumbs", Value: annotated.ArrayToValue(e.Breadcrumbs, BreadcrumbToValue)},
		}
		return annotated.Record(fields, e.Other)
	})
}
