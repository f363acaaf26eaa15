package event

import "github.com/ingestcore/annotated"

// Stacktrace holds a full backtrace: an ordered, required, non-empty list
// of frames plus whatever register state was captured at the top frame.
//
// process_func="process_stacktrace"
type Stacktrace struct {
	Frames    annotated.Annotated[[]annotated.Annotated[Frame]]   `attr:"required,nonempty"`
	Registers annotated.Annotated[annotated.AnnotatedMap[RegVal]]
	Other     annotated.Object `attr:"additional_properties"`
}

var stacktraceFields = map[string]bool{"frames": true, "registers": true}

// StacktraceFromValue decodes a stacktrace, enforcing that frames is
// present and non-empty.
func StacktraceFromValue(a annotated.Annotated[annotated.Value]) annotated.Annotated[Stacktrace] {
	return annotated.FromValue(a, func(v annotated.Value, m annotated.Meta) annotated.Annotated[Stacktrace] {
		obj, ok := v.AsObject()
		if !ok {
			return annotated.Mismatch[Stacktrace]("a stacktrace", v, m)
		}
		frames := annotated.ArrayFromValue(annotated.GetField(obj, "frames"), FrameFromValue)
		frames = annotated.Required(frames)
		frames = annotated.NonEmpty(frames)
		st := Stacktrace{
			Frames:    frames,
			Registers: annotated.ObjectFromValue(annotated.GetField(obj, "registers"), RegValFromValue),
			Other:     annotated.OtherFields(obj, stacktraceFields),
		}
		return annotated.Annotated[Stacktrace]{Value: &st, Meta: m}
	})
}

// StacktraceToValue encodes a stacktrace back to its canonical object form.
func StacktraceToValue(a annotated.Annotated[Stacktrace]) annotated.Annotated[annotated.Value] {
	return annotated.ToValue(a, func(st Stacktrace) annotated.Value {
		fields := []annotated.Field{
			{Key: "frames", Value: annotated.ArrayToValue(st.Frames, FrameToValue)},
			{Key: "registers", Value: annotated.ObjectToValue(st.Registers, RegValToValue)},
		}
		return annotated.Record(fields, st.Other)
	})
}
