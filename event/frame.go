package event

import "github.com/ingestcore/annotated"

// Frame holds information about a single stacktrace frame.
//
// process_func="process_frame"
type Frame struct {
	Function        annotated.Annotated[string]                        `attr:"max_chars=symbol"`
	Symbol          annotated.Annotated[string]                        `attr:"max_chars=symbol"`
	Module          annotated.Annotated[string]                        `attr:"pii_kind=freeform"`
	Package         annotated.Annotated[string]                        `attr:"pii_kind=freeform"`
	Filename        annotated.Annotated[string]                        `attr:"pii_kind=freeform,max_chars=short_path"`
	AbsPath         annotated.Annotated[string]                        `attr:"pii_kind=freeform,max_chars=path"`
	Line            annotated.Annotated[uint64]                        `attr:"field=lineno"`
	Column          annotated.Annotated[uint64]                        `attr:"field=colno"`
	PreLines        annotated.Annotated[[]annotated.Annotated[string]] `attr:"field=pre_context"`
	CurrentLine     annotated.Annotated[string]                        `attr:"field=context_line"`
	PostLines       annotated.Annotated[[]annotated.Annotated[string]] `attr:"field=post_context"`
	InApp           annotated.Annotated[bool]
	Vars            annotated.Annotated[annotated.Object] `attr:"pii_kind=databag"`
	ImageAddr       annotated.Annotated[Addr]
	InstructionAddr annotated.Annotated[Addr]
	SymbolAddr      annotated.Annotated[Addr]
	Trust           annotated.Annotated[string] `attr:"max_chars=enumlike"`
	Other           annotated.Object            `attr:"additional_properties,pii_kind=databag"`
}

var frameFields = map[string]bool{
	"function": true, "symbol": true, "module": true, "package": true,
	"filename": true, "abs_path": true, "lineno": true, "colno": true,
	"pre_context": true, "context_line": true, "post_context": true,
	"in_app": true, "vars": true, "image_addr": true, "instruction_addr": true,
	"symbol_addr": true, "trust": true,
}

// FrameFromValue decodes a single stacktrace frame.
func FrameFromValue(a annotated.Annotated[annotated.Value]) annotated.Annotated[Frame] {
	return annotated.FromValue(a, func(v annotated.Value, m annotated.Meta) annotated.Annotated[Frame] {
		obj, ok := v.AsObject()
		if !ok {
			return annotated.Mismatch[Frame]("a frame", v, m)
		}
		f := Frame{
			Function:        annotated.StringFromValue(annotated.GetField(obj, "function")),
			Symbol:          annotated.StringFromValue(annotated.GetField(obj, "symbol")),
			Module:          annotated.StringFromValue(annotated.GetField(obj, "module")),
			Package:         annotated.StringFromValue(annotated.GetField(obj, "package")),
			Filename:        annotated.StringFromValue(annotated.GetField(obj, "filename")),
			AbsPath:         annotated.StringFromValue(annotated.GetField(obj, "abs_path")),
			Line:            annotated.Uint64FromValue(annotated.GetField(obj, "lineno")),
			Column:          annotated.Uint64FromValue(annotated.GetField(obj, "colno")),
			PreLines:        annotated.ArrayFromValue(annotated.GetField(obj, "pre_context"), annotated.StringFromValue),
			CurrentLine:     annotated.StringFromValue(annotated.GetField(obj, "context_line")),
			PostLines:       annotated.ArrayFromValue(annotated.GetField(obj, "post_context"), annotated.StringFromValue),
			InApp:           annotated.BoolFromValue(annotated.GetField(obj, "in_app")),
			Vars:            annotated.ObjectFromValue(annotated.GetField(obj, "vars"), annotated.ValueFromValue),
			ImageAddr:       AddrFromValue(annotated.GetField(obj, "image_addr")),
			InstructionAddr: AddrFromValue(annotated.GetField(obj, "instruction_addr")),
			SymbolAddr:      AddrFromValue(annotated.GetField(obj, "symbol_addr")),
			Trust:           annotated.StringFromValue(annotated.GetField(obj, "trust")),
			Other:           annotated.OtherFields(obj, frameFields),
		}
		return annotated.Annotated[Frame]{Value: &f, Meta: m}
	})
}

// FrameToValue encodes a frame back to its canonical object form.
func FrameToValue(a annotated.Annotated[Frame]) annotated.Annotated[annotated.Value] {
	return annotated.ToValue(a, func(f Frame) annotated.Value {
		fields := []annotated.Field{
			{Key: "function", Value: annotated.StringToValue(f.Function)},
			{Key: "symbol", Value: annotated.StringToValue(f.Symbol)},
			{Key: "module", Value: annotated.StringToValue(f.Module)},
			{Key: "package", Value: annotated.StringToValue(f.Package)},
			{Key: "filename", Value: annotated.StringToValue(f.Filename)},
			{Key: "abs_path", Value: annotated.StringToValue(f.AbsPath)},
			{Key: "lineno", Value: annotated.Uint64ToValue(f.Line)},
			{Key: "colno", Value: annotated.Uint64ToValue(f.Column)},
			{Key: "pre_context", Value: annotated.ArrayToValue(f.PreLines, annotated.StringToValue)},
			{Key: "context_line", Value: annotated.StringToValue(f.CurrentLine)},
			{Key: "post_context", Value: annotated.ArrayToValue(f.PostLines, annotated.StringToValue)},
			{Key: "in_app", Value: annotated.BoolToValue(f.InApp)},
			{Key: "vars", Value: annotated.ObjectToValue(f.Vars, annotated.ValueToValue)},
			{Key: "image_addr", Value: AddrToValue(f.ImageAddr)},
			{Key: "instruction_addr", Value: AddrToValue(f.InstructionAddr)},
			{Key: "symbol_addr", Value: AddrToValue(f.SymbolAddr)},
			{Key: "trust", Value: annotated.StringToValue(f.Trust)},
		}
		return annotated.Record(fields, f.Other)
	})
}
