package process

import (
	"github.com/ingestcore/annotated"
	"github.com/ingestcore/annotated/event"
)

func attrFor(fields []annotated.FieldAttributes, goName string) annotated.FieldAttributes {
	for _, f := range fields {
		if f.GoName == goName {
			return f
		}
	}
	return annotated.FieldAttributes{GoName: goName, WireName: goName}
}

// stringMapToObject lifts a string-valued map (Query, Cookies and Headers
// are all the same underlying AnnotatedMap[string]) into the
// Annotated[annotated.Object] shape Processor.ProcessObject expects, so the
// same redaction/truncation machinery that guards every other databag field
// can see into it.
func stringMapToObject(a annotated.Annotated[annotated.AnnotatedMap[string]]) annotated.Annotated[annotated.Object] {
	if a.Value == nil {
		return annotated.Annotated[annotated.Object]{Meta: a.Meta}
	}
	out := annotated.NewObject()
	for pair := (*a.Value).Oldest(); pair != nil; pair = pair.Next() {
		entry := pair.Value
		if entry.Value != nil {
			v := annotated.String(*entry.Value)
			out.Set(pair.Key, annotated.Annotated[annotated.Value]{Value: &v, Meta: entry.Meta})
		} else {
			out.Set(pair.Key, annotated.Annotated[annotated.Value]{Meta: entry.Meta})
		}
	}
	return annotated.Annotated[annotated.Object]{Value: &out, Meta: a.Meta}
}

// objectToStringMap is the inverse of stringMapToObject.
func objectToStringMap(a annotated.Annotated[annotated.Object]) annotated.Annotated[annotated.AnnotatedMap[string]] {
	if a.Value == nil {
		return annotated.Annotated[annotated.AnnotatedMap[string]]{Meta: a.Meta}
	}
	out := annotated.NewAnnotatedMap[string]()
	for pair := (*a.Value).Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, annotated.StringFromValue(pair.Value))
	}
	return annotated.Annotated[annotated.AnnotatedMap[string]]{Value: &out, Meta: a.Meta}
}

// ProcessFrame walks a single stacktrace frame's string and databag fields
// in declared order (spec §4.7), handing each to p.
func ProcessFrame(a annotated.Annotated[event.Frame], st *State, p Processor) annotated.Annotated[event.Frame] {
	if a.Value == nil {
		return a
	}
	fields := annotated.FieldsOf[event.Frame]()
	f := *a.Value

	st.Path.With("function", func() { f.Function = p.ProcessString(f.Function, st, attrFor(fields, "Function")) })
	st.Path.With("symbol", func() { f.Symbol = p.ProcessString(f.Symbol, st, attrFor(fields, "Symbol")) })
	st.Path.With("module", func() { f.Module = p.ProcessString(f.Module, st, attrFor(fields, "Module")) })
	st.Path.With("package", func() { f.Package = p.ProcessString(f.Package, st, attrFor(fields, "Package")) })
	st.Path.With("filename", func() { f.Filename = p.ProcessString(f.Filename, st, attrFor(fields, "Filename")) })
	st.Path.With("abs_path", func() { f.AbsPath = p.ProcessString(f.AbsPath, st, attrFor(fields, "AbsPath")) })
	st.Path.With("context_line", func() { f.CurrentLine = p.ProcessString(f.CurrentLine, st, attrFor(fields, "CurrentLine")) })
	st.Path.With("vars", func() { f.Vars = p.ProcessObject(f.Vars, st, attrFor(fields, "Vars")) })
	st.Path.With("trust", func() { f.Trust = p.ProcessString(f.Trust, st, attrFor(fields, "Trust")) })
	st.Path.With("other", func() {
		other := p.ProcessObject(annotated.New(f.Other), st, attrFor(fields, "Other"))
		if other.Value != nil {
			f.Other = *other.Value
		}
	})

	return annotated.Annotated[event.Frame]{Value: &f, Meta: a.Meta}
}

// ProcessStacktrace walks frames in order. Registers and the other sink are
// not visited.
func ProcessStacktrace(a annotated.Annotated[event.Stacktrace], st *State, p Processor) annotated.Annotated[event.Stacktrace] {
	if a.Value == nil {
		return a
	}
	s := *a.Value
	if s.Frames.Value != nil {
		frames := *s.Frames.Value
		for i := range frames {
			st.Path.WithIndex(i, func() {
				frames[i] = ProcessFrame(frames[i], st, p)
			})
		}
		s.Frames = annotated.Annotated[[]annotated.Annotated[event.Frame]]{Value: &frames, Meta: s.Frames.Meta}
	}
	return annotated.Annotated[event.Stacktrace]{Value: &s, Meta: a.Meta}
}

// ProcessBreadcrumb walks a single breadcrumb's category, level, message and
// data fields in declared order; timestamp, type and the other sink are not
// visited.
func ProcessBreadcrumb(a annotated.Annotated[event.Breadcrumb], st *State, p Processor) annotated.Annotated[event.Breadcrumb] {
	if a.Value == nil {
		return a
	}
	fields := annotated.FieldsOf[event.Breadcrumb]()
	b := *a.Value

	st.Path.With("category", func() { b.Category = p.ProcessString(b.Category, st, attrFor(fields, "Category")) })
	st.Path.With("level", func() { b.Level = p.ProcessString(b.Level, st, attrFor(fields, "Level")) })
	st.Path.With("message", func() { b.Message = p.ProcessString(b.Message, st, attrFor(fields, "Message")) })
	st.Path.With("data", func() { b.Data = p.ProcessObject(b.Data, st, attrFor(fields, "Data")) })

	return annotated.Annotated[event.Breadcrumb]{Value: &b, Meta: a.Meta}
}

// ProcessRequest walks every declared field of a request, in the order
// Request itself declares them: url, method, data, query_string, fragment,
// cookies, headers, env, inferred_content_type, other. QueryString, Cookies
// and Headers are string-valued maps rather than Object<Value>, so each is
// lifted to an object shape via stringMapToObject before being handed to
// p.ProcessObject and lowered back on the way out — the same
// TruncateProcessor/RedactProcessor machinery that guards every other
// databag field therefore also reaches these three.
func ProcessRequest(a annotated.Annotated[event.Request], st *State, p Processor) annotated.Annotated[event.Request] {
	if a.Value == nil {
		return a
	}
	fields := annotated.FieldsOf[event.Request]()
	r := *a.Value

	st.Path.With("url", func() { r.URL = p.ProcessString(r.URL, st, attrFor(fields, "URL")) })
	st.Path.With("method", func() { r.Method = p.ProcessString(r.Method, st, attrFor(fields, "Method")) })
	st.Path.With("data", func() {
		if r.Data.Value == nil {
			return
		}
		obj, ok := r.Data.Value.AsObject()
		if !ok {
			return
		}
		wrapped := annotated.Annotated[annotated.Object]{Value: &obj, Meta: r.Data.Meta}
		result := p.ProcessObject(wrapped, st, attrFor(fields, "Data"))
		if result.Value != nil {
			v := annotated.ObjectValue(*result.Value)
			r.Data = annotated.Annotated[annotated.Value]{Value: &v, Meta: result.Meta}
		} else {
			r.Data = annotated.Annotated[annotated.Value]{Value: r.Data.Value, Meta: result.Meta}
		}
	})
	st.Path.With("query_string", func() {
		r.QueryString = objectToStringMap(p.ProcessObject(stringMapToObject(r.QueryString), st, attrFor(fields, "QueryString")))
	})
	st.Path.With("fragment", func() { r.Fragment = p.ProcessString(r.Fragment, st, attrFor(fields, "Fragment")) })
	st.Path.With("cookies", func() {
		r.Cookies = objectToStringMap(p.ProcessObject(stringMapToObject(r.Cookies), st, attrFor(fields, "Cookies")))
	})
	st.Path.With("headers", func() {
		r.Headers = objectToStringMap(p.ProcessObject(stringMapToObject(r.Headers), st, attrFor(fields, "Headers")))
	})
	st.Path.With("env", func() { r.Env = p.ProcessObject(r.Env, st, attrFor(fields, "Env")) })
	st.Path.With("inferred_content_type", func() {
		r.InferredContentType = p.ProcessString(r.InferredContentType, st, attrFor(fields, "InferredContentType"))
	})
	st.Path.With("other", func() {
		other := p.ProcessObject(annotated.New(r.Other), st, attrFor(fields, "Other"))
		if other.Value != nil {
			r.Other = *other.Value
		}
	})

	return annotated.Annotated[event.Request]{Value: &r, Meta: a.Meta}
}

// ProcessEvent is the root of the traversal: it walks request, stacktrace
// and breadcrumbs in declared order.
func ProcessEvent(a annotated.Annotated[event.Event], st *State, p Processor) annotated.Annotated[event.Event] {
	if a.Value == nil {
		return a
	}
	e := *a.Value

	st.Path.With("request", func() { e.Request = ProcessRequest(e.Request, st, p) })
	st.Path.With("stacktrace", func() { e.Stacktrace = ProcessStacktrace(e.Stacktrace, st, p) })
	if e.Breadcrumbs.Value != nil {
		crumbs := *e.Breadcrumbs.Value
		st.Path.With("breadcrumbs", func() {
			for i := range crumbs {
				st.Path.WithIndex(i, func() {
					crumbs[i] = ProcessBreadcrumb(crumbs[i], st, p)
				})
			}
		})
		e.Breadcrumbs = annotated.Annotated[[]annotated.Annotated[event.Breadcrumb]]{Value: &crumbs, Meta: e.Breadcrumbs.Meta}
	}

	return annotated.Annotated[event.Event]{Value: &e, Meta: a.Meta}
}
