package annotated

import (
	"bytes"
	"strconv"
)

// EncodeValueJSON renders a bare Value as compact JSON data, with no Meta
// consideration at all. This is for callers that need a JSON-text
// representation of a value embedded inside another field (e.g. the
// legacy nested-query-string fallback), not a full document encode.
func EncodeValueJSON(v Value) []byte {
	var buf bytes.Buffer
	w := &jsonWriter{buf: &buf, pretty: false}
	w.writeValue(v, 0)
	return w.buf.Bytes()
}

// EncodeJSON renders a into the canonical wire format (spec §5): the data
// tree as ordinary JSON, with a single "_meta" key added alongside the
// root object's own keys whenever any node in the tree — the root itself
// or any field at any depth — carries non-empty Meta. The meta subtree
// mirrors the data tree's shape, using "" to hold a node's own Meta and
// the node's own key (or array index, as a decimal string) to descend into
// a child's.
//
// EncodeJSON assumes the resolved root value is an object, which holds for
// every domain record in this package; a non-object root is encoded as
// bare data with its Meta silently dropped, since there is no sibling slot
// to hang "_meta" from.
func EncodeJSON(a Annotated[Value], pretty bool) []byte {
	var buf bytes.Buffer
	w := &jsonWriter{buf: &buf, pretty: pretty}

	data, hasData := resolveEntry(a)
	meta := buildMetaNode(a)

	if hasData && data.Kind() == KindObject && meta != nil {
		withMeta := NewObject()
		for pair := data.o.Oldest(); pair != nil; pair = pair.Next() {
			withMeta.Set(pair.Key, pair.Value)
		}
		withMeta.Set("_meta", New(*meta))
		w.writeValue(ObjectValue(withMeta), 0)
	} else if hasData {
		w.writeValue(data, 0)
	} else {
		w.buf.WriteString("null")
	}
	if pretty {
		w.buf.WriteByte('\n')
	}
	return w.buf.Bytes()
}

// resolveEntry applies the one rule shared by every object entry, array
// element and document root (spec §4.5): a true absence (no value, empty
// meta) carries no data at all; otherwise a present value is used as-is,
// an absent-but-annotated one falls back to its stashed original, and
// failing that, null.
func resolveEntry(a Annotated[Value]) (Value, bool) {
	if a.Value != nil {
		return *a.Value, true
	}
	if !a.Meta.IsEmpty() {
		if orig := a.Meta.original; orig != nil {
			return *orig, true
		}
		return Null(), true
	}
	return Value{}, false
}

// buildMetaNode returns the meta mirror for a, or nil if neither a itself
// nor any of its descendants (when a holds an object or array) carry any
// Meta at all.
func buildMetaNode(a Annotated[Value]) *Value {
	node := NewObject()
	if !a.Meta.IsEmpty() {
		node.Set("", New(renderMetaRecord(a.Meta)))
	}
	if a.Value != nil {
		switch a.Value.Kind() {
		case KindObject:
			for pair := a.Value.o.Oldest(); pair != nil; pair = pair.Next() {
				if child := buildMetaNode(pair.Value); child != nil {
					node.Set(pair.Key, New(*child))
				}
			}
		case KindArray:
			for i, item := range a.Value.a {
				if child := buildMetaNode(item); child != nil {
					node.Set(strconv.Itoa(i), New(*child))
				}
			}
		}
	}
	if node.Len() == 0 {
		return nil
	}
	v := ObjectValue(node)
	return &v
}

// renderMetaRecord encodes a single non-empty Meta into its wire shape:
// "err" (messages), "val" (the first captured offending value, if any),
// "rem" (processor remarks) and "len" (pre-truncation length).
func renderMetaRecord(m Meta) Value {
	obj := NewObject()
	if len(m.Errors) > 0 {
		msgs := make([]Annotated[Value], len(m.Errors))
		var val *Value
		for i, e := range m.Errors {
			msgs[i] = New(String(e.Message))
			if val == nil && e.Value != nil {
				val = e.Value
			}
		}
		obj.Set("err", New(Array(msgs)))
		if val != nil {
			obj.Set("val", New(*val))
		}
	}
	if len(m.Remarks) > 0 {
		rems := make([]Annotated[Value], len(m.Remarks))
		for i, r := range m.Remarks {
			rems[i] = New(String(r))
		}
		obj.Set("rem", New(Array(rems)))
	}
	if m.OriginalLength != nil {
		obj.Set("len", New(I64(int64(*m.OriginalLength))))
	}
	return ObjectValue(obj)
}

type jsonWriter struct {
	buf    *bytes.Buffer
	pretty bool
}

func (w *jsonWriter) newline(depth int) {
	if !w.pretty {
		return
	}
	w.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		w.buf.WriteString("  ")
	}
}

func (w *jsonWriter) writeValue(v Value, depth int) {
	switch v.Kind() {
	case KindNull:
		w.buf.WriteString("null")
	case KindBool:
		b, _ := v.AsBool()
		if b {
			w.buf.WriteString("true")
		} else {
			w.buf.WriteString("false")
		}
	case KindI64:
		i, _ := v.AsI64()
		w.buf.WriteString(strconv.FormatInt(i, 10))
	case KindU64:
		u, _ := v.AsU64()
		w.buf.WriteString(strconv.FormatUint(u, 10))
	case KindF64:
		f, _ := v.AsF64()
		w.buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case KindString:
		s, _ := v.AsString()
		w.writeString(s)
	case KindArray:
		items, _ := v.AsArray()
		w.writeArray(items, depth)
	case KindObject:
		obj, _ := v.AsObject()
		w.writeObject(obj, depth)
	}
}

func (w *jsonWriter) writeString(s string) {
	b, _ := marshalString(s)
	w.buf.Write(b)
}

func (w *jsonWriter) writeArray(items []Annotated[Value], depth int) {
	w.buf.WriteByte('[')
	wrote := false
	for _, item := range items {
		data, ok := resolveEntry(item)
		if !ok {
			// A true absence inside an array has no index to omit without
			// shifting every later element, so it renders as null.
			data, ok = Null(), true
		}
		if wrote {
			w.buf.WriteByte(',')
		}
		wrote = true
		w.newline(depth + 1)
		w.writeValue(data, depth+1)
	}
	if wrote {
		w.newline(depth)
	}
	w.buf.WriteByte(']')
}

func (w *jsonWriter) writeObject(obj Object, depth int) {
	w.buf.WriteByte('{')
	wrote := false
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		data, ok := resolveEntry(pair.Value)
		if !ok {
			continue
		}
		if wrote {
			w.buf.WriteByte(',')
		}
		wrote = true
		w.newline(depth + 1)
		w.writeString(pair.Key)
		w.buf.WriteByte(':')
		if w.pretty {
			w.buf.WriteByte(' ')
		}
		w.writeValue(data, depth+1)
	}
	if wrote {
		w.newline(depth)
	}
	w.buf.WriteByte('}')
}
