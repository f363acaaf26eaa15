package annotated

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// FieldAttributes is the declarative metadata a struct tag can attach to a
// domain record field (spec §4.6): how it should be treated for PII
// purposes, which symbolic size bucket bounds it, whether it's required,
// and what its wire name is if it differs from the Go field name.
//
// This is deliberately not a general JSON-Schema validator — attributes
// are read once per type via reflection and handed to the processing
// layer; they never drive FromValue/ToValue, which are hand-written for
// every record.
type FieldAttributes struct {
	GoName               string
	WireName             string
	PIIKind              string
	MaxCharsBucket       string
	BagSizeBucket        string
	Required             bool
	NonEmpty             bool
	AdditionalProperties bool
}

var schemaCache sync.Map // reflect.Type -> []FieldAttributes

// FieldsOf returns the declared field attributes for a record type T,
// parsed from its `attr:"..."` struct tags and cached after the first call.
func FieldsOf[T any]() []FieldAttributes {
	var zero T
	t := reflect.TypeOf(zero)
	if cached, ok := schemaCache.Load(t); ok {
		return cached.([]FieldAttributes)
	}
	fields := parseFields(t)
	schemaCache.Store(t, fields)
	return fields
}

func parseFields(t reflect.Type) []FieldAttributes {
	if t.Kind() != reflect.Struct {
		panic(fmt.Errorf("annotated: FieldsOf requires a struct type, got %s", t))
	}
	out := make([]FieldAttributes, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		out = append(out, parseFieldTag(f))
	}
	return out
}

func parseFieldTag(f reflect.StructField) FieldAttributes {
	attrs := FieldAttributes{
		GoName:   f.Name,
		WireName: snakeCase(f.Name),
	}
	tag := f.Tag.Get("attr")
	if tag == "" {
		return attrs
	}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, hasValue := strings.Cut(part, "=")
		switch key {
		case "pii_kind":
			attrs.PIIKind = value
		case "max_chars":
			attrs.MaxCharsBucket = value
		case "bag_size":
			attrs.BagSizeBucket = value
		case "field":
			if !hasValue {
				panic(fmt.Errorf("annotated: field attribute on %q needs a value", f.Name))
			}
			attrs.WireName = value
		case "required":
			attrs.Required = true
		case "nonempty":
			attrs.NonEmpty = true
		case "additional_properties":
			attrs.AdditionalProperties = true
		default:
			panic(fmt.Errorf("annotated: unknown field attribute %q on %q", key, f.Name))
		}
	}
	return attrs
}

func snakeCase(name string) string {
	var b strings.Builder
	var prev rune
	for i, r := range name {
		// An uppercase run ("URL", the "ID" of "EventID") stays one word.
		if i > 0 && r >= 'A' && r <= 'Z' && !(prev >= 'A' && prev <= 'Z') {
			b.WriteByte('_')
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.ToLower(b.String())
}
