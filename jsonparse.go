package annotated

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// maxDepth bounds nested array/object recursion while decoding (spec §5).
// Input past this depth doesn't panic the parser — the too-deep container
// is skipped and replaced by a placeholder of the same kind holding a single
// entry annotated with an in-band "exceeded maximum nesting depth" error.
const maxDepth = 128

// ErrRootParse is the one fatal error this package returns: the top-level
// document wasn't syntactically valid JSON at all, so there's no tree to
// attach an annotation to. Every other problem — including exceeding
// maxDepth — is recorded in a Meta instead of surfacing here.
type ErrRootParse struct {
	Err error
}

func (e *ErrRootParse) Error() string {
	return fmt.Sprintf("annotated: malformed root JSON: %s", e.Err)
}

func (e *ErrRootParse) Unwrap() error { return e.Err }

// ParseJSON decodes raw JSON bytes into an Annotated[Value], preserving
// object key order via encoding/json.Decoder's token stream (json.Unmarshal
// into map[string]interface{} would discard it). The only error it returns
// is ErrRootParse, for input that fails to tokenize as JSON at all.
func ParseJSON(data []byte) (Annotated[Value], error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec, 0)
	if err != nil {
		return Annotated[Value]{}, &ErrRootParse{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return Annotated[Value]{}, &ErrRootParse{Err: fmt.Errorf("trailing data after document")}
	}
	return New(v), nil
}

func parseValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return parseToken(dec, tok, depth)
}

func parseToken(dec *json.Decoder, tok json.Token, depth int) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return numberValue(t), nil
	case json.Delim:
		switch t {
		case '[':
			return parseArray(dec, depth)
		case '{':
			return parseObject(dec, depth)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return Value{}, fmt.Errorf("unexpected token %T", tok)
	}
}

func numberValue(n json.Number) Value {
	if i, err := n.Int64(); err == nil {
		return I64(i)
	}
	if u, err := parseUint(string(n)); err == nil {
		return U64(u)
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return F64(0)
	}
	return F64(f)
}

func parseUint(s string) (uint64, error) {
	var u uint64
	if len(s) == 0 {
		return 0, fmt.Errorf("empty number")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not an unsigned integer literal")
		}
		u = u*10 + uint64(r-'0')
	}
	return u, nil
}

func parseArray(dec *json.Decoder, depth int) (Value, error) {
	if depth >= maxDepth {
		if err := skipArray(dec); err != nil {
			return Value{}, err
		}
		m := Meta{}
		m.AddError("exceeded maximum nesting depth", nil)
		return Array([]Annotated[Value]{{Meta: m}}), nil
	}
	var items []Annotated[Value]
	for dec.More() {
		v, err := parseValue(dec, depth+1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, New(v))
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return Value{}, err
	}
	return Array(items), nil
}

func parseObject(dec *json.Decoder, depth int) (Value, error) {
	if depth >= maxDepth {
		if err := skipObject(dec); err != nil {
			return Value{}, err
		}
		m := Meta{}
		m.AddError("exceeded maximum nesting depth", nil)
		out := NewObject()
		out.Set("", Annotated[Value]{Meta: m})
		return ObjectValue(out), nil
	}
	out := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected object key, got %v", keyTok)
		}
		v, err := parseValue(dec, depth+1)
		if err != nil {
			return Value{}, err
		}
		out.Set(key, New(v))
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return Value{}, err
	}
	return ObjectValue(out), nil
}

// skipArray/skipObject drain a too-deep container without building a tree,
// so depth-limited input still tokenizes to completion.
func skipArray(dec *json.Decoder) error {
	for dec.More() {
		if err := skipValue(dec); err != nil {
			return err
		}
	}
	_, err := dec.Token()
	return err
}

func skipObject(dec *json.Decoder) error {
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return err
		}
		if err := skipValue(dec); err != nil {
			return err
		}
	}
	_, err := dec.Token()
	return err
}

func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); ok {
		switch d {
		case '[':
			return skipArray(dec)
		case '{':
			return skipObject(dec)
		}
	}
	return nil
}
