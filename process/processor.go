// Package process implements the ProcessValue traversal contract: a
// depth-first, declared-field-order walk over a decoded record tree that
// hands each visited string and object field to an external Processor, with
// State (config limits, a logger, the current path) threaded through
// explicitly rather than held in package-level globals.
package process

import (
	"github.com/ingestcore/annotated"
	"github.com/ingestcore/annotated/config"
	jsonpatch "github.com/evanphx/json-patch/v5"
	"go.uber.org/zap"
)

// State is threaded explicitly through every Process call; nothing about
// a traversal lives outside of it.
type State struct {
	Limits *config.Limits
	Logger *zap.Logger
	Path   *PathBuffer
}

// NewState builds a State with a fresh PathBuffer.
func NewState(limits *config.Limits, logger *zap.Logger) *State {
	return &State{Limits: limits, Logger: logger, Path: NewPathBuffer()}
}

// Processor is the external hook a traversal defers to at each string or
// object field it visits. Both methods receive the field's attributes so a single
// Processor can apply different policy to pii_kind="freeform" versus
// pii_kind="databag" fields, for instance.
type Processor interface {
	ProcessString(s annotated.Annotated[string], st *State, attrs annotated.FieldAttributes) annotated.Annotated[string]
	ProcessObject(o annotated.Annotated[annotated.Object], st *State, attrs annotated.FieldAttributes) annotated.Annotated[annotated.Object]
}

// Chain runs processors in order, feeding each one's output to the next.
type Chain []Processor

func (c Chain) ProcessString(s annotated.Annotated[string], st *State, attrs annotated.FieldAttributes) annotated.Annotated[string] {
	for _, p := range c {
		s = p.ProcessString(s, st, attrs)
	}
	return s
}

func (c Chain) ProcessObject(o annotated.Annotated[annotated.Object], st *State, attrs annotated.FieldAttributes) annotated.Annotated[annotated.Object] {
	for _, p := range c {
		o = p.ProcessObject(o, st, attrs)
	}
	return o
}

// TruncateProcessor enforces the max_chars bucket a field declares,
// recording a remark (and the pre-truncation length) whenever it actually
// has to cut something.
type TruncateProcessor struct{}

func (TruncateProcessor) ProcessString(s annotated.Annotated[string], st *State, attrs annotated.FieldAttributes) annotated.Annotated[string] {
	limit := maxCharsLimit(st.Limits, attrs.MaxCharsBucket)
	if limit <= 0 || s.Value == nil || len(*s.Value) <= limit {
		return s
	}
	orig := *s.Value
	truncated := orig[:limit]
	m := s.Meta
	m.SetOriginalLength(len(orig))
	m.AddRemark("truncated")
	return annotated.Annotated[string]{Value: &truncated, Meta: m}
}

func (TruncateProcessor) ProcessObject(o annotated.Annotated[annotated.Object], st *State, attrs annotated.FieldAttributes) annotated.Annotated[annotated.Object] {
	return o
}

func maxCharsLimit(limits *config.Limits, bucket string) int {
	if limits == nil || bucket == "" {
		return 0
	}
	switch bucket {
	case "symbol":
		return limits.MaxChars.Symbol
	case "short_path":
		return limits.MaxChars.ShortPath
	case "path":
		return limits.MaxChars.Path
	case "summary":
		return limits.MaxChars.Summary
	case "enumlike":
		return limits.MaxChars.EnumLike
	default:
		return 0
	}
}

// RedactProcessor blanks out fields tagged with a pii_kind, leaving a
// remark behind so the scrub is visible in the _meta tree rather than
// silent.
type RedactProcessor struct{}

func (RedactProcessor) ProcessString(s annotated.Annotated[string], st *State, attrs annotated.FieldAttributes) annotated.Annotated[string] {
	if attrs.PIIKind == "" || s.Value == nil {
		return s
	}
	redacted := "[redacted]"
	m := s.Meta
	m.AddRemark("scrubbed")
	return annotated.Annotated[string]{Value: &redacted, Meta: m}
}

func (RedactProcessor) ProcessObject(o annotated.Annotated[annotated.Object], st *State, attrs annotated.FieldAttributes) annotated.Annotated[annotated.Object] {
	if attrs.PIIKind == "" || o.Value == nil {
		return o
	}
	empty := annotated.NewObject()
	m := o.Meta
	m.AddRemark("scrubbed")
	return annotated.Annotated[annotated.Object]{Value: &empty, Meta: m}
}

// DiffRemark renders, as a string suitable for a remark, a JSON merge-patch
// describing how a processor changed a databag field — useful when a
// Processor mutates a whole object wholesale rather than field by field,
// and downstream consumers want to see exactly what moved.
func DiffRemark(before, after annotated.Value) (string, error) {
	b := annotated.EncodeValueJSON(before)
	a := annotated.EncodeValueJSON(after)
	patch, err := jsonpatch.CreateMergePatch(b, a)
	if err != nil {
		return "", err
	}
	return string(patch), nil
}
