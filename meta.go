package annotated

import "fmt"

// ErrorRecord pairs an error message with the original offending value, so
// a consumer can re-render what the producer actually sent.
type ErrorRecord struct {
	Message string
	Value   *Value
}

// Meta is the sidecar that accompanies every annotated field. It never
// carries the "happy path" value itself — only the evidence of what went
// wrong, what a processor noted, and how big the original payload was
// before something trimmed it.
//
// Meta.IsEmpty() iff Errors, Remarks, and OriginalLength are all unset; this
// is the condition used to decide whether a "_meta" entry needs to be
// emitted for a given field at all.
type Meta struct {
	Errors         []ErrorRecord
	Remarks        []string
	OriginalLength *int

	original *Value
}

// IsEmpty reports whether this Meta carries no information at all.
func (m Meta) IsEmpty() bool {
	return len(m.Errors) == 0 && len(m.Remarks) == 0 && m.OriginalLength == nil
}

// AddError appends an error record, optionally capturing the value that
// triggered it.
func (m *Meta) AddError(message string, value *Value) {
	m.Errors = append(m.Errors, ErrorRecord{Message: message, Value: value})
}

// AddUnexpectedValueError is the canonical form used whenever a FromValue
// implementation rejects the shape of its input. The message is always
// "expected <typeName>" and the rejected value is captured verbatim.
func (m *Meta) AddUnexpectedValueError(typeName string, actual Value) {
	m.AddError(fmt.Sprintf("expected %s", typeName), &actual)
}

// AddRemark appends a processor-emitted note, e.g. "truncated".
func (m *Meta) AddRemark(remark string) {
	m.Remarks = append(m.Remarks, remark)
}

// SetOriginalLength records the pre-truncation size of a string or
// collection that a processor has since shrunk.
func (m *Meta) SetOriginalLength(n int) {
	m.OriginalLength = &n
}

// SetOriginalValue stashes a value for later recovery by combinators that
// need to preserve a rejected or removed branch (e.g. Deleted, whose stashed
// original ToValue re-emits).
func (m *Meta) SetOriginalValue(v Value) {
	m.original = &v
}

// TakeOriginalValue moves the stashed original value out of m, clearing it.
func (m *Meta) TakeOriginalValue() *Value {
	v := m.original
	m.original = nil
	return v
}

// Merge concatenates errors and remarks from other into m, and lets other's
// scalar slots (OriginalLength, the stashed original value) win when set.
func (m Meta) Merge(other Meta) Meta {
	out := Meta{
		Errors:         append(append([]ErrorRecord{}, m.Errors...), other.Errors...),
		Remarks:        append(append([]string{}, m.Remarks...), other.Remarks...),
		OriginalLength: m.OriginalLength,
	}
	if other.OriginalLength != nil {
		out.OriginalLength = other.OriginalLength
	}
	out.original = m.original
	if other.original != nil {
		out.original = other.original
	}
	return out
}
