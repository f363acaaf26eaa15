package event

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ingestcore/annotated"
)

// EventID uniquely identifies an ingested event. Its canonical wire form is
// 32 lowercase hex digits with no dashes, but a standard dashed UUID string
// is also accepted on input for producers that send one. Absence is valid
// and is never synthesized — an event without an id stays without one.
type EventID uuid.UUID

// EventIDFromValue accepts a hyphenated or un-hyphenated hex UUID string.
func EventIDFromValue(a annotated.Annotated[annotated.Value]) annotated.Annotated[EventID] {
	return annotated.FromValue(a, func(v annotated.Value, m annotated.Meta) annotated.Annotated[EventID] {
		s, ok := v.AsString()
		if !ok {
			return annotated.Mismatch[EventID]("an event id", v, m)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return annotated.Mismatch[EventID]("an event id", v, m)
		}
		eid := EventID(id)
		return annotated.Annotated[EventID]{Value: &eid, Meta: m}
	})
}

// EventIDToValue renders the canonical 32-lowercase-hex-digit form.
func EventIDToValue(a annotated.Annotated[EventID]) annotated.Annotated[annotated.Value] {
	return annotated.ToValue(a, func(id EventID) annotated.Value {
		s := strings.ReplaceAll(uuid.UUID(id).String(), "-", "")
		return annotated.String(s)
	})
}

// NewEventID generates a fresh random event id.
func NewEventID() EventID {
	return EventID(uuid.New())
}
