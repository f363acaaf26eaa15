package event

import (
	"testing"

	"github.com/ingestcore/annotated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventIDAcceptsDashedAndBareForms(t *testing.T) {
	dashed := annotated.New(annotated.String("c988d1f3-9a68-4ce6-a407-fa9808e683f3"))
	bare := annotated.New(annotated.String("c988d1f39a684ce6a407fa9808e683f3"))

	id1 := EventIDFromValue(dashed)
	id2 := EventIDFromValue(bare)
	require.NotNil(t, id1.Value)
	require.NotNil(t, id2.Value)
	assert.Equal(t, *id1.Value, *id2.Value)

	out := EventIDToValue(id1)
	s, ok := out.Get()
	require.True(t, ok)
	str, _ := s.AsString()
	assert.Equal(t, "c988d1f39a684ce6a407fa9808e683f3", str)
}

func TestEventIDAbsenceIsNeverSynthesized(t *testing.T) {
	out := EventIDFromValue(annotated.Empty[annotated.Value]())
	assert.True(t, out.IsAbsent())
	assert.True(t, out.Meta.IsEmpty())
}
