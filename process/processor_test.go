package process

import (
	"testing"

	"github.com/ingestcore/annotated"
	"github.com/ingestcore/annotated/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(limits config.Limits) *State {
	return NewState(&limits, nil)
}

func TestTruncateProcessorCutsOverLimitStrings(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxChars.Summary = 5
	st := newTestState(limits)
	attrs := annotated.FieldAttributes{MaxCharsBucket: "summary"}

	out := TruncateProcessor{}.ProcessString(annotated.New("abcdefgh"), st, attrs)

	s, ok := out.Get()
	require.True(t, ok)
	assert.Equal(t, "abcde", s)
	require.NotNil(t, out.Meta.OriginalLength)
	assert.Equal(t, 8, *out.Meta.OriginalLength)
	assert.Equal(t, []string{"truncated"}, out.Meta.Remarks)
}

func TestTruncateProcessorLeavesShortStringsAlone(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxChars.Summary = 5
	st := newTestState(limits)
	attrs := annotated.FieldAttributes{MaxCharsBucket: "summary"}

	out := TruncateProcessor{}.ProcessString(annotated.New("ok"), st, attrs)

	s, ok := out.Get()
	require.True(t, ok)
	assert.Equal(t, "ok", s)
	assert.True(t, out.Meta.IsEmpty())
}

func TestTruncateProcessorIgnoresUnboundedBucket(t *testing.T) {
	st := newTestState(config.DefaultLimits())
	attrs := annotated.FieldAttributes{}

	out := TruncateProcessor{}.ProcessString(annotated.New("anything goes here"), st, attrs)

	s, ok := out.Get()
	require.True(t, ok)
	assert.Equal(t, "anything goes here", s)
}

func TestRedactProcessorBlanksPIIStrings(t *testing.T) {
	st := newTestState(config.DefaultLimits())
	attrs := annotated.FieldAttributes{PIIKind: "freeform"}

	out := RedactProcessor{}.ProcessString(annotated.New("[email protected]"), st, attrs)

	s, ok := out.Get()
	require.True(t, ok)
	assert.Equal(t, "[redacted]", s)
	assert.Equal(t, []string{"scrubbed"}, out.Meta.Remarks)
}

func TestRedactProcessorLeavesNonPIIStringsAlone(t *testing.T) {
	st := newTestState(config.DefaultLimits())
	attrs := annotated.FieldAttributes{}

	out := RedactProcessor{}.ProcessString(annotated.New("GET"), st, attrs)

	s, ok := out.Get()
	require.True(t, ok)
	assert.Equal(t, "GET", s)
	assert.True(t, out.Meta.IsEmpty())
}

func TestRedactProcessorEmptiesPIIObjects(t *testing.T) {
	st := newTestState(config.DefaultLimits())
	attrs := annotated.FieldAttributes{PIIKind: "databag"}

	obj := annotated.NewObject()
	obj.Set("session", annotated.New(annotated.String("abc123")))

	out := RedactProcessor{}.ProcessObject(annotated.New(obj), st, attrs)

	require.NotNil(t, out.Value)
	assert.Equal(t, 0, (*out.Value).Len())
	assert.Equal(t, []string{"scrubbed"}, out.Meta.Remarks)
}

func TestChainAppliesEachProcessorInOrder(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxChars.Summary = 3
	st := newTestState(limits)
	attrs := annotated.FieldAttributes{PIIKind: "freeform", MaxCharsBucket: "summary"}

	chain := Chain{TruncateProcessor{}, RedactProcessor{}}
	out := chain.ProcessString(annotated.New("this is long"), st, attrs)

	s, ok := out.Get()
	require.True(t, ok)
	assert.Equal(t, "[redacted]", s)
	assert.Equal(t, []string{"truncated", "scrubbed"}, out.Meta.Remarks)
}

func TestDiffRemarkRendersMergePatch(t *testing.T) {
	before := annotated.ObjectValue(func() annotated.Object {
		o := annotated.NewObject()
		o.Set("session", annotated.New(annotated.String("abc123")))
		return o
	}())
	after := annotated.ObjectValue(func() annotated.Object {
		o := annotated.NewObject()
		o.Set("session", annotated.New(annotated.String("[redacted]")))
		return o
	}())

	patch, err := DiffRemark(before, after)
	require.NoError(t, err)
	assert.JSONEq(t, `{"session":"[redacted]"}`, patch)
}
