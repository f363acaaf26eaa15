package annotated

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotatedShapes(t *testing.T) {
	ok := New("hi")
	assert.False(t, ok.IsAbsent())
	v, present := ok.Get()
	assert.True(t, present)
	assert.Equal(t, "hi", v)

	absent := Empty[string]()
	assert.True(t, absent.IsAbsent())
	_, present = absent.Get()
	assert.False(t, present)

	failed := FromError[string]("expected a string", nil)
	assert.True(t, failed.IsAbsent())
	require.Len(t, failed.Meta.Errors, 1)
	assert.Equal(t, "expected a string", failed.Meta.Errors[0].Message)
}

func TestFromValueTotality(t *testing.T) {
	// Absence passes through untouched.
	out := StringFromValue(Empty[Value]())
	assert.True(t, out.IsAbsent())
	assert.True(t, out.Meta.IsEmpty())

	// Null collapses to absence, meta preserved.
	var m Meta
	m.AddRemark("seen")
	nullIn := Annotated[Value]{Value: valPtr(Null()), Meta: m}
	out = StringFromValue(nullIn)
	assert.True(t, out.IsAbsent())
	assert.Equal(t, []string{"seen"}, out.Meta.Remarks)

	// A type mismatch never panics; it annotates.
	out = StringFromValue(New(I64(3)))
	assert.True(t, out.IsAbsent())
	require.Len(t, out.Meta.Errors, 1)
	assert.Equal(t, "expected a string", out.Meta.Errors[0].Message)
	require.NotNil(t, out.Meta.Errors[0].Value)
	i, ok := out.Meta.Errors[0].Value.AsI64()
	assert.True(t, ok)
	assert.EqualValues(t, 3, i)

	// A present, well-typed value round-trips cleanly.
	out = StringFromValue(New(String("ok")))
	s, present := out.Get()
	assert.True(t, present)
	assert.Equal(t, "ok", s)
}

func TestRequiredAndNonEmpty(t *testing.T) {
	req := Required(Empty[string]())
	assert.True(t, req.IsAbsent())
	require.Len(t, req.Meta.Errors, 1)
	assert.Equal(t, "value required", req.Meta.Errors[0].Message)

	// A more specific error already present isn't clobbered.
	mismatched := StringFromValue(New(Bool(true)))
	again := Required(mismatched)
	require.Len(t, again.Meta.Errors, 1)
	assert.Equal(t, "expected a string", again.Meta.Errors[0].Message)

	empty := NonEmpty(New([]string{}))
	assert.True(t, empty.IsAbsent())
	require.Len(t, empty.Meta.Errors, 1)

	nonEmpty := NonEmpty(New([]string{"a"}))
	assert.False(t, nonEmpty.IsAbsent())
}

func TestToValueOmitsTrueAbsence(t *testing.T) {
	out := StringToValue(Empty[string]())
	assert.True(t, out.IsAbsent())
	assert.True(t, out.Meta.IsEmpty())

	out = StringToValue(New("hi"))
	s, ok := out.Get()
	require.True(t, ok)
	gotS, _ := s.AsString()
	assert.Equal(t, "hi", gotS)
}

func TestUint64NarrowestTag(t *testing.T) {
	small := Uint64ToValue(New(uint64(7)))
	v, _ := small.Get()
	assert.Equal(t, KindI64, v.Kind())

	huge := Uint64ToValue(New(uint64(1) << 63))
	v, _ = huge.Get()
	assert.Equal(t, KindU64, v.Kind())
}

func TestObjectRoundTripPreservesOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("z", New(I64(1)))
	obj.Set("a", New(I64(2)))
	obj.Set("m", New(I64(3)))
	root := New(ObjectValue(obj))

	out := EncodeJSON(root, false)
	assert.Equal(t, `{"z":1,"a":2,"m":3}`, string(out))

	parsed, err := ParseJSON(out)
	require.NoError(t, err)
	parsedObj, ok := parsed.Value.AsObject()
	require.True(t, ok)

	var keys []string
	for pair := parsedObj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
}

func TestEncodeJSONMetaSibling(t *testing.T) {
	obj := NewObject()
	obj.Set("Accept", New(String("application/json")))
	obj.Set("Whatever", Mismatch[Value]("a string", I64(42), Meta{}))
	root := New(ObjectValue(obj))

	out := EncodeJSON(root, false)
	assert.Equal(t,
		`{"Accept":"application/json","Whatever":null,"_meta":{"Whatever":{"":{"err":["expected a string"],"val":42}}}}`,
		string(out))
}

func TestParseJSONRejectsMalformedRoot(t *testing.T) {
	_, err := ParseJSON([]byte(`{not valid`))
	require.Error(t, err)
	var rootErr *ErrRootParse
	require.ErrorAs(t, err, &rootErr)
}

func TestParseJSONDepthLimit(t *testing.T) {
	nested := "0"
	for i := 0; i < maxDepth+5; i++ {
		nested = "[" + nested + "]"
	}
	parsed, err := ParseJSON([]byte(nested))
	require.NoError(t, err)
	assert.Equal(t, KindArray, parsed.Value.Kind())
}

func valPtr(v Value) *Value { return &v }
