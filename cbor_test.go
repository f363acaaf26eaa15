package annotated

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCBORRoundTripsScalarsAndContainers(t *testing.T) {
	obj := NewObject()
	obj.Set("name", New(String("trace")))
	obj.Set("count", New(I64(3)))
	obj.Set("tags", New(Array([]Annotated[Value]{New(String("a")), New(String("b"))})))

	root := New(ObjectValue(obj))
	data := EncodeValueCBOR(root)
	require.NotEmpty(t, data)

	back, err := DecodeValueCBOR(data)
	require.NoError(t, err)
	backObj, ok := back.AsObject()
	require.True(t, ok)

	name, ok := backObj.Get("name")
	require.True(t, ok)
	s, _ := name.Value.AsString()
	assert.Equal(t, "trace", s)

	count, ok := backObj.Get("count")
	require.True(t, ok)
	i, _ := count.Value.AsI64()
	assert.Equal(t, int64(3), i)

	tags, ok := backObj.Get("tags")
	require.True(t, ok)
	items, _ := tags.Value.AsArray()
	require.Len(t, items, 2)
	first, _ := items[0].Value.AsString()
	assert.Equal(t, "a", first)
}

func TestEncodeValueCBORTrueAbsenceEncodesNull(t *testing.T) {
	data := EncodeValueCBOR(Empty[Value]())

	back, err := DecodeValueCBOR(data)
	require.NoError(t, err)
	assert.True(t, back.IsNull())
}

func TestEncodeValueCBOROmitsAbsentObjectEntries(t *testing.T) {
	obj := NewObject()
	obj.Set("present", New(String("yes")))
	obj.Set("absent", Empty[Value]())

	data := EncodeValueCBOR(New(ObjectValue(obj)))

	back, err := DecodeValueCBOR(data)
	require.NoError(t, err)
	backObj, ok := back.AsObject()
	require.True(t, ok)
	assert.Equal(t, 1, backObj.Len())
	_, ok = backObj.Get("absent")
	assert.False(t, ok)
}

func TestCBORRoundTripPreservesObjectKeyOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("zebra", New(I64(1)))
	obj.Set("alpha", New(I64(2)))
	obj.Set("mike", New(I64(3)))
	root := New(ObjectValue(obj))

	data := EncodeValueCBOR(root)

	back, err := DecodeValueCBOR(data)
	require.NoError(t, err)
	backObj, ok := back.AsObject()
	require.True(t, ok)

	var keys []string
	for pair := backObj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"zebra", "alpha", "mike"}, keys)
}

func TestCBORRoundTripPreservesNestedArrayOfObjectsOrder(t *testing.T) {
	inner := NewObject()
	inner.Set("b", New(String("second")))
	inner.Set("a", New(String("first")))

	root := New(Array([]Annotated[Value]{New(ObjectValue(inner))}))

	data := EncodeValueCBOR(root)

	back, err := DecodeValueCBOR(data)
	require.NoError(t, err)
	items, ok := back.AsArray()
	require.True(t, ok)
	require.Len(t, items, 1)

	innerObj, ok := items[0].Value.AsObject()
	require.True(t, ok)
	var keys []string
	for pair := innerObj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"b", "a"}, keys)
}
