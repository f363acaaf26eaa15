package queryparam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	m := Parse("foo=bar&baz=42")
	v, ok := m.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, "bar", v)
	v, ok = m.Get("baz")
	assert.True(t, ok)
	assert.Equal(t, "42", v)
}

func TestParseLastWriteWins(t *testing.T) {
	m := Parse("a=1&a=2")
	v, _ := m.Get("a")
	assert.Equal(t, "2", v)
}

func TestParseEmpty(t *testing.T) {
	m := Parse("")
	assert.Equal(t, 0, m.Len())
}
