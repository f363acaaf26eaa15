package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathBufferPushJoinsWithDot(t *testing.T) {
	p := NewPathBuffer()
	p.Push("request")
	p.Push("headers")
	assert.Equal(t, "request.headers", p.String())
}

func TestPathBufferPushIndexRendersDecimal(t *testing.T) {
	p := NewPathBuffer()
	p.Push("breadcrumbs")
	p.PushIndex(3)
	assert.Equal(t, "breadcrumbs.3", p.String())
}

func TestPathBufferPopRestoresMark(t *testing.T) {
	p := NewPathBuffer()
	p.Push("request")
	mark := p.Len()
	p.Push("headers")
	assert.Equal(t, "request.headers", p.String())
	p.Pop(mark)
	assert.Equal(t, "request", p.String())
}

func TestPathBufferWithRestoresOnReturn(t *testing.T) {
	p := NewPathBuffer()
	var seen string
	p.With("request", func() {
		p.With("url", func() {
			seen = p.String()
		})
	})
	assert.Equal(t, "request.url", seen)
	assert.Equal(t, "", p.String())
}

func TestPathBufferWithIndexNestsUnderParent(t *testing.T) {
	p := NewPathBuffer()
	var seen string
	p.With("breadcrumbs", func() {
		p.WithIndex(0, func() {
			p.With("message", func() {
				seen = p.String()
			})
		})
	})
	assert.Equal(t, "breadcrumbs.0.message", seen)
	assert.Equal(t, "", p.String())
}
