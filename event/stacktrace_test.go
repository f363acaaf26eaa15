package event

import (
	"testing"

	"github.com/ingestcore/annotated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	src := []byte(`{
  "function": "main",
  "symbol": "_main",
  "module": "app",
  "package": "/my/app",
  "filename": "myfile.go",
  "abs_path": "/path/to",
  "lineno": 2,
  "colno": 42,
  "pre_context": ["fn main() {"],
  "context_line": "panic(\"boom\")",
  "post_context": ["}"],
  "in_app": true,
  "vars": {"variable": "value"},
  "image_addr": "0x400",
  "instruction_addr": "0x404",
  "symbol_addr": "0x404",
  "trust": "69",
  "other": "value"
}`)
	parsed, err := annotated.ParseJSON(src)
	require.NoError(t, err)

	frame := FrameFromValue(parsed)
	require.NotNil(t, frame.Value)
	line, _ := frame.Value.Line.Get()
	assert.EqualValues(t, 2, line)
	addr, _ := frame.Value.ImageAddr.Get()
	assert.EqualValues(t, 0x400, addr)

	out := FrameToValue(frame)
	encoded := string(annotated.EncodeJSON(out, false))
	assert.Equal(t,
		`{"function":"main","symbol":"_main","module":"app","package":"/my/app","filename":"myfile.go","abs_path":"/path/to","lineno":2,"colno":42,"pre_context":["fn main() {"],"context_line":"panic(\"boom\")","post_context":["}"],"in_app":true,"vars":{"variable":"value"},"image_addr":"0x400","instruction_addr":"0x404","symbol_addr":"0x404","trust":"69","other":"value"}`,
		encoded)
}

func TestStacktraceRequiresNonEmptyFrames(t *testing.T) {
	parsed, err := annotated.ParseJSON([]byte(`{}`))
	require.NoError(t, err)

	st := StacktraceFromValue(parsed)
	require.NotNil(t, st.Value)
	assert.True(t, st.Value.Frames.IsAbsent())
	require.Len(t, st.Value.Frames.Meta.Errors, 1)
	assert.Equal(t, "value required", st.Value.Frames.Meta.Errors[0].Message)
}

func TestStacktraceRoundTrip(t *testing.T) {
	src := []byte(`{"frames":[{}],"registers":{"pc":"0x18a310ea4"},"other":"value"}`)
	parsed, err := annotated.ParseJSON(src)
	require.NoError(t, err)

	st := StacktraceFromValue(parsed)
	require.NotNil(t, st.Value)
	require.NotNil(t, st.Value.Frames.Value)
	assert.Len(t, *st.Value.Frames.Value, 1)

	pc, ok := (*st.Value.Registers.Value).Get("pc")
	require.True(t, ok)
	v, _ := pc.Get()
	assert.EqualValues(t, 0x18a310ea4, v)

	out := StacktraceToValue(st)
	encoded := string(annotated.EncodeJSON(out, false))
	assert.Equal(t, `{"frames":[{}],"registers":{"pc":"0x18a310ea4"},"other":"value"}`, encoded)
}
