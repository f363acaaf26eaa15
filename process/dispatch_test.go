package process

import (
	"testing"

	"github.com/ingestcore/annotated"
	"github.com/ingestcore/annotated/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingProcessor records the path at every visited field and passes
// values through unchanged, so tests can assert on traversal order and
// coverage without caring about any particular redaction policy.
type recordingProcessor struct {
	calls []string
}

func (r *recordingProcessor) ProcessString(s annotated.Annotated[string], st *State, attrs annotated.FieldAttributes) annotated.Annotated[string] {
	r.calls = append(r.calls, st.Path.String())
	return s
}

func (r *recordingProcessor) ProcessObject(o annotated.Annotated[annotated.Object], st *State, attrs annotated.FieldAttributes) annotated.Annotated[annotated.Object] {
	r.calls = append(r.calls, st.Path.String())
	return o
}

func buildStringMap(pairs ...string) annotated.AnnotatedMap[string] {
	m := annotated.NewAnnotatedMap[string]()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], annotated.New(pairs[i+1]))
	}
	return m
}

func fullRequest() event.Request {
	data := annotated.NewObject()
	data.Set("some", annotated.New(annotated.I64(1)))

	env := annotated.NewObject()
	env.Set("REMOTE_ADDR", annotated.New(annotated.String("127.0.0.1")))

	other := annotated.NewObject()
	other.Set("extra", annotated.New(annotated.String("value")))

	return event.Request{
		URL:                 annotated.New("https://example.com/search"),
		Method:              annotated.New("GET"),
		Data:                annotated.New(annotated.ObjectValue(data)),
		QueryString:         annotated.New(buildStringMap("q", "foo")),
		Fragment:            annotated.New("home"),
		Cookies:             annotated.New(buildStringMap("session", "abc123")),
		Headers:             annotated.New(buildStringMap("X-Test", "1")),
		Env:                 annotated.New(env),
		InferredContentType: annotated.New("application/json"),
		Other:               other,
	}
}

func TestProcessRequestVisitsAllFieldsInDeclaredOrder(t *testing.T) {
	r := fullRequest()
	st := NewState(nil, nil)
	rp := &recordingProcessor{}

	ProcessRequest(annotated.New(r), st, rp)

	assert.Equal(t, []string{
		"url", "method", "data", "query_string", "fragment",
		"cookies", "headers", "env", "inferred_content_type", "other",
	}, rp.calls)
}

func TestProcessRequestRedactsQueryCookiesAndHeaders(t *testing.T) {
	r := fullRequest()
	st := NewState(nil, nil)

	out := ProcessRequest(annotated.New(r), st, RedactProcessor{})
	require.NotNil(t, out.Value)

	require.NotNil(t, out.Value.QueryString.Value)
	assert.Equal(t, 0, (*out.Value.QueryString.Value).Len())
	assert.Contains(t, out.Value.QueryString.Meta.Remarks, "scrubbed")

	require.NotNil(t, out.Value.Cookies.Value)
	assert.Equal(t, 0, (*out.Value.Cookies.Value).Len())
	assert.Contains(t, out.Value.Cookies.Meta.Remarks, "scrubbed")

	require.NotNil(t, out.Value.Headers.Value)
	assert.Equal(t, 0, (*out.Value.Headers.Value).Len())
	assert.Contains(t, out.Value.Headers.Meta.Remarks, "scrubbed")

	// Method carries no pii_kind, so it survives untouched.
	method, ok := out.Value.Method.Get()
	require.True(t, ok)
	assert.Equal(t, "GET", method)
}

func TestProcessRequestNilValuePassesThrough(t *testing.T) {
	st := NewState(nil, nil)
	in := annotated.Empty[event.Request]()

	out := ProcessRequest(in, st, &recordingProcessor{})

	assert.True(t, out.IsAbsent())
}

func TestProcessFrameVisitsDeclaredStringAndObjectFields(t *testing.T) {
	vars := annotated.NewObject()
	vars.Set("k", annotated.New(annotated.String("v")))
	f := event.Frame{
		Function: annotated.New("main"),
		Vars:     annotated.New(vars),
	}
	st := NewState(nil, nil)
	rp := &recordingProcessor{}

	ProcessFrame(annotated.New(f), st, rp)

	assert.Contains(t, rp.calls, "function")
	assert.Contains(t, rp.calls, "vars")
}

func TestProcessStacktraceWalksFramesByIndex(t *testing.T) {
	frames := []annotated.Annotated[event.Frame]{
		annotated.New(event.Frame{Function: annotated.New("a")}),
		annotated.New(event.Frame{Function: annotated.New("b")}),
	}
	s := event.Stacktrace{Frames: annotated.New(frames)}
	st := NewState(nil, nil)
	rp := &recordingProcessor{}

	ProcessStacktrace(annotated.New(s), st, rp)

	assert.Equal(t, []string{
		"0.function", "0.symbol", "0.module", "0.package", "0.filename",
		"0.abs_path", "0.context_line", "0.vars", "0.trust", "0.other",
		"1.function", "1.symbol", "1.module", "1.package", "1.filename",
		"1.abs_path", "1.context_line", "1.vars", "1.trust", "1.other",
	}, rp.calls)
}

func TestProcessBreadcrumbVisitsDeclaredFields(t *testing.T) {
	b := event.Breadcrumb{
		Category: annotated.New("ui.click"),
		Level:    annotated.New("info"),
		Message:  annotated.New("clicked"),
	}
	st := NewState(nil, nil)
	rp := &recordingProcessor{}

	ProcessBreadcrumb(annotated.New(b), st, rp)

	assert.Equal(t, []string{"category", "level", "message", "data"}, rp.calls)
}

func TestProcessEventWalksRequestStacktraceAndBreadcrumbs(t *testing.T) {
	e := event.Event{
		Request: annotated.New(fullRequest()),
		Stacktrace: annotated.New(event.Stacktrace{Frames: annotated.New([]annotated.Annotated[event.Frame]{
			annotated.New(event.Frame{Function: annotated.New("main")}),
		})}),
		Breadcrumbs: annotated.New([]annotated.Annotated[event.Breadcrumb]{
			annotated.New(event.Breadcrumb{Message: annotated.New("hi")}),
		}),
	}
	st := NewState(nil, nil)
	rp := &recordingProcessor{}

	ProcessEvent(annotated.New(e), st, rp)

	assert.Contains(t, rp.calls, "request.url")
	assert.Contains(t, rp.calls, "stacktrace.0.function")
	assert.Contains(t, rp.calls, "breadcrumbs.0.message")
}
