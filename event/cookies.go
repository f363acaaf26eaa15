package event

import (
	"net/url"
	"strings"

	"github.com/ingestcore/annotated"
)

// Cookies is an insertion-ordered map from cookie name to its value,
// normalized the same way whether it arrived as a raw "Cookie" header
// string or as a plain JSON object.
type Cookies = annotated.AnnotatedMap[string]

// CookiesFromValue accepts either a raw cookie-header string ("a=1; b=2")
// or an object of name/value pairs. A segment of the string form that
// doesn't parse as name=value is dropped from the result and recorded as
// a container-level error with the raw segment captured for inspection.
func CookiesFromValue(a annotated.Annotated[annotated.Value]) annotated.Annotated[Cookies] {
	return annotated.FromValue(a, func(v annotated.Value, m annotated.Meta) annotated.Annotated[Cookies] {
		if s, ok := v.AsString(); ok {
			out := annotated.NewAnnotatedMap[string]()
			for _, part := range strings.Split(s, ";") {
				trimmed := strings.TrimSpace(part)
				if trimmed == "" {
					continue
				}
				name, value, found := strings.Cut(trimmed, "=")
				if !found {
					raw := annotated.String(part)
					m.AddError("invalid cookie", &raw)
					continue
				}
				decoded, err := url.QueryUnescape(value)
				if err != nil {
					decoded = value
				}
				out.Set(strings.TrimSpace(name), annotated.New(decoded))
			}
			return annotated.Annotated[Cookies]{Value: &out, Meta: m}
		}
		if _, ok := v.AsObject(); ok {
			inner := annotated.ObjectFromValue(annotated.Annotated[annotated.Value]{Value: &v, Meta: m}, annotated.StringFromValue)
			return inner
		}
		return annotated.Mismatch[Cookies]("cookies", v, m)
	})
}

// CookiesToValue encodes Cookies back into a plain object of name/value
// pairs.
func CookiesToValue(a annotated.Annotated[Cookies]) annotated.Annotated[annotated.Value] {
	return annotated.ObjectToValue(a, annotated.StringToValue)
}
