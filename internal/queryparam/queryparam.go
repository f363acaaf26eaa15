// Package queryparam implements a permissive
// application/x-www-form-urlencoded parser: '+' decodes to space, '%HH'
// sequences are percent-decoded, and a pair that fails to decode is kept
// raw rather than rejected — this is a best-effort ingestion path, not a
// strict validator.
package queryparam

import (
	"net/url"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Parse splits qs on '&', each piece on the first '=', and decodes both
// sides. Duplicate keys follow last-write-wins, matching how a plain
// insertion into a key/value map would behave as pairs are consumed in
// order.
func Parse(qs string) *orderedmap.OrderedMap[string, string] {
	out := orderedmap.New[string, string]()
	if qs == "" {
		return out
	}
	for _, pair := range strings.Split(qs, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		out.Set(decode(key), decode(value))
	}
	return out
}

func decode(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	return s
}
