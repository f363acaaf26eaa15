package annotated

import (
	"bytes"
	"encoding/json"
)

// marshalString produces a properly escaped, quoted JSON string literal.
// Delegating to encoding/json keeps escaping (unicode, control characters)
// aligned with the standard library rather than reinventing it. HTML
// escaping is disabled: event payloads routinely carry URLs and query
// strings with '&' and '<', and there's no HTML-embedding concern here.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	// Encoder.Encode always appends a trailing newline; trim it.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
