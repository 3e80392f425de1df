package apierrors

import (
	"strings"
	"unicode/utf8"
)

// CamelizePayload converts the payload's field-path names and output keys
// from snake_case to camelCase. Each separator-delimited segment of an
// invalid param name is converted independently; the invalid_params key
// itself becomes invalidParams on the wire. The conversion is idempotent,
// so applying it to an already camelized payload is a no-op. The payload is
// modified in place and returned for convenience.
func CamelizePayload(p *ErrorPayload, sep string) *ErrorPayload {
	for i, param := range p.InvalidParams {
		p.InvalidParams[i].Name = camelizeName(param.Name, sep)
	}
	p.camelized = true
	return p
}

func camelizeName(name, sep string) string {
	if sep == "" {
		return camelizeSegment(name)
	}
	segments := strings.Split(name, sep)
	for i, segment := range segments {
		segments[i] = camelizeSegment(segment)
	}
	return strings.Join(segments, sep)
}

// camelizeSegment converts one path segment to camelCase. Segments without
// underscores pass through untouched, which is what makes the conversion
// idempotent. A leading underscore marks an intentionally special name and
// the segment is left alone entirely.
func camelizeSegment(s string) string {
	if !strings.Contains(s, "_") || strings.HasPrefix(s, "_") {
		return s
	}
	tokens := strings.Split(s, "_")
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(strings.ToLower(tokens[0]))
	for _, token := range tokens[1:] {
		if token == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(token)
		b.WriteString(strings.ToUpper(string(r)))
		b.WriteString(token[size:])
	}
	return b.String()
}
