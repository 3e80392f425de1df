package apierrors

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Context is the minimal request/response surface the formatter needs to
// write a response. Adapter subpackages implement it on top of each
// router's native context type.
type Context interface {
	// Header returns a request header value, e.g. Accept.
	Header(name string) string
	SetHeader(name, value string)
	SetStatus(code int)
	BodyWriter() io.Writer
}

// Format marshals a payload for one content type.
type Format struct {
	Marshal func(w io.Writer, v any) error
}

// DefaultFormats holds the response formats available to new Formatter
// instances. JSON is always present; importing the formats/cbor package
// adds CBOR. Mutate only from init functions.
var DefaultFormats = map[string]Format{
	"application/json": {
		Marshal: func(w io.Writer, v any) error {
			return json.NewEncoder(w).Encode(v)
		},
	},
}

// defaultFormatKeys returns the format content types with JSON first, so
// clients that express no preference get JSON.
func defaultFormatKeys() []string {
	keys := maps.Keys(DefaultFormats)
	slices.Sort(keys)
	ordered := make([]string, 0, len(keys))
	ordered = append(ordered, "application/json")
	for _, k := range keys {
		if k != "application/json" {
			ordered = append(ordered, k)
		}
	}
	return ordered
}

// Negotiate picks the response content type for an Accept header,
// honoring q-values. An empty or unmatched header selects the default
// format.
func (f *Formatter) Negotiate(accept string) string {
	best := ""
	bestQ := 0.0
	for _, part := range strings.Split(accept, ",") {
		name, q := parseAcceptPart(part)
		if !slices.Contains(f.formatKeys, name) {
			continue
		}
		if q > bestQ || (q == bestQ && name == f.formatKeys[0]) {
			best, bestQ = name, q
		}
	}
	if best == "" {
		return f.formatKeys[0]
	}
	return best
}

func parseAcceptPart(part string) (name string, q float64) {
	name, params, _ := strings.Cut(part, ";")
	name = strings.TrimSpace(name)
	q = 1.0
	for _, param := range strings.Split(params, ";") {
		param = strings.TrimSpace(param)
		if v, ok := strings.CutPrefix(param, "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
	}
	return name, q
}

// StatusOf resolves the HTTP status code for an error: its own status when
// it carries one, 400 for binding and validation failures, 500 otherwise.
// The selection mirrors what the handler chain recognizes.
func (f *Formatter) StatusOf(err error) int {
	if se, ok := err.(StatusError); ok {
		return se.GetStatus()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteError formats err and writes the complete response: negotiated
// problem content type, status code, any headers the error carries, and
// the marshaled payload.
func WriteError(f *Formatter, ctx Context, err error) error {
	p := f.Format(err)
	ct := f.Negotiate(ctx.Header("Accept"))

	var e *Error
	if errors.As(err, &e) {
		for name, value := range e.Headers {
			ctx.SetHeader(name, value)
		}
	}

	ctx.SetHeader("Content-Type", p.ContentType(ct))
	ctx.SetStatus(f.StatusOf(err))
	return f.formats[ct].Marshal(ctx.BodyWriter(), p)
}
