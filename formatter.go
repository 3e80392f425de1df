package apierrors

import (
	"errors"
	"fmt"
)

// handleError is the builtin handler for *Error values, wrapped or not.
func (f *Formatter) handleError(err error) (*ErrorPayload, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return nil, false
	}
	return f.formatError(e), true
}

// formatError is the default transform from an *Error to the payload.
// Validation errors get the fixed "Validation error." title; every other
// kind uses its generic message as the title. An error with no occurrence
// detail produces a bare payload with only the title, which is what
// authentication and permission failures look like.
func (f *Formatter) formatError(e *Error) *ErrorPayload {
	p := &ErrorPayload{}

	if e.Code == CodeValidationError {
		p.Title = "Validation error."
	} else {
		p.Title = e.Message
	}

	switch d := e.Detail.(type) {
	case nil:
	case Fields:
		p.InvalidParams, p.Detail = d.Flatten(f.config.FieldsSeparator, f.config.NonFieldKey)
	case map[string]any:
		fields, err := FieldsFromMap(d)
		if err != nil {
			return serverErrorPayload()
		}
		p.InvalidParams, p.Detail = fields.Flatten(f.config.FieldsSeparator, f.config.NonFieldKey)
	case string:
		p.Detail = []string{d}
	case []string:
		if len(d) > 0 {
			p.Detail = append([]string(nil), d...)
		}
	case []any:
		detail, err := flattenMessages(d)
		if err != nil {
			return serverErrorPayload()
		}
		p.Detail = detail
	default:
		return serverErrorPayload()
	}

	return p
}

// flattenMessages turns a list of message strings, possibly with one level
// of nested lists, into a flat string list. Anything else in the list is a
// bug in the caller and is rejected.
func flattenMessages(msgs []any) ([]string, error) {
	var out []string
	for _, m := range msgs {
		switch v := m.(type) {
		case string:
			out = append(out, v)
		case []string:
			out = append(out, v...)
		case []any:
			nested, err := flattenMessages(v)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		default:
			return nil, fmt.Errorf("unexpected message type %T", m)
		}
	}
	return out, nil
}

// serverErrorPayload is the bare 500 payload used both for unrecognized
// errors and for errors whose detail could not be interpreted.
func serverErrorPayload() *ErrorPayload {
	return &ErrorPayload{Title: "Server error."}
}
