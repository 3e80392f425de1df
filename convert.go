package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/danielgtaylor/casing"
	"github.com/go-playground/validator/v10"
)

// reasonForTag maps common go-playground/validator tags to the reason
// strings reported to clients. Tags without an entry fall back to a generic
// message naming the tag.
var reasonForTag = map[string]string{
	"required": "This field is required.",
	"email":    "Enter a valid email address.",
	"url":      "Enter a valid URL.",
	"uuid":     "Enter a valid UUID.",
	"min":      "This value is too small.",
	"max":      "This value is too large.",
	"len":      "This value has the wrong length.",
	"oneof":    "This value is not one of the allowed choices.",
}

// handleValidatorError is the builtin handler translating
// validator.ValidationErrors produced by request binding into a validation
// payload. Struct field names are snake-cased and namespaces become
// separator-joined paths, so `User.HomeAddress.Street` reports as
// `home_address.street`.
func (f *Formatter) handleValidatorError(err error) (*ErrorPayload, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	var fields Fields
	for _, fe := range verrs {
		name := f.fieldPath(fe)
		reason := reasonForTag[fe.Tag()]
		if reason == "" {
			reason = fmt.Sprintf("This value failed the %q constraint.", fe.Tag())
		}

		if n := len(fields); n > 0 && fields[n-1].Name == name {
			fields[n-1].Reasons = append(fields[n-1].Reasons, reason)
			continue
		}
		fields = append(fields, Field{Name: name, Reasons: []string{reason}})
	}

	return f.formatError(ValidationError(fields)), true
}

// fieldPath converts a validator namespace into a flat field name. The
// leading struct name is dropped and the remaining segments are snake-cased
// and joined with the configured separator.
func (f *Formatter) fieldPath(fe validator.FieldError) string {
	path := strings.Split(fe.StructNamespace(), ".")
	if len(path) > 1 {
		path = path[1:]
	}
	for i, segment := range path {
		path[i] = casing.Snake(segment)
	}
	return strings.Join(path, f.config.FieldsSeparator)
}

// handleJSONError is the builtin handler for encoding/json decode failures
// raised while binding request bodies. Syntax errors become parse errors;
// type mismatches point at the offending field.
func (f *Formatter) handleJSONError(err error) (*ErrorPayload, bool) {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return f.formatError(ParseError(
			fmt.Sprintf("JSON parse error at offset %d.", syntaxErr.Offset))), true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return f.formatError(ParseError("JSON body has the wrong shape.")), true
		}
		name := strings.ReplaceAll(typeErr.Field, ".", f.config.FieldsSeparator)
		fields := Fields{{
			Name:    name,
			Reasons: []string{fmt.Sprintf("Value must be a valid %s.", typeErr.Type)},
		}}
		return f.formatError(ValidationError(fields)), true
	}

	return nil, false
}
