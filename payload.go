package apierrors

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
)

// InvalidParam describes one rejected input field: its flattened dotted-path
// name and the non-empty list of reasons it was rejected.
type InvalidParam struct {
	Name   string   `json:"name" cbor:"name"`
	Reason []string `json:"reason" cbor:"reason"`
}

// ErrorPayload is the uniform response body produced for every error. The
// wire shape always carries exactly three keys: "title", "detail" and
// "invalid_params". Nil Detail and InvalidParams marshal as null, never as
// empty lists, and at most one of the two is populated by the default
// handler.
type ErrorPayload struct {
	Title         string
	Detail        []string
	InvalidParams []InvalidParam

	// camelized renames the invalid_params key to invalidParams on the
	// wire. Set by the case converter, not directly.
	camelized bool
}

// Camelized reports whether the case converter has been applied.
func (p *ErrorPayload) Camelized() bool {
	return p.camelized
}

type payloadWire struct {
	Title         string         `json:"title" cbor:"title"`
	Detail        []string       `json:"detail" cbor:"detail"`
	InvalidParams []InvalidParam `json:"invalid_params" cbor:"invalid_params"`
}

type payloadWireCamel struct {
	Title         string         `json:"title" cbor:"title"`
	Detail        []string       `json:"detail" cbor:"detail"`
	InvalidParams []InvalidParam `json:"invalidParams" cbor:"invalidParams"`
}

func (p *ErrorPayload) wire() any {
	if p.camelized {
		return payloadWireCamel{p.Title, p.Detail, p.InvalidParams}
	}
	return payloadWire{p.Title, p.Detail, p.InvalidParams}
}

func (p *ErrorPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wire())
}

func (p *ErrorPayload) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(p.wire())
}

// ContentType upgrades a plain media type to its RFC7807-style problem
// variant so clients can recognize the error shape.
func (p *ErrorPayload) ContentType(ct string) string {
	switch ct {
	case "application/json":
		return "application/problem+json"
	case "application/cbor":
		return "application/problem+cbor"
	}
	return ct
}
