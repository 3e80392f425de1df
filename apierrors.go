// Package apierrors converts errors raised inside a web API's
// request-handling pipeline into a uniform JSON (or CBOR) error payload
// with exactly three keys: a title, a detail list and an invalid_params
// list. Nested field errors are flattened into dotted paths, non-field
// errors are routed to the detail list, and field names can optionally be
// camelized for the wire.
//
// A Formatter is built once at startup from an immutable Config and is then
// shared across requests. Errors flow through an ordered handler chain:
// configured extra handlers first, then the builtin handlers for the
// standard error kinds, then a catch-all that reports a bare server error.
// The first handler that recognizes the error produces the whole payload.
//
// Adapter subpackages plug the formatter into specific routers (gin, chi,
// echo, fiber, httprouter, gorilla/mux); see the adapters directory.
package apierrors

// Formatter turns errors into ErrorPayload values according to its Config.
// It is immutable after New and safe for concurrent use.
type Formatter struct {
	config  Config
	chain   []Handler
	formats map[string]Format
	// formatKeys preserves registration order for negotiation, with the
	// default format first.
	formatKeys []string
}

// New builds a Formatter. Missing config fields get their documented
// defaults; an invalid separator or an extra handler name that is not in
// the registry is reported as an error so misconfiguration is caught at
// startup, never at request time.
func New(config Config) (*Formatter, error) {
	cfg := config.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	extras, err := resolveHandlers(cfg.ExtraHandlers)
	if err != nil {
		return nil, err
	}

	f := &Formatter{config: cfg, formats: map[string]Format{}}
	f.chain = append(f.chain, extras...)
	f.chain = append(f.chain, f.handleError, f.handleValidatorError, f.handleJSONError)

	for _, ct := range defaultFormatKeys() {
		f.formats[ct] = DefaultFormats[ct]
		f.formatKeys = append(f.formatKeys, ct)
	}

	return f, nil
}

// Config returns a copy of the formatter's effective configuration.
func (f *Formatter) Config() Config {
	return f.config
}

// Format runs the handler chain for err and returns the payload. It never
// fails: errors no handler recognizes produce a bare "Server error."
// payload. When camelizing is enabled the case converter is applied as the
// final step.
func (f *Formatter) Format(err error) *ErrorPayload {
	p := f.format(err)
	if f.config.Camelize {
		CamelizePayload(p, f.config.FieldsSeparator)
	}
	return p
}

func (f *Formatter) format(err error) *ErrorPayload {
	for _, h := range f.chain {
		if p, ok := h(err); ok {
			return p
		}
	}
	return serverErrorPayload()
}
