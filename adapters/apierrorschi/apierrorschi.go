// Package apierrorschi plugs the apierrors formatter into chi and plain
// net/http services. Handlers return errors instead of writing their own
// failure responses; Handler converts them to uniform payloads.
package apierrorschi

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apierrors/apierrors"
)

type stdCtx struct {
	r *http.Request
	w http.ResponseWriter
}

var _ apierrors.Context = &stdCtx{}

func (c *stdCtx) Header(name string) string {
	return c.r.Header.Get(name)
}

func (c *stdCtx) SetHeader(name, value string) {
	c.w.Header().Set(name, value)
}

func (c *stdCtx) SetStatus(code int) {
	c.w.WriteHeader(code)
}

func (c *stdCtx) BodyWriter() io.Writer {
	return c.w
}

// NewContext wraps a standard request/response pair for use with
// apierrors.WriteError.
func NewContext(w http.ResponseWriter, r *http.Request) apierrors.Context {
	return &stdCtx{r: r, w: w}
}

// ErrHandlerFunc is an HTTP handler that reports failures by returning an
// error.
type ErrHandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler adapts an error-returning handler to http.HandlerFunc, writing
// the formatted payload when the handler fails.
func Handler(f *apierrors.Formatter, h ErrHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			_ = apierrors.WriteError(f, NewContext(w, r), err)
		}
	}
}

// Mount installs uniform 404 and 405 responses on a chi router.
func Mount(r chi.Router, f *apierrors.Formatter) {
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		_ = apierrors.WriteError(f, NewContext(w, req), apierrors.NotFound())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		_ = apierrors.WriteError(f, NewContext(w, req), apierrors.MethodNotAllowed(req.Method))
	})
}
