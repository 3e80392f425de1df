// Package apierrorsmux plugs the apierrors formatter into gorilla/mux:
// error-returning handlers plus uniform NotFound and MethodNotAllowed
// handlers for the router.
package apierrorsmux

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

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

// ErrHandlerFunc is an HTTP handler that reports failures by returning an
// error.
type ErrHandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler adapts an error-returning handler, writing the formatted payload
// when it fails.
func Handler(f *apierrors.Formatter, h ErrHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			_ = apierrors.WriteError(f, &stdCtx{r: r, w: w}, err)
		}
	}
}

// Mount installs uniform 404 and 405 responses on the router.
func Mount(r *mux.Router, f *apierrors.Formatter) {
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = apierrors.WriteError(f, &stdCtx{r: req, w: w}, apierrors.NotFound())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = apierrors.WriteError(f, &stdCtx{r: req, w: w}, apierrors.MethodNotAllowed(req.Method))
	})
}
