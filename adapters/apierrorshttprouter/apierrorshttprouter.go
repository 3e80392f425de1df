// Package apierrorshttprouter plugs the apierrors formatter into
// julienschmidt/httprouter: error-returning route handlers plus uniform
// handlers for the router's NotFound, MethodNotAllowed and PanicHandler
// hooks.
package apierrorshttprouter

import (
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

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

// ErrHandle is an httprouter.Handle that reports failures by returning an
// error.
type ErrHandle func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) error

// Wrap adapts an error-returning handle, writing the formatted payload
// when it fails.
func Wrap(f *apierrors.Formatter, h ErrHandle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if err := h(w, r, ps); err != nil {
			_ = apierrors.WriteError(f, &stdCtx{r: r, w: w}, err)
		}
	}
}

// Mount installs uniform 404, 405 and panic responses on the router.
func Mount(r *httprouter.Router, f *apierrors.Formatter) {
	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = apierrors.WriteError(f, &stdCtx{r: req, w: w}, apierrors.NotFound())
	})
	r.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = apierrors.WriteError(f, &stdCtx{r: req, w: w}, apierrors.MethodNotAllowed(req.Method))
	})
	r.PanicHandler = func(w http.ResponseWriter, req *http.Request, _ any) {
		_ = apierrors.WriteError(f, &stdCtx{r: req, w: w}, apierrors.ServerError())
	}
}
