// Package apierrorsgin plugs the apierrors formatter into Gin. The
// middleware turns errors attached to the Gin context into uniform
// payloads; NoRoute and NoMethod produce the matching builtin kinds.
package apierrorsgin

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/apierrors/apierrors"
)

type ginCtx struct {
	orig *gin.Context
}

var _ apierrors.Context = &ginCtx{}

func (c *ginCtx) Header(name string) string {
	return c.orig.GetHeader(name)
}

func (c *ginCtx) SetHeader(name, value string) {
	c.orig.Header(name, value)
}

func (c *ginCtx) SetStatus(code int) {
	c.orig.Status(code)
}

func (c *ginCtx) BodyWriter() io.Writer {
	return c.orig.Writer
}

// NewContext wraps a Gin context for use with apierrors.WriteError.
func NewContext(c *gin.Context) apierrors.Context {
	return &ginCtx{orig: c}
}

// Middleware formats the last error attached to the Gin context, if any,
// once the handler chain has run. Handlers report errors with c.Error(err)
// and leave the response body alone.
func Middleware(f *apierrors.Formatter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		_ = apierrors.WriteError(f, NewContext(c), c.Errors.Last().Err)
	}
}

// Abort writes the formatted payload for err and aborts the Gin handler
// chain, for use inside handlers and auth middleware.
func Abort(f *apierrors.Formatter, c *gin.Context, err error) {
	_ = apierrors.WriteError(f, NewContext(c), err)
	c.Abort()
}

// NoRoute is a handler for gin.Engine.NoRoute producing the uniform 404
// payload.
func NoRoute(f *apierrors.Formatter) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = apierrors.WriteError(f, NewContext(c), apierrors.NotFound())
	}
}

// NoMethod is a handler for gin.Engine.NoMethod producing the uniform 405
// payload.
func NoMethod(f *apierrors.Formatter) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = apierrors.WriteError(f, NewContext(c), apierrors.MethodNotAllowed(c.Request.Method))
	}
}
