// Package apierrorsfiber plugs the apierrors formatter into Fiber as the
// app-level ErrorHandler. Fiber's status errors are converted to the
// matching builtin kinds so framework and application errors share one
// payload shape.
package apierrorsfiber

import (
	"errors"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/apierrors/apierrors"
)

type fiberCtx struct {
	orig *fiber.Ctx
}

var _ apierrors.Context = &fiberCtx{}

func (c *fiberCtx) Header(name string) string {
	return c.orig.Get(name)
}

func (c *fiberCtx) SetHeader(name, value string) {
	c.orig.Set(name, value)
}

func (c *fiberCtx) SetStatus(code int) {
	c.orig.Status(code)
}

func (c *fiberCtx) BodyWriter() io.Writer {
	return c.orig.Response().BodyWriter()
}

// NewContext wraps a Fiber context for use with apierrors.WriteError.
func NewContext(c *fiber.Ctx) apierrors.Context {
	return &fiberCtx{orig: c}
}

// ErrorHandler returns a fiber.ErrorHandler for fiber.Config writing
// uniform payloads for every error reaching Fiber's error hook.
func ErrorHandler(f *apierrors.Formatter) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return apierrors.WriteError(f, NewContext(c), convert(err, c))
	}
}

func convert(err error, c *fiber.Ctx) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return err
	}

	switch fe.Code {
	case fiber.StatusNotFound:
		return apierrors.NotFound()
	case fiber.StatusMethodNotAllowed:
		return apierrors.MethodNotAllowed(c.Method())
	case fiber.StatusUnauthorized:
		return apierrors.NotAuthenticated()
	case fiber.StatusForbidden:
		return apierrors.PermissionDenied()
	case fiber.StatusUnsupportedMediaType:
		return apierrors.UnsupportedMediaType(c.Get(fiber.HeaderContentType))
	case fiber.StatusTooManyRequests:
		return apierrors.Throttled(0)
	}

	message := http.StatusText(fe.Code) + "."
	if fe.Message != "" {
		message = fe.Message
	}
	return apierrors.NewError(fe.Code, message, nil)
}
