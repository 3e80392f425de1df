// Package apierrorsecho plugs the apierrors formatter into Echo as the
// central HTTPErrorHandler, replacing Echo's default error JSON with the
// uniform payload. Echo's own HTTP errors are converted to the matching
// builtin kinds first so routing failures get the same shape as
// application errors.
package apierrorsecho

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apierrors/apierrors"
)

type echoCtx struct {
	orig echo.Context
}

var _ apierrors.Context = &echoCtx{}

func (c *echoCtx) Header(name string) string {
	return c.orig.Request().Header.Get(name)
}

func (c *echoCtx) SetHeader(name, value string) {
	c.orig.Response().Header().Set(name, value)
}

func (c *echoCtx) SetStatus(code int) {
	c.orig.Response().WriteHeader(code)
}

func (c *echoCtx) BodyWriter() io.Writer {
	return c.orig.Response()
}

// NewContext wraps an Echo context for use with apierrors.WriteError.
func NewContext(c echo.Context) apierrors.Context {
	return &echoCtx{orig: c}
}

// HTTPErrorHandler returns an echo.HTTPErrorHandler writing uniform
// payloads for every error reaching Echo's error hook.
func HTTPErrorHandler(f *apierrors.Formatter) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		_ = apierrors.WriteError(f, NewContext(c), convert(err, c))
	}
}

// convert maps Echo's native HTTP errors onto the builtin error kinds so
// they format the same way as application errors.
func convert(err error, c echo.Context) error {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return err
	}

	switch he.Code {
	case http.StatusNotFound:
		return apierrors.NotFound()
	case http.StatusMethodNotAllowed:
		return apierrors.MethodNotAllowed(c.Request().Method)
	case http.StatusUnauthorized:
		return apierrors.NotAuthenticated()
	case http.StatusForbidden:
		return apierrors.PermissionDenied()
	case http.StatusUnsupportedMediaType:
		return apierrors.UnsupportedMediaType(c.Request().Header.Get("Content-Type"))
	case http.StatusTooManyRequests:
		return apierrors.Throttled(0)
	}

	message := http.StatusText(he.Code) + "."
	if s, ok := he.Message.(string); ok && s != "" {
		message = s
	}
	return apierrors.NewError(he.Code, message, nil)
}
