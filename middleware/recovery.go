package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/apierrors/apierrors"
	"github.com/apierrors/apierrors/adapters/apierrorschi"
)

// Recovery catches panics from downstream handlers, logs the panic value
// with a stack trace and responds with the uniform bare 500 payload. The
// panic never reaches the client in any other shape.
func Recovery(f *apierrors.Formatter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if log := GetLogger(r.Context()); log != nil {
						log.With(
							zap.Any("panic", v),
							zap.String("stack", string(debug.Stack())),
						).Error("Panic in request handler")
					}
					_ = apierrors.WriteError(f, apierrorschi.NewContext(w, r), apierrors.ServerError())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
