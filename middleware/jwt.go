package middleware

import (
	"net/http"
	"strings"

	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwt"

	"github.com/apierrors/apierrors"
	"github.com/apierrors/apierrors/adapters/apierrorschi"
)

// JWTConfig configures the bearer-token authentication middleware.
type JWTConfig struct {
	// SignatureAlgorithm and SignatureKey verify token signatures when both
	// are set, e.g. "HS256" with a shared secret.
	SignatureAlgorithm string
	SignatureKey       []byte

	// Issuer, when set, must match the token's iss claim.
	Issuer string

	// Audience, when set, must be present in the token's aud claim.
	Audience string

	// RequiredClaims maps private claim names to values, all of which must
	// be present for the request to proceed. Useful for simple scope
	// checks.
	RequiredClaims map[string]string
}

// JWTAuth validates bearer tokens and reports failures through the
// formatter: missing credentials produce the bare 401 "credentials not
// provided" payload, bad tokens the 401 "incorrect credentials" payload
// and missing claims the 403 payload. Valid requests pass through
// untouched.
func JWTAuth(f *apierrors.Formatter, config JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := authenticate(r, config); err != nil {
				_ = apierrors.WriteError(f, apierrorschi.NewContext(w, r), err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(r *http.Request, config JWTConfig) error {
	raw := bearerToken(r)
	if raw == "" {
		return apierrors.NotAuthenticated().WithHeader("WWW-Authenticate", "Bearer")
	}

	var options []jwt.ParseOption
	if config.SignatureAlgorithm != "" && len(config.SignatureKey) > 0 {
		options = append(options, jwt.WithVerify(
			jwa.SignatureAlgorithm(config.SignatureAlgorithm), config.SignatureKey))
	}

	token, err := jwt.Parse([]byte(raw), options...)
	if err != nil {
		return apierrors.AuthenticationFailed().WithHeader("WWW-Authenticate", "Bearer")
	}

	var validations []jwt.ValidateOption
	if config.Issuer != "" {
		validations = append(validations, jwt.WithIssuer(config.Issuer))
	}
	if config.Audience != "" {
		validations = append(validations, jwt.WithAudience(config.Audience))
	}
	if err := jwt.Validate(token, validations...); err != nil {
		return apierrors.AuthenticationFailed().WithHeader("WWW-Authenticate", "Bearer")
	}

	claims := token.PrivateClaims()
	for name, want := range config.RequiredClaims {
		if got, ok := claims[name].(string); !ok || got != want {
			return apierrors.PermissionDenied()
		}
	}

	return nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return ""
}
