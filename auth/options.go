package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrTokenNotFound     = errors.New("auth: token not found")
	ErrTokenInvalidInput = errors.New("auth: invalid token source")
)

// TokenExtractor pulls a raw token out of an incoming request.
type TokenExtractor func(*http.Request) (string, error)

// MiddlewareSkipper short-circuits the verifier for selected requests.
type MiddlewareSkipper func(*http.Request) bool

// MiddlewareErrorHandler writes the response for an untrusted token.
type MiddlewareErrorHandler func(http.ResponseWriter, *http.Request, error)

type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	codec        *Codec
	extractor    TokenExtractor
	skipper      MiddlewareSkipper
	errorHandler MiddlewareErrorHandler
	denylist     *Denylist
}

func newMiddlewareConfig(codec *Codec, opts ...MiddlewareOption) (middlewareConfig, error) {
	if codec == nil {
		return middlewareConfig{}, errors.New("auth: middleware requires a token codec")
	}
	cfg := middlewareConfig{
		codec:        codec,
		extractor:    BearerTokenExtractor(),
		skipper:      defaultSkipper,
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg, nil
}

func WithTokenExtractor(extractor TokenExtractor) MiddlewareOption {
	return func(cfg *middlewareConfig) {
		if extractor != nil {
			cfg.extractor = extractor
		}
	}
}

func WithSkipper(skipper MiddlewareSkipper) MiddlewareOption {
	return func(cfg *middlewareConfig) {
		if skipper != nil {
			cfg.skipper = skipper
		}
	}
}

func WithErrorHandler(handler MiddlewareErrorHandler) MiddlewareOption {
	return func(cfg *middlewareConfig) {
		if handler != nil {
			cfg.errorHandler = handler
		}
	}
}

// WithDenylist installs a revocation check consulted before token claims are
// trusted. Absent a denylist, tokens stay valid until natural expiry.
func WithDenylist(d *Denylist) MiddlewareOption {
	return func(cfg *middlewareConfig) {
		cfg.denylist = d
	}
}

// BearerTokenExtractor reads the Authorization header. A missing header
// yields ErrTokenNotFound; a header without the Bearer prefix yields
// ErrTokenInvalidInput. Both leave the request unauthenticated rather than
// failing it.
func BearerTokenExtractor() TokenExtractor {
	return func(r *http.Request) (string, error) {
		header := r.Header.Get("Authorization")
		if header == "" {
			return "", ErrTokenNotFound
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return "", ErrTokenInvalidInput
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return "", ErrTokenInvalidInput
		}
		return token, nil
	}
}

func defaultSkipper(*http.Request) bool { return false }

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusUnauthorized
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	// No token-level detail leaks to the client.
	http.Error(w, "untrusted token", status)
}
