package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
)

var ErrInvalidHeader = errors.New("auth: invalid gatekeeper header")

// Gatekeeper header names. The expected values are configuration, supplied
// at startup.
const (
	GatekeeperClientHeader = "X-Api-Client"
	GatekeeperSecretHeader = "X-Api-Secret"
)

// Gatekeeper is a coarse pre-authentication check: every request must carry
// the two fixed headers with the expected values. It runs before any token
// logic and is independent of it.
//
// The default requires both headers to match. The legacy mode reproduces the
// behavior of an earlier deployment that rejected only when neither header
// matched; it exists for compatibility and should not be enabled for new
// installs.
type Gatekeeper struct {
	client       string
	secret       string
	legacy       bool
	errorHandler GatekeeperErrorHandler
}

// GatekeeperErrorHandler writes the response for a rejected request.
type GatekeeperErrorHandler func(http.ResponseWriter, *http.Request)

type GatekeeperOption func(*Gatekeeper)

// WithLegacyMatch rejects only when both header values mismatch.
func WithLegacyMatch() GatekeeperOption {
	return func(g *Gatekeeper) { g.legacy = true }
}

// WithGatekeeperErrorHandler overrides the rejection response.
func WithGatekeeperErrorHandler(handler GatekeeperErrorHandler) GatekeeperOption {
	return func(g *Gatekeeper) {
		if handler != nil {
			g.errorHandler = handler
		}
	}
}

func NewGatekeeper(client, secret string, opts ...GatekeeperOption) (*Gatekeeper, error) {
	if client == "" || secret == "" {
		return nil, errors.New("auth: gatekeeper requires expected header values")
	}
	g := &Gatekeeper{
		client:       client,
		secret:       secret,
		errorHandler: defaultGatekeeperErrorHandler,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

func (g *Gatekeeper) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.admit(r) {
			g.errorHandler(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Gatekeeper) admit(r *http.Request) bool {
	clientOK := secureEqual(r.Header.Get(GatekeeperClientHeader), g.client)
	secretOK := secureEqual(r.Header.Get(GatekeeperSecretHeader), g.secret)
	if g.legacy {
		return clientOK || secretOK
	}
	return clientOK && secretOK
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func defaultGatekeeperErrorHandler(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "invalid header", http.StatusBadRequest)
}
