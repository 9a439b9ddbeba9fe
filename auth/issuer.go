package auth

import "time"

// Default token lifetimes. Access tokens are short-lived; refresh tokens are
// only good for minting new access tokens and live considerably longer.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Issuer mints access and refresh tokens for an authenticated principal.
// It performs no store lookups; both methods are pure computation over the
// codec.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type IssuerOption func(*Issuer)

// WithAccessTokenTTL overrides the access token lifetime.
func WithAccessTokenTTL(d time.Duration) IssuerOption {
	return func(i *Issuer) {
		if d > 0 {
			i.accessTTL = d
		}
	}
}

// WithRefreshTokenTTL overrides the refresh token lifetime.
func WithRefreshTokenTTL(d time.Duration) IssuerOption {
	return func(i *Issuer) {
		if d > 0 {
			i.refreshTTL = d
		}
	}
}

func NewIssuer(codec *Codec, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		codec:      codec,
		accessTTL:  DefaultAccessTokenTTL,
		refreshTTL: DefaultRefreshTokenTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// AccessToken mints a short-lived API token carrying only the subject.
// Authorities are not embedded; the verifier re-derives them from the
// refresh-token claims attached at login time.
func (i *Issuer) AccessToken(p Principal) (string, error) {
	if p.Username == "" {
		return "", ErrInvalidPrincipal
	}
	return i.codec.Encode(Claims{Subject: p.Username}, i.accessTTL)
}

// RefreshToken mints a long-lived token carrying the subject and its
// authority set.
func (i *Issuer) RefreshToken(p Principal) (string, error) {
	if p.Username == "" {
		return "", ErrInvalidPrincipal
	}
	claims := Claims{
		Subject:     p.Username,
		Authorities: append([]string(nil), p.Authorities...),
	}
	return i.codec.Encode(claims, i.refreshTTL)
}
