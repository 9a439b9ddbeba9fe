package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"strings"
	"time"
)

var (
	ErrTokenMalformed            = errors.New("auth: malformed token")
	ErrTokenInvalidSignature     = errors.New("auth: invalid token signature")
	ErrTokenUnsupportedAlgorithm = errors.New("auth: unsupported token algorithm")
	ErrTokenExpired              = errors.New("auth: token expired")
	ErrTokenInvalidClaims        = errors.New("auth: invalid token claims")
	ErrMissingSigningKey         = errors.New("auth: missing signing key")
	ErrWeakSigningKey            = errors.New("auth: signing key too short")
)

// Minimum secret lengths per HMAC algorithm, matching digest size.
const (
	MinSecretLengthHS256 = 32
	MinSecretLengthHS384 = 48
	MinSecretLengthHS512 = 64
)

// Claims is the payload carried inside a signed token.
type Claims struct {
	Subject     string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	Authorities []string
}

// Expired reports whether the claims are expired at the given instant.
// The comparison is exact: at >= ExpiresAt means expired.
func (c Claims) Expired(at time.Time) bool {
	return !c.ExpiresAt.IsZero() && !at.Before(c.ExpiresAt)
}

type tokenHeader struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ"`
}

type authorityClaim struct {
	Authority string `json:"authority"`
}

// Wire payload. Timestamps are milliseconds since epoch.
type tokenPayload struct {
	Subject     string           `json:"sub"`
	IssuedAt    int64            `json:"iat"`
	ExpiresAt   int64            `json:"exp"`
	Authorities []authorityClaim `json:"authorities,omitempty"`
}

// Codec encodes and decodes HMAC-signed tokens. The secret is set once at
// construction and never mutated, so a single Codec is safe for concurrent
// use across requests.
type Codec struct {
	secret      []byte
	allowedAlgs map[string]struct{}
	defaultAlg  string
	now         func() time.Time
}

// NewCodec builds a Codec for the given secret. Algorithms defaults to HS256
// when none are supplied; the secret must be at least as long as the digest
// of the strongest requested algorithm.
func NewCodec(secret []byte, algorithms ...string) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSigningKey
	}
	if len(algorithms) == 0 {
		algorithms = []string{"HS256"}
	}

	minLen := 0
	allowed := make(map[string]struct{}, len(algorithms))
	for _, alg := range algorithms {
		if _, err := signingHasher(alg); err != nil {
			return nil, err
		}
		if n := minSecretLength(alg); n > minLen {
			minLen = n
		}
		allowed[alg] = struct{}{}
	}
	if len(secret) < minLen {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSigningKey, minLen)
	}

	return &Codec{
		secret:      append([]byte(nil), secret...),
		allowedAlgs: allowed,
		defaultAlg:  algorithms[0],
		now:         time.Now,
	}, nil
}

// SetNowFunc injects a deterministic clock (useful for tests).
func (c *Codec) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		fn = time.Now
	}
	c.now = fn
}

// Encode produces a signed token string for the claims. IssuedAt defaults to
// the current time and ExpiresAt to IssuedAt+ttl when unset; a token without
// an expiry is rejected.
func (c *Codec) Encode(claims Claims, ttl time.Duration) (string, error) {
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrTokenInvalidClaims)
	}
	if claims.IssuedAt.IsZero() {
		claims.IssuedAt = c.now()
	}
	if claims.ExpiresAt.IsZero() {
		if ttl <= 0 {
			return "", fmt.Errorf("%w: missing expiry", ErrTokenInvalidClaims)
		}
		claims.ExpiresAt = claims.IssuedAt.Add(ttl)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		return "", fmt.Errorf("%w: expires before issued", ErrTokenInvalidClaims)
	}

	headerSeg, err := encodeSegment(tokenHeader{Algorithm: c.defaultAlg, Type: "JWT"})
	if err != nil {
		return "", err
	}
	payloadSeg, err := encodeSegment(payloadFromClaims(claims))
	if err != nil {
		return "", err
	}

	signingInput := headerSeg + "." + payloadSeg
	signatureSeg, err := c.sign(signingInput, c.defaultAlg)
	if err != nil {
		return "", err
	}
	return signingInput + "." + signatureSeg, nil
}

// Decode parses and validates a token string. The signature is verified
// before any claim is inspected; expired tokens fail with ErrTokenExpired
// even when correctly signed.
func (c *Codec) Decode(raw string) (Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Claims{}, ErrTokenMalformed
	}

	var header tokenHeader
	if err := decodeSegment(parts[0], &header); err != nil {
		return Claims{}, ErrTokenMalformed
	}

	if err := c.verify(parts[0]+"."+parts[1], parts[2], header.Algorithm); err != nil {
		return Claims{}, err
	}

	var payload tokenPayload
	if err := decodeSegment(parts[1], &payload); err != nil {
		return Claims{}, ErrTokenMalformed
	}

	claims := claimsFromPayload(payload)
	if claims.ExpiresAt.IsZero() {
		return Claims{}, fmt.Errorf("%w: missing expiry", ErrTokenInvalidClaims)
	}
	if claims.Expired(c.now()) {
		return Claims{}, ErrTokenExpired
	}
	return claims, nil
}

func (c *Codec) sign(input, alg string) (string, error) {
	hasher, err := signingHasher(alg)
	if err != nil {
		return "", err
	}
	mac := hmac.New(hasher, c.secret)
	_, _ = mac.Write([]byte(input))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

func (c *Codec) verify(input, signature, alg string) error {
	if _, ok := c.allowedAlgs[alg]; !ok {
		return ErrTokenUnsupportedAlgorithm
	}
	hasher, err := signingHasher(alg)
	if err != nil {
		return err
	}

	provided, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return ErrTokenInvalidSignature
	}

	mac := hmac.New(hasher, c.secret)
	_, _ = mac.Write([]byte(input))
	if !hmac.Equal(provided, mac.Sum(nil)) {
		return ErrTokenInvalidSignature
	}
	return nil
}

func signingHasher(alg string) (func() hash.Hash, error) {
	switch alg {
	case "HS256":
		return sha256.New, nil
	case "HS384":
		return sha512.New384, nil
	case "HS512":
		return sha512.New, nil
	default:
		return nil, ErrTokenUnsupportedAlgorithm
	}
}

func minSecretLength(alg string) int {
	switch alg {
	case "HS384":
		return MinSecretLengthHS384
	case "HS512":
		return MinSecretLengthHS512
	default:
		return MinSecretLengthHS256
	}
}

func payloadFromClaims(claims Claims) tokenPayload {
	p := tokenPayload{
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.UnixMilli(),
		ExpiresAt: claims.ExpiresAt.UnixMilli(),
	}
	for _, a := range claims.Authorities {
		p.Authorities = append(p.Authorities, authorityClaim{Authority: a})
	}
	return p
}

func claimsFromPayload(payload tokenPayload) Claims {
	c := Claims{
		Subject:   payload.Subject,
		IssuedAt:  timeFromMillis(payload.IssuedAt),
		ExpiresAt: timeFromMillis(payload.ExpiresAt),
	}
	for _, a := range payload.Authorities {
		c.Authorities = append(c.Authorities, a.Authority)
	}
	return c
}

func encodeSegment(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func decodeSegment(segment string, dest any) error {
	data, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func timeFromMillis(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.UnixMilli(v).UTC()
}
