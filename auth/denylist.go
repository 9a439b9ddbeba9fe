package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/officedesk/officedesk/cache"
)

var ErrTokenRevoked = errors.New("auth: token revoked")

const denylistPrefix = "revoked"

// Denylist is an optional revocation collaborator for the token verifier.
// Tokens are keyed by the SHA-256 of their raw string so the wire format
// needs no token-id claim; entries expire with the token itself.
type Denylist struct {
	store cache.Store
	now   func() time.Time
}

func NewDenylist(store cache.Store) *Denylist {
	return &Denylist{store: store, now: time.Now}
}

// SetNowFunc injects a deterministic clock (useful for tests).
func (d *Denylist) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		fn = time.Now
	}
	d.now = fn
}

// Revoke marks a token as untrusted until its expiry. Already-expired
// tokens are ignored; they fail verification anyway.
func (d *Denylist) Revoke(ctx context.Context, raw string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.store.Set(ctx, denylistKey(raw), []byte("1"), ttl)
}

// Revoked reports whether the token has been revoked.
func (d *Denylist) Revoked(ctx context.Context, raw string) (bool, error) {
	_, err := d.store.Get(ctx, denylistKey(raw))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, cache.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func denylistKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return denylistPrefix + ":" + hex.EncodeToString(sum[:])
}
