package auth

import (
	"context"
	"errors"
)

// CredentialVerifier checks a claimed username/password pair against the
// stored account record. It is read-only: no lockout counters, no audit
// writes.
type CredentialVerifier struct {
	store  AccountStore
	hasher PasswordHasher
}

func NewCredentialVerifier(store AccountStore, hasher PasswordHasher) (*CredentialVerifier, error) {
	if store == nil || hasher == nil {
		return nil, errors.New("auth: credential verifier requires store and hasher")
	}
	return &CredentialVerifier{store: store, hasher: hasher}, nil
}

// Verify resolves the account and compares the plaintext against the stored
// hash. It returns the persisted principal (username plus role-derived
// authorities) on success, ErrAccountNotFound when no such user exists, and
// ErrBadCredentials when the password does not match.
func (v *CredentialVerifier) Verify(ctx context.Context, username, password string) (Principal, error) {
	if username == "" || password == "" {
		return Principal{}, ErrBadCredentials
	}

	account, err := v.store.FindByUsername(ctx, username)
	if err != nil {
		return Principal{}, err
	}
	if !account.Enabled {
		return Principal{}, ErrAccountDisabled
	}

	if err := v.hasher.Compare(ctx, []byte(password), account.PasswordHash); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return Principal{}, ErrBadCredentials
		}
		return Principal{}, err
	}
	return account.Principal(), nil
}
