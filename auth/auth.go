package auth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAccountNotFound  = errors.New("auth: account not found")
	ErrAccountDisabled  = errors.New("auth: account disabled")
	ErrBadCredentials   = errors.New("auth: bad credentials")
	ErrInvalidPrincipal = errors.New("auth: invalid principal")
)

// Principal is the authenticated identity for a single request: the subject
// taken from a verified token plus its authority set. It is built per request
// and never persisted.
type Principal struct {
	Username    string
	Authorities []string
}

// HasAuthority reports whether the principal holds the named authority.
func (p Principal) HasAuthority(name string) bool {
	for _, a := range p.Authorities {
		if a == name {
			return true
		}
	}
	return false
}

// HasAny reports whether the principal holds at least one of the named
// authorities. An empty argument list never matches.
func (p Principal) HasAny(names ...string) bool {
	for _, name := range names {
		if p.HasAuthority(name) {
			return true
		}
	}
	return false
}

// Account models the persisted credential record backing a principal.
type Account struct {
	ID           string
	Username     string
	PasswordHash PasswordHash
	Role         string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal derives the request-scoped identity from the stored account.
func (a Account) Principal() Principal {
	return Principal{Username: a.Username, Authorities: RoleAuthorities(a.Role)}
}

// AccountStore is the user lookup collaborator consumed by the credential
// verifier and the refresh flow. Implementations live in store/postgres.
type AccountStore interface {
	FindByUsername(ctx context.Context, username string) (Account, error)
	FindByID(ctx context.Context, id string) (Account, error)
}

// TokenPair is the response shape of the login and refresh flows.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func contextError(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
