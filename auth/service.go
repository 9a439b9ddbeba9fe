package auth

import (
	"context"
	"errors"
)

// Service bundles the credential verifier and the token issuer behind the
// two authentication flows the API exposes: login and refresh.
type Service struct {
	verifier *CredentialVerifier
	issuer   *Issuer
	codec    *Codec
	store    AccountStore
}

// ServiceConfig wires the dependencies required for Service.
type ServiceConfig struct {
	Store  AccountStore
	Hasher PasswordHasher
	Codec  *Codec
	Issuer *Issuer
}

func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Codec == nil || cfg.Issuer == nil {
		return nil, errors.New("auth: service requires codec and issuer")
	}
	verifier, err := NewCredentialVerifier(cfg.Store, cfg.Hasher)
	if err != nil {
		return nil, err
	}
	return &Service{
		verifier: verifier,
		issuer:   cfg.Issuer,
		codec:    cfg.Codec,
		store:    cfg.Store,
	}, nil
}

// Login authenticates the username/password pair and mints a fresh token
// pair. Unknown users and password mismatches both surface as
// ErrBadCredentials so the response does not leak account existence.
func (s *Service) Login(ctx context.Context, username, password string) (TokenPair, error) {
	principal, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrAccountDisabled) {
			return TokenPair{}, ErrBadCredentials
		}
		return TokenPair{}, err
	}

	access, err := s.issuer.AccessToken(principal)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.issuer.RefreshToken(principal)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh validates a refresh token, confirms its subject still resolves to
// a stored account, and mints a new access token. The refresh token itself
// is returned unchanged; it stays valid until its own expiry.
func (s *Service) Refresh(ctx context.Context, rawRefresh string) (TokenPair, error) {
	claims, err := s.codec.Decode(rawRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	account, err := s.store.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return TokenPair{}, ErrBadCredentials
		}
		return TokenPair{}, err
	}
	if !account.Enabled {
		return TokenPair{}, ErrBadCredentials
	}

	access, err := s.issuer.AccessToken(account.Principal())
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: rawRefresh}, nil
}
