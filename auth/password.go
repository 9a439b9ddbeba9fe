package auth

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort         = errors.New("auth: password too short")
	ErrPasswordTooLong          = errors.New("auth: password too long")
	ErrPasswordMismatch         = errors.New("auth: password does not match")
	ErrPasswordInvalidAlgorithm = errors.New("auth: unsupported password algorithm")
	ErrPasswordInvalidHash      = errors.New("auth: invalid password hash")
)

// Password algorithm names as stored alongside the hash.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Hashing defaults.
const (
	DefaultBcryptCost    = 12
	DefaultArgon2Time    = 3
	DefaultArgon2Memory  = 64 * 1024
	DefaultArgon2Threads = 4
	DefaultArgon2KeyLen  = 32
	DefaultSaltLength    = 16
	MinPasswordLength    = 8
	MaxPasswordLength    = 128
)

// PasswordHash contains the metadata needed to verify a hashed password.
// It round-trips through JSON into the accounts table.
type PasswordHash struct {
	Algorithm string    `json:"algorithm"`
	Cost      int       `json:"cost,omitempty"`
	Salt      []byte    `json:"salt,omitempty"`
	Value     []byte    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// PasswordOptions tunes hashing on a per-call basis; zero values fall back
// to the hasher's configuration.
type PasswordOptions struct {
	Cost   int
	MaxAge time.Duration
}

// PasswordHasher manages password hashing and constant-time verification.
type PasswordHasher interface {
	Hash(ctx context.Context, plain []byte, opts PasswordOptions) (PasswordHash, error)
	Compare(ctx context.Context, plain []byte, hash PasswordHash) error
	NeedsRehash(hash PasswordHash, opts PasswordOptions) bool
}

func validatePasswordLength(plain []byte) error {
	n := len(bytes.Runes(plain))
	if n < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if n > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// BcryptHasher implements PasswordHasher on golang.org/x/crypto/bcrypt.
type BcryptHasher struct {
	cost int
	now  func() time.Time
}

type BcryptHasherOption func(*BcryptHasher)

// WithBcryptCost overrides the default work factor.
func WithBcryptCost(cost int) BcryptHasherOption {
	return func(h *BcryptHasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// WithBcryptNow injects a deterministic clock (useful for tests).
func WithBcryptNow(fn func() time.Time) BcryptHasherOption {
	return func(h *BcryptHasher) {
		if fn != nil {
			h.now = fn
		}
	}
}

func NewBcryptHasher(opts ...BcryptHasherOption) *BcryptHasher {
	h := &BcryptHasher{cost: DefaultBcryptCost, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

func (h *BcryptHasher) Hash(ctx context.Context, plain []byte, opts PasswordOptions) (PasswordHash, error) {
	if err := contextError(ctx); err != nil {
		return PasswordHash{}, err
	}
	if err := validatePasswordLength(plain); err != nil {
		return PasswordHash{}, err
	}

	cost := h.cost
	if opts.Cost >= bcrypt.MinCost && opts.Cost <= bcrypt.MaxCost {
		cost = opts.Cost
	}

	hashed, err := bcrypt.GenerateFromPassword(plain, cost)
	if err != nil {
		return PasswordHash{}, fmt.Errorf("auth: bcrypt hash: %w", err)
	}
	return PasswordHash{
		Algorithm: AlgorithmBcrypt,
		Cost:      cost,
		Value:     hashed,
		CreatedAt: h.now(),
	}, nil
}

func (h *BcryptHasher) Compare(ctx context.Context, plain []byte, hash PasswordHash) error {
	if err := contextError(ctx); err != nil {
		return err
	}
	if hash.Algorithm != AlgorithmBcrypt {
		return ErrPasswordInvalidAlgorithm
	}
	if len(hash.Value) == 0 {
		return ErrPasswordInvalidHash
	}
	if err := bcrypt.CompareHashAndPassword(hash.Value, plain); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("auth: bcrypt compare: %w", err)
	}
	return nil
}

func (h *BcryptHasher) NeedsRehash(hash PasswordHash, opts PasswordOptions) bool {
	if hash.Algorithm != AlgorithmBcrypt {
		return true
	}
	target := h.cost
	if opts.Cost > 0 {
		target = opts.Cost
	}
	if hash.Cost < target {
		return true
	}
	if opts.MaxAge > 0 && !hash.CreatedAt.IsZero() && h.now().Sub(hash.CreatedAt) > opts.MaxAge {
		return true
	}
	return false
}

// Argon2idHasher implements PasswordHasher on golang.org/x/crypto/argon2.
type Argon2idHasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
	now     func() time.Time
}

type Argon2idHasherOption func(*Argon2idHasher)

// WithArgon2Time sets the number of iterations.
func WithArgon2Time(t uint32) Argon2idHasherOption {
	return func(h *Argon2idHasher) {
		if t > 0 {
			h.time = t
		}
	}
}

// WithArgon2Memory sets the memory budget in KiB.
func WithArgon2Memory(m uint32) Argon2idHasherOption {
	return func(h *Argon2idHasher) {
		if m > 0 {
			h.memory = m
		}
	}
}

// WithArgon2Now injects a deterministic clock.
func WithArgon2Now(fn func() time.Time) Argon2idHasherOption {
	return func(h *Argon2idHasher) {
		if fn != nil {
			h.now = fn
		}
	}
}

func NewArgon2idHasher(opts ...Argon2idHasherOption) *Argon2idHasher {
	h := &Argon2idHasher{
		time:    DefaultArgon2Time,
		memory:  DefaultArgon2Memory,
		threads: DefaultArgon2Threads,
		keyLen:  DefaultArgon2KeyLen,
		saltLen: DefaultSaltLength,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

func (h *Argon2idHasher) Hash(ctx context.Context, plain []byte, opts PasswordOptions) (PasswordHash, error) {
	if err := contextError(ctx); err != nil {
		return PasswordHash{}, err
	}
	if err := validatePasswordLength(plain); err != nil {
		return PasswordHash{}, err
	}

	salt := make([]byte, h.saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return PasswordHash{}, fmt.Errorf("auth: generate salt: %w", err)
	}

	key := argon2.IDKey(plain, salt, h.time, h.memory, h.threads, h.keyLen)
	return PasswordHash{
		Algorithm: AlgorithmArgon2id,
		Salt:      salt,
		Value:     h.encodeParams(key),
		CreatedAt: h.now(),
	}, nil
}

func (h *Argon2idHasher) Compare(ctx context.Context, plain []byte, hash PasswordHash) error {
	if err := contextError(ctx); err != nil {
		return err
	}
	if hash.Algorithm != AlgorithmArgon2id {
		return ErrPasswordInvalidAlgorithm
	}

	params, stored, err := decodeArgon2Value(hash.Value)
	if err != nil {
		return err
	}
	key := argon2.IDKey(plain, hash.Salt, params.time, params.memory, params.threads, uint32(len(stored)))
	if subtle.ConstantTimeCompare(key, stored) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

func (h *Argon2idHasher) NeedsRehash(hash PasswordHash, opts PasswordOptions) bool {
	if hash.Algorithm != AlgorithmArgon2id {
		return true
	}
	params, _, err := decodeArgon2Value(hash.Value)
	if err != nil {
		return true
	}
	if params.time < h.time || params.memory < h.memory {
		return true
	}
	if opts.MaxAge > 0 && !hash.CreatedAt.IsZero() && h.now().Sub(hash.CreatedAt) > opts.MaxAge {
		return true
	}
	return false
}

type argon2Params struct {
	time    uint32
	memory  uint32
	threads uint8
}

// The stored value embeds the parameters so they survive configuration
// changes: "t=3,m=65536,p=4$<key bytes>".
func (h *Argon2idHasher) encodeParams(key []byte) []byte {
	prefix := fmt.Sprintf("t=%d,m=%d,p=%d$", h.time, h.memory, h.threads)
	return append([]byte(prefix), key...)
}

func decodeArgon2Value(value []byte) (argon2Params, []byte, error) {
	idx := bytes.IndexByte(value, '$')
	if idx < 0 {
		return argon2Params{}, nil, ErrPasswordInvalidHash
	}
	var params argon2Params
	for _, field := range strings.Split(string(value[:idx]), ",") {
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return argon2Params{}, nil, ErrPasswordInvalidHash
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return argon2Params{}, nil, ErrPasswordInvalidHash
		}
		switch k {
		case "t":
			params.time = uint32(n)
		case "m":
			params.memory = uint32(n)
		case "p":
			params.threads = uint8(n)
		}
	}
	if params.time == 0 || params.memory == 0 || params.threads == 0 {
		return argon2Params{}, nil, ErrPasswordInvalidHash
	}
	return params, value[idx+1:], nil
}
