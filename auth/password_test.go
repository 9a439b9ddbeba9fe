package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBcryptHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(WithBcryptCost(4))
	ctx := context.Background()

	hash, err := hasher.Hash(ctx, []byte("secret123"), PasswordOptions{})
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash.Algorithm != AlgorithmBcrypt {
		t.Fatalf("algorithm = %q, want bcrypt", hash.Algorithm)
	}
	if hash.CreatedAt.IsZero() {
		t.Fatal("Hash() left CreatedAt zero")
	}

	if err := hasher.Compare(ctx, []byte("secret123"), hash); err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if err := hasher.Compare(ctx, []byte("wrong-password"), hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("Compare() error = %v, want ErrPasswordMismatch", err)
	}
}

func TestBcryptPasswordLength(t *testing.T) {
	hasher := NewBcryptHasher(WithBcryptCost(4))
	ctx := context.Background()

	if _, err := hasher.Hash(ctx, []byte("short"), PasswordOptions{}); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("Hash(short) error = %v, want ErrPasswordTooShort", err)
	}
	long := []byte(strings.Repeat("x", MaxPasswordLength+1))
	if _, err := hasher.Hash(ctx, long, PasswordOptions{}); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("Hash(long) error = %v, want ErrPasswordTooLong", err)
	}
}

func TestBcryptNeedsRehash(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hasher := NewBcryptHasher(
		WithBcryptCost(6),
		WithBcryptNow(func() time.Time { return created.Add(48 * time.Hour) }),
	)

	weak := PasswordHash{Algorithm: AlgorithmBcrypt, Cost: 4, Value: []byte("x"), CreatedAt: created}
	if !hasher.NeedsRehash(weak, PasswordOptions{}) {
		t.Fatal("expected rehash for lower cost")
	}

	current := PasswordHash{Algorithm: AlgorithmBcrypt, Cost: 6, Value: []byte("x"), CreatedAt: created}
	if hasher.NeedsRehash(current, PasswordOptions{}) {
		t.Fatal("unexpected rehash for matching cost")
	}
	if !hasher.NeedsRehash(current, PasswordOptions{MaxAge: time.Hour}) {
		t.Fatal("expected rehash for stale hash")
	}

	foreign := PasswordHash{Algorithm: AlgorithmArgon2id, Value: []byte("x")}
	if !hasher.NeedsRehash(foreign, PasswordOptions{}) {
		t.Fatal("expected rehash for foreign algorithm")
	}
}

func TestBcryptCompareRejectsForeignHash(t *testing.T) {
	hasher := NewBcryptHasher(WithBcryptCost(4))
	ctx := context.Background()

	err := hasher.Compare(ctx, []byte("secret123"), PasswordHash{Algorithm: AlgorithmArgon2id})
	if !errors.Is(err, ErrPasswordInvalidAlgorithm) {
		t.Fatalf("Compare() error = %v, want ErrPasswordInvalidAlgorithm", err)
	}
	err = hasher.Compare(ctx, []byte("secret123"), PasswordHash{Algorithm: AlgorithmBcrypt})
	if !errors.Is(err, ErrPasswordInvalidHash) {
		t.Fatalf("Compare() error = %v, want ErrPasswordInvalidHash", err)
	}
}

func TestArgon2idHashAndCompare(t *testing.T) {
	hasher := NewArgon2idHasher(WithArgon2Time(1), WithArgon2Memory(16*1024))
	ctx := context.Background()

	hash, err := hasher.Hash(ctx, []byte("secret123"), PasswordOptions{})
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash.Algorithm != AlgorithmArgon2id {
		t.Fatalf("algorithm = %q, want argon2id", hash.Algorithm)
	}
	if len(hash.Salt) != DefaultSaltLength {
		t.Fatalf("salt length = %d, want %d", len(hash.Salt), DefaultSaltLength)
	}

	if err := hasher.Compare(ctx, []byte("secret123"), hash); err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if err := hasher.Compare(ctx, []byte("wrong-password"), hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("Compare() error = %v, want ErrPasswordMismatch", err)
	}
}

func TestArgon2idParamsSurviveConfigChange(t *testing.T) {
	ctx := context.Background()
	old := NewArgon2idHasher(WithArgon2Time(1), WithArgon2Memory(16*1024))
	hash, err := old.Hash(ctx, []byte("secret123"), PasswordOptions{})
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// A hasher with different parameters still verifies old hashes because
	// the parameters ride along in the stored value.
	current := NewArgon2idHasher(WithArgon2Time(2), WithArgon2Memory(32*1024))
	if err := current.Compare(ctx, []byte("secret123"), hash); err != nil {
		t.Fatalf("Compare() with new params error = %v", err)
	}
	if !current.NeedsRehash(hash, PasswordOptions{}) {
		t.Fatal("expected rehash after parameter upgrade")
	}
}

func TestArgon2idCompareRejectsCorruptValue(t *testing.T) {
	hasher := NewArgon2idHasher()
	ctx := context.Background()

	for _, value := range [][]byte{
		nil,
		[]byte("no-dollar"),
		[]byte("t=0,m=0,p=0$key"),
		[]byte("t=bad,m=1,p=1$key"),
	} {
		hash := PasswordHash{Algorithm: AlgorithmArgon2id, Value: value}
		if err := hasher.Compare(ctx, []byte("secret123"), hash); !errors.Is(err, ErrPasswordInvalidHash) {
			t.Fatalf("Compare(%q) error = %v, want ErrPasswordInvalidHash", value, err)
		}
	}
}

func TestHasherHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bcryptHasher := NewBcryptHasher(WithBcryptCost(4))
	if _, err := bcryptHasher.Hash(ctx, []byte("secret123"), PasswordOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("bcrypt Hash() error = %v, want context.Canceled", err)
	}

	argonHasher := NewArgon2idHasher()
	if _, err := argonHasher.Hash(ctx, []byte("secret123"), PasswordOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("argon2id Hash() error = %v, want context.Canceled", err)
	}
}

func TestValidatePasswordLengthCountsRunes(t *testing.T) {
	// Eight multi-byte runes pass the minimum even though the byte count is
	// well above it.
	if err := validatePasswordLength([]byte("ああああああああ")); err != nil {
		t.Fatalf("validatePasswordLength() error = %v", err)
	}
	if err := validatePasswordLength([]byte("あああ")); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("validatePasswordLength() error = %v, want ErrPasswordTooShort", err)
	}
}
