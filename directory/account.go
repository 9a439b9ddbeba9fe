package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/officedesk/officedesk/auth"
)

// AccountRepository extends the lookup interface the auth core consumes with
// the write operations the account CRUD surface needs.
type AccountRepository interface {
	auth.AccountStore
	Create(ctx context.Context, account auth.Account) error
	List(ctx context.Context) ([]auth.Account, error)
	Update(ctx context.Context, account auth.Account) error
	Delete(ctx context.Context, id string) error
}

// AccountPatch allows partial updates. Password changes go through the
// hasher; role changes are validated against the known role set.
type AccountPatch struct {
	Username *string
	Password *string
	Role     *string
	Enabled  *bool
}

type AccountService struct {
	repo   AccountRepository
	hasher auth.PasswordHasher
	now    func() time.Time
}

func NewAccountService(repo AccountRepository, hasher auth.PasswordHasher) (*AccountService, error) {
	if repo == nil || hasher == nil {
		return nil, fmt.Errorf("%w: account service requires repository and hasher", ErrInvalidInput)
	}
	return &AccountService{repo: repo, hasher: hasher, now: time.Now}, nil
}

// SetNowFunc injects a deterministic clock (useful for tests).
func (s *AccountService) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

func (s *AccountService) Create(ctx context.Context, username, password, role string) (auth.Account, error) {
	if username == "" || password == "" {
		return auth.Account{}, fmt.Errorf("%w: username and password required", ErrInvalidInput)
	}
	if !auth.KnownRole(role) {
		return auth.Account{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	hash, err := s.hasher.Hash(ctx, []byte(password), auth.PasswordOptions{})
	if err != nil {
		return auth.Account{}, err
	}
	id, err := NewID()
	if err != nil {
		return auth.Account{}, err
	}
	now := s.now().UTC()
	account := auth.Account{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return auth.Account{}, err
	}
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (auth.Account, error) {
	if id == "" {
		return auth.Account{}, fmt.Errorf("%w: account id required", ErrInvalidInput)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]auth.Account, error) {
	return s.repo.List(ctx)
}

func (s *AccountService) UpdatePartial(ctx context.Context, id string, patch AccountPatch) (auth.Account, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return auth.Account{}, err
	}
	if patch.Username != nil {
		if *patch.Username == "" {
			return auth.Account{}, fmt.Errorf("%w: username required", ErrInvalidInput)
		}
		existing.Username = *patch.Username
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(ctx, []byte(*patch.Password), auth.PasswordOptions{})
		if err != nil {
			return auth.Account{}, err
		}
		existing.PasswordHash = hash
	}
	if patch.Role != nil {
		if !auth.KnownRole(*patch.Role) {
			return auth.Account{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *patch.Role)
		}
		existing.Role = *patch.Role
	}
	if patch.Enabled != nil {
		existing.Enabled = *patch.Enabled
	}
	existing.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, existing); err != nil {
		return auth.Account{}, err
	}
	return existing, nil
}

func (s *AccountService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: account id required", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}
