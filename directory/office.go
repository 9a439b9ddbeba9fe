package directory

import (
	"context"
	"fmt"
	"time"
)

// Office is a physical branch that managers, clerks, and documents belong
// to.
type Office struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OfficePatch allows partial updates; only non-nil fields are applied.
type OfficePatch struct {
	Name    *string
	Address *string
	Phone   *string
}

type OfficeRepository interface {
	Create(ctx context.Context, office Office) error
	GetByID(ctx context.Context, id string) (Office, error)
	List(ctx context.Context) ([]Office, error)
	Update(ctx context.Context, office Office) error
	Delete(ctx context.Context, id string) error
}

type OfficeService struct {
	repo OfficeRepository
	now  func() time.Time
}

func NewOfficeService(repo OfficeRepository) (*OfficeService, error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: office repository required", ErrInvalidInput)
	}
	return &OfficeService{repo: repo, now: time.Now}, nil
}

// SetNowFunc injects a deterministic clock (useful for tests).
func (s *OfficeService) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

func (s *OfficeService) Create(ctx context.Context, office Office) (Office, error) {
	if office.Name == "" {
		return Office{}, fmt.Errorf("%w: office name required", ErrInvalidInput)
	}
	id, err := NewID()
	if err != nil {
		return Office{}, err
	}
	now := s.now().UTC()
	office.ID = id
	office.CreatedAt = now
	office.UpdatedAt = now
	if err := s.repo.Create(ctx, office); err != nil {
		return Office{}, err
	}
	return office, nil
}

func (s *OfficeService) Get(ctx context.Context, id string) (Office, error) {
	if id == "" {
		return Office{}, fmt.Errorf("%w: office id required", ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *OfficeService) List(ctx context.Context) ([]Office, error) {
	return s.repo.List(ctx)
}

// UpdatePartial merges the patch onto the stored office field by field.
func (s *OfficeService) UpdatePartial(ctx context.Context, id string, patch OfficePatch) (Office, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Office{}, err
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return Office{}, fmt.Errorf("%w: office name required", ErrInvalidInput)
		}
		existing.Name = *patch.Name
	}
	if patch.Address != nil {
		existing.Address = *patch.Address
	}
	if patch.Phone != nil {
		existing.Phone = *patch.Phone
	}
	existing.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, existing); err != nil {
		return Office{}, err
	}
	return existing, nil
}

func (s *OfficeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: office id required", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}
