package directory

import (
	"context"
	"fmt"
	"time"
)

// Manager supervises the clerks of an office.
type Manager struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	OfficeID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ManagerPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	OfficeID  *string
}

// Clerk handles the day-to-day documents of an office.
type Clerk struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	OfficeID  string
	ManagerID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ClerkPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	OfficeID  *string
	ManagerID *string
}

type ManagerRepository interface {
	Create(ctx context.Context, manager Manager) error
	GetByID(ctx context.Context, id string) (Manager, error)
	List(ctx context.Context) ([]Manager, error)
	Update(ctx context.Context, manager Manager) error
	Delete(ctx context.Context, id string) error
}

type ClerkRepository interface {
	Create(ctx context.Context, clerk Clerk) error
	GetByID(ctx context.Context, id string) (Clerk, error)
	List(ctx context.Context) ([]Clerk, error)
	Update(ctx context.Context, clerk Clerk) error
	Delete(ctx context.Context, id string) error
}

// StaffService manages managers and clerks together since their lifecycles
// are entangled: a clerk references both an office and a manager.
type StaffService struct {
	managers ManagerRepository
	clerks   ClerkRepository
	offices  OfficeRepository
	now      func() time.Time
}

func NewStaffService(managers ManagerRepository, clerks ClerkRepository, offices OfficeRepository) (*StaffService, error) {
	if managers == nil || clerks == nil || offices == nil {
		return nil, fmt.Errorf("%w: staff service requires all repositories", ErrInvalidInput)
	}
	return &StaffService{managers: managers, clerks: clerks, offices: offices, now: time.Now}, nil
}

// SetNowFunc injects a deterministic clock (useful for tests).
func (s *StaffService) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

func (s *StaffService) CreateManager(ctx context.Context, manager Manager) (Manager, error) {
	if manager.FirstName == "" || manager.LastName == "" {
		return Manager{}, fmt.Errorf("%w: manager name required", ErrInvalidInput)
	}
	if err := s.officeExists(ctx, manager.OfficeID); err != nil {
		return Manager{}, err
	}
	id, err := NewID()
	if err != nil {
		return Manager{}, err
	}
	now := s.now().UTC()
	manager.ID = id
	manager.CreatedAt = now
	manager.UpdatedAt = now
	if err := s.managers.Create(ctx, manager); err != nil {
		return Manager{}, err
	}
	return manager, nil
}

func (s *StaffService) GetManager(ctx context.Context, id string) (Manager, error) {
	if id == "" {
		return Manager{}, fmt.Errorf("%w: manager id required", ErrInvalidInput)
	}
	return s.managers.GetByID(ctx, id)
}

func (s *StaffService) ListManagers(ctx context.Context) ([]Manager, error) {
	return s.managers.List(ctx)
}

func (s *StaffService) UpdateManagerPartial(ctx context.Context, id string, patch ManagerPatch) (Manager, error) {
	existing, err := s.GetManager(ctx, id)
	if err != nil {
		return Manager{}, err
	}
	if patch.FirstName != nil {
		existing.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		existing.LastName = *patch.LastName
	}
	if patch.Email != nil {
		existing.Email = *patch.Email
	}
	if patch.OfficeID != nil {
		if err := s.officeExists(ctx, *patch.OfficeID); err != nil {
			return Manager{}, err
		}
		existing.OfficeID = *patch.OfficeID
	}
	existing.UpdatedAt = s.now().UTC()
	if err := s.managers.Update(ctx, existing); err != nil {
		return Manager{}, err
	}
	return existing, nil
}

func (s *StaffService) DeleteManager(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: manager id required", ErrInvalidInput)
	}
	return s.managers.Delete(ctx, id)
}

func (s *StaffService) CreateClerk(ctx context.Context, clerk Clerk) (Clerk, error) {
	if clerk.FirstName == "" || clerk.LastName == "" {
		return Clerk{}, fmt.Errorf("%w: clerk name required", ErrInvalidInput)
	}
	if err := s.officeExists(ctx, clerk.OfficeID); err != nil {
		return Clerk{}, err
	}
	if err := s.managerExists(ctx, clerk.ManagerID); err != nil {
		return Clerk{}, err
	}
	id, err := NewID()
	if err != nil {
		return Clerk{}, err
	}
	now := s.now().UTC()
	clerk.ID = id
	clerk.CreatedAt = now
	clerk.UpdatedAt = now
	if err := s.clerks.Create(ctx, clerk); err != nil {
		return Clerk{}, err
	}
	return clerk, nil
}

func (s *StaffService) GetClerk(ctx context.Context, id string) (Clerk, error) {
	if id == "" {
		return Clerk{}, fmt.Errorf("%w: clerk id required", ErrInvalidInput)
	}
	return s.clerks.GetByID(ctx, id)
}

func (s *StaffService) ListClerks(ctx context.Context) ([]Clerk, error) {
	return s.clerks.List(ctx)
}

func (s *StaffService) UpdateClerkPartial(ctx context.Context, id string, patch ClerkPatch) (Clerk, error) {
	existing, err := s.GetClerk(ctx, id)
	if err != nil {
		return Clerk{}, err
	}
	if patch.FirstName != nil {
		existing.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		existing.LastName = *patch.LastName
	}
	if patch.Email != nil {
		existing.Email = *patch.Email
	}
	if patch.OfficeID != nil {
		if err := s.officeExists(ctx, *patch.OfficeID); err != nil {
			return Clerk{}, err
		}
		existing.OfficeID = *patch.OfficeID
	}
	if patch.ManagerID != nil {
		if err := s.managerExists(ctx, *patch.ManagerID); err != nil {
			return Clerk{}, err
		}
		existing.ManagerID = *patch.ManagerID
	}
	existing.UpdatedAt = s.now().UTC()
	if err := s.clerks.Update(ctx, existing); err != nil {
		return Clerk{}, err
	}
	return existing, nil
}

func (s *StaffService) DeleteClerk(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: clerk id required", ErrInvalidInput)
	}
	return s.clerks.Delete(ctx, id)
}

func (s *StaffService) officeExists(ctx context.Context, officeID string) error {
	if officeID == "" {
		return fmt.Errorf("%w: office id required", ErrInvalidInput)
	}
	if _, err := s.offices.GetByID(ctx, officeID); err != nil {
		return err
	}
	return nil
}

func (s *StaffService) managerExists(ctx context.Context, managerID string) error {
	if managerID == "" {
		return fmt.Errorf("%w: manager id required", ErrInvalidInput)
	}
	if _, err := s.managers.GetByID(ctx, managerID); err != nil {
		return err
	}
	return nil
}
