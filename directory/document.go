package directory

import (
	"context"
	"fmt"
	"time"
)

// Document is a filed record owned by an office and optionally assigned to
// a clerk.
type Document struct {
	ID        string
	Title     string
	Kind      string
	OfficeID  string
	ClerkID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DocumentPatch struct {
	Title   *string
	Kind    *string
	ClerkID *string
}

type DocumentRepository interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	ListByOffice(ctx context.Context, officeID string) ([]Document, error)
	List(ctx context.Context) ([]Document, error)
	Update(ctx context.Context, doc Document) error
	Delete(ctx context.Context, id string) error
}

type DocumentService struct {
	documents DocumentRepository
	offices   OfficeRepository
	clerks    ClerkRepository
	now       func() time.Time
}

func NewDocumentService(documents DocumentRepository, offices OfficeRepository, clerks ClerkRepository) (*DocumentService, error) {
	if documents == nil || offices == nil || clerks == nil {
		return nil, fmt.Errorf("%w: document service requires all repositories", ErrInvalidInput)
	}
	return &DocumentService{documents: documents, offices: offices, clerks: clerks, now: time.Now}, nil
}

// SetNowFunc injects a deterministic clock (useful for tests).
func (s *DocumentService) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

func (s *DocumentService) Create(ctx context.Context, doc Document) (Document, error) {
	if doc.Title == "" {
		return Document{}, fmt.Errorf("%w: document title required", ErrInvalidInput)
	}
	if doc.OfficeID == "" {
		return Document{}, fmt.Errorf("%w: office id required", ErrInvalidInput)
	}
	if _, err := s.offices.GetByID(ctx, doc.OfficeID); err != nil {
		return Document{}, err
	}
	if doc.ClerkID != "" {
		if _, err := s.clerks.GetByID(ctx, doc.ClerkID); err != nil {
			return Document{}, err
		}
	}
	id, err := NewID()
	if err != nil {
		return Document{}, err
	}
	now := s.now().UTC()
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if err := s.documents.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("%w: document id required", ErrInvalidInput)
	}
	return s.documents.GetByID(ctx, id)
}

func (s *DocumentService) List(ctx context.Context) ([]Document, error) {
	return s.documents.List(ctx)
}

func (s *DocumentService) ListByOffice(ctx context.Context, officeID string) ([]Document, error) {
	if officeID == "" {
		return nil, fmt.Errorf("%w: office id required", ErrInvalidInput)
	}
	return s.documents.ListByOffice(ctx, officeID)
}

func (s *DocumentService) UpdatePartial(ctx context.Context, id string, patch DocumentPatch) (Document, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if patch.Title != nil {
		if *patch.Title == "" {
			return Document{}, fmt.Errorf("%w: document title required", ErrInvalidInput)
		}
		existing.Title = *patch.Title
	}
	if patch.Kind != nil {
		existing.Kind = *patch.Kind
	}
	if patch.ClerkID != nil {
		if *patch.ClerkID != "" {
			if _, err := s.clerks.GetByID(ctx, *patch.ClerkID); err != nil {
				return Document{}, err
			}
		}
		existing.ClerkID = *patch.ClerkID
	}
	existing.UpdatedAt = s.now().UTC()
	if err := s.documents.Update(ctx, existing); err != nil {
		return Document{}, err
	}
	return existing, nil
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: document id required", ErrInvalidInput)
	}
	return s.documents.Delete(ctx, id)
}
