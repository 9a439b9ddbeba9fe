// Package importer loads the office directory from CSV files. It is a
// one-shot batch job: files are read from a single directory, rows are
// inserted through the repositories in dependency order, and the run stops
// on the first error.
//
// Expected files and columns (header row required):
//
//	offices.csv    id,name,address,phone
//	managers.csv   id,first_name,last_name,email,office_id
//	clerks.csv     id,first_name,last_name,email,office_id,manager_id
//	documents.csv  id,title,kind,office_id,clerk_id
//	users.csv      username,password,role
//
// Missing files are skipped. User passwords are hashed with the configured
// hasher before insert.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/officedesk/officedesk/auth"
	"github.com/officedesk/officedesk/directory"
)

var ErrBadHeader = errors.New("importer: unexpected header row")

// Importer writes CSV rows through the directory repositories.
type Importer struct {
	offices   directory.OfficeRepository
	managers  directory.ManagerRepository
	clerks    directory.ClerkRepository
	documents directory.DocumentRepository
	accounts  directory.AccountRepository
	hasher    auth.PasswordHasher

	log *slog.Logger
	now func() time.Time
}

// Config carries the importer's collaborators. All repositories and the
// hasher are required.
type Config struct {
	Offices   directory.OfficeRepository
	Managers  directory.ManagerRepository
	Clerks    directory.ClerkRepository
	Documents directory.DocumentRepository
	Accounts  directory.AccountRepository
	Hasher    auth.PasswordHasher
	Logger    *slog.Logger
}

func New(cfg Config) (*Importer, error) {
	if cfg.Offices == nil || cfg.Managers == nil || cfg.Clerks == nil ||
		cfg.Documents == nil || cfg.Accounts == nil {
		return nil, errors.New("importer: all repositories are required")
	}
	if cfg.Hasher == nil {
		return nil, errors.New("importer: password hasher is required")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Importer{
		offices:   cfg.Offices,
		managers:  cfg.Managers,
		clerks:    cfg.Clerks,
		documents: cfg.Documents,
		accounts:  cfg.Accounts,
		hasher:    cfg.Hasher,
		log:       log,
		now:       time.Now,
	}, nil
}

// SetNowFunc overrides the clock, for tests.
func (im *Importer) SetNowFunc(fn func() time.Time) {
	im.now = fn
}

// Run imports every recognized CSV file found in dir. Files are processed
// in dependency order so foreign keys resolve: offices, managers, clerks,
// documents, users.
func (im *Importer) Run(ctx context.Context, dir string) error {
	steps := []struct {
		file   string
		header []string
		insert func(ctx context.Context, record []string) error
	}{
		{"offices.csv", []string{"id", "name", "address", "phone"}, im.insertOffice},
		{"managers.csv", []string{"id", "first_name", "last_name", "email", "office_id"}, im.insertManager},
		{"clerks.csv", []string{"id", "first_name", "last_name", "email", "office_id", "manager_id"}, im.insertClerk},
		{"documents.csv", []string{"id", "title", "kind", "office_id", "clerk_id"}, im.insertDocument},
		{"users.csv", []string{"username", "password", "role"}, im.insertUser},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		n, err := im.importFile(ctx, path, step.header, step.insert)
		if errors.Is(err, os.ErrNotExist) {
			im.log.Info("import file absent, skipping", "file", step.file)
			continue
		}
		if err != nil {
			return fmt.Errorf("importing %s: %w", step.file, err)
		}
		im.log.Info("imported", "file", step.file, "rows", n)
	}
	return nil
}

func (im *Importer) importFile(ctx context.Context, path string, header []string, insert func(context.Context, []string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	first, err := r.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if !headerMatches(first, header) {
		return 0, fmt.Errorf("%w: got %v, want %v", ErrBadHeader, first, header)
	}

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		if err := insert(ctx, record); err != nil {
			line, _ := r.FieldPos(0)
			return count, fmt.Errorf("line %d: %w", line, err)
		}
		count++
	}
}

func headerMatches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func (im *Importer) insertOffice(ctx context.Context, rec []string) error {
	now := im.now().UTC()
	return im.offices.Create(ctx, directory.Office{
		ID:        rec[0],
		Name:      rec[1],
		Address:   rec[2],
		Phone:     rec[3],
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (im *Importer) insertManager(ctx context.Context, rec []string) error {
	now := im.now().UTC()
	return im.managers.Create(ctx, directory.Manager{
		ID:        rec[0],
		FirstName: rec[1],
		LastName:  rec[2],
		Email:     rec[3],
		OfficeID:  rec[4],
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (im *Importer) insertClerk(ctx context.Context, rec []string) error {
	now := im.now().UTC()
	return im.clerks.Create(ctx, directory.Clerk{
		ID:        rec[0],
		FirstName: rec[1],
		LastName:  rec[2],
		Email:     rec[3],
		OfficeID:  rec[4],
		ManagerID: rec[5],
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (im *Importer) insertDocument(ctx context.Context, rec []string) error {
	now := im.now().UTC()
	return im.documents.Create(ctx, directory.Document{
		ID:        rec[0],
		Title:     rec[1],
		Kind:      rec[2],
		OfficeID:  rec[3],
		ClerkID:   rec[4],
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (im *Importer) insertUser(ctx context.Context, rec []string) error {
	username, password, role := rec[0], rec[1], rec[2]
	if !auth.KnownRole(role) {
		return fmt.Errorf("%w: unknown role %q", directory.ErrInvalidInput, role)
	}
	hash, err := im.hasher.Hash(ctx, []byte(password), auth.PasswordOptions{})
	if err != nil {
		return err
	}
	id, err := directory.NewID()
	if err != nil {
		return err
	}
	now := im.now().UTC()
	return im.accounts.Create(ctx, auth.Account{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
