package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/officedesk/officedesk/directory"
)

// ManagerRepository persists directory.Manager records.
type ManagerRepository struct {
	db *sql.DB
}

func NewManagerRepository(db *sql.DB) *ManagerRepository {
	return &ManagerRepository{db: db}
}

const managerColumns = `id, first_name, last_name, email, office_id, created_at, updated_at`

func (r *ManagerRepository) Create(ctx context.Context, manager directory.Manager) error {
	const query = `INSERT INTO managers (` + managerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		manager.ID, manager.FirstName, manager.LastName, manager.Email,
		manager.OfficeID, manager.CreatedAt, manager.UpdatedAt)
	return translateError(err)
}

func (r *ManagerRepository) GetByID(ctx context.Context, id string) (directory.Manager, error) {
	const query = `SELECT ` + managerColumns + ` FROM managers WHERE id = $1`
	var m directory.Manager
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.OfficeID,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return directory.Manager{}, directory.ErrNotFound
		}
		return directory.Manager{}, translateError(err)
	}
	return m, nil
}

func (r *ManagerRepository) List(ctx context.Context) ([]directory.Manager, error) {
	const query = `SELECT ` + managerColumns + ` FROM managers ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var managers []directory.Manager
	for rows.Next() {
		var m directory.Manager
		if err := rows.Scan(
			&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.OfficeID,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		managers = append(managers, m)
	}
	return managers, rows.Err()
}

func (r *ManagerRepository) Update(ctx context.Context, manager directory.Manager) error {
	const query = `UPDATE managers SET first_name = $2, last_name = $3, email = $4, office_id = $5, updated_at = $6 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		manager.ID, manager.FirstName, manager.LastName, manager.Email,
		manager.OfficeID, manager.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return directory.ErrNotFound
	}
	return nil
}

func (r *ManagerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM managers WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return directory.ErrNotFound
	}
	return nil
}

// ClerkRepository persists directory.Clerk records.
type ClerkRepository struct {
	db *sql.DB
}

func NewClerkRepository(db *sql.DB) *ClerkRepository {
	return &ClerkRepository{db: db}
}

const clerkColumns = `id, first_name, last_name, email, office_id, manager_id, created_at, updated_at`

func (r *ClerkRepository) Create(ctx context.Context, clerk directory.Clerk) error {
	const query = `INSERT INTO clerks (` + clerkColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		clerk.ID, clerk.FirstName, clerk.LastName, clerk.Email,
		clerk.OfficeID, clerk.ManagerID, clerk.CreatedAt, clerk.UpdatedAt)
	return translateError(err)
}

func (r *ClerkRepository) GetByID(ctx context.Context, id string) (directory.Clerk, error) {
	const query = `SELECT ` + clerkColumns + ` FROM clerks WHERE id = $1`
	var c directory.Clerk
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.OfficeID, &c.ManagerID,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return directory.Clerk{}, directory.ErrNotFound
		}
		return directory.Clerk{}, translateError(err)
	}
	return c, nil
}

func (r *ClerkRepository) List(ctx context.Context) ([]directory.Clerk, error) {
	const query = `SELECT ` + clerkColumns + ` FROM clerks ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var clerks []directory.Clerk
	for rows.Next() {
		var c directory.Clerk
		if err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.OfficeID, &c.ManagerID,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clerks = append(clerks, c)
	}
	return clerks, rows.Err()
}

func (r *ClerkRepository) Update(ctx context.Context, clerk directory.Clerk) error {
	const query = `UPDATE clerks SET first_name = $2, last_name = $3, email = $4, office_id = $5, manager_id = $6, updated_at = $7 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		clerk.ID, clerk.FirstName, clerk.LastName, clerk.Email,
		clerk.OfficeID, clerk.ManagerID, clerk.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return directory.ErrNotFound
	}
	return nil
}

func (r *ClerkRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clerks WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return directory.ErrNotFound
	}
	return nil
}
