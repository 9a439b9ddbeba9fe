package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/officedesk/officedesk/directory"
)

// OfficeRepository persists directory.Office records.
type OfficeRepository struct {
	db *sql.DB
}

func NewOfficeRepository(db *sql.DB) *OfficeRepository {
	return &OfficeRepository{db: db}
}

const officeColumns = `id, name, address, phone, created_at, updated_at`

func (r *OfficeRepository) Create(ctx context.Context, office directory.Office) error {
	const query = `INSERT INTO offices (` + officeColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		office.ID, office.Name, office.Address, office.Phone, office.CreatedAt, office.UpdatedAt)
	return translateError(err)
}

func (r *OfficeRepository) GetByID(ctx context.Context, id string) (directory.Office, error) {
	const query = `SELECT ` + officeColumns + ` FROM offices WHERE id = $1`
	var office directory.Office
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&office.ID, &office.Name, &office.Address, &office.Phone,
		&office.CreatedAt, &office.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return directory.Office{}, directory.ErrNotFound
		}
		return directory.Office{}, translateError(err)
	}
	return office, nil
}

func (r *OfficeRepository) List(ctx context.Context) ([]directory.Office, error) {
	const query = `SELECT ` + officeColumns + ` FROM offices ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var offices []directory.Office
	for rows.Next() {
		var office directory.Office
		if err := rows.Scan(
			&office.ID, &office.Name, &office.Address, &office.Phone,
			&office.CreatedAt, &office.UpdatedAt); err != nil {
			return nil, err
		}
		offices = append(offices, office)
	}
	return offices, rows.Err()
}

func (r *OfficeRepository) Update(ctx context.Context, office directory.Office) error {
	const query = `UPDATE offices SET name = $2, address = $3, phone = $4, updated_at = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		office.ID, office.Name, office.Address, office.Phone, office.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return directory.ErrNotFound
	}
	return nil
}

func (r *OfficeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM offices WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return directory.ErrNotFound
	}
	return nil
}
