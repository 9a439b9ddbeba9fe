package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/officedesk/officedesk/auth"
)

// AccountRepository persists auth.Account records. It implements both
// directory.AccountRepository and auth.AccountStore.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, username, password_hash, role, enabled, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, account auth.Account) error {
	const query = `INSERT INTO accounts (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	hashJSON, err := json.Marshal(account.PasswordHash)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query,
		account.ID, account.Username, hashJSON, account.Role, account.Enabled,
		account.CreatedAt, account.UpdatedAt)
	return translateError(err)
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (auth.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, username))
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (auth.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *AccountRepository) List(ctx context.Context) ([]auth.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts ORDER BY username`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var accounts []auth.Account
	for rows.Next() {
		account, err := r.scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, account auth.Account) error {
	const query = `UPDATE accounts SET username = $2, password_hash = $3, role = $4, enabled = $5, updated_at = $6 WHERE id = $1`
	hashJSON, err := json.Marshal(account.PasswordHash)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query,
		account.ID, account.Username, hashJSON, account.Role, account.Enabled, account.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return auth.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return auth.ErrAccountNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AccountRepository) scanAccount(row rowScanner) (auth.Account, error) {
	var (
		account  auth.Account
		hashJSON []byte
	)
	err := row.Scan(
		&account.ID,
		&account.Username,
		&hashJSON,
		&account.Role,
		&account.Enabled,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.Account{}, auth.ErrAccountNotFound
		}
		return auth.Account{}, translateError(err)
	}
	if err := json.Unmarshal(hashJSON, &account.PasswordHash); err != nil {
		return auth.Account{}, err
	}
	return account, nil
}
