package account

import (
	"context"
	"fmt"
	"time"

	"bookreview/internal/platform/postgres"
)

type PostgresRepo struct {
	db      postgres.DB
	timeout time.Duration
}

func NewPostgresRepo(db postgres.DB, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return postgres.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, a *Account) error {
	const query = `
	INSERT INTO accounts (email, password_hash)
	VALUES ($1, $2)
	RETURNING id, created_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, a.Email, a.PasswordHash).Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("insert account: %w", postgres.MapError(err))
	}
	return nil
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	const query = `
	SELECT id, email, password_hash, created_at
	FROM accounts
	WHERE lower(email) = lower($1)
	LIMIT 1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var a Account
	err := r.db.QueryRow(timeoutCtx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return Account{}, fmt.Errorf("get account by email: %w", postgres.MapError(err))
	}
	return a, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Account, error) {
	const query = `
	SELECT id, email, password_hash, created_at
	FROM accounts WHERE id = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var a Account
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return Account{}, fmt.Errorf("get account by id: %w", postgres.MapError(err))
	}
	return a, nil
}
