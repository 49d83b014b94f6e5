package book

import (
	"context"
	"fmt"
	"strings"
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

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (title, author, genre)
	VALUES ($1, $2, $3)
	RETURNING id, created_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query, b.Title, b.Author, b.Genre).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("insert book: %w", postgres.MapError(err))
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	const query = `
	SELECT id, title, author, genre, created_at
	FROM books WHERE id = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	if err := r.db.QueryRow(timeoutCtx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.CreatedAt); err != nil {
		return Book{}, fmt.Errorf("get book: %w", postgres.MapError(err))
	}
	return b, nil
}

func (r *PostgresRepo) List(ctx context.Context, f Filter, limit, offset int) ([]Book, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if f.Author != "" {
		clauses = append(clauses, fmt.Sprintf("author ILIKE $%d", argn))
		args = append(args, "%"+postgres.EscapeLike(f.Author)+"%")
		argn++
	}
	if f.Genre != "" {
		clauses = append(clauses, fmt.Sprintf("genre ILIKE $%d", argn))
		args = append(args, "%"+postgres.EscapeLike(f.Genre)+"%")
		argn++
	}
	where := "WHERE " + strings.Join(clauses, " AND ")

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.QueryRow(timeoutCtx, "SELECT COUNT(*) FROM books "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", postgres.MapError(err))
	}

	dataSQL := fmt.Sprintf(`
	SELECT id, title, author, genre, created_at
	FROM books
	%s
	ORDER BY created_at DESC, id DESC
	LIMIT $%d OFFSET $%d`, where, argn, argn+1)

	rows, err := r.db.Query(timeoutCtx, dataSQL, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", postgres.MapError(err))
	}
	defer rows.Close()

	out := make([]Book, 0, limit)
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return out, total, nil
}
