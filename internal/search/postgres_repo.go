package search

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

func (r *PostgresRepo) Search(ctx context.Context, query string, limit int) ([]BookSummary, error) {
	const sql = `
	SELECT id, title, author, genre
	FROM books
	WHERE title ILIKE $1 OR author ILIKE $1
	ORDER BY title ASC, id ASC
	LIMIT $2
	`
	timeoutCtx, cancel := postgres.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, sql, "%"+postgres.EscapeLike(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", postgres.MapError(err))
	}
	defer rows.Close()

	out := make([]BookSummary, 0, limit)
	for rows.Next() {
		var b BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return out, nil
}
