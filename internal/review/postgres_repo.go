package review

import (
	"context"
	"fmt"
	"time"

	"bookreview/internal/apperror"
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

// accountForeignKey guards reviews.user_id. It fails only when a still-valid
// token outlives its account.
const accountForeignKey = "reviews_user_id_fkey"

const reviewColumns = `id, rating, comment, user_id, book_id, created_at, updated_at`

func scanReview(row interface{ Scan(dest ...any) error }) (Review, error) {
	var rv Review
	err := row.Scan(&rv.ID, &rv.Rating, &rv.Comment, &rv.UserID, &rv.BookID, &rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}

// Create inserts the review. The (user_id, book_id) unique index and the
// foreign keys are the only duplicate and existence checks.
func (r *PostgresRepo) Create(ctx context.Context, rv *Review) error {
	const query = `
	INSERT INTO reviews (rating, comment, user_id, book_id)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, rv.Rating, rv.Comment, rv.UserID, rv.BookID).
		Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if postgres.ViolatedConstraint(err) == accountForeignKey {
			return fmt.Errorf("insert review: account %s: %w", rv.UserID, apperror.ErrUnauthorized)
		}
		return fmt.Errorf("insert review: %w", postgres.MapError(err))
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rv, err := scanReview(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		return Review{}, fmt.Errorf("get review: %w", postgres.MapError(err))
	}
	return rv, nil
}

func (r *PostgresRepo) Update(ctx context.Context, rv *Review) error {
	const query = `
	UPDATE reviews
	SET rating = $1, comment = $2, updated_at = now()
	WHERE id = $3 AND user_id = $4
	RETURNING updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, rv.Rating, rv.Comment, rv.ID, rv.UserID).Scan(&rv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update review: %w", postgres.MapError(err))
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM reviews WHERE id = $1 AND user_id = $2`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete review: %w", postgres.MapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete review %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}

func (r *PostgresRepo) ListByBook(ctx context.Context, bookID string, limit, offset int) ([]Review, error) {
	query := `
	SELECT ` + reviewColumns + `
	FROM reviews
	WHERE book_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2 OFFSET $3
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, bookID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", postgres.MapError(err))
	}
	defer rows.Close()

	out := make([]Review, 0, limit)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", postgres.MapError(err))
	}
	return out, nil
}

func (r *PostgresRepo) StatsByBook(ctx context.Context, bookID string) (Stats, error) {
	const query = `
	SELECT COUNT(*), COALESCE(AVG(rating), 0)::float8
	FROM reviews
	WHERE book_id = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var s Stats
	if err := r.db.QueryRow(timeoutCtx, query, bookID).Scan(&s.Count, &s.Average); err != nil {
		return Stats{}, fmt.Errorf("review stats: %w", postgres.MapError(err))
	}
	return s, nil
}
