package review

import "context"

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=review

// Repository persists reviews.
//
// Create fails with apperror.ErrConflict when the account already reviewed
// the book and with apperror.ErrNotFound when the book does not exist. Update
// and Delete only touch a row owned by the given user and report
// apperror.ErrNotFound when no such row exists.
type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id, userID string) error
	ListByBook(ctx context.Context, bookID string, limit, offset int) ([]Review, error)
	StatsByBook(ctx context.Context, bookID string) (Stats, error)
}
