package book

import (
	"context"

	"bookreview/internal/review"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id string) (Book, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Book, int, error)
}

// ReviewReader is the read side of the review store used by Detail.
type ReviewReader interface {
	ListByBook(ctx context.Context, bookID string, limit, offset int) ([]review.Review, error)
	StatsByBook(ctx context.Context, bookID string) (review.Stats, error)
}

// Invalidator drops cached catalog reads after a write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}
