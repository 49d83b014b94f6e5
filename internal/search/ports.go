package search

import "context"

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=search

type Repository interface {
	// Search matches query as a case-insensitive substring of title or
	// author, ordered by title.
	Search(ctx context.Context, query string, limit int) ([]BookSummary, error)
}

// Cache is satisfied by *cache.CatalogCache.
type Cache interface {
	Key(ctx context.Context, name string) (string, error)
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
}
