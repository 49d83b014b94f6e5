package search

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"bookreview/internal/apperror"
)

type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

// NewService creates the search service. cache may be nil.
func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Search returns up to Limit books whose title or author contains query.
// Cache errors are logged and the store is queried directly.
func (s *Service) Search(ctx context.Context, query string) ([]BookSummary, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, apperror.InvalidInput("Search query must be at least 2 characters",
			apperror.FieldError{Field: "query", Message: "query must be at least 2 characters"})
	}

	key := s.cacheKey(ctx, query)
	if key != "" {
		var cached []BookSummary
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.WarnContext(ctx, "search cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		if hit {
			return cached, nil
		}
	}

	results, err := s.repo.Search(ctx, query, Limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if results == nil {
		results = []BookSummary{}
	}

	if key != "" {
		if err := s.cache.SetJSON(ctx, key, results); err != nil {
			s.logger.WarnContext(ctx, "search cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return results, nil
}

func (s *Service) cacheKey(ctx context.Context, query string) string {
	if s.cache == nil {
		return ""
	}
	key, err := s.cache.Key(ctx, "search:"+strings.ToLower(query))
	if err != nil {
		s.logger.WarnContext(ctx, "search cache unavailable", slog.Any("error", err))
		return ""
	}
	return key
}
