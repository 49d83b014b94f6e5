package book

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"bookreview/internal/apperror"
	"bookreview/internal/review"
)

// Service provides book-related business logic.
type Service struct {
	repo    Repository
	reviews ReviewReader
	cache   Invalidator
	logger  *slog.Logger
}

// NewService creates a new book service. cache may be nil.
func NewService(repo Repository, reviews ReviewReader, cache Invalidator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, reviews: reviews, cache: cache, logger: logger}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	b := &Book{
		Title:  strings.TrimSpace(in.Title),
		Author: strings.TrimSpace(in.Author),
		Genre:  strings.TrimSpace(in.Genre),
	}

	var details []apperror.FieldError
	for _, f := range []struct{ name, value string }{
		{"title", b.Title}, {"author", b.Author}, {"genre", b.Genre},
	} {
		if f.value == "" {
			details = append(details, apperror.FieldError{Field: f.name, Message: f.name + " is required"})
		}
	}
	if len(details) > 0 {
		return Book{}, apperror.InvalidInput("Validation failed", details...)
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Book{}, apperror.Internal(err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.WarnContext(ctx, "catalog cache invalidation failed", slog.Any("error", err))
		}
	}
	return *b, nil
}

// List returns one page of books, newest first.
func (s *Service) List(ctx context.Context, f Filter, page int) (Page, error) {
	if page < 1 {
		return Page{}, apperror.InvalidInput("Invalid page",
			apperror.FieldError{Field: "page", Message: "page must be a positive integer"})
	}
	f.Author = strings.TrimSpace(f.Author)
	f.Genre = strings.TrimSpace(f.Genre)

	books, total, err := s.repo.List(ctx, f, PageSize, pageOffset(page, PageSize))
	if err != nil {
		return Page{}, apperror.Internal(err)
	}
	if books == nil {
		books = []Book{}
	}
	return Page{
		Books:       books,
		TotalCount:  total,
		TotalPages:  totalPages(total, PageSize),
		CurrentPage: page,
	}, nil
}

// Detail returns the book with the given page of its reviews.
func (s *Service) Detail(ctx context.Context, bookID string, page int) (Detail, error) {
	if page < 1 {
		return Detail{}, apperror.InvalidInput("Invalid page",
			apperror.FieldError{Field: "page", Message: "page must be a positive integer"})
	}

	b, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return Detail{}, apperror.NotFound("Book")
		}
		return Detail{}, apperror.Internal(err)
	}

	reviews, err := s.reviews.ListByBook(ctx, bookID, ReviewPageSize, pageOffset(page, ReviewPageSize))
	if err != nil {
		return Detail{}, apperror.Internal(err)
	}
	if reviews == nil {
		reviews = []review.Review{}
	}
	stats, err := s.reviews.StatsByBook(ctx, bookID)
	if err != nil {
		return Detail{}, apperror.Internal(err)
	}

	return Detail{
		Book:             b,
		Reviews:          reviews,
		AverageRating:    stats.Average,
		TotalReviews:     stats.Count,
		TotalReviewPages: totalPages(stats.Count, ReviewPageSize),
		CurrentPage:      page,
	}, nil
}
