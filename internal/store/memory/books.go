package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"bookreview/internal/apperror"
	"bookreview/internal/book"
	"bookreview/internal/search"
)

type BookStore struct {
	s *Store
}

var (
	_ book.Repository   = (*BookStore)(nil)
	_ search.Repository = (*BookStore)(nil)
)

func (b *BookStore) Create(_ context.Context, bk *book.Book) error {
	s := b.s
	s.mu.Lock()
	defer s.mu.Unlock()

	bk.ID = newID()
	bk.CreatedAt = s.tick()
	s.books[bk.ID] = *bk
	return nil
}

func (b *BookStore) GetByID(_ context.Context, id string) (book.Book, error) {
	s := b.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	bk, ok := s.books[id]
	if !ok {
		return book.Book{}, fmt.Errorf("get book: %w", apperror.ErrNotFound)
	}
	return bk, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (b *BookStore) List(_ context.Context, f book.Filter, limit, offset int) ([]book.Book, int, error) {
	s := b.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]book.Book, 0, len(s.books))
	for _, bk := range s.books {
		if f.Author != "" && !containsFold(bk.Author, f.Author) {
			continue
		}
		if f.Genre != "" && !containsFold(bk.Genre, f.Genre) {
			continue
		}
		matched = append(matched, bk)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	return window(matched, limit, offset), len(matched), nil
}

func (b *BookStore) Search(_ context.Context, query string, limit int) ([]search.BookSummary, error) {
	s := b.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []book.Book
	for _, bk := range s.books {
		if containsFold(bk.Title, query) || containsFold(bk.Author, query) {
			matched = append(matched, bk)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Title != matched[j].Title {
			return matched[i].Title < matched[j].Title
		}
		return matched[i].ID < matched[j].ID
	})

	matched = window(matched, limit, 0)
	out := make([]search.BookSummary, 0, len(matched))
	for _, bk := range matched {
		out = append(out, search.BookSummary{ID: bk.ID, Title: bk.Title, Author: bk.Author, Genre: bk.Genre})
	}
	return out, nil
}

func window[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}
