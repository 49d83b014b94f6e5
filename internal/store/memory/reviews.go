package memory

import (
	"context"
	"fmt"
	"sort"

	"bookreview/internal/apperror"
	"bookreview/internal/book"
	"bookreview/internal/review"
)

type ReviewStore struct {
	s *Store
}

var (
	_ review.Repository = (*ReviewStore)(nil)
	_ book.ReviewReader = (*ReviewStore)(nil)
)

func reviewKey(userID, bookID string) string {
	return userID + "\x00" + bookID
}

func (rs *ReviewStore) Create(_ context.Context, r *review.Review) error {
	s := rs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[r.BookID]; !ok {
		return fmt.Errorf("insert review: book %s: %w", r.BookID, apperror.ErrNotFound)
	}
	key := reviewKey(r.UserID, r.BookID)
	if _, dup := s.reviewKeys[key]; dup {
		return fmt.Errorf("insert review: %w", apperror.ErrConflict)
	}

	r.ID = newID()
	r.CreatedAt = s.tick()
	r.UpdatedAt = r.CreatedAt
	s.reviews[r.ID] = *r
	s.reviewKeys[key] = r.ID
	return nil
}

func (rs *ReviewStore) GetByID(_ context.Context, id string) (review.Review, error) {
	s := rs.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviews[id]
	if !ok {
		return review.Review{}, fmt.Errorf("get review: %w", apperror.ErrNotFound)
	}
	return r, nil
}

func (rs *ReviewStore) Update(_ context.Context, r *review.Review) error {
	s := rs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.reviews[r.ID]
	if !ok || cur.UserID != r.UserID {
		return fmt.Errorf("update review: %w", apperror.ErrNotFound)
	}
	cur.Rating = r.Rating
	cur.Comment = r.Comment
	cur.UpdatedAt = s.tick()
	s.reviews[r.ID] = cur
	*r = cur
	return nil
}

func (rs *ReviewStore) Delete(_ context.Context, id, userID string) error {
	s := rs.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.reviews[id]
	if !ok || cur.UserID != userID {
		return fmt.Errorf("delete review: %w", apperror.ErrNotFound)
	}
	delete(s.reviews, id)
	delete(s.reviewKeys, reviewKey(cur.UserID, cur.BookID))
	return nil
}

func (rs *ReviewStore) byBook(bookID string) []review.Review {
	var out []review.Review
	for _, r := range rs.s.reviews {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out
}

func (rs *ReviewStore) ListByBook(_ context.Context, bookID string, limit, offset int) ([]review.Review, error) {
	s := rs.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := rs.byBook(bookID)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return window(matched, limit, offset), nil
}

func (rs *ReviewStore) StatsByBook(_ context.Context, bookID string) (review.Stats, error) {
	s := rs.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := rs.byBook(bookID)
	if len(matched) == 0 {
		return review.Stats{}, nil
	}
	sum := 0
	for _, r := range matched {
		sum += r.Rating
	}
	return review.Stats{Count: len(matched), Average: float64(sum) / float64(len(matched))}, nil
}

// Count returns the number of stored reviews.
func (rs *ReviewStore) Count() int {
	rs.s.mu.RLock()
	defer rs.s.mu.RUnlock()
	return len(rs.s.reviews)
}
