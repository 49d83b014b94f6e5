// Package memory is an in-process implementation of the account, book, review
// and search stores. A single mutex guards all state, so every
// check-and-insert is atomic the same way the database unique indexes are.
package memory

import (
	"sync"
	"time"

	"bookreview/internal/account"
	"bookreview/internal/book"
	"bookreview/internal/review"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	accounts map[string]account.Account
	emails   map[string]string // lower(email) -> account id

	books map[string]book.Book

	reviews    map[string]review.Review
	reviewKeys map[string]string // user id + book id -> review id

	now  func() time.Time
	last time.Time
}

func New() *Store {
	return &Store{
		accounts:   make(map[string]account.Account),
		emails:     make(map[string]string),
		books:      make(map[string]book.Book),
		reviews:    make(map[string]review.Review),
		reviewKeys: make(map[string]string),
		now:        time.Now,
	}
}

// tick returns a timestamp strictly after the previous one so that
// created_at ordering is total. Callers hold s.mu.
func (s *Store) tick() time.Time {
	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func newID() string {
	return uuid.NewString()
}

func (s *Store) Accounts() *AccountStore { return &AccountStore{s: s} }
func (s *Store) Books() *BookStore       { return &BookStore{s: s} }
func (s *Store) Reviews() *ReviewStore   { return &ReviewStore{s: s} }
