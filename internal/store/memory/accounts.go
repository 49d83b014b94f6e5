package memory

import (
	"context"
	"fmt"
	"strings"

	"bookreview/internal/account"
	"bookreview/internal/apperror"
)

type AccountStore struct {
	s *Store
}

var _ account.Repository = (*AccountStore)(nil)

func (a *AccountStore) Create(_ context.Context, acc *account.Account) error {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(acc.Email)
	if _, taken := s.emails[key]; taken {
		return fmt.Errorf("insert account: %w", apperror.ErrConflict)
	}

	acc.ID = newID()
	acc.CreatedAt = s.tick()
	s.accounts[acc.ID] = *acc
	s.emails[key] = acc.ID
	return nil
}

func (a *AccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	s := a.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return account.Account{}, fmt.Errorf("get account by email: %w", apperror.ErrNotFound)
	}
	return s.accounts[id], nil
}

func (a *AccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	s := a.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return account.Account{}, fmt.Errorf("get account by id: %w", apperror.ErrNotFound)
	}
	return acc, nil
}

// Count returns the number of stored accounts.
func (a *AccountStore) Count() int {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return len(a.s.accounts)
}
