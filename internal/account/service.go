package account

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"bookreview/internal/apperror"
)

var errInvalidCredentials = apperror.Unauthorized("Invalid credentials")

type Service struct {
	repo     Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	tokenTTL time.Duration

	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo Repository, hasher PasswordHasher, tokens TokenIssuer, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = TokenTTL
	}
	return &Service{repo: repo, hasher: hasher, tokens: tokens, tokenTTL: tokenTTL}
}

// Register creates an account. A taken email is reported by the store's
// unique index, so two concurrent signups cannot both succeed.
func (s *Service) Register(ctx context.Context, email, password string) (Summary, error) {
	email = strings.TrimSpace(email)

	var details []apperror.FieldError
	if email == "" {
		details = append(details, apperror.FieldError{Field: "email", Message: "email is required"})
	}
	switch {
	case password == "":
		details = append(details, apperror.FieldError{Field: "password", Message: "password is required"})
	case len(password) > MaxPasswordBytes:
		details = append(details, apperror.FieldError{Field: "password", Message: "password must be at most 72 bytes"})
	}
	if len(details) > 0 {
		return Summary{}, apperror.InvalidInput("Validation failed", details...)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Summary{}, apperror.Internal(err)
	}

	acc := &Account{Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, acc); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return Summary{}, apperror.Conflict("Email already registered")
		}
		return Summary{}, apperror.Internal(err)
	}
	return acc.Summary(), nil
}

// Login checks credentials and issues an access token. Unknown emails and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	acc, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// keep the response time close to a real password check
			s.hasher.Verify(s.placeholderHash(), password)
			return Token{}, errInvalidCredentials
		}
		return Token{}, apperror.Internal(err)
	}

	if !s.hasher.Verify(acc.PasswordHash, password) {
		return Token{}, errInvalidCredentials
	}

	token, _, err := s.tokens.Issue(acc.ID, acc.Email, s.tokenTTL)
	if err != nil {
		return Token{}, apperror.Internal(err)
	}
	return Token{AccessToken: token, ExpiresIn: int64(s.tokenTTL / time.Second)}, nil
}

// Me returns the summary of the authenticated account.
func (s *Service) Me(ctx context.Context, id string) (Summary, error) {
	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return Summary{}, apperror.NotFound("account")
		}
		return Summary{}, apperror.Internal(err)
	}
	return acc.Summary(), nil
}

func (s *Service) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("placeholder-password")
	})
	return s.dummyHash
}
