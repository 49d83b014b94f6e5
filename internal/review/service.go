package review

import (
	"context"
	"errors"
	"strings"

	"bookreview/internal/apperror"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add creates the caller's review of bookID. Uniqueness and book existence are
// both decided by the single insert.
func (s *Service) Add(ctx context.Context, userID, bookID string, in AddInput) (Review, error) {
	if err := invalid(checkRating(in.Rating), checkComment(in.Comment)); err != nil {
		return Review{}, err
	}

	r := &Review{
		Rating:  in.Rating,
		Comment: strings.TrimSpace(in.Comment),
		UserID:  userID,
		BookID:  bookID,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		switch {
		case errors.Is(err, apperror.ErrConflict):
			return Review{}, apperror.Conflict("You have already reviewed this book")
		case errors.Is(err, apperror.ErrNotFound):
			return Review{}, apperror.NotFound("Book")
		case errors.Is(err, apperror.ErrUnauthorized):
			return Review{}, apperror.Unauthorized("Account no longer exists")
		}
		return Review{}, apperror.Internal(err)
	}
	return *r, nil
}

func (s *Service) Get(ctx context.Context, reviewID string) (Review, error) {
	r, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return Review{}, apperror.NotFound("Review")
		}
		return Review{}, apperror.Internal(err)
	}
	return r, nil
}

// Update applies the supplied fields to a review owned by userID.
func (s *Service) Update(ctx context.Context, reviewID, userID string, in UpdateInput) (Review, error) {
	if in.Rating == nil && in.Comment == nil {
		return Review{}, apperror.InvalidInput("Nothing to update",
			apperror.FieldError{Field: "body", Message: "rating or comment is required"})
	}
	var ratingCheck, commentCheck *apperror.FieldError
	if in.Rating != nil {
		ratingCheck = checkRating(*in.Rating)
	}
	if in.Comment != nil {
		commentCheck = checkComment(*in.Comment)
	}
	if err := invalid(ratingCheck, commentCheck); err != nil {
		return Review{}, err
	}

	r, err := s.owned(ctx, reviewID, userID, "Not allowed to edit this review")
	if err != nil {
		return Review{}, err
	}

	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if in.Comment != nil {
		r.Comment = strings.TrimSpace(*in.Comment)
	}
	if err := s.repo.Update(ctx, &r); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return Review{}, apperror.NotFound("Review")
		}
		return Review{}, apperror.Internal(err)
	}
	return r, nil
}

// Delete removes a review owned by userID.
func (s *Service) Delete(ctx context.Context, reviewID, userID string) error {
	if _, err := s.owned(ctx, reviewID, userID, "Not allowed to delete this review"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, reviewID, userID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFound("Review")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (s *Service) owned(ctx context.Context, reviewID, userID, denied string) (Review, error) {
	r, err := s.Get(ctx, reviewID)
	if err != nil {
		return Review{}, err
	}
	if r.UserID != userID {
		return Review{}, apperror.Forbidden(denied)
	}
	return r, nil
}
