package review

import (
	"strings"
	"time"

	"bookreview/internal/apperror"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserID    string    `json:"userId"`
	BookID    string    `json:"bookId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AddInput struct {
	Rating  int
	Comment string
}

// UpdateInput carries a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Rating  *int
	Comment *string
}

// Stats aggregates every review of one book.
type Stats struct {
	Count   int
	Average float64 // 0 when Count is 0
}

func checkRating(rating int) *apperror.FieldError {
	if rating < MinRating || rating > MaxRating {
		return &apperror.FieldError{Field: "rating", Message: "rating must be between 1 and 5"}
	}
	return nil
}

func checkComment(comment string) *apperror.FieldError {
	if strings.TrimSpace(comment) == "" {
		return &apperror.FieldError{Field: "comment", Message: "comment is required"}
	}
	return nil
}

func invalid(checks ...*apperror.FieldError) error {
	var details []apperror.FieldError
	for _, c := range checks {
		if c != nil {
			details = append(details, *c)
		}
	}
	if len(details) == 0 {
		return nil
	}
	return apperror.InvalidInput("Validation failed", details...)
}
