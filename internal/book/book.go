package book

import (
	"math"
	"time"

	"bookreview/internal/review"
)

const (
	PageSize       = 10
	ReviewPageSize = 5
)

type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateInput struct {
	Title  string
	Author string
	Genre  string
}

// Filter narrows List. Empty fields match everything; set fields are
// case-insensitive substring matches combined with AND.
type Filter struct {
	Author string
	Genre  string
}

type Page struct {
	Books       []Book `json:"books"`
	TotalCount  int    `json:"totalBooks"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}

// Detail is a book with one page of its reviews and aggregates over all of
// them.
type Detail struct {
	Book
	Reviews          []review.Review `json:"reviews"`
	AverageRating    float64         `json:"averageRating"`
	TotalReviews     int             `json:"totalReviews"`
	TotalReviewPages int             `json:"totalReviewPages"`
	CurrentPage      int             `json:"currentPage"`
}

func totalPages(total, size int) int {
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// pageOffset is the row offset of a 1-based page. Pages too far out to
// address saturate at math.MaxInt, which every store answers with no rows.
func pageOffset(page, size int) int {
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}
