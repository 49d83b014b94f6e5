// Package search implements title/author lookup over the catalog.
package search

const (
	Limit          = 20
	MinQueryLength = 2
)

type BookSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}
