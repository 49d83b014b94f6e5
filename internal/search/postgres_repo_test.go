package search

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepo_Search(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPostgresRepo(mock, time.Second)

	mock.ExpectQuery(`WHERE title ILIKE \$1 OR author ILIKE \$1 ORDER BY title ASC, id ASC LIMIT \$2`).
		WithArgs("%tol%", 20).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "author", "genre"}).
			AddRow("b2", "Silmarillion", "J.R.R. Tolkien", "Fantasy").
			AddRow("b1", "War and Peace", "Leo Tolstoy", "Classic"))

	got, err := repo.Search(context.Background(), "tol", 20)
	require.NoError(t, err)
	assert.Equal(t, []BookSummary{
		{ID: "b2", Title: "Silmarillion", Author: "J.R.R. Tolkien", Genre: "Fantasy"},
		{ID: "b1", Title: "War and Peace", Author: "Leo Tolstoy", Genre: "Classic"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Search_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPostgresRepo(mock, time.Second)

	mock.ExpectQuery("FROM books").
		WithArgs("%tol%", 20).
		WillReturnError(errors.New("conn refused"))

	_, err = repo.Search(context.Background(), "tol", 20)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
