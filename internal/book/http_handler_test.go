package book

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookreview/internal/apperror"
	"bookreview/internal/review"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHandler_List(t *testing.T) {
	f := newFixture(t)
	handler := NewHTTPHandler(f.svc)
	testBook := Book{ID: "1", Title: "Test", Author: "Someone", Genre: "Drama"}

	t.Run("success", func(t *testing.T) {
		f.repo.EXPECT().List(gomock.Any(), Filter{Genre: "drama"}, PageSize, 0).Return([]Book{testBook}, 1, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books?genre=drama", nil)
		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data Page `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 1, resp.Data.TotalCount)
		assert.Equal(t, 1, resp.Data.TotalPages)
		assert.Equal(t, 1, resp.Data.CurrentPage)
	})

	t.Run("bad page", func(t *testing.T) {
		for _, page := range []string{"0", "-1", "abc"} {
			w := httptest.NewRecorder()
			handler.List(w, httptest.NewRequest(http.MethodGet, "/api/books?page="+page, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code, "page=%s", page)
		}
	})

	t.Run("error", func(t *testing.T) {
		f.repo.EXPECT().List(gomock.Any(), gomock.Any(), PageSize, 0).Return(nil, 0, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	f := newFixture(t)
	handler := NewHTTPHandler(f.svc)

	t.Run("success", func(t *testing.T) {
		f.repo.EXPECT().GetByID(gomock.Any(), "b1").Return(Book{ID: "b1", Title: "Dune"}, nil)
		f.reviews.EXPECT().ListByBook(gomock.Any(), "b1", ReviewPageSize, 0).Return([]review.Review{{ID: "r1", Rating: 5}}, nil)
		f.reviews.EXPECT().StatsByBook(gomock.Any(), "b1").Return(review.Stats{Count: 1, Average: 5}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books/b1", nil)
		r.SetPathValue("id", "b1")
		handler.Get(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"averageRating":5`)
		assert.Contains(t, body, `"totalReviews":1`)
		assert.Contains(t, body, `"title":"Dune"`)
	})

	t.Run("not found", func(t *testing.T) {
		f.repo.EXPECT().GetByID(gomock.Any(), "nope").Return(Book{}, apperror.ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books/nope", nil)
		r.SetPathValue("id", "nope")
		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	f := newFixture(t)
	handler := NewHTTPHandler(f.svc)

	t.Run("created", func(t *testing.T) {
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *Book) error {
			b.ID = "b1"
			return nil
		})
		f.cache.EXPECT().Invalidate(gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(`{"title":"Dune","author":"Frank Herbert","genre":"Sci-Fi"}`))
		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"b1"`)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(`{"title":"Dune"}`))
		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"author"`)
		assert.Contains(t, w.Body.String(), `"field":"genre"`)
	})
}
