package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookreview/internal/account"
	"bookreview/internal/book"
	"bookreview/internal/platform/crypto"
	"bookreview/internal/review"
	"bookreview/internal/search"
	"bookreview/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]any `json:"meta"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := memory.New()
	tokens := crypto.NewTokenManager("router-test-secret")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	handler := newRouter(routerDeps{
		accounts: account.NewHTTPHandler(account.NewService(
			s.Accounts(), crypto.BcryptHasher{Cost: bcrypt.MinCost}, tokens, time.Hour)),
		books:        book.NewHTTPHandler(book.NewService(s.Books(), s.Reviews(), nil, logger)),
		reviews:      review.NewHTTPHandler(review.NewService(s.Reviews())),
		search:       search.NewHTTPHandler(search.NewService(s.Books(), nil, logger)),
		verifier:     tokens,
		logger:       logger,
		maxBodyBytes: 1 << 20,
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func signupAndLogin(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": "s3cretpass"}
	status, _ := call(t, srv, http.MethodPost, "/api/auth/signup", "", creds)
	require.Equal(t, http.StatusCreated, status)

	status, env := call(t, srv, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, status)
	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tok))
	require.NotEmpty(t, tok.Token)
	return tok.Token
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, err := srv.Client().Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"), path)
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"), path)
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/books"},
		{http.MethodPost, "/api/reviews/books/some-id"},
		{http.MethodPut, "/api/reviews/some-id"},
		{http.MethodDelete, "/api/reviews/some-id"},
	}
	for _, tc := range cases {
		status, env := call(t, srv, tc.method, tc.path, "", map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, status, tc.method+" "+tc.path)
		require.NotNil(t, env.Error)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	}

	status, _ := call(t, srv, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	status, _ := call(t, srv, http.MethodPatch, "/api/books", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestRouter_ReviewLifecycle(t *testing.T) {
	srv := newTestServer(t)
	owner := signupAndLogin(t, srv, "owner@example.com")
	other := signupAndLogin(t, srv, "other@example.com")

	status, env := call(t, srv, http.MethodGet, "/api/auth/me", owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "owner@example.com")

	status, env = call(t, srv, http.MethodPost, "/api/books", owner,
		map[string]string{"title": "The Hobbit", "author": "J.R.R. Tolkien", "genre": "Fantasy"})
	require.Equal(t, http.StatusCreated, status)
	var created struct {
		Book book.Book `json:"book"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, env = call(t, srv, http.MethodPost, "/api/reviews/books/"+created.Book.ID, owner,
		map[string]any{"rating": 4, "comment": "Lovely"})
	require.Equal(t, http.StatusCreated, status)
	var rv review.Review
	require.NoError(t, json.Unmarshal(env.Data, &rv))

	status, _ = call(t, srv, http.MethodPost, "/api/reviews/books/"+created.Book.ID, owner,
		map[string]any{"rating": 2, "comment": "Again"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, srv, http.MethodPut, "/api/reviews/"+rv.ID, other, map[string]any{"rating": 1})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = call(t, srv, http.MethodPut, "/api/reviews/"+rv.ID, owner, map[string]any{"rating": 5})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &rv))
	assert.Equal(t, 5, rv.Rating)

	status, env = call(t, srv, http.MethodGet, "/api/books/"+created.Book.ID, "", nil)
	require.Equal(t, http.StatusOK, status)
	var detail struct {
		Book book.Detail `json:"book"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, 1, detail.Book.TotalReviews)
	assert.InDelta(t, 5.0, detail.Book.AverageRating, 1e-9)

	status, env = call(t, srv, http.MethodGet, "/api/search?query=tolk", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, env.Meta["count"])

	status, _ = call(t, srv, http.MethodDelete, "/api/reviews/"+rv.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = call(t, srv, http.MethodDelete, "/api/reviews/"+rv.ID, owner, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, srv, http.MethodGet, "/api/reviews/"+rv.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
