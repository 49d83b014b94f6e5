package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookreview/internal/account"
	"bookreview/internal/book"
	"bookreview/internal/httpx"
	"bookreview/internal/review"
	"bookreview/internal/search"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routerDeps struct {
	accounts *account.HTTPHandler
	books    *book.HTTPHandler
	reviews  *review.HTTPHandler
	search   *search.HTTPHandler

	verifier httpx.TokenVerifier
	// ready reports whether backing services can take traffic.
	ready func(ctx context.Context) error

	logger       *slog.Logger
	maxBodyBytes int64
	enableHSTS   bool
}

func newRouter(d routerDeps) http.Handler {
	auth := httpx.AuthMiddleware(d.verifier)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if d.ready != nil {
			if err := d.ready(ctx); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/auth/signup", d.accounts.Signup)
	mux.HandleFunc("POST /api/auth/login", d.accounts.Login)
	mux.Handle("GET /api/auth/me", protected(d.accounts.Me))

	mux.Handle("POST /api/books", protected(d.books.Create))
	mux.HandleFunc("GET /api/books", d.books.List)
	mux.HandleFunc("GET /api/books/{id}", d.books.Get)

	mux.Handle("POST /api/reviews/books/{id}", protected(d.reviews.Add))
	mux.HandleFunc("GET /api/reviews/{id}", d.reviews.Get)
	mux.Handle("PUT /api/reviews/{id}", protected(d.reviews.Update))
	mux.Handle("DELETE /api/reviews/{id}", protected(d.reviews.Delete))

	mux.HandleFunc("GET /api/search", d.search.Search)

	return httpx.Chain(mux,
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware(d.logger),
		httpx.AccessLogMiddleware(d.logger),
		httpx.SecurityHeadersMiddleware(d.enableHSTS),
		httpx.RequestSizeLimitMiddleware(d.maxBodyBytes),
		httpx.MetricsMiddleware,
	)
}
