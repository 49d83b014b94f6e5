package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookreview/internal/account"
	"bookreview/internal/book"
	"bookreview/internal/config"
	"bookreview/internal/platform/cache"
	"bookreview/internal/platform/crypto"
	"bookreview/internal/platform/postgres"
	"bookreview/internal/review"
	"bookreview/internal/search"
	"bookreview/internal/store/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("cannot load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

type stores struct {
	accounts account.Repository
	books    book.Repository
	reviews  interface {
		review.Repository
		book.ReviewReader
	}
	search search.Repository
	ready  func(ctx context.Context) error
	close  func()
}

func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, error) {
	if cfg.StoreDriver == "memory" {
		logger.Warn("using in-memory store, data is lost on exit")
		s := memory.New()
		return stores{
			accounts: s.Accounts(),
			books:    s.Books(),
			reviews:  s.Reviews(),
			search:   s.Books(),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.Open(ctx, cfg.DBDSN, 2*time.Second)
	if err != nil {
		return stores{}, err
	}
	logger.Info("database connection OK", slog.String("dsn", postgres.RedactDSN(cfg.DBDSN)))

	return stores{
		accounts: account.NewPostgresRepo(pool, cfg.DBTimeout),
		books:    book.NewPostgresRepo(pool, cfg.DBTimeout),
		reviews:  review.NewPostgresRepo(pool, cfg.DBTimeout),
		search:   search.NewPostgresRepo(pool, cfg.DBTimeout),
		ready:    pool.Ping,
		close:    pool.Close,
	}, nil
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	var (
		invalidator book.Invalidator
		searchCache search.Cache
	)
	if cfg.CacheEnabled() {
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// The catalog works without the cache; searches just hit the store.
			logger.Warn("redis unavailable, search cache disabled", slog.Any("error", err))
		} else {
			defer client.Close()
			catalog := cache.NewCatalogCache(client, cfg.SearchCacheTTL)
			invalidator, searchCache = catalog, catalog
		}
	}

	tokens := crypto.NewTokenManager(cfg.JWTSecret)

	accountService := account.NewService(st.accounts, crypto.NewBcryptHasher(), tokens, cfg.JWTTTL)
	bookService := book.NewService(st.books, st.reviews, invalidator, logger)
	reviewService := review.NewService(st.reviews)
	searchService := search.NewService(st.search, searchCache, logger)

	handler := newRouter(routerDeps{
		accounts:     account.NewHTTPHandler(accountService),
		books:        book.NewHTTPHandler(bookService),
		reviews:      review.NewHTTPHandler(reviewService),
		search:       search.NewHTTPHandler(searchService),
		verifier:     tokens,
		ready:        st.ready,
		logger:       logger,
		maxBodyBytes: cfg.MaxBodyBytes,
		enableHSTS:   cfg.EnableHSTS,
	})

	srv := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", cfg.AppAddr), slog.String("store", cfg.StoreDriver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
