package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"bookreview/internal/config"
	"bookreview/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("cannot load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.LogLevel)

	if err := run(cfg, *command, *name, logger); err != nil {
		logger.Error("migration failed", slog.String("command", *command), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg migrateConfig, command, name string, logger *slog.Logger) error {
	dir := cfg.MigrationsDir

	// create only touches the filesystem.
	if command == "create" {
		if name == "" {
			return fmt.Errorf("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		logger.Info("migration created", slog.String("name", name), slog.String("dir", dir))
		return nil
	}

	dsn := cfg.DBDSN
	pool, err := postgres.Open(context.Background(), dsn, 5*time.Second)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied", slog.String("dsn", postgres.RedactDSN(dsn)))
	case "down":
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("rollback migration: %w", err)
		}
		logger.Info("migration rolled back", slog.String("dsn", postgres.RedactDSN(dsn)))
	case "status":
		if err := goose.Status(db, dir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown command %q, use: up, down, status, create", command)
	}
	return nil
}
