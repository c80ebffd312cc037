package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/resto_pos/internal/repo"
	"github.com/Skotchmaster/resto_pos/internal/service"
	"github.com/Skotchmaster/resto_pos/pkg/config"
	pkgdb "github.com/Skotchmaster/resto_pos/pkg/db"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
)

// seed creates the default pelayan and kasir accounts. Existing emails are left alone.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "cmd", "seed")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := pkgdb.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = pkgdb.Close(db) }()

	r := repo.New(db)
	if err := r.Migrate(ctx); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	svc := &service.AuthService{Repo: r}
	created, err := svc.Seed(logging.IntoContext(ctx, logger), service.DefaultStaff)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	logger.Info("seed_done", "created", created, "total", len(service.DefaultStaff))
}
