package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/Skotchmaster/affiliate_store/internal/config"
	"github.com/Skotchmaster/affiliate_store/internal/db"
	"github.com/Skotchmaster/affiliate_store/internal/logging"
	"github.com/Skotchmaster/affiliate_store/internal/repo"
	"github.com/Skotchmaster/affiliate_store/internal/seed"
	"github.com/Skotchmaster/affiliate_store/internal/service"
)

func main() {
	envFile := pflag.String("env-file", ".env", "optional .env file to load")
	reset := pflag.Bool("reset", false, "delete all products and categories first")
	pflag.Parse()

	cfg := config.Load(*envFile)
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "cmd", "seed")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	sum, err := seed.Run(ctx, gdb, seed.Options{Reset: *reset})
	if err != nil {
		logger.Error("seed_failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed_done", "categories", sum.Categories, "products", sum.Products, "reset", *reset)

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Warn("admin_skipped", "reason", "ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return
	}
	auth := &service.AuthService{Repo: &repo.GormRepo{DB: gdb}}
	admin, err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Error("admin_seed_failed", "error", err)
		os.Exit(1)
	}
	logger.Info("admin_ready", "admin_id", admin.ID, "email", admin.Email)
}
