package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/affiliate_store/internal/config"
	"github.com/Skotchmaster/affiliate_store/internal/db"
	"github.com/Skotchmaster/affiliate_store/internal/events"
	"github.com/Skotchmaster/affiliate_store/internal/httpserver"
	"github.com/Skotchmaster/affiliate_store/internal/logging"
	authmw "github.com/Skotchmaster/affiliate_store/internal/middleware/auth"
	"github.com/Skotchmaster/affiliate_store/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/affiliate_store/internal/middleware/logging"
	"github.com/Skotchmaster/affiliate_store/internal/middleware/metrics"
	"github.com/Skotchmaster/affiliate_store/internal/middleware/ratelimit"
	"github.com/Skotchmaster/affiliate_store/internal/repo"
	"github.com/Skotchmaster/affiliate_store/internal/search"
	"github.com/Skotchmaster/affiliate_store/internal/service"
)

func main() {
	cfg := config.Load(".env")
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	r := &repo.GormRepo{DB: gdb}
	authSvc := &service.AuthService{Repo: r, Secret: cfg.JWTSecret}
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := authSvc.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("ensure admin: %v", err)
		}
		logger.Info("admin_ready", "email", cfg.AdminEmail)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	catalog := &service.CatalogService{Repo: r, Events: publisher}
	searchHTTP := &httpserver.SearchHTTP{}
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Error("search_disabled", "reason", "elasticsearch unavailable", "error", err)
		} else {
			idx := search.NewIndex(es, cfg.ESIndex)
			catalog.Index = idx
			searchHTTP.Index = idx
			logger.Info("search_enabled", "index", cfg.ESIndex)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	gate := authmw.NewGate(cfg.JWTSecret, cfg.LoginPath, cfg.CookieSecure)
	gate.OnReject = m.AuthFailure

	var rdb *redis.Client
	var loginLimit echo.MiddlewareFunc
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		limiter := ratelimit.NewRedisLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)
		loginLimit = ratelimit.Middleware(limiter, ratelimit.ByIP, m.RateLimited)
		logger.Info("login_rate_limit_enabled", "limit", cfg.LoginRateLimit, "window", cfg.LoginRateWindow.String())
	}

	var csrfMW echo.MiddlewareFunc
	if cfg.CSRFEnabled {
		csrfMW = csrf.Middleware(csrf.Config{Secure: cfg.CookieSecure})
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(m.Middleware())
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		DB:         gdb,
		Catalog:    &httpserver.CatalogHTTP{Svc: catalog},
		Categories: &httpserver.CategoryHTTP{Svc: &service.CategoryService{Repo: r, Events: publisher}, Catalog: catalog},
		Auth:       &httpserver.AuthHTTP{Svc: authSvc, CookieSecure: cfg.CookieSecure, OnFailure: m.AuthFailure},
		Search:     searchHTTP,
		Gate:       gate,
		Metrics:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		LoginLimit: loginLimit,
		CSRF:       csrfMW,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	db.Close(gdb)
	if err := publisher.Close(); err != nil {
		logger.Error("kafka_close_failed", "error", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis_close_failed", "error", err)
		}
	}

	logger.Info("stopped")
}
