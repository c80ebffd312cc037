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

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/Skotchmaster/resto_pos/internal/es"
	"github.com/Skotchmaster/resto_pos/internal/httpserver"
	"github.com/Skotchmaster/resto_pos/internal/mykafka"
	"github.com/Skotchmaster/resto_pos/internal/repo"
	"github.com/Skotchmaster/resto_pos/internal/search"
	"github.com/Skotchmaster/resto_pos/internal/service"
	"github.com/Skotchmaster/resto_pos/pkg/config"
	pkgdb "github.com/Skotchmaster/resto_pos/pkg/db"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
	"github.com/Skotchmaster/resto_pos/pkg/metrics"
	middleware "github.com/Skotchmaster/resto_pos/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/resto_pos/pkg/middleware/logging"
	"github.com/Skotchmaster/resto_pos/pkg/response"
	"github.com/Skotchmaster/resto_pos/pkg/validation"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustOneOf(cfg.DatabaseDriver, "DATABASE_DRIVER", pkgdb.DriverPostgres, pkgdb.DriverSQLite)

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}

	r := repo.New(db)
	if err := r.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}
	cancel()

	var events service.EventPublisher = service.NopPublisher{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := mykafka.EnsureTopics(ctx, cfg.KafkaBrokers[0], cfg.OrderEventsTopic); err != nil {
			logger.Warn("kafka_topics_error", "error", err)
		}
		cancel()
		producer = mykafka.NewProducer(cfg.KafkaBrokers, cfg.OrderEventsTopic)
		events = producer
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.OrderEventsTopic)
	}

	menu := &service.MenuService{Repo: r}
	if cfg.ESURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := es.NewClient(ctx, cfg, logger)
		if err != nil {
			logger.Warn("es_disabled", "error", err)
		} else {
			idx := &search.MenuIndex{ES: client, Index: cfg.ESIndex}
			if err := idx.EnsureIndex(ctx); err != nil {
				logger.Warn("es_index_error", "index", cfg.ESIndex, "error", err)
			}
			menu.Index = idx
		}
		cancel()
	}

	authSvc := &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug
	e.Validator = validation.New()
	e.HTTPErrorHandler = response.ErrorHandler(cfg.Debug)

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(metrics.Middleware())
	e.Use(echomw.CORS())

	loginLimiter := echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.LoginRateLimit),
			Burst:     max(1, int(cfg.LoginRateLimit)),
			ExpiresIn: 3 * time.Minute,
		}),
	})

	httpserver.Register(e, &httpserver.Deps{
		Auth:         &httpserver.AuthHTTP{Svc: authSvc},
		Tables:       &httpserver.TableHTTP{Svc: &service.TableService{Repo: r}},
		Foods:        &httpserver.FoodHTTP{Svc: menu},
		Orders:       &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Events: events}},
		AuthMW:       middleware.NewBearerAuth(cfg.JWTSecret, authSvc),
		Ready:        r.Ping,
		LoginLimiter: loginLimiter,
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
		logger.Info("server_listening", "addr", srv.Addr)
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
		logger.Error("shutdown_error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka_close_error", "error", err)
		}
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Warn("db_close_error", "error", err)
	}

	logger.Info("server_stopped")
}
