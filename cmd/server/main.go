package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/perkhub/loyalty"
	graphqlapi "github.com/perkhub/loyalty/internal/api/graphql"
	"github.com/perkhub/loyalty/internal/api/rest"
	"github.com/perkhub/loyalty/internal/auth"
	"github.com/perkhub/loyalty/internal/config"
	"github.com/perkhub/loyalty/internal/database"
	"github.com/perkhub/loyalty/internal/repository"
	"github.com/perkhub/loyalty/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("starting loyalty service", "environment", cfg.App.Environment)

	db, err := database.NewDB(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connections", "error", err)
		}
	}()

	migrations, err := fs.Sub(loyalty.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to open embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(cfg.Database.GetMigrateURL(), migrations); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.GetTokenTTL())

	members := repository.NewMemberRepository(db.Postgres)
	vendors := repository.NewVendorRepository(db.Postgres)
	promotions := repository.NewPromotionRepository(db.Postgres)
	enrollments := repository.NewEnrollmentRepository(db.Postgres)

	svcs := &service.Registry{
		Auth:        service.NewAuthService(members, tokens),
		Members:     service.NewMemberService(members),
		Vendors:     service.NewVendorService(vendors),
		Promotions:  service.NewPromotionService(promotions),
		Enrollments: service.NewEnrollmentService(members, promotions, enrollments),
	}

	schema, err := graphqlapi.NewSchema(svcs)
	if err != nil {
		slog.Error("failed to build graphql schema", "error", err)
		os.Exit(1)
	}

	engine := rest.NewRouter(cfg, svcs, db, graphqlapi.Handler(schema, tokens))

	server := &http.Server{
		Addr:           cfg.Server.GetServerAddr(),
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
		// h2c serves HTTP/2 without TLS
		Handler: h2c.NewHandler(engine, &http2.Server{
			MaxConcurrentStreams: 1000,
		}),
	}

	go func() {
		slog.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
