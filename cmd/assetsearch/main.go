package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/assetsearch/internal/config"
	dbValkey "github.com/kailas-cloud/assetsearch/internal/db/valkey"
	logpkg "github.com/kailas-cloud/assetsearch/internal/logger"
	"github.com/kailas-cloud/assetsearch/internal/metrics"
	assetrepo "github.com/kailas-cloud/assetsearch/internal/repository/asset"
	"github.com/kailas-cloud/assetsearch/internal/repository/catalogcache"
	pointrepo "github.com/kailas-cloud/assetsearch/internal/repository/point"
	propertyrepo "github.com/kailas-cloud/assetsearch/internal/repository/property"
	statsrepo "github.com/kailas-cloud/assetsearch/internal/repository/stats"
	chiTransport "github.com/kailas-cloud/assetsearch/internal/transport/chi"
	assetuc "github.com/kailas-cloud/assetsearch/internal/usecase/asset"
	cataloguc "github.com/kailas-cloud/assetsearch/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/assetsearch/internal/usecase/health"
	pointuc "github.com/kailas-cloud/assetsearch/internal/usecase/point"
	propertyuc "github.com/kailas-cloud/assetsearch/internal/usecase/property"
	statsuc "github.com/kailas-cloud/assetsearch/internal/usecase/stats"
	"github.com/kailas-cloud/assetsearch/internal/version"
)

// statsTTL keeps daily counters one extra day so yesterday stays readable.
const statsTTL = 48 * time.Hour

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	build := version.Get()
	logger.Info("Starting assetsearch API server",
		zap.Stringer("build", build),
		zap.String("go_version", build.GoVersion),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbValkey.NewStore(dbValkey.Config{
		Driver:   cfg.Database.Driver,
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()

	// Repositories
	prefix := cfg.Storage.KeyPrefix
	assetRepo := assetrepo.New(store, prefix)
	pointRepo := pointrepo.New(store, prefix)
	propertyRepo := propertyrepo.New(store, prefix)
	cache := catalogcache.New(store, prefix, time.Duration(cfg.Catalog.CacheTTLSec)*time.Second)
	counters := statsrepo.New(store, prefix, statsTTL)

	// Use case services
	statsSvc := statsuc.New(counters, logger)
	catalogSvc := cataloguc.New(assetRepo, cache, statsSvc, logger).
		WithDefaults(cfg.Catalog.DefaultContent, cfg.Catalog.SuggestLimit)
	assetSvc := assetuc.New(assetRepo, catalogSvc, statsSvc, logger)
	pointSvc := pointuc.New(pointRepo, statsSvc, logger)
	propertySvc := propertyuc.New(propertyRepo, assetRepo, assetSvc, logger)
	catalogSvc.WithProductRegistry(propertySvc)
	healthSvc := healthuc.New(store, catalogSvc)

	server := chiTransport.NewServer(catalogSvc, pointSvc, assetSvc, propertySvc, statsSvc, healthSvc, logger).
		WithMaxQueryLength(cfg.Search.MaxQueryLength)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.Query().Get("q")),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
