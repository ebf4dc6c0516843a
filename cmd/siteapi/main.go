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

	"github.com/gentledental/siteapi/internal/config"
	"github.com/gentledental/siteapi/internal/db"
	dbRedis "github.com/gentledental/siteapi/internal/db/redis"
	logpkg "github.com/gentledental/siteapi/internal/logger"
	"github.com/gentledental/siteapi/internal/metrics"
	articlesrepo "github.com/gentledental/siteapi/internal/repository/articles"
	geocoderepo "github.com/gentledental/siteapi/internal/repository/geocode"
	locationsrepo "github.com/gentledental/siteapi/internal/repository/locations"
	chiTransport "github.com/gentledental/siteapi/internal/transport/chi"
	contentuc "github.com/gentledental/siteapi/internal/usecase/content"
	healthuc "github.com/gentledental/siteapi/internal/usecase/health"
	locatoruc "github.com/gentledental/siteapi/internal/usecase/locator"
	searchuc "github.com/gentledental/siteapi/internal/usecase/search"
	"github.com/gentledental/siteapi/internal/version"
)

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

	logger.Info("Starting siteapi server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("content_endpoint", cfg.Content.Endpoint),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
	)

	ctx := context.Background()

	// Cache store is optional: with no addrs configured the content API is
	// called directly on every articles fetch.
	var store db.Store
	if len(cfg.Cache.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store")
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Office dataset is compiled at startup; a broken dataset is a deploy error.
	officeRepo, err := locationsrepo.Load(cfg.Locator.LocationsPath)
	if err != nil {
		logger.Fatal("Failed to load office locations", zap.Error(err))
	}
	logger.Info("Loaded office locations",
		zap.String("path", cfg.Locator.LocationsPath),
		zap.Int("count", officeRepo.Count()),
	)

	contentClient := articlesrepo.NewClient(articlesrepo.Config{
		Endpoint: cfg.Content.Endpoint,
		Token:    cfg.Content.Token,
		Timeout:  time.Duration(cfg.Content.TimeoutSec) * time.Second,
		Logger:   logger,
	})

	// Cached decorator when a store is available
	var (
		fetcher articlesrepo.Fetcher = contentClient
		purger  chiTransport.CachePurger
	)
	if store != nil {
		cached := articlesrepo.NewCached(
			contentClient, store,
			time.Duration(cfg.Content.CacheTTLSec)*time.Second,
			metrics.ContentCacheTotal, logger,
		)
		fetcher = cached
		purger = cached
	}

	// Geocoder fallback is optional too. Pass nil interface (not typed nil
	// pointer!) when unconfigured.
	var geocoder locatoruc.Geocoder
	if cfg.Geocode.Endpoint != "" {
		geocoder = geocoderepo.NewClient(geocoderepo.Config{
			Endpoint: cfg.Geocode.Endpoint,
			Timeout:  time.Duration(cfg.Geocode.TimeoutSec) * time.Second,
			Logger:   logger,
		})
	}

	// Create use case services
	locatorSvc := locatoruc.New(officeRepo, geocoder, cfg.Locator.DefaultRadiusMiles, logger).
		WithMaxSuggestions(cfg.Search.MaxSuggestions)
	searchSvc := searchuc.New(officeRepo, fetcher, logger).
		WithMaxResults(cfg.Search.MaxResults)
	contentSvc := contentuc.New(fetcher).
		WithPagination(cfg.Content.DefaultPageSize, cfg.Content.MaxPageSize)

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(cachePinger, contentClient)

	// Create chi server
	server := chiTransport.NewServer(locatorSvc, searchSvc, contentSvc, healthSvc, purger, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r, chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))

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
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
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

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
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
