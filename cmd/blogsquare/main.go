// Package main is the entry point for the BlogSquare site server.
// It loads configuration, connects to the optional backing services, sets
// up routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"blogsquare/internal/cache"
	"blogsquare/internal/carousel"
	"blogsquare/internal/config"
	"blogsquare/internal/contact"
	"blogsquare/internal/database"
	"blogsquare/internal/handlers"
	"blogsquare/internal/middleware"
	"blogsquare/internal/render"
	"blogsquare/internal/router"
	"blogsquare/internal/site"
	"blogsquare/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Defaults, then the optional YAML file, then environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"theme_store", cfg.ThemeStore,
	)

	ctx := context.Background()

	// PostgreSQL is optional; without it the built-in categories are used.
	var categories site.CategorySource
	if cfg.DBEnabled() {
		db, err := database.Connect(ctx, cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		// Inserts the default categories into an empty table only.
		if err := database.Seed(ctx, db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
		categories = store.NewCategoryStore(db)
	} else {
		slog.Warn("postgres not configured, using built-in categories")
	}

	// Valkey backs the page cache and, when selected, theme preferences.
	// The site still works without it.
	var valkeyClient *redis.Client
	if cfg.ValkeyEnabled() {
		valkeyClient, err = cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unavailable, page cache disabled", "error", err)
			valkeyClient = nil
		} else {
			defer valkeyClient.Close()
		}
	}

	themeStore := cfg.ThemeStore
	var themeValkey *redis.Client
	if themeStore == config.ThemeStoreValkey {
		if valkeyClient != nil {
			themeValkey = valkeyClient
		} else {
			slog.Warn("theme store falling back to cookies")
			themeStore = config.ThemeStoreCookie
		}
	}

	var pageCache *cache.PageCache
	if valkeyClient != nil {
		pageCache = cache.NewPageCache(valkeyClient, cfg.PageCacheTTL)
		// Templates and content ship in the binary, so pages cached by an
		// older build are stale.
		pageCache.InvalidateAll(ctx)
	}

	s, err := site.New(ctx, categories, cfg.GlobeEnabled)
	if err != nil {
		slog.Error("failed to load site content", "error", err)
		os.Exit(1)
	}

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	carouselOpts := carousel.Options{
		Interval:   cfg.CarouselInterval,
		Transition: cfg.CarouselTransition,
	}
	public := handlers.NewPublic(renderer, s, pageCache, handlers.PublicOptions{
		ThemeStore: themeStore,
		Contact: contact.Options{
			Latency:    cfg.ContactLatency,
			ResetAfter: cfg.ContactResetAfter,
		},
		Carousel: carouselOpts,
	})

	contactLimiter := middleware.NewRateLimiter(cfg.ContactRateLimit, time.Minute)
	defer contactLimiter.Stop()

	secureCookies := !cfg.IsDev()
	r := router.New(public, handlers.NewCarouselStream(carouselOpts, s.CategoryNames()), router.Options{
		Valkey:         themeValkey,
		SecureCookies:  secureCookies,
		ContactLimiter: contactLimiter,
	})

	// Carousel streams are hijacked connections that Shutdown does not
	// track; they end when the base context is cancelled.
	baseCtx, cancelBase := context.WithCancel(ctx)
	defer cancelBase()

	// WriteTimeout must cover the simulated contact latency.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
