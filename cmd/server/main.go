package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/glamourhall/glamourhall/internal/advisor"
	"github.com/glamourhall/glamourhall/internal/api"
	"github.com/glamourhall/glamourhall/internal/browser"
	"github.com/glamourhall/glamourhall/internal/cache"
	"github.com/glamourhall/glamourhall/internal/config"
	"github.com/glamourhall/glamourhall/internal/intercept"
	"github.com/glamourhall/glamourhall/internal/limiter"
	"github.com/glamourhall/glamourhall/internal/llm"
	"github.com/glamourhall/glamourhall/internal/ratelimit"
	"github.com/glamourhall/glamourhall/internal/scraper"
	"github.com/glamourhall/glamourhall/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Conversation/preference store. The advisor degrades gracefully
	// without it, so a missing database is a warning, not a crash.
	var db *store.Store
	db, err = store.New(ctx, store.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Warn("database unavailable, serving without conversation context", "error", err)
		db = nil
	} else {
		defer db.Close()
	}

	// Scrape cache: in-process by default, Redis when configured.
	var scrapeCache cache.Cache
	var redisClient *redis.Client
	if cfg.Scraper.CacheBackend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		scrapeCache = cache.NewRedis(redisClient, 0)
	} else {
		scrapeCache = cache.NewMemory()
	}

	site := scraper.DefaultSite()
	if cfg.Scraper.BaseURL != "" {
		site.BaseURL = cfg.Scraper.BaseURL
	}

	fetcher := scraper.NewPageFetcher(site, scraper.PageFetcherOptions{
		Browser: &browser.Options{
			Headless:       cfg.Browser.Headless,
			UserAgent:      cfg.Browser.UserAgent,
			ViewportWidth:  cfg.Browser.ViewportWidth,
			ViewportHeight: cfg.Browser.ViewportHeight,
			AcceptLanguage: cfg.Browser.AcceptLanguage,
			TimezoneID:     cfg.Browser.TimezoneID,
			Locale:         cfg.Browser.Locale,
		},
		NavigationTimeout: cfg.Scraper.NavigationTimeout,
		SelectorTimeout:   cfg.Scraper.SelectorTimeout,
		SettleDelay:       cfg.Scraper.SettleDelay,
		MaxScrollSteps:    cfg.Scraper.MaxScrollSteps,
	})

	scrapeService := scraper.NewService(
		site,
		fetcher,
		scrapeCache,
		limiter.New(cfg.Scraper.ConcurrentLimit),
		ratelimit.New(cfg.Scraper.DelayMin, cfg.Scraper.DelayMax),
	)

	llmClient := llm.NewOpenAI(llm.Options{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		VisionModel: cfg.LLM.VisionModel,
		Timeout:     cfg.LLM.Timeout,
	})

	var conversations advisor.ConversationStore
	var preferences advisor.PreferenceStore
	var messages api.MessageWriter
	if db != nil {
		conversations = db
		preferences = db
		messages = db
	}

	advisorService := advisor.NewService(
		conversations,
		preferences,
		llmClient,
		scrapeService,
		intercept.NewClassifier(),
	)

	handlers := api.NewHandlers(advisorService, scrapeService, messages, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		health := map[string]interface{}{
			"status":   "ok",
			"database": db != nil,
			"cache":    cfg.Scraper.CacheBackend,
		}
		if db != nil {
			if err := db.Ping(req.Context()); err != nil {
				health["status"] = "degraded"
				health["database"] = false
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(health)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/process", handlers.Process)
		r.Post("/products", handlers.Products)
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
