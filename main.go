package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"

	"github.com/TimInTech/Film-Robo/handlers"
	"github.com/TimInTech/Film-Robo/lib/classify"
	"github.com/TimInTech/Film-Robo/lib/config"
	"github.com/TimInTech/Film-Robo/lib/health"
	"github.com/TimInTech/Film-Robo/lib/recommend"
	"github.com/TimInTech/Film-Robo/lib/tmdb"
)

func main() {
	// Set up logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
	logger := slog.Default()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Set up clients
	tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey, cfg.Language, logger)

	var llm classify.ChatCompleter
	if cfg.OpenAIAPIKey != "" {
		openaiCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
		openaiCfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
		llm = openai.NewClientWithConfig(openaiCfg)
	}

	classifier := classify.New(llm, cfg.OpenAIModel, cfg.ClassifyTimeout, logger)
	recommender := recommend.New(classifier, tmdbClient, cfg.Region, cfg.ProviderTimeout, logger)

	// Set up router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", health.Check())
		r.With(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute)).
			Post("/recommend", handlers.HandleRecommend(recommender))
	})
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", slog.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for termination signal, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutting down", slog.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down cleanly", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
