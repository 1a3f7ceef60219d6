// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/conferencehub/hotel-booking/internal/config"
	"github.com/conferencehub/hotel-booking/internal/database"
	"github.com/conferencehub/hotel-booking/internal/handler"
	"github.com/conferencehub/hotel-booking/internal/logger"
	"github.com/conferencehub/hotel-booking/internal/monitoring"
	"github.com/conferencehub/hotel-booking/internal/repository"
	"github.com/conferencehub/hotel-booking/internal/service"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatal("config", "error", err)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "hotel-booking",
	})

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx, cfg.DSN())
	if err != nil {
		log.Fatal("database", "error", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("migrate", "error", err)
	}
	log.Info("connected to postgres", "host", cfg.DBHost, "db", cfg.DBName)

	// ── 2. Wire up layers ────────────────────────────────────────────────
	store := repository.NewBookingRepository(pool)
	bookingSvc := service.NewBookingService(store)
	bookingHandler := handler.NewBookingHandler(bookingSvc, log)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.RequestID)       // attach correlation ids
	r.Use(handler.AccessLog(log))  // structured access log
	r.Use(handler.CORS)            // permissive CORS
	r.Use(monitoring.RequestMetrics)

	// Operational endpoints
	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	// API routes, all behind authentication.
	r.Route("/booking", func(r chi.Router) {
		r.Use(handler.Authenticate(cfg.JWTSecret))
		r.Get("/", bookingHandler.GetBooking)
		r.Post("/", bookingHandler.CreateBooking)
		r.Put("/{bookingId}", bookingHandler.UpdateBooking)
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server", "error", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("graceful shutdown", "error", err)
	}
	log.Info("server stopped")
}
