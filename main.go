package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/scm-sandbox/scm-backend/handlers"
	"github.com/scm-sandbox/scm-backend/middleware"
	"github.com/scm-sandbox/scm-backend/pkg/monitoring"
	"github.com/scm-sandbox/scm-backend/shared/utils"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting SCM dashboard backend")

	ctx := context.Background()
	shutdownTelemetry, err := monitoring.Setup(ctx, monitoring.Config{ServiceName: "scm-backend"})
	if err != nil {
		slog.Error("Failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	dbConfig := NewDatabaseConfig()
	gormDB, err := ConnectGormDB(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	sessionSecret := utils.GetEnvOrDefault("SCM_SESSION_SECRET", "")
	if sessionSecret == "" {
		slog.Error("SCM_SESSION_SECRET is required")
		os.Exit(1)
	}
	auth := middleware.NewSessionAuth(sessionSecret)

	server := handlers.NewServer(gormDB, auth)

	mux := http.NewServeMux()
	server.SetupRoutes(mux)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":"scm-backend","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
	})

	// Prometheus metrics endpoint
	mux.Handle("/metrics", monitoring.Handler())

	// Middleware chain: request logging outermost, then security headers,
	// CORS, and HTTP metrics
	handler := middleware.RequestLogging(
		middleware.SecurityHeaders(
			middleware.NewCORSMiddleware()(
				monitoring.HTTPMetricsMiddleware(mux))))

	port := utils.GetEnvOrDefault("PORT", "8080")
	addr := ":" + port
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("SCM backend listening", "port", port, "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down SCM backend...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Warn("Telemetry shutdown failed", "error", err)
	}

	slog.Info("SCM backend exited")
}
