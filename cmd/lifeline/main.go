package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lifeline-aid/platform/internal/classifier"
	"github.com/lifeline-aid/platform/internal/history"
	"github.com/lifeline-aid/platform/internal/knowledge"
	"github.com/lifeline-aid/platform/internal/shared/auth"
	"github.com/lifeline-aid/platform/internal/shared/config"
	"github.com/lifeline-aid/platform/internal/shared/database"
	"github.com/lifeline-aid/platform/internal/shared/metrics"
	secmiddleware "github.com/lifeline-aid/platform/internal/shared/middleware"
	"github.com/lifeline-aid/platform/internal/triage"
)

const maxRequestBody = 64 * 1024

// App holds all application dependencies
type App struct {
	Config  *config.Config
	DB      *database.DB
	Backend classifier.Classifier
	Store   *knowledge.Store
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	app := &App{Config: cfg}
	logger := log.New(os.Stdout, "lifeline: ", log.LstdFlags)

	// Initialize database (optional - skip if not available)
	if cfg.Database.Enabled {
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			fmt.Printf("Warning: Database not available: %v\n", err)
			fmt.Println("Running without assessment history...")
		} else {
			app.DB = db
			defer db.Close()

			if err := database.Migrate(ctx, db.Pool); err != nil {
				fmt.Printf("Warning: Migration failed: %v\n", err)
			}
		}
	}

	// Knowledge base (optional - defaults cover every lookup if missing)
	store, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		fmt.Printf("Warning: Knowledge base not available: %v\n", err)
		fmt.Println("Serving default condition and supply-chain guidance...")
		store = knowledge.Empty()
	}
	app.Store = store

	// Prediction backend: remote when fully configured, local otherwise.
	// A half-configured remote is a deployment mistake, not a fallback.
	if cfg.Remote.PartiallyConfigured() {
		fmt.Fprintln(os.Stderr, "remote serving is partially configured: set SERVING_HOST, SERVING_TOKEN and SERVING_ENDPOINT together, or none of them")
		os.Exit(1)
	}
	if cfg.Remote.Configured() {
		remote, err := classifier.NewRemote(cfg.Remote)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize remote backend: %v\n", err)
			os.Exit(1)
		}
		app.Backend = remote
		fmt.Printf("Prediction backend: remote (%s)\n", cfg.Remote.Host)
	} else {
		local, err := classifier.NewLocal(cfg.Model)
		if err != nil {
			fmt.Printf("Warning: Local model not available: %v\n", err)
			fmt.Println("Assessments will return 503 until model artifacts are provided...")
		} else {
			app.Backend = local
			fmt.Println("Prediction backend: local")
		}
	}

	var historyRepo *history.Repository
	var recorder triage.Recorder
	if app.DB != nil {
		historyRepo = history.NewRepository(app.DB.Pool)
		recorder = historyRepo
	}

	service := triage.NewService(app.Backend, app.Store, cfg.Cache.PredictionSize, recorder, logger)
	triageHandler := triage.NewHandler(service)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(secmiddleware.SecurityHeaders)
	r.Use(secmiddleware.BodyLimit(maxRequestBody))
	r.Use(metrics.Middleware)
	r.Use(corsMiddleware)

	// Health checks (unauthenticated)
	r.Get("/health", healthHandler(app))
	r.Get("/ready", readyHandler(app))
	r.Handle("/metrics", metrics.Handler())

	// API info
	r.Get("/", infoHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Server.Env == "production" {
			r.Use(auth.Middleware(cfg.Auth))
			r.Use(secmiddleware.RateLimiter(10, 20))
		}

		r.Mount("/triage", triageHandler.Routes())

		if historyRepo != nil {
			r.Mount("/history", history.NewHandler(historyRepo).Routes())
		}
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		fmt.Println("\nShutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("Server shutdown error: %v\n", err)
		}
		close(done)
	}()

	backendName := "none"
	if app.Backend != nil {
		backendName = app.Backend.Name()
	}

	fmt.Println("============================================")
	fmt.Println("LifeLine AID Triage Platform")
	fmt.Println("============================================")
	fmt.Printf("Environment:    %s\n", cfg.Server.Env)
	fmt.Printf("Server:         http://localhost:%d\n", cfg.Server.Port)
	fmt.Printf("API:            http://localhost:%d/api/v1\n", cfg.Server.Port)
	fmt.Printf("Health:         http://localhost:%d/health\n", cfg.Server.Port)
	fmt.Printf("Backend:        %s\n", backendName)
	fmt.Printf("Known labels:   %d\n", app.Store.Size())
	fmt.Printf("History:        %v\n", app.DB != nil)
	fmt.Println("============================================")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}

	<-done
	fmt.Println("Server stopped")
}

func infoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":    "LifeLine AID Triage Platform",
		"version": "0.1.0",
		"docs":    "/api/v1",
	})
}

func healthHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
		})
	}
}

func readyHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"server": "ready",
		}

		if app.Backend != nil && app.Backend.Ready() {
			checks["backend"] = "ready"
		} else {
			checks["backend"] = "not ready: no prediction backend"
		}

		if app.DB != nil {
			if err := app.DB.Health(r.Context()); err != nil {
				checks["database"] = "not ready: " + err.Error()
			} else {
				checks["database"] = "ready"
			}
		} else {
			checks["database"] = "not configured"
		}

		allReady := true
		for _, status := range checks {
			if status != "ready" && status != "not configured" {
				allReady = false
				break
			}
		}

		status := http.StatusOK
		if !allReady {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"status": map[bool]string{true: "ready", false: "not ready"}[allReady],
			"checks": checks,
		})
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
