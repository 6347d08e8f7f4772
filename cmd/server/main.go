package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/handler"
	"taskdeck/internal/middleware"
	"taskdeck/internal/repository"
	"taskdeck/internal/service"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging, teed to a rotating file when LOG_DIR is set
	var out io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()
		out = io.MultiWriter(os.Stdout, logFile)
	}
	logger := config.NewLogger(out, cfg.Debug)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage", cfg.StorageDriver,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer store.Close(context.Background())

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("storage ready", "driver", store.Driver)

	svc := service.SetupServices(store.Projects, store.Tasks, store.Users, store.Tx, logger)

	// Session tokens, plus external bearer tokens when a JWKS URL is configured
	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
		logger.Warn("SESSION_SECRET not set: using an ephemeral secret, sessions end on restart")
	}
	sessions, err := auth.NewSessionManager(secret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}
	verifier := auth.ChainVerifier{sessions}
	if cfg.JWKSURL != "" {
		jwks, err := auth.NewJWKSVerifier(ctx, cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWKS verifier: %v", err)
		}
		verifier = append(verifier, jwks)
	}
	defer verifier.Close()

	var providers []auth.OAuthProvider
	if cfg.GitHubClientID != "" {
		providers = append(providers, auth.NewGitHubProvider(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.GitHubCallbackURL))
	} else {
		logger.Warn("GITHUB_CLIENT_ID not set: GitHub login disabled")
	}

	handlers := &handler.Handlers{
		Projects: handler.NewProjectHandler(svc.Projects, logger),
		Tasks:    handler.NewTaskHandler(svc.Tasks, logger),
		Search:   handler.NewSearchHandler(svc.Search, logger),
		Users:    handler.NewUserHandler(svc.Users, sessions, providers, cfg.FrontendURL, cfg.IsProd(), logger),
	}

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handlers.Register(mux, cfg.APIPrefix)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Logging → Recovery → Auth → Routes
	h = middleware.AuthMiddleware(verifier, svc.Users, handler.PublicPaths(cfg.APIPrefix), logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
