package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/devGospel/jetstores/internal/api"
	"github.com/devGospel/jetstores/internal/config"
	"github.com/devGospel/jetstores/internal/handlers"
	"github.com/devGospel/jetstores/internal/session"
	"github.com/devGospel/jetstores/internal/store"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// Run Migrations
	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Escrow API client and session manager
	apiClient := api.NewClient(cfg.APIBaseURL)
	sessionManager := session.NewManager(apiClient, db)

	// 5. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 6. Setup Handlers
	homeHandler := &handlers.HomeHandler{
		Sessions:     sessionManager,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	authHandler := &handlers.AuthHandler{
		Sessions:     sessionManager,
		SessionStore: sessionStore,
	}
	checkoutHandler := &handlers.CheckoutHandler{
		Sessions:     sessionManager,
		API:          apiClient,
		SessionStore: sessionStore,
	}
	thumbHandler := &handlers.ThumbHandler{
		Store:    db,
		ThumbDir: cfg.ThumbDir,
	}
	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiter for auth and checkout submissions
	rateLimiter := handlers.NewRateLimiter(2 * time.Second)

	// Catalog
	mux.HandleFunc("/", homeHandler.Index)
	mux.HandleFunc("/img/thumb", thumbHandler.Serve)

	// Overlay navigation
	mux.HandleFunc("/overlay/login", authHandler.ShowLogin)
	mux.HandleFunc("/overlay/register", authHandler.ShowRegister)
	mux.HandleFunc("/overlay/close", authHandler.CloseOverlay)

	// Auth
	mux.HandleFunc("POST /auth/login", rateLimiter.Middleware(authHandler.LoginPost))
	mux.HandleFunc("POST /auth/register", rateLimiter.Middleware(authHandler.RegisterPost))
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)

	// Checkout
	mux.HandleFunc("POST /cart/add", checkoutHandler.AddToCart)
	mux.HandleFunc("POST /checkout/sellers", checkoutHandler.RefreshSellers)
	mux.HandleFunc("POST /checkout", rateLimiter.Middleware(checkoutHandler.SubmitTransaction))

	// 7. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 8. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "api", cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
