package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/holloway/bookclub/internal/auth/google"
	"github.com/holloway/bookclub/internal/database"
	"github.com/holloway/bookclub/internal/logging"
	"github.com/holloway/bookclub/internal/openlibrary"
	"github.com/holloway/bookclub/internal/server"
	"github.com/holloway/bookclub/internal/store"
)

func main() {
	// Best effort; the .env file is only for local development.
	godotenv.Load()

	logger := logging.Setup(os.Getenv("BOOKCLUB_LOG_LEVEL"), os.Getenv("BOOKCLUB_LOG_FORMAT"))

	port := os.Getenv("BOOKCLUB_PORT")
	if port == "" {
		port = "3000"
	}

	dbPath := os.Getenv("BOOKCLUB_DB_PATH")
	if dbPath == "" {
		dbPath = "bookclub.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	olClient := openlibrary.NewClient(os.Getenv("OPEN_LIBRARY_URL"))

	hostURL := os.Getenv("BOOKCLUB_HOST_URL")
	if hostURL == "" {
		hostURL = "http://localhost:" + port
	}

	var googleClient *google.Client
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID != "" && clientSecret != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		googleClient, err = google.New(ctx, google.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			HostURL:      hostURL,
		}, store.NewOAuthStateStore(db), store.NewUserStore(db), store.NewSessionStore(db), logger.With("component", "google"))
		cancel()
		if err != nil {
			logger.Error("configure google login", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("google login disabled, GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set")
	}

	srv := server.New(db, olClient, googleClient, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
