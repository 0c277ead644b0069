// Package server wires stores, clients, and handlers into the HTTP router.
package server

import (
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/holloway/bookclub/internal/auth/google"
	"github.com/holloway/bookclub/internal/handler"
	"github.com/holloway/bookclub/internal/middleware"
	"github.com/holloway/bookclub/internal/openlibrary"
	"github.com/holloway/bookclub/internal/store"
)

type Server struct {
	db           *sql.DB
	bookH        *handler.BookHandler
	userH        *handler.UserHandler
	clubH        *handler.ClubHandler
	membershipH  *handler.MembershipHandler
	openLibraryH *handler.OpenLibraryHandler
	authH        *handler.AuthHandler
	sessionStore *store.SessionStore
	logger       *slog.Logger
}

func New(db *sql.DB, olClient *openlibrary.Client, googleClient *google.Client, logger *slog.Logger) *Server {
	bookStore := store.NewBookStore(db)
	userStore := store.NewUserStore(db)
	clubStore := store.NewClubStore(db)
	membershipStore := store.NewMembershipStore(db)
	sessionStore := store.NewSessionStore(db)

	return &Server{
		db:           db,
		bookH:        handler.NewBookHandler(bookStore, logger.With("component", "book")),
		userH:        handler.NewUserHandler(userStore, logger.With("component", "user")),
		clubH:        handler.NewClubHandler(clubStore, logger.With("component", "club")),
		membershipH:  handler.NewMembershipHandler(membershipStore, logger.With("component", "membership")),
		openLibraryH: handler.NewOpenLibraryHandler(olClient, logger.With("component", "open_library")),
		authH:        handler.NewAuthHandler(googleClient, userStore, sessionStore, logger.With("component", "auth")),
		sessionStore: sessionStore,
		logger:       logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /hi", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "Hello, World!")
	})
	mux.HandleFunc("GET /health", s.healthHandler)

	// Open Library proxy
	mux.HandleFunc("GET /open-library/search", s.openLibraryH.Search)

	// Book routes
	mux.HandleFunc("POST /books/create", s.bookH.Create)
	mux.HandleFunc("GET /books/list", s.bookH.List)
	mux.HandleFunc("GET /books/get/{id}", s.bookH.Get)
	mux.HandleFunc("GET /books/search", s.bookH.Search)

	// User routes
	mux.HandleFunc("POST /users/create", s.userH.Create)
	mux.HandleFunc("GET /users/list", s.userH.List)
	mux.HandleFunc("GET /users/search", s.userH.Search)
	mux.HandleFunc("GET /users/{id}", s.userH.Get)
	mux.HandleFunc("PUT /users/{id}", s.userH.Update)
	mux.HandleFunc("DELETE /users/{id}", s.userH.Delete)

	// Club routes
	mux.HandleFunc("POST /clubs", s.clubH.Create)
	mux.HandleFunc("GET /clubs/list", s.clubH.List)
	mux.HandleFunc("GET /clubs/{id}", s.clubH.Get)
	mux.HandleFunc("PUT /clubs/{id}", s.clubH.Update)
	mux.HandleFunc("DELETE /clubs/{id}", s.clubH.Delete)

	// Membership routes
	mux.HandleFunc("POST /memberships", s.membershipH.Create)
	mux.HandleFunc("GET /memberships", s.membershipH.List)
	mux.HandleFunc("GET /memberships/{id}", s.membershipH.Get)
	mux.HandleFunc("DELETE /memberships/{id}", s.membershipH.Delete)

	// Auth routes
	mux.HandleFunc("GET /auth/google/login", s.authH.GoogleLogin)
	mux.HandleFunc("GET /auth/google/callback", s.authH.GoogleCallback)
	mux.HandleFunc("POST /auth/logout", s.authH.Logout)

	// Routes behind a valid session
	requireAuth := middleware.RequireAuth(s.sessionStore)
	mux.Handle("GET /auth/me", requireAuth(http.HandlerFunc(s.authH.Me)))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
