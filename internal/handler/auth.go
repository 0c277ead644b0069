package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/holloway/bookclub/internal/auth"
	"github.com/holloway/bookclub/internal/auth/google"
	"github.com/holloway/bookclub/internal/store"
)

const sessionCookieName = "session_token"

type AuthHandler struct {
	google   *google.Client
	users    *store.UserStore
	sessions *store.SessionStore
	logger   *slog.Logger
}

func NewAuthHandler(g *google.Client, users *store.UserStore, sessions *store.SessionStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{google: g, users: users, sessions: sessions, logger: logger}
}

// GoogleLogin starts a login attempt and redirects the browser to Google.
// The optional return_path query parameter is stored with the attempt and
// honored after the callback.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "login is not configured"})
		return
	}

	returnPath := r.URL.Query().Get("return_path")
	if returnPath == "" {
		returnPath = "/"
	}

	authURL, err := h.google.AuthorizeURL(returnPath)
	if err != nil {
		h.logger.Error("start login", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to start login"})
		return
	}
	http.Redirect(w, r, authURL, http.StatusSeeOther)
}

// GoogleCallback completes the login. Security failures all map to the same
// generic 401; the specific reason is only logged.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "login is not configured"})
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing code or state"})
		return
	}

	token, returnURL, err := h.google.Callback(r.Context(), code, state)
	if err != nil {
		h.logger.Warn("login callback", "error", err)
		if errors.Is(err, store.ErrStateNotFound) ||
			errors.Is(err, google.ErrEmailNotVerified) ||
			errors.Is(err, google.ErrNonceMismatch) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication failed"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "authentication failed"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	if returnURL == "" {
		returnURL = "/"
	}
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

// Me returns the user behind the current session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	user, err := h.users.GetByID(ac.UserID)
	if err != nil {
		h.logger.Error("get user", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get user"})
		return
	}
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout deletes the caller's session, if any, and clears the cookie. It is
// deliberately idempotent: logging out without a valid session still clears
// the cookie and succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		sess, err := h.sessions.GetByToken(cookie.Value)
		if err != nil {
			h.logger.Error("lookup session", "error", err)
		}
		if sess != nil {
			if err := h.sessions.Delete(sess.ID); err != nil {
				h.logger.Error("delete session", "error", err)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to log out"})
				return
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
