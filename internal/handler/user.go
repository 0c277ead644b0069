package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/holloway/bookclub/internal/model"
	"github.com/holloway/bookclub/internal/store"
)

type UserHandler struct {
	store  *store.UserStore
	logger *slog.Logger
}

func NewUserHandler(s *store.UserStore, logger *slog.Logger) *UserHandler {
	return &UserHandler{store: s, logger: logger}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	user, err := h.store.Create(req.Email, req.FirstName, req.LastName)
	if err != nil {
		h.logger.Error("create user", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create user"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.List()
	if err != nil {
		h.logger.Error("list users", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list users"})
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	user, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get user", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get user"})
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update applies a partial update. Providing no fields at all is a client
// error rather than a silent timestamp-only write.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get user", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get user"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}

	var req struct {
		Email     *string `json:"email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Email == nil && req.FirstName == nil && req.LastName == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no fields provided"})
		return
	}

	user, err := h.store.Update(id, req.Email, req.FirstName, req.LastName)
	if err != nil {
		h.logger.Error("update user", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update user"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	n, err := h.store.Delete(id)
	if err != nil {
		h.logger.Error("delete user", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete user"})
		return
	}
	if n == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search matches on email, first name, and last name; every provided field
// must match.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	email := optionalQuery(r, "email")
	firstName := optionalQuery(r, "first_name")
	lastName := optionalQuery(r, "last_name")
	if email == nil && firstName == nil && lastName == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no search parameters provided"})
		return
	}

	users, err := h.store.Find(email, firstName, lastName)
	if err != nil {
		h.logger.Error("find users", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to search users"})
		return
	}
	if len(users) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no users found"})
		return
	}
	writeJSON(w, http.StatusOK, users)
}
