package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/holloway/bookclub/internal/model"
	"github.com/holloway/bookclub/internal/store"
)

type ClubHandler struct {
	store  *store.ClubStore
	logger *slog.Logger
}

func NewClubHandler(s *store.ClubStore, logger *slog.Logger) *ClubHandler {
	return &ClubHandler{store: s, logger: logger}
}

func (h *ClubHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	club, err := h.store.Create(req.Name, req.Description)
	if err != nil {
		h.logger.Error("create club", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create club"})
		return
	}
	writeJSON(w, http.StatusCreated, club)
}

func (h *ClubHandler) List(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.store.List()
	if err != nil {
		h.logger.Error("list clubs", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list clubs"})
		return
	}
	if clubs == nil {
		clubs = []model.Club{}
	}
	writeJSON(w, http.StatusOK, clubs)
}

func (h *ClubHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	club, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get club", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get club"})
		return
	}
	if club == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "club not found"})
		return
	}
	writeJSON(w, http.StatusOK, club)
}

func (h *ClubHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get club", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get club"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "club not found"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Name == nil && req.Description == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no fields provided"})
		return
	}

	club, err := h.store.Update(id, req.Name, req.Description)
	if err != nil {
		h.logger.Error("update club", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update club"})
		return
	}
	writeJSON(w, http.StatusOK, club)
}

func (h *ClubHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete club", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete club"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
