package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/holloway/bookclub/internal/model"
	"github.com/holloway/bookclub/internal/store"
)

type MembershipHandler struct {
	store  *store.MembershipStore
	logger *slog.Logger
}

func NewMembershipHandler(s *store.MembershipStore, logger *slog.Logger) *MembershipHandler {
	return &MembershipHandler{store: s, logger: logger}
}

func (h *MembershipHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID          int64 `json:"user_id"`
		ClubID          int64 `json:"club_id"`
		PermissionLevel int   `json:"permission_level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if req.PermissionLevel < 0 || req.PermissionLevel > 2 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "permission level must be between 0 and 2"})
		return
	}

	membership, err := h.store.Create(req.UserID, req.ClubID, req.PermissionLevel)
	if err != nil {
		h.logger.Error("create membership", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create membership"})
		return
	}
	writeJSON(w, http.StatusCreated, membership)
}

func (h *MembershipHandler) List(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.store.List()
	if err != nil {
		h.logger.Error("list memberships", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list memberships"})
		return
	}
	if memberships == nil {
		memberships = []model.Membership{}
	}
	writeJSON(w, http.StatusOK, memberships)
}

func (h *MembershipHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	membership, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get membership", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get membership"})
		return
	}
	if membership == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "membership not found"})
		return
	}
	writeJSON(w, http.StatusOK, membership)
}

func (h *MembershipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	n, err := h.store.Delete(id)
	if err != nil {
		h.logger.Error("delete membership", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete membership"})
		return
	}
	if n == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "membership not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "membership deleted"})
}
