// Package handler translates HTTP requests into store and client calls.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/holloway/bookclub/internal/model"
	"github.com/holloway/bookclub/internal/store"
)

type BookHandler struct {
	store  *store.BookStore
	logger *slog.Logger
}

func NewBookHandler(s *store.BookStore, logger *slog.Logger) *BookHandler {
	return &BookHandler{store: s, logger: logger}
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	if req.Title == "" || req.Author == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and author are required"})
		return
	}

	book, err := h.store.Create(req.Title, req.Author)
	if err != nil {
		h.logger.Error("create book", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create book"})
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.List()
	if err != nil {
		h.logger.Error("list books", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list books"})
		return
	}
	if books == nil {
		books = []model.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	book, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get book", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get book"})
		return
	}
	if book == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "book not found"})
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// Search matches on title or author; a row matching either is returned.
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	title := optionalQuery(r, "title")
	author := optionalQuery(r, "author")
	if title == nil && author == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no search parameters provided"})
		return
	}

	books, err := h.store.Find(title, author)
	if err != nil {
		h.logger.Error("find books", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to search books"})
		return
	}
	if len(books) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no books found"})
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// optionalQuery returns nil when the query parameter is absent, so stores
// can distinguish "not filtered" from "filter on empty string".
func optionalQuery(r *http.Request, key string) *string {
	if !r.URL.Query().Has(key) {
		return nil
	}
	v := r.URL.Query().Get(key)
	return &v
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
