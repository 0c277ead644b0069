package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/holloway/bookclub/internal/openlibrary"
)

type OpenLibraryHandler struct {
	client *openlibrary.Client
	logger *slog.Logger
}

func NewOpenLibraryHandler(c *openlibrary.Client, logger *slog.Logger) *OpenLibraryHandler {
	return &OpenLibraryHandler{client: c, logger: logger}
}

// Search proxies a title search to Open Library and returns the best
// candidate.
func (h *OpenLibraryHandler) Search(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	book, err := h.client.Search(r.Context(), title)
	if err != nil {
		h.logger.Error("open library search", "title", title, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "open library search failed"})
		return
	}
	if book == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no matching books found"})
		return
	}
	writeJSON(w, http.StatusOK, book)
}
