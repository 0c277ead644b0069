package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/holloway/bookclub/internal/model"
	"github.com/holloway/bookclub/internal/store"
)

func setupUserHandler(t *testing.T) (*UserHandler, *store.UserStore) {
	t.Helper()

	db := testDB(t)
	s := store.NewUserStore(db)
	return NewUserHandler(s, slog.New(slog.DiscardHandler)), s
}

func TestUserCreate(t *testing.T) {
	h, _ := setupUserHandler(t)

	body := `{"email":"alice@example.com","first_name":"Alice","last_name":"Smith"}`
	req := httptest.NewRequest("POST", "/users/create", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var user model.User
	json.NewDecoder(rec.Body).Decode(&user)
	if user.ID == 0 || user.Email != "alice@example.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestUserCreateRequiresEmail(t *testing.T) {
	h, _ := setupUserHandler(t)

	req := httptest.NewRequest("POST", "/users/create", strings.NewReader(`{"first_name":"Alice"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUserUpdatePartial(t *testing.T) {
	h, s := setupUserHandler(t)
	created, err := s.Create("alice@example.com", "Alice", "Smith")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	id := strconv.FormatInt(created.ID, 10)
	req := httptest.NewRequest("PUT", "/users/"+id, strings.NewReader(`{"last_name":"Jones"}`))
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var user model.User
	json.NewDecoder(rec.Body).Decode(&user)
	if user.LastName != "Jones" {
		t.Errorf("last name = %q, want Jones", user.LastName)
	}
	if user.FirstName != "Alice" || user.Email != "alice@example.com" {
		t.Errorf("untouched fields changed: %+v", user)
	}
}

func TestUserUpdateNoFields(t *testing.T) {
	h, s := setupUserHandler(t)
	created, _ := s.Create("alice@example.com", "Alice", "Smith")

	id := strconv.FormatInt(created.ID, 10)
	req := httptest.NewRequest("PUT", "/users/"+id, strings.NewReader(`{}`))
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUserUpdateNotFound(t *testing.T) {
	h, _ := setupUserHandler(t)

	req := httptest.NewRequest("PUT", "/users/99", strings.NewReader(`{"email":"x@example.com"}`))
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUserDelete(t *testing.T) {
	h, s := setupUserHandler(t)
	created, _ := s.Create("alice@example.com", "Alice", "Smith")

	id := strconv.FormatInt(created.ID, 10)
	req := httptest.NewRequest("DELETE", "/users/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	// Second delete hits nothing
	req = httptest.NewRequest("DELETE", "/users/"+id, nil)
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

// Search requires every provided field to match.
func TestUserSearchAllFieldsMustMatch(t *testing.T) {
	h, s := setupUserHandler(t)
	s.Create("alice@example.com", "Alice", "Smith")
	s.Create("bob@example.com", "Bob", "Smith")

	req := httptest.NewRequest("GET", "/users/search?first_name=Alice&last_name=Smith", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var users []model.User
	json.NewDecoder(rec.Body).Decode(&users)
	if len(users) != 1 || users[0].Email != "alice@example.com" {
		t.Errorf("users = %+v, want only alice", users)
	}

	req = httptest.NewRequest("GET", "/users/search?first_name=Alice&last_name=Jones", nil)
	rec = httptest.NewRecorder()
	h.Search(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("conflicting filters status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUserSearchNoParams(t *testing.T) {
	h, _ := setupUserHandler(t)

	req := httptest.NewRequest("GET", "/users/search", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
