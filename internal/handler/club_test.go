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

func setupClubHandlers(t *testing.T) (*ClubHandler, *MembershipHandler, *store.ClubStore, *store.UserStore) {
	t.Helper()

	db := testDB(t)
	clubs := store.NewClubStore(db)
	users := store.NewUserStore(db)
	memberships := store.NewMembershipStore(db)
	logger := slog.New(slog.DiscardHandler)
	return NewClubHandler(clubs, logger), NewMembershipHandler(memberships, logger), clubs, users
}

func TestClubCreate(t *testing.T) {
	h, _, _, _ := setupClubHandlers(t)

	body := `{"name":"Sci-Fi Readers","description":"Weekly sci-fi"}`
	req := httptest.NewRequest("POST", "/clubs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var club model.Club
	json.NewDecoder(rec.Body).Decode(&club)
	if club.ID == 0 || club.Name != "Sci-Fi Readers" {
		t.Errorf("club = %+v", club)
	}
}

func TestClubCreateRequiresName(t *testing.T) {
	h, _, _, _ := setupClubHandlers(t)

	req := httptest.NewRequest("POST", "/clubs", strings.NewReader(`{"description":"no name"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestClubUpdate(t *testing.T) {
	h, _, clubs, _ := setupClubHandlers(t)
	created, err := clubs.Create("Sci-Fi Readers", "Weekly")
	if err != nil {
		t.Fatalf("create club: %v", err)
	}

	id := strconv.FormatInt(created.ID, 10)
	req := httptest.NewRequest("PUT", "/clubs/"+id, strings.NewReader(`{"description":"Monthly"}`))
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var club model.Club
	json.NewDecoder(rec.Body).Decode(&club)
	if club.Description != "Monthly" || club.Name != "Sci-Fi Readers" {
		t.Errorf("club = %+v", club)
	}
}

func TestClubDeleteIsIdempotent(t *testing.T) {
	h, _, clubs, _ := setupClubHandlers(t)
	created, _ := clubs.Create("Sci-Fi Readers", "")

	id := strconv.FormatInt(created.ID, 10)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("DELETE", "/clubs/"+id, nil)
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()
		h.Delete(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("delete %d status = %d, want %d", i+1, rec.Code, http.StatusNoContent)
		}
	}
}

func TestMembershipCreate(t *testing.T) {
	_, h, clubs, users := setupClubHandlers(t)
	club, _ := clubs.Create("Sci-Fi Readers", "")
	user, _ := users.Create("alice@example.com", "Alice", "Smith")

	body := `{"user_id":` + strconv.FormatInt(user.ID, 10) + `,"club_id":` + strconv.FormatInt(club.ID, 10) + `,"permission_level":2}`
	req := httptest.NewRequest("POST", "/memberships", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var m model.Membership
	json.NewDecoder(rec.Body).Decode(&m)
	if m.UserID != user.ID || m.ClubID != club.ID || m.PermissionLevel != 2 {
		t.Errorf("membership = %+v", m)
	}
}

func TestMembershipCreateRejectsBadPermissionLevel(t *testing.T) {
	_, h, _, _ := setupClubHandlers(t)

	for _, level := range []string{"-1", "3"} {
		body := `{"user_id":1,"club_id":1,"permission_level":` + level + `}`
		req := httptest.NewRequest("POST", "/memberships", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Create(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("level %s: status = %d, want %d", level, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestMembershipDelete(t *testing.T) {
	_, h, clubs, users := setupClubHandlers(t)
	club, _ := clubs.Create("Sci-Fi Readers", "")
	user, _ := users.Create("alice@example.com", "Alice", "Smith")

	body := `{"user_id":` + strconv.FormatInt(user.ID, 10) + `,"club_id":` + strconv.FormatInt(club.ID, 10) + `}`
	req := httptest.NewRequest("POST", "/memberships", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	var m model.Membership
	json.NewDecoder(rec.Body).Decode(&m)

	id := strconv.FormatInt(m.ID, 10)
	req = httptest.NewRequest("DELETE", "/memberships/"+id, nil)
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	req = httptest.NewRequest("DELETE", "/memberships/"+id, nil)
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
