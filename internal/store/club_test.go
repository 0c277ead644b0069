package store

import (
	"testing"

	"github.com/holloway/bookclub/internal/database"
)

func setupClubTestDB(t *testing.T) (*ClubStore, *UserStore, *MembershipStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewClubStore(db), NewUserStore(db), NewMembershipStore(db)
}

func TestClubCreate(t *testing.T) {
	cs, _, _ := setupClubTestDB(t)

	c, err := cs.Create("Sci-Fi Circle", "Monthly science fiction reads")
	if err != nil {
		t.Fatalf("create club: %v", err)
	}
	if c.Name != "Sci-Fi Circle" {
		t.Errorf("name = %q, want %q", c.Name, "Sci-Fi Circle")
	}
	if c.Description != "Monthly science fiction reads" {
		t.Errorf("description = %q", c.Description)
	}
}

func TestClubUpdatePartial(t *testing.T) {
	cs, _, _ := setupClubTestDB(t)

	created, _ := cs.Create("Sci-Fi Circle", "Monthly science fiction reads")

	desc := "Biweekly science fiction reads"
	c, err := cs.Update(created.ID, nil, &desc)
	if err != nil {
		t.Fatalf("update club: %v", err)
	}
	if c.Name != "Sci-Fi Circle" {
		t.Errorf("name = %q, should be unchanged", c.Name)
	}
	if c.Description != desc {
		t.Errorf("description = %q, want %q", c.Description, desc)
	}
}

func TestClubUpdateNoFields(t *testing.T) {
	cs, _, _ := setupClubTestDB(t)

	created, _ := cs.Create("Sci-Fi Circle", "desc")

	if _, err := cs.Update(created.ID, nil, nil); err == nil {
		t.Error("expected error when no fields provided")
	}
}

func TestClubDelete(t *testing.T) {
	cs, _, _ := setupClubTestDB(t)

	created, _ := cs.Create("Sci-Fi Circle", "desc")

	if err := cs.Delete(created.ID); err != nil {
		t.Fatalf("delete club: %v", err)
	}

	c, err := cs.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if c != nil {
		t.Error("expected nil after delete")
	}
}

func TestMembershipCreateAndGet(t *testing.T) {
	cs, us, ms := setupClubTestDB(t)

	u, _ := us.Create("alice@example.com", "Alice", "Smith")
	c, _ := cs.Create("Sci-Fi Circle", "desc")

	m, err := ms.Create(u.ID, c.ID, 1)
	if err != nil {
		t.Fatalf("create membership: %v", err)
	}
	if m.UserID != u.ID || m.ClubID != c.ID {
		t.Errorf("membership refs = (%d, %d), want (%d, %d)", m.UserID, m.ClubID, u.ID, c.ID)
	}
	if m.PermissionLevel != 1 {
		t.Errorf("permission_level = %d, want 1", m.PermissionLevel)
	}

	got, err := ms.GetByID(m.ID)
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if got == nil || got.ID != m.ID {
		t.Fatal("expected membership back")
	}
}

func TestMembershipDelete(t *testing.T) {
	cs, us, ms := setupClubTestDB(t)

	u, _ := us.Create("bob@example.com", "Bob", "Jones")
	c, _ := cs.Create("Mystery Readers", "desc")
	m, _ := ms.Create(u.ID, c.ID, 0)

	n, err := ms.Delete(m.ID)
	if err != nil {
		t.Fatalf("delete membership: %v", err)
	}
	if n != 1 {
		t.Errorf("rows affected = %d, want 1", n)
	}

	n, _ = ms.Delete(m.ID)
	if n != 0 {
		t.Errorf("rows affected on second delete = %d, want 0", n)
	}
}

func TestMembershipForeignKeys(t *testing.T) {
	_, _, ms := setupClubTestDB(t)

	if _, err := ms.Create(123, 456, 0); err == nil {
		t.Error("expected foreign key violation for unknown user and club")
	}
}
