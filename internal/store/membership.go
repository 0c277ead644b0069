package store

import (
	"database/sql"
	"fmt"

	"github.com/holloway/bookclub/internal/model"
)

type MembershipStore struct {
	db *sql.DB
}

func NewMembershipStore(db *sql.DB) *MembershipStore {
	return &MembershipStore{db: db}
}

func scanMembership(scanner interface{ Scan(...any) error }) (*model.Membership, error) {
	var m model.Membership
	err := scanner.Scan(&m.ID, &m.UserID, &m.ClubID, &m.PermissionLevel, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const membershipCols = `id, user_id, club_id, permission_level, created_at`

func (s *MembershipStore) Create(userID, clubID int64, permissionLevel int) (*model.Membership, error) {
	result, err := s.db.Exec(
		`INSERT INTO memberships (user_id, club_id, permission_level) VALUES (?, ?, ?)`,
		userID, clubID, permissionLevel,
	)
	if err != nil {
		return nil, fmt.Errorf("insert membership: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *MembershipStore) GetByID(id int64) (*model.Membership, error) {
	row := s.db.QueryRow(`SELECT `+membershipCols+` FROM memberships WHERE id = ?`, id)
	m, err := scanMembership(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return m, nil
}

func (s *MembershipStore) List() ([]model.Membership, error) {
	rows, err := s.db.Query(`SELECT ` + membershipCols + ` FROM memberships ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []model.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, *m)
	}
	return memberships, rows.Err()
}

// Delete removes a membership and reports how many rows were affected.
func (s *MembershipStore) Delete(id int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM memberships WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete membership: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
