package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/holloway/bookclub/internal/model"
)

type ClubStore struct {
	db *sql.DB
}

func NewClubStore(db *sql.DB) *ClubStore {
	return &ClubStore{db: db}
}

func scanClub(scanner interface{ Scan(...any) error }) (*model.Club, error) {
	var c model.Club
	err := scanner.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const clubCols = `id, name, description, created_at, updated_at`

func (s *ClubStore) Create(name, description string) (*model.Club, error) {
	result, err := s.db.Exec(
		`INSERT INTO clubs (name, description) VALUES (?, ?)`,
		name, description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert club: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ClubStore) GetByID(id int64) (*model.Club, error) {
	row := s.db.QueryRow(`SELECT `+clubCols+` FROM clubs WHERE id = ?`, id)
	c, err := scanClub(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get club: %w", err)
	}
	return c, nil
}

func (s *ClubStore) List() ([]model.Club, error) {
	rows, err := s.db.Query(`SELECT ` + clubCols + ` FROM clubs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []model.Club
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		clubs = append(clubs, *c)
	}
	return clubs, rows.Err()
}

// Update sets only the provided fields and always refreshes updated_at.
// At least one field must be non-nil.
func (s *ClubStore) Update(id int64, name, description *string) (*model.Club, error) {
	var sets []string
	var args []any
	if name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *name)
	}
	if description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *description)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("update club: no fields provided")
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	_, err := s.db.Exec(
		`UPDATE clubs SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("update club: %w", err)
	}
	return s.GetByID(id)
}

func (s *ClubStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM clubs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete club: %w", err)
	}
	return nil
}
