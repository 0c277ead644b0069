package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/holloway/bookclub/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, email, first_name, last_name, created_at, updated_at`

func (s *UserStore) Create(email, firstName, lastName string) (*model.User, error) {
	result, err := s.db.Exec(
		`INSERT INTO users (email, first_name, last_name) VALUES (?, ?, ?)`,
		email, firstName, lastName,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (s *UserStore) List() ([]model.User, error) {
	rows, err := s.db.Query(`SELECT ` + userCols + ` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Update sets only the provided fields and always refreshes updated_at.
// At least one field must be non-nil.
func (s *UserStore) Update(id int64, email, firstName, lastName *string) (*model.User, error) {
	var sets []string
	var args []any
	if email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *email)
	}
	if firstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *firstName)
	}
	if lastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *lastName)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("update user: no fields provided")
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	_, err := s.db.Exec(
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a user and reports how many rows were affected.
func (s *UserStore) Delete(id int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// Find returns users matching all of the provided fields (AND semantics).
// At least one field must be non-nil.
func (s *UserStore) Find(email, firstName, lastName *string) ([]model.User, error) {
	var conds []string
	var args []any
	if email != nil {
		conds = append(conds, "email = ?")
		args = append(args, *email)
	}
	if firstName != nil {
		conds = append(conds, "first_name = ?")
		args = append(args, *firstName)
	}
	if lastName != nil {
		conds = append(conds, "last_name = ?")
		args = append(args, *lastName)
	}
	if len(conds) == 0 {
		return nil, fmt.Errorf("find users: no search fields provided")
	}

	query := `SELECT ` + userCols + ` FROM users WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY id`
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
