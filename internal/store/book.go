// Package store implements SQL-backed persistence for the domain models.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/holloway/bookclub/internal/model"
)

type BookStore struct {
	db *sql.DB
}

func NewBookStore(db *sql.DB) *BookStore {
	return &BookStore{db: db}
}

func scanBook(scanner interface{ Scan(...any) error }) (*model.Book, error) {
	var b model.Book
	err := scanner.Scan(&b.ID, &b.Title, &b.Author)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

const bookCols = `id, title, author`

func (s *BookStore) Create(title, author string) (*model.Book, error) {
	result, err := s.db.Exec(
		`INSERT INTO books (title, author) VALUES (?, ?)`,
		title, author,
	)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *BookStore) GetByID(id int64) (*model.Book, error) {
	row := s.db.QueryRow(`SELECT `+bookCols+` FROM books WHERE id = ?`, id)
	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

func (s *BookStore) List() ([]model.Book, error) {
	rows, err := s.db.Query(`SELECT ` + bookCols + ` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

// Find returns books matching any of the provided fields (OR semantics).
// At least one of title or author must be non-nil.
func (s *BookStore) Find(title, author *string) ([]model.Book, error) {
	var conds []string
	var args []any
	if title != nil {
		conds = append(conds, "title = ?")
		args = append(args, *title)
	}
	if author != nil {
		conds = append(conds, "author = ?")
		args = append(args, *author)
	}
	if len(conds) == 0 {
		return nil, fmt.Errorf("find books: no search fields provided")
	}

	query := `SELECT ` + bookCols + ` FROM books WHERE ` + strings.Join(conds, " OR ") + ` ORDER BY id`
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}
