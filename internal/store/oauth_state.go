package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/holloway/bookclub/internal/model"
)

// ErrStateNotFound means the csrf_state was never issued or was already
// consumed. Login cannot proceed past it.
var ErrStateNotFound = errors.New("oauth state not found")

type OAuthStateStore struct {
	db *sql.DB
}

func NewOAuthStateStore(db *sql.DB) *OAuthStateStore {
	return &OAuthStateStore{db: db}
}

// Create records a pending login attempt before the user is redirected to
// the identity provider.
func (s *OAuthStateStore) Create(csrfState, nonce, returnURL string) error {
	_, err := s.db.Exec(
		`INSERT INTO oauth2_state_storage (csrf_state, nonce, return_url) VALUES (?, ?, ?)`,
		csrfState, nonce, returnURL,
	)
	if err != nil {
		return fmt.Errorf("insert oauth state: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes the row matching csrfState, so a
// state value can satisfy at most one callback even under concurrent
// requests. Returns ErrStateNotFound when no row matches.
func (s *OAuthStateStore) Consume(csrfState string) (*model.OAuthState, error) {
	row := s.db.QueryRow(
		`DELETE FROM oauth2_state_storage WHERE csrf_state = ? RETURNING id, csrf_state, nonce, return_url, created_at`,
		csrfState,
	)

	var st model.OAuthState
	err := row.Scan(&st.ID, &st.CSRFState, &st.Nonce, &st.ReturnURL, &st.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consume oauth state: %w", err)
	}
	return &st, nil
}

// Count reports how many pending states exist, for tests and diagnostics.
func (s *OAuthStateStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM oauth2_state_storage`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count oauth states: %w", err)
	}
	return n, nil
}
