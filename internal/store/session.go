package store

import (
	"crypto/subtle"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/holloway/bookclub/internal/model"
)

const sessionLifetime = 24 * time.Hour

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func scanSession(scanner interface{ Scan(...any) error }) (*model.Session, error) {
	var sess model.Session
	err := scanner.Scan(&sess.ID, &sess.TokenP1, &sess.TokenP2, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

const sessionCols = `id, session_token_p1, session_token_p2, user_id, created_at, expires_at`

// Create issues a session for the user. The token is two independent random
// UUIDs; the first half is the lookup key, the full concatenation is the
// bearer secret. Lifetime is fixed at 24 hours from creation.
func (s *SessionStore) Create(userID int64) (*model.Session, error) {
	p1 := uuid.NewString()
	p2 := uuid.NewString()
	createdAt := time.Now().UTC().Truncate(time.Second)
	expiresAt := createdAt.Add(sessionLifetime)

	result, err := s.db.Exec(
		`INSERT INTO user_sessions (session_token_p1, session_token_p2, user_id, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p1, p2, userID, createdAt, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+sessionCols+` FROM user_sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// GetByToken looks a session up by the non-secret first half, then compares
// the second half in constant time. Returns nil for unknown or malformed
// tokens. Expiry is not checked here; that is the authenticator's job.
func (s *SessionStore) GetByToken(token string) (*model.Session, error) {
	p1, p2, ok := strings.Cut(token, model.SessionTokenSeparator)
	if !ok {
		return nil, nil
	}

	row := s.db.QueryRow(`SELECT `+sessionCols+` FROM user_sessions WHERE session_token_p1 = ?`, p1)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session by token: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(sess.TokenP2), []byte(p2)) != 1 {
		return nil, nil
	}
	return sess, nil
}

func (s *SessionStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM user_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) DeleteByUserID(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM user_sessions WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete sessions by user id: %w", err)
	}
	return nil
}

// CountByUserID reports how many sessions exist for a user.
func (s *SessionStore) CountByUserID(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM user_sessions WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}
