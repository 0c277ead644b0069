package dialog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps one serialized State per chat in its own SQLite database,
// separate from the API database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS dialogue_states (
    chat_id INTEGER PRIMARY KEY,
    state TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Open opens (or creates) the dialogue database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open dialogue database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping dialogue database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create dialogue table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the chat's state, or the idle state when the chat has none.
func (s *Store) Get(chatID int64) (State, error) {
	var raw string
	err := s.db.QueryRow(`SELECT state FROM dialogue_states WHERE chat_id = ?`, chatID).Scan(&raw)
	if err == sql.ErrNoRows {
		return StartState(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("get dialogue state: %w", err)
	}
	return unmarshalState([]byte(raw))
}

// Set replaces the chat's state.
func (s *Store) Set(chatID int64, state State) error {
	raw, err := marshalState(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO dialogue_states (chat_id, state, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(chat_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		chatID, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set dialogue state: %w", err)
	}
	return nil
}

// Reset puts the chat back into the idle state.
func (s *Store) Reset(chatID int64) error {
	_, err := s.db.Exec(`DELETE FROM dialogue_states WHERE chat_id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("reset dialogue state: %w", err)
	}
	return nil
}
