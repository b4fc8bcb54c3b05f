// Package session persists the registered shopper identity between runs.
package session

import (
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"
)

// Session is the locally remembered identity of a registered client.
type Session struct {
	ClientID    string
	WhatsApp    string
	DisplayName string
}

// Store keeps at most one session in a local sqlite file. A missing or
// unreadable store is never fatal; it simply means nobody is registered.
type Store struct {
	db *sql.DB
}

const sessionSchema = `
CREATE TABLE IF NOT EXISTS session (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    client_id TEXT NOT NULL,
    whatsapp TEXT NOT NULL,
    display_name TEXT NOT NULL
);`

// NewStore opens (or creates) the session database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Load returns the saved session, or nil when none exists. Corrupt or
// missing rows are treated as "not registered" rather than an error.
func (s *Store) Load() (*Session, error) {
	row := s.db.QueryRow(`SELECT client_id, whatsapp, display_name FROM session WHERE id = 1`)
	var sess Session
	err := row.Scan(&sess.ClientID, &sess.WhatsApp, &sess.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, nil
	}
	if sess.ClientID == "" || sess.WhatsApp == "" {
		return nil, nil
	}
	return &sess, nil
}

// Save overwrites the single stored session.
func (s *Store) Save(sess Session) error {
	_, err := s.db.Exec(
		`INSERT INTO session (id, client_id, whatsapp, display_name) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET client_id = excluded.client_id,
		     whatsapp = excluded.whatsapp, display_name = excluded.display_name`,
		sess.ClientID, sess.WhatsApp, sess.DisplayName,
	)
	return err
}

// Clear removes any stored session.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE id = 1`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
