// Package session replaces the browser's localStorage state (access token,
// menu-collapsed flag) with an explicit server-side session: created on
// login, cleared on logout, persisted in a single-file SQLite database so
// sessions survive gateway restarts.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id             TEXT PRIMARY KEY,
	username       TEXT NOT NULL,
	token          TEXT NOT NULL,
	expires_at     INTEGER NOT NULL,
	menu_collapsed INTEGER NOT NULL DEFAULT 0,
	created_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
`

// Store is the SQLite-backed session store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init session schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a new session, filling CreatedAt.
func (s *Store) Create(ctx context.Context, sess *domain.Session) error {
	sess.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, username, token, expires_at, menu_collapsed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID.String(), sess.Username, sess.Token,
		sess.ExpiresAt.Unix(), boolToInt(sess.MenuCollapsed), sess.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Get returns the session with the given id, or domain.ErrSessionNotFound.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, token, expires_at, menu_collapsed, created_at
		 FROM sessions WHERE id = ?`, id.String())

	var (
		rawID         string
		sess          domain.Session
		expiresAt     int64
		menuCollapsed int64
		createdAt     int64
	)
	err := row.Scan(&rawID, &sess.Username, &sess.Token, &expiresAt, &menuCollapsed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}

	sess.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse session id: %w", err)
	}
	sess.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	sess.MenuCollapsed = menuCollapsed != 0
	sess.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &sess, nil
}

// Delete removes the session; deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SetMenuCollapsed updates the UI preference flag on the session.
func (s *Store) SetMenuCollapsed(ctx context.Context, id uuid.UUID, collapsed bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET menu_collapsed = ? WHERE id = ?`,
		boolToInt(collapsed), id.String())
	if err != nil {
		return fmt.Errorf("update session preference: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// PurgeExpired deletes every session whose token expiry has passed and
// returns how many rows were removed.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at > 0 AND expires_at < ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count purged sessions: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
