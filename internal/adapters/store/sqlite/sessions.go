package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS web_sessions (
	id TEXT PRIMARY KEY,
	token TEXT NOT NULL DEFAULT '',
	user_json TEXT,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_web_sessions_expires ON web_sessions(expires_at);
`

// SessionStore persists web sessions in SQLite. Timestamps are stored as
// unix nanoseconds. Expiry is judged against the store's clock.
type SessionStore struct {
	db    *sql.DB
	path  string
	clock ports.Clock
}

var _ ports.SessionRepository = (*SessionStore)(nil)

// Open creates or opens the session database at path. A nil clock means
// the system clock.
func Open(ctx context.Context, path string, clock ports.Clock) (*SessionStore, error) {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create session db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// An in-memory database lives only as long as its one connection.
	db.SetMaxOpenConns(1)

	store := &SessionStore{db: db, path: path, clock: clock}
	if err := store.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}

func (s *SessionStore) Path() string {
	return s.path
}

func (s *SessionStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("configure session db: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate session db: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.WebSession, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, token, user_json, created_at, expires_at FROM web_sessions WHERE id = ?`, id)

	var (
		session   domain.WebSession
		userJSON  sql.NullString
		createdAt int64
		expiresAt int64
	)
	if err := row.Scan(&session.ID, &session.Auth.Token, &userJSON, &createdAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WebSession{}, fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
		}
		return domain.WebSession{}, fmt.Errorf("load session %q: %w", id, err)
	}

	session.CreatedAt = fromUnixNano(createdAt)
	session.ExpiresAt = fromUnixNano(expiresAt)
	if session.Expired(s.clock.Now()) {
		return domain.WebSession{}, fmt.Errorf("session %q expired: %w", id, domain.ErrSessionNotFound)
	}

	if userJSON.Valid && userJSON.String != "" {
		var user domain.User
		if err := json.Unmarshal([]byte(userJSON.String), &user); err != nil {
			return domain.WebSession{}, fmt.Errorf("decode session %q user: %w", id, err)
		}
		session.Auth.User = &user
	}

	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session domain.WebSession) error {
	if session.ID == "" {
		return errors.New("session id is required")
	}

	var userJSON sql.NullString
	if session.Auth.User != nil {
		raw, err := json.Marshal(session.Auth.User)
		if err != nil {
			return fmt.Errorf("encode session user: %w", err)
		}
		userJSON = sql.NullString{String: string(raw), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO web_sessions (id, token, user_json, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_json = excluded.user_json,
			expires_at = excluded.expires_at`,
		session.ID, session.Auth.Token, userJSON, toUnixNano(session.CreatedAt), toUnixNano(session.ExpiresAt))
	if err != nil {
		return fmt.Errorf("save session %q: %w", session.ID, err)
	}

	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM web_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	return nil
}

// PurgeExpired removes sessions whose expiry is at or before now. Sessions
// without an expiry are kept.
func (s *SessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM web_sessions WHERE expires_at > 0 AND expires_at <= ?`, now.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count purged sessions: %w", err)
	}
	return n, nil
}

func toUnixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
