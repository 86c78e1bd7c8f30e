package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.StateStore = (*SQLiteStore)(nil)

// SQLiteStore persists wizard state in a single SQLite table.
type SQLiteStore struct {
	Path string
	db   *sql.DB
	log  *logger.Logger
}

// OpenSQLite opens or creates the state database at path.
func OpenSQLite(ctx context.Context, path string, log *logger.Logger) (*SQLiteStore, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve state db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure state db dir: %w", err)
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{Path: absPath, db: db, log: log.With("storage")}
	if err := store.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug("state db ready at %s", absPath)
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS wizard_sessions (
	id TEXT PRIMARY KEY,
	state_json TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create state schema: %w", err)
	}
	return nil
}

// Save upserts state under sessionID.
func (s *SQLiteStore) Save(ctx context.Context, sessionID string, state domain.WizardState) error {
	data, err := EncodeState(state)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO wizard_sessions (id, state_json, updated_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET state_json = excluded.state_json, updated_at = excluded.updated_at`,
		sessionID, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	s.log.Debug("saved session %s (step=%s)", sessionID, state.CurrentStep)
	return nil
}

// Load retrieves the state stored under sessionID.
func (s *SQLiteStore) Load(ctx context.Context, sessionID string) (domain.WizardState, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT state_json FROM wizard_sessions WHERE id = ?", sessionID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		s.log.Debug("session not found: %s", sessionID)
		return domain.WizardState{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.WizardState{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return DecodeState([]byte(data))
}

// Delete removes the state stored under sessionID.
func (s *SQLiteStore) Delete(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM wizard_sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	s.log.Debug("deleted session %s", sessionID)
	return nil
}
