package taskargs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Invocation is one recorded task invocation
type Invocation struct {
	TaskName  string
	Argv      []string
	Status    TaskStatus
	Error     string
	StartedAt time.Time
	EndedAt   time.Time
}

// HistoryStore records task invocations for later inspection
type HistoryStore interface {
	SaveInvocation(ctx context.Context, inv Invocation) error
	ListRecent(ctx context.Context, limit int) ([]Invocation, error)
	Close() error
}

var _ HistoryStore = (*SQLiteHistoryStore)(nil)

// SQLiteHistoryStore keeps the most recent invocations in a SQLite file
type SQLiteHistoryStore struct {
	db         *sql.DB
	keepRecent int
}

func NewSQLiteHistoryStore(dbPath string, keepRecent int) (*SQLiteHistoryStore, error) {
	path := filepath.Clean(dbPath)
	if path == "" || path == "." {
		return nil, fmt.Errorf("invalid sqlite db path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir failed: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite failed: %w", err)
	}

	store := &SQLiteHistoryStore{
		db:         db,
		keepRecent: keepRecent,
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteHistoryStore) initSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS invocation_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	task_name TEXT NOT NULL,
	argv_json TEXT NOT NULL,
	status TEXT NOT NULL,
	error_text TEXT NOT NULL,
	started_at_unix_ms INTEGER NOT NULL,
	ended_at_unix_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invocation_history_started_at
	ON invocation_history(started_at_unix_ms DESC);`
	_, err := s.db.ExecContext(ctx, ddl)
	if err != nil {
		return fmt.Errorf("init invocation_history schema failed: %w", err)
	}
	return nil
}

func timeToUnixMS(ts time.Time) int64 {
	if ts.IsZero() {
		return 0
	}
	return ts.UTC().UnixMilli()
}

func unixMSToTime(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func (s *SQLiteHistoryStore) SaveInvocation(ctx context.Context, inv Invocation) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite history store is not initialized")
	}

	argvJSON, err := json.Marshal(inv.Argv)
	if err != nil {
		return fmt.Errorf("marshal invocation argv failed: %w", err)
	}

	const insert = `
INSERT INTO invocation_history (
	task_name, argv_json, status, error_text, started_at_unix_ms, ended_at_unix_ms
) VALUES (?, ?, ?, ?, ?, ?);`
	_, err = s.db.ExecContext(
		ctx,
		insert,
		inv.TaskName,
		string(argvJSON),
		string(inv.Status),
		inv.Error,
		timeToUnixMS(inv.StartedAt),
		timeToUnixMS(inv.EndedAt),
	)
	if err != nil {
		return fmt.Errorf("insert invocation history failed: %w", err)
	}

	if s.keepRecent > 0 {
		const trim = `
DELETE FROM invocation_history
WHERE id NOT IN (
	SELECT id FROM invocation_history
	ORDER BY id DESC
	LIMIT ?
);`
		if _, err := s.db.ExecContext(ctx, trim, s.keepRecent); err != nil {
			return fmt.Errorf("trim invocation history failed: %w", err)
		}
	}

	return nil
}

func (s *SQLiteHistoryStore) ListRecent(ctx context.Context, limit int) ([]Invocation, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite history store is not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	const query = `
SELECT task_name, argv_json, status, error_text, started_at_unix_ms, ended_at_unix_ms
FROM invocation_history
ORDER BY id DESC
LIMIT ?;`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query invocation history failed: %w", err)
	}
	defer rows.Close()

	out := make([]Invocation, 0, limit)
	for rows.Next() {
		var taskName, argvJSON, status, errText string
		var startedAtMS, endedAtMS int64

		if err := rows.Scan(&taskName, &argvJSON, &status, &errText, &startedAtMS, &endedAtMS); err != nil {
			return nil, fmt.Errorf("scan invocation history row failed: %w", err)
		}

		var argv []string
		if err := json.Unmarshal([]byte(argvJSON), &argv); err != nil {
			return nil, fmt.Errorf("unmarshal invocation argv failed: %w", err)
		}

		out = append(out, Invocation{
			TaskName:  taskName,
			Argv:      argv,
			Status:    TaskStatus(status),
			Error:     errText,
			StartedAt: unixMSToTime(startedAtMS),
			EndedAt:   unixMSToTime(endedAtMS),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invocation history rows failed: %w", err)
	}
	return out, nil
}

func (s *SQLiteHistoryStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
