package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const MemoryDSN = "file::memory:"

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens the activity log. An empty dsn keeps it in memory for the
// lifetime of the process.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = MemoryDSN
	}
	if !isMemoryDSN(dsn) && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every new connection to an in-memory database is a fresh, empty one.
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			catalog_path TEXT NOT NULL DEFAULT '',
			start_ts TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS lesson_visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			topic_id TEXT NOT NULL,
			lesson_id TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			ts TEXT NOT NULL,
			FOREIGN KEY(session_id) REFERENCES sessions(session_id)
		);`,
		`CREATE TABLE IF NOT EXISTS completions (
			session_id TEXT NOT NULL,
			lesson_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			UNIQUE(session_id, lesson_id)
		);`,
		`CREATE TABLE IF NOT EXISTS interactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			lesson_id TEXT NOT NULL,
			control TEXT NOT NULL,
			value REAL NOT NULL,
			ts TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) StartSession(ctx context.Context, session Session) error {
	id := strings.TrimSpace(session.SessionID)
	if id == "" {
		return fmt.Errorf("session id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions(session_id, catalog_path, start_ts) VALUES(?,?,?)`,
		id,
		session.CatalogPath,
		stamp(session.StartTS),
	)
	return err
}

func (s *SQLiteStore) RecordVisit(ctx context.Context, visit Visit) error {
	if strings.TrimSpace(visit.LessonID) == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lesson_visits(session_id, topic_id, lesson_id, content, ts) VALUES(?,?,?,?,?)`,
		visit.SessionID,
		visit.TopicID,
		visit.LessonID,
		visit.Content,
		stamp(visit.TS),
	)
	return err
}

// RecordCompletion keeps the first completion of a lesson; repeats are ignored
// by UNIQUE + INSERT OR IGNORE.
func (s *SQLiteStore) RecordCompletion(ctx context.Context, completion Completion) error {
	if strings.TrimSpace(completion.LessonID) == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO completions(session_id, lesson_id, ts) VALUES(?,?,?)`,
		completion.SessionID,
		completion.LessonID,
		stamp(completion.TS),
	)
	return err
}

func (s *SQLiteStore) RecordInteraction(ctx context.Context, interaction Interaction) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interactions(session_id, lesson_id, control, value, ts) VALUES(?,?,?,?,?)`,
		interaction.SessionID,
		interaction.LessonID,
		interaction.Control,
		interaction.Value,
		stamp(interaction.TS),
	)
	return err
}

func (s *SQLiteStore) Summary(ctx context.Context, sessionID string) (Summary, error) {
	var (
		out      Summary
		startRaw sql.NullString
		lastRaw  sql.NullString
	)
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT start_ts FROM sessions WHERE session_id = ?1),
			(SELECT COUNT(*) FROM lesson_visits WHERE session_id = ?1),
			(SELECT COUNT(*) FROM completions WHERE session_id = ?1),
			(SELECT COUNT(*) FROM interactions WHERE session_id = ?1),
			(SELECT lesson_id FROM lesson_visits WHERE session_id = ?1 ORDER BY id DESC LIMIT 1)
	`, sessionID)
	if err := row.Scan(&startRaw, &out.Visits, &out.Completions, &out.Interactions, &lastRaw); err != nil {
		return Summary{}, err
	}
	if startRaw.Valid {
		if t, err := time.Parse(timeLayout, startRaw.String); err == nil {
			out.StartedAt = t
		}
	}
	out.LastLessonID = lastRaw.String
	return out, nil
}

func (s *SQLiteStore) LessonVisits(ctx context.Context, sessionID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lesson_id, COUNT(*)
		FROM lesson_visits
		WHERE session_id = ?
		GROUP BY lesson_id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var (
			lessonID string
			n        int
		)
		if err := rows.Scan(&lessonID, &n); err != nil {
			return nil, err
		}
		out[lessonID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func stamp(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.UTC().Format(timeLayout)
}
