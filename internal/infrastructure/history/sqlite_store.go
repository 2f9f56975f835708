// Package history persists resolved-query records. The primary store is a
// SQLite database; a JSONL file store serves as fallback when the database
// cannot be opened.
package history

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"os"
	"path/filepath"

	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/pkg/filesystem"
	"github.com/doeshing/ghask/internal/ports"
)

// SQLiteStore persists query records in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.ghask/history/history.db
// database. On failure the store degrades to the JSONL file fallback.
func NewSQLiteStore() *SQLiteStore {
	return NewSQLiteStoreAt(filepath.Join(filesystem.AppDir(), "history", "history.db"))
}

// NewSQLiteStoreAt opens a store at a specific database path.
func NewSQLiteStoreAt(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS queries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		session_id TEXT,
		query TEXT,
		intent TEXT,
		parameters TEXT,
		result_key TEXT,
		error TEXT,
		duration_ms INTEGER
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.QueryRecord) error {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO queries
		(timestamp, session_id, query, intent, parameters, result_key, error, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp.Format(time.RFC3339),
		record.SessionID,
		record.Query,
		record.Intent,
		record.Parameters,
		record.Key,
		record.Err,
		record.DurationMS,
	)
	return err
}

// Records returns history entries, newest first. limit and search are
// optional.
func (s *SQLiteStore) Records(limit int, search string) ([]domain.QueryRecord, error) {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT timestamp, session_id, query, intent, parameters, result_key, error, duration_ms FROM queries")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE query LIKE ? OR intent LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.QueryRecord
	for rows.Next() {
		var rec domain.QueryRecord
		var ts string
		if err := rows.Scan(&ts, &rec.SessionID, &rec.Query, &rec.Intent, &rec.Parameters, &rec.Key, &rec.Err, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear removes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM queries")
	return err
}

func (s *SQLiteStore) fallbackPath() string {
	return strings.TrimSuffix(s.path, ".db") + ".jsonl"
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
