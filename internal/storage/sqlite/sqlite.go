package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chris-regnier/diarybook/internal/entry"
	"github.com/chris-regnier/diarybook/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// DBName is the database file created in the data directory.
const DBName = "diarybook.db"

// Store implements storage.Backend using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, DBName)
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			timestamp TEXT PRIMARY KEY CHECK(length(trim(timestamp)) > 0),
			content   TEXT NOT NULL DEFAULT ''
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or replaces an entry.
func (s *Store) Put(e entry.Entry) error {
	if err := entry.ValidateID(e.ID); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	_, err := s.db.Exec(
		`INSERT INTO entries (timestamp, content) VALUES (?, ?)
		 ON CONFLICT(timestamp) DO UPDATE SET content = excluded.content`,
		e.ID, e.Content,
	)
	if err != nil {
		return fmt.Errorf("%w: writing entry: %v", storage.ErrStorage, err)
	}
	return nil
}

// Get retrieves an entry by identifier.
func (s *Store) Get(id string) (entry.Entry, error) {
	if err := entry.ValidateID(id); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	row := s.db.QueryRow("SELECT timestamp, content FROM entries WHERE timestamp = ?", id)

	var e entry.Entry
	if err := row.Scan(&e.ID, &e.Content); err != nil {
		if err == sql.ErrNoRows {
			return entry.Entry{}, storage.ErrNotFound
		}
		return entry.Entry{}, fmt.Errorf("%w: querying entry: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// Exists reports whether a row is stored under id.
func (s *Store) Exists(id string) (bool, error) {
	if err := entry.ValidateID(id); err != nil {
		return false, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries WHERE timestamp = ?", id).Scan(&n); err != nil {
		return false, fmt.Errorf("%w: checking entry: %v", storage.ErrStorage, err)
	}
	return n > 0, nil
}

// List returns every stored entry ordered by key.
func (s *Store) List() (storage.ListResult, error) {
	rows, err := s.db.Query("SELECT timestamp, content FROM entries ORDER BY timestamp")
	if err != nil {
		return storage.ListResult{}, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	res := storage.ListResult{Entries: []entry.Entry{}}
	for rows.Next() {
		var e entry.Entry
		if err := rows.Scan(&e.ID, &e.Content); err != nil {
			return storage.ListResult{}, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		res.Entries = append(res.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return storage.ListResult{}, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}
	return res, nil
}
