package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"lepa/internal/config"
)

// Collection names the two document collections the archive persists.
const (
	CollectionRecordings = "recordings"
	CollectionStories    = "stories"
)

// Document is a stored record in a named collection. The identifier is
// assigned by the store on insert and is the durable identity of the record;
// any identifier a client attached beforehand is superseded by it.
type Document struct {
	ID         string
	Collection string
	Body       json.RawMessage
	CreatedAt  time.Time
}

// Store manages archive documents backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the archive database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// ListAll fetches every document in a collection. No filtering or pagination
// happens here; callers search over the full result set. Ordering follows
// insertion time but is not part of the contract.
func (s *Store) ListAll(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, collection, body, created_at FROM documents WHERE collection = ? ORDER BY created_at`,
		collection,
	)
	if err != nil {
		return nil, Unavailable("list "+collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			doc       Document
			body      string
			createdAt string
		)
		if err := rows.Scan(&doc.ID, &doc.Collection, &body, &createdAt); err != nil {
			return nil, Unavailable("scan "+collection, err)
		}
		doc.Body = json.RawMessage(body)
		if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			doc.CreatedAt = ts
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, Unavailable("iterate "+collection, err)
	}
	return docs, nil
}

// Insert writes a new document and returns the store-assigned identifier.
func (s *Store) Insert(ctx context.Context, collection string, body json.RawMessage) (string, error) {
	if len(body) == 0 {
		body = json.RawMessage("{}")
	}
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, collection, body, created_at) VALUES (?, ?, ?, ?)`,
		id, collection, string(body), now,
	)
	if err != nil {
		return "", Unavailable("insert into "+collection, err)
	}
	return id, nil
}

// DeleteByID removes a document by identifier. Deleting an identifier that
// does not exist is not an error; the end state is the same.
func (s *Store) DeleteByID(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	if err != nil {
		return Unavailable("delete from "+collection, err)
	}
	return nil
}

// Count returns the number of documents in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM documents WHERE collection = ?`,
		collection,
	).Scan(&count)
	if err != nil {
		return 0, Unavailable("count "+collection, err)
	}
	return count, nil
}
