// Package notes persists investigator annotations on entities in a local
// SQLite database, keyed by entity kind and ID.
package notes

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Kind identifies what a note is attached to.
type Kind string

const (
	KindCase       Kind = "case"
	KindLocation   Kind = "location"
	KindEvent      Kind = "event"
	KindIndividual Kind = "individual"
)

// Note is one annotation on an entity.
type Note struct {
	ID         int64
	EntityKind Kind
	EntityID   string
	Author     string
	Text       string
	CreatedAt  time.Time
}

// DB handles note persistence
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates the notes database at the given path
func OpenDB(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ndb := &DB{db: db}
	if err := ndb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return ndb, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_kind TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		author TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notes_entity ON notes(entity_kind, entity_id);
	`

	_, err := d.db.Exec(schema)
	return err
}

// Add inserts a new note and fills in its assigned ID.
func (d *DB) Add(n *Note) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	result, err := d.db.Exec(`
		INSERT INTO notes (entity_kind, entity_id, author, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, n.EntityKind, n.EntityID, n.Author, n.Text, n.CreatedAt)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

// ForEntity returns all notes on the given entity, newest first.
func (d *DB) ForEntity(kind Kind, entityID string) ([]Note, error) {
	rows, err := d.db.Query(`
		SELECT id, entity_kind, entity_id, author, text, created_at
		FROM notes
		WHERE entity_kind = ? AND entity_id = ?
		ORDER BY created_at DESC, id DESC
	`, kind, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.EntityKind, &n.EntityID, &n.Author, &n.Text, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// CountForEntity returns the number of notes on the given entity.
func (d *DB) CountForEntity(kind Kind, entityID string) (int, error) {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM notes WHERE entity_kind = ? AND entity_id = ?
	`, kind, entityID).Scan(&count)
	return count, err
}

// Delete removes a note by ID. Deleting a missing note is not an error.
func (d *DB) Delete(id int64) error {
	_, err := d.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	return err
}
