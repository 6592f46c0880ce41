// Package catalog keeps a SQLite index of indirect exports alongside the
// namespace store. The store's files remain the source of truth; the catalog
// only answers "what was exported where, and when" without walking the tree.
// Implements: prd006-export-catalog R1-R4.
package catalog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// fileName is the catalog database file inside the store root.
const fileName = "catalog.db"

// Export is one catalog row.
type Export struct {
	ID        string    `json:"export_id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Namespace string    `json:"namespace"`
	Size      int       `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// Catalog is an open export catalog. Safe for concurrent use.
type Catalog struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if necessary) the catalog under the given store root.
func Open(storeRoot string) (*Catalog, error) {
	if err := os.MkdirAll(storeRoot, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDirCreate, storeRoot, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(storeRoot, fileName))
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Record inserts or replaces the row for (namespace, name) and returns the
// export ID. Re-exporting the same artifact updates its row in place.
func (c *Catalog) Record(e Export) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.ID == "" {
		e.ID = newUUID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := c.db.Exec(`
		INSERT INTO exports (export_id, key, name, kind, namespace, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (namespace, name) DO UPDATE SET
			key = excluded.key,
			kind = excluded.kind,
			size_bytes = excluded.size_bytes,
			created_at = excluded.created_at`,
		e.ID, e.Key, e.Name, e.Kind, e.Namespace, e.Size, e.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("recording export %s in %s: %w", e.Name, e.Namespace, err)
	}
	return e.ID, nil
}

// List returns the rows for one namespace, sorted by name. An empty
// namespace string returns every row, sorted by namespace then name.
func (c *Catalog) List(namespace string) ([]Export, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	query := `SELECT export_id, key, name, kind, namespace, size_bytes, created_at
		FROM exports ORDER BY namespace, name`
	args := []any{}
	if namespace != "" {
		query = `SELECT export_id, key, name, kind, namespace, size_bytes, created_at
			FROM exports WHERE namespace = ? ORDER BY name`
		args = append(args, namespace)
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}
	defer rows.Close()

	var exports []Export
	for rows.Next() {
		var e Export
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Key, &e.Name, &e.Kind, &e.Namespace, &e.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning export row: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}

// Remove deletes the row for (namespace, name). Missing rows are not an
// error; the store file is the source of truth for existence.
func (c *Catalog) Remove(namespace, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`DELETE FROM exports WHERE namespace = ? AND name = ?`, namespace, name)
	if err != nil {
		return fmt.Errorf("removing export %s from %s: %w", name, namespace, err)
	}
	return nil
}

// Close releases the underlying database handle. Idempotent.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
