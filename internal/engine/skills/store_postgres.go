package skills

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchiveDB holds the pgx connection pool for the named snapshot archive.
// It is optional: without DATABASE_URL the server runs with local SQLite
// persistence only.
type ArchiveDB struct {
	pool *pgxpool.Pool
}

// Package-level singleton, set from main.go.
var archiveDB *ArchiveDB

// SetArchiveDB sets the package-level archive DB instance.
func SetArchiveDB(db *ArchiveDB) { archiveDB = db }

// GetArchiveDB returns the package-level archive DB instance (may be nil).
func GetArchiveDB() *ArchiveDB { return archiveDB }

const archiveSchema = `CREATE TABLE IF NOT EXISTS session_archive (
	name       TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// ConnectArchiveDB creates a pgx pool and ensures the archive schema.
func ConnectArchiveDB(ctx context.Context, databaseURL string) (*ArchiveDB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 5
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, archiveSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &ArchiveDB{pool: pool}, nil
}

// Close releases the pool.
func (db *ArchiveDB) Close() {
	if db != nil && db.pool != nil {
		db.pool.Close()
	}
}

// Save upserts a named snapshot.
func (db *ArchiveDB) Save(ctx context.Context, name string, doc *ExportDocument) error {
	if name == "" {
		return errors.New("archive: name is required")
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("archive: marshal: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO session_archive (name, doc, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		name, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("archive: upsert %q: %w", name, err)
	}
	return nil
}

// Load fetches a named snapshot, nil when absent.
func (db *ArchiveDB) Load(ctx context.Context, name string) (*ExportDocument, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT doc FROM session_archive WHERE name = $1`, name,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("archive: load %q: %w", name, err)
	}
	return DecodeExport(payload)
}

// ArchiveEntry is one row of the archive listing.
type ArchiveEntry struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// List returns all archived snapshot names, most recently updated first.
func (db *ArchiveDB) List(ctx context.Context) ([]ArchiveEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, updated_at FROM session_archive ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("archive: list: %w", err)
	}
	defer rows.Close()

	var entries []ArchiveEntry
	for rows.Next() {
		var e ArchiveEntry
		if err := rows.Scan(&e.Name, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("archive: scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes a named snapshot.
func (db *ArchiveDB) Delete(ctx context.Context, name string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM session_archive WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("archive: delete %q: %w", name, err)
	}
	return nil
}
