package skills

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/benjamayden/skillsradar/internal/engine"
)

// keepSnapshots bounds local history so the db cannot grow unbounded.
const keepSnapshots = 25

var (
	sessionDB     *sql.DB
	sessionDBPath string
	sessionOnce   sync.Once
	sessionErr    error
)

// SetSessionDBPath overrides the default snapshot database location. Must be
// called before the first open.
func SetSessionDBPath(path string) { sessionDBPath = path }

// openSessionDB opens (or creates) the SQLite snapshot database.
func openSessionDB() (*sql.DB, error) {
	sessionOnce.Do(func() {
		dbPath := sessionDBPath
		if dbPath == "" {
			dir := filepath.Join(os.Getenv("HOME"), ".skillsradar")
			if err := os.MkdirAll(dir, 0750); err != nil {
				sessionErr = fmt.Errorf("session store: mkdir %s: %w", dir, err)
				return
			}
			dbPath = filepath.Join(dir, "sessions.db")
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			sessionErr = fmt.Errorf("session store: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initSessionSchema(db); err != nil {
			sessionErr = fmt.Errorf("session store: init schema: %w", err)
			return
		}
		sessionDB = db
	})
	return sessionDB, sessionErr
}

func initSessionSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		doc        TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	return err
}

// SaveSnapshot appends an export document to the local history and prunes
// old entries beyond keepSnapshots.
func SaveSnapshot(doc *ExportDocument) error {
	db, err := openSessionDB()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("session store: marshal: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := db.Exec(`INSERT INTO snapshots (doc, created_at) VALUES (?, ?)`, string(payload), now); err != nil {
		return fmt.Errorf("session store: insert: %w", err)
	}
	_, err = db.Exec(
		`DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`,
		keepSnapshots,
	)
	if err != nil {
		return fmt.Errorf("session store: prune: %w", err)
	}
	return nil
}

// LoadLatestSnapshot returns the most recent export document, or nil when
// nothing has been saved yet.
func LoadLatestSnapshot() (*ExportDocument, error) {
	db, err := openSessionDB()
	if err != nil {
		return nil, err
	}
	var payload string
	err = db.QueryRow(`SELECT doc FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session store: query: %w", err)
	}
	return DecodeExport([]byte(payload))
}

// RestoreSession loads the latest snapshot into the session, if one exists.
func RestoreSession(s *Session) error {
	doc, err := LoadLatestSnapshot()
	if err != nil || doc == nil {
		return err
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("session store: marshal snapshot: %w", err)
	}
	return s.Import(payload)
}

// AttachAutoSave wires the session so every successful mutation persists a
// snapshot. Persistence failures are logged, never propagated into the
// mutation itself.
func AttachAutoSave(s *Session) {
	s.OnCommit(func(doc *ExportDocument) {
		if err := SaveSnapshot(doc); err != nil {
			slog.Warn("session store: autosave failed", slog.Any("error", err))
			return
		}
		engine.IncrSessionsSaved()
	})
}
