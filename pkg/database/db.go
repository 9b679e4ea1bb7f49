package database

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Config locates a hero snapshot. A ReadOnly handle is opened with mode=ro
// and query_only, so sources that only read the snapshot cannot change it.
type Config struct {
	Path     string
	ReadOnly bool
}

const snapshotFile = "heroes.db"

// DefaultConfig returns a writable config for path, or for
// ~/.herodex/heroes.db when path is blank.
func DefaultConfig(path string) Config {
	if path != "" {
		return Config{Path: path}
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return Config{Path: filepath.Join(home, ".herodex", snapshotFile)}
}

func (c Config) dsn() string {
	if !c.ReadOnly {
		return c.Path
	}
	q := url.Values{}
	q.Set("mode", "ro")
	q.Set("_query_only", "true")
	return "file:" + c.Path + "?" + q.Encode()
}

// Open returns a pinged handle. Writable snapshots get their directory
// created and run in WAL mode; a read-only snapshot must already exist.
func Open(cfg Config) (*sql.DB, error) {
	if cfg.ReadOnly {
		if _, err := os.Stat(cfg.Path); err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", cfg.Path, err)
		}
	} else if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if !cfg.ReadOnly {
		if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma journal_mode: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", cfg.Path, err)
	}
	return db, nil
}

// MustOpen is Open for commands, which cannot continue without a snapshot.
func MustOpen(cfg Config) *sql.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatalf("[db] open %s: %v", cfg.Path, err)
	}
	return db
}
