package dataset

import (
	"fmt"
	"strings"
	"time"

	"herodex/internal/store"
	"herodex/pkg/database"
)

// OpenSource builds the Source named by loc (see Kind). A bare "sqlite:"
// reads the snapshot at dbPath, or the default snapshot when dbPath is blank.
// Snapshots are opened read-only. The returned close func releases the sqlite
// handle for store sources and is a no-op otherwise.
func OpenSource(loc, dbPath string, timeout time.Duration) (Source, func() error, error) {
	noop := func() error { return nil }

	switch Kind(loc) {
	case "http":
		return NewHTTPSource(loc, timeout), noop, nil
	case "sqlite":
		path := strings.TrimPrefix(loc, "sqlite:")
		if path == "" {
			path = database.DefaultConfig(dbPath).Path
		}
		db, err := database.Open(database.Config{Path: path, ReadOnly: true})
		if err != nil {
			return nil, noop, fmt.Errorf("open snapshot %s: %w", path, err)
		}
		return &StoreSource{Repo: store.NewRepo(db), Path: path}, db.Close, nil
	default:
		return &FileSource{Path: loc}, noop, nil
	}
}
