package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"svw.info/watersort/internal/ports"
)

// Open returns the store selected by kind ("fs" or "sqlite") and a close func.
// For sqlite, path is a directory and the database lives in levels.db inside it.
func Open(kind, path string) (ports.Storage, func() error, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, nil, err
	}
	switch kind {
	case "fs":
		return NewFS(path), func() error { return nil }, nil
	case "sqlite":
		db, err := OpenSQLite(filepath.Join(path, "levels.db"))
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage kind %q", kind)
}
