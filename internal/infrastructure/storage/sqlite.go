package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"svw.info/watersort/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS levels (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL DEFAULT '',
	difficulty   TEXT NOT NULL,
	level_number INTEGER NOT NULL,
	outcome      TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	body         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_levels_number ON levels(level_number);
`

// SQLite keeps level packs in a single table; the full level is stored as JSON.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Save(ctx context.Context, l *domain.SavedLevel) error {
	if l == nil || !validID(l.ID) {
		return ErrMissingID
	}
	body, err := json.Marshal(l)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO levels (id, name, difficulty, level_number, outcome, created_at, body)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	difficulty = excluded.difficulty,
	level_number = excluded.level_number,
	outcome = excluded.outcome,
	created_at = excluded.created_at,
	body = excluded.body`,
		l.ID, l.Name, l.Level.Difficulty.String(), l.Level.LevelNumber, l.Outcome.String(), l.CreatedAt, string(body))
	if err != nil {
		return fmt.Errorf("save level %s: %w", l.ID, err)
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context, id string) (*domain.SavedLevel, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM levels WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var out domain.SavedLevel
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	return &out, nil
}

func (s *SQLite) List(ctx context.Context) ([]domain.SavedLevelMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, difficulty, level_number, created_at
FROM levels ORDER BY level_number, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.SavedLevelMeta{}
	for rows.Next() {
		var (
			m    domain.SavedLevelMeta
			diff string
		)
		if err := rows.Scan(&m.ID, &m.Name, &diff, &m.LevelNumber, &m.CreatedAt); err != nil {
			return nil, err
		}
		if m.Difficulty, err = domain.ParseDifficulty(diff); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
