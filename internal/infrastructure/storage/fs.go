package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"svw.info/watersort/internal/domain"
)

var (
	ErrNotFound  = errors.New("level not found")
	ErrMissingID = errors.New("invalid level: missing ID")
)

// FS stores one indented JSON file per level under <dir>/<difficulty>/<id>.json.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) pathFor(id string, d domain.Difficulty) string {
	return filepath.Join(s.dir, d.String(), strings.TrimSpace(id)+".json")
}

func validID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

func (s *FS) Save(ctx context.Context, l *domain.SavedLevel) error {
	if l == nil || !validID(l.ID) {
		return ErrMissingID
	}
	// An ID lives under one difficulty folder only.
	for _, d := range domain.Difficulties {
		if d == l.Level.Difficulty {
			continue
		}
		if err := os.Remove(s.pathFor(l.ID, d)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	target := s.pathFor(l.ID, l.Level.Difficulty)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.SavedLevel, error) {
	if !validID(id) {
		return nil, ErrMissingID
	}
	for _, d := range domain.Difficulties {
		data, err := os.ReadFile(s.pathFor(id, d))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var out domain.SavedLevel
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", id, err)
		}
		return &out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *FS) List(ctx context.Context) ([]domain.SavedLevelMeta, error) {
	out := []domain.SavedLevelMeta{}
	for _, d := range domain.Difficulties {
		dir := filepath.Join(s.dir, d.String())
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var l domain.SavedLevel
			if err := json.Unmarshal(data, &l); err != nil || l.ID == "" {
				continue
			}
			out = append(out, meta(&l))
		}
	}
	sortMetas(out)
	return out, nil
}

func meta(l *domain.SavedLevel) domain.SavedLevelMeta {
	return domain.SavedLevelMeta{
		ID:          l.ID,
		Name:        l.Name,
		LevelNumber: l.Level.LevelNumber,
		Difficulty:  l.Level.Difficulty,
		CreatedAt:   l.CreatedAt,
	}
}

// sortMetas orders listings by level number, then ID.
func sortMetas(m []domain.SavedLevelMeta) {
	sort.Slice(m, func(i, j int) bool {
		if m[i].LevelNumber != m[j].LevelNumber {
			return m[i].LevelNumber < m[j].LevelNumber
		}
		return m[i].ID < m[j].ID
	})
}
