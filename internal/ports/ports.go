package ports

import (
	"context"
	"time"

	"svw.info/watersort/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Attempts int
	Nodes    int
	Duration time.Duration
}

// LevelRequest asks for one level. Nil overrides fall back to the tier defaults.
type LevelRequest struct {
	LevelNumber      int            `json:"levelNumber"`
	CustomColors     []domain.Color `json:"customColors,omitempty"`
	CustomEmptyTubes *int           `json:"customEmptyTubes,omitempty"`
	Seed             *int64         `json:"seed,omitempty"`
}

// Generator builds levels deterministically from a request.
type Generator interface {
	Generate(ctx context.Context, req LevelRequest) (domain.Generation, Stats, error)
}

// Validator performs static checks on a level.
type Validator interface {
	Validate(ctx context.Context, level *domain.LevelConfig) (domain.ValidationResult, error)
}

// Hinter recommends the next move for a board.
type Hinter interface {
	Hint(ctx context.Context, tubes []domain.TestTube) (domain.Hint, bool, error)
}

// Solver searches for a full move sequence that wins a board.
type Solver interface {
	Solve(ctx context.Context, tubes []domain.TestTube) ([]domain.Move, Stats, error)
}

// Storage persists and retrieves level-pack entries.
type Storage interface {
	Save(ctx context.Context, l *domain.SavedLevel) error
	Load(ctx context.Context, id string) (*domain.SavedLevel, error)
	List(ctx context.Context) ([]domain.SavedLevelMeta, error)
}
