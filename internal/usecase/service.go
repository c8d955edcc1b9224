package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/game"
	"svw.info/watersort/internal/ports"
	"svw.info/watersort/internal/pour"
	"svw.info/watersort/internal/stats"
)

type Service struct {
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Solver    ports.Solver
	Storage   ports.Storage
	Logger    *zap.Logger
	Workers   int
	HintLimit int
}

func NewService(g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Generator: g, Validator: v, Hinter: h, Storage: st, Logger: logger, Workers: 1}
}

var (
	errNotConfigured = errors.New("usecase dependency not configured")
	ErrMaxBatch      = errors.New("batch too large")
)

// MaxBatch bounds a single batch request.
const MaxBatch = 1000

func (u *Service) Generate(ctx context.Context, req ports.LevelRequest) (domain.Generation, ports.Stats, error) {
	if u.Generator == nil {
		return domain.Generation{}, ports.Stats{}, errNotConfigured
	}
	gen, st, err := u.Generator.Generate(ctx, req)
	if err != nil {
		return gen, st, err
	}
	u.logOutcome(gen, st)
	return gen, st, nil
}

// GenerateBatch returns count consecutive levels in order. Levels are built
// in parallel; each owns its random source so the result matches a
// sequential run.
func (u *Service) GenerateBatch(ctx context.Context, start, count int) ([]domain.Generation, error) {
	if u.Generator == nil {
		return nil, errNotConfigured
	}
	if count < 0 || count > MaxBatch {
		return nil, fmt.Errorf("%w: count %d not in 0..%d", ErrMaxBatch, count, MaxBatch)
	}
	out := make([]domain.Generation, count)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, u.Workers))
	for i := 0; i < count; i++ {
		i := i
		eg.Go(func() error {
			gen, st, err := u.Generator.Generate(egCtx, ports.LevelRequest{LevelNumber: start + i})
			if err != nil {
				return fmt.Errorf("level %d: %w", start+i, err)
			}
			u.logOutcome(gen, st)
			out[i] = gen
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Service) logOutcome(gen domain.Generation, st ports.Stats) {
	fields := []zap.Field{
		zap.Int("level", gen.Level.LevelNumber),
		zap.Stringer("difficulty", gen.Level.Difficulty),
		zap.Int("attempts", st.Attempts),
		zap.Duration("dur", st.Duration),
	}
	if gen.Outcome == domain.Degraded {
		u.Logger.Warn("level generated without a legal first move", fields...)
		return
	}
	u.Logger.Debug("level generated", fields...)
}

func (u *Service) Validate(ctx context.Context, level *domain.LevelConfig) (domain.ValidationResult, error) {
	if u.Validator == nil {
		return domain.ValidationResult{}, errNotConfigured
	}
	return u.Validator.Validate(ctx, level)
}

func (u *Service) Stats(level *domain.LevelConfig) domain.LevelStats {
	return stats.Compute(level)
}

func (u *Service) Hint(ctx context.Context, tubes []domain.TestTube) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, tubes)
}

// PourResult is the board after a stateless pour.
type PourResult struct {
	Tubes []domain.TestTube `json:"tubes"`
	Count int               `json:"count"`
	Won   bool              `json:"won"`
}

// Pour applies m to a client-held board and returns the new snapshot.
func (u *Service) Pour(tubes []domain.TestTube, m domain.Move) (PourResult, error) {
	next, n, ok := pour.Apply(tubes, m)
	if !ok {
		return PourResult{}, game.ErrIllegalPour
	}
	return PourResult{Tubes: next, Count: n, Won: pour.Won(next)}, nil
}

// Solve searches a full winning sequence for a board.
func (u *Service) Solve(ctx context.Context, tubes []domain.TestTube) ([]domain.Move, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	moves, st, err := u.Solver.Solve(ctx, tubes)
	u.Logger.Debug("solve finished",
		zap.Int("nodes", st.Nodes),
		zap.Int("moves", len(moves)),
		zap.Duration("took", st.Duration),
		zap.Error(err))
	return moves, st, err
}

// NewSession generates req and starts a play-through on it.
func (u *Service) NewSession(ctx context.Context, req ports.LevelRequest) (*game.Session, error) {
	gen, _, err := u.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return game.New(gen.Level, u.HintLimit), nil
}

// Restart regenerates req and resets s onto the fresh, identical level.
func (u *Service) Restart(ctx context.Context, s *game.Session, req ports.LevelRequest) error {
	gen, _, err := u.Generate(ctx, req)
	if err != nil {
		return err
	}
	s.Reset(gen.Level)
	return nil
}

// Persistence
func (u *Service) Save(ctx context.Context, l *domain.SavedLevel) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, l)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.SavedLevel, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.SavedLevelMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
