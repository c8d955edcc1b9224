package generator

import (
	"errors"

	"svw.info/watersort/internal/difficulty"
	"svw.info/watersort/internal/domain"
)

const DefaultMaxAttempts = 10

var (
	ErrInvalidLevel      = errors.New("level number must be at least 1")
	ErrInvalidColors     = errors.New("invalid level colors")
	ErrInvalidEmptyTubes = errors.New("empty tube count must not be negative")
)

// Options configures a LevelGenerator.
type Options struct {
	Policy      *difficulty.Policy // nil means difficulty.DefaultPolicy()
	Palette     []domain.Color     // nil means domain.Palette()
	MaxAttempts int                // regenerations after the first board; <= 0 means DefaultMaxAttempts
}

// LevelGenerator builds levels from a seed, a difficulty policy and a palette.
type LevelGenerator struct {
	policy      *difficulty.Policy
	palette     []domain.Color
	maxAttempts int
}

// New wires a generator. A nil options value uses all defaults.
func New(opts *Options) *LevelGenerator {
	if opts == nil {
		opts = &Options{}
	}
	g := &LevelGenerator{
		policy:      opts.Policy,
		palette:     append([]domain.Color(nil), opts.Palette...),
		maxAttempts: opts.MaxAttempts,
	}
	if g.policy == nil {
		g.policy = difficulty.DefaultPolicy()
	}
	if len(g.palette) == 0 {
		g.palette = domain.Palette()
	}
	if g.maxAttempts <= 0 {
		g.maxAttempts = DefaultMaxAttempts
	}
	return g
}
