package generator

import (
	"context"
	"fmt"
	"time"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/ports"
	"svw.info/watersort/internal/pour"
	"svw.info/watersort/internal/rng"
)

// Seed derives the generation seed for a level.
func Seed(levelNumber int) int64 {
	return int64(levelNumber)*12345 + 67890
}

// Generate builds the level described by req. Identical requests always
// produce identical levels. When every attempt leaves the board without a
// legal first move, the last board is returned tagged domain.Degraded.
func (g *LevelGenerator) Generate(ctx context.Context, req ports.LevelRequest) (domain.Generation, ports.Stats, error) {
	start := time.Now()
	if req.LevelNumber < 1 {
		return domain.Generation{}, ports.Stats{}, fmt.Errorf("%w: got %d", ErrInvalidLevel, req.LevelNumber)
	}

	seed := Seed(req.LevelNumber)
	if req.Seed != nil {
		seed = *req.Seed
	}
	random := rng.New(seed)

	tier, params, err := g.policy.Resolve(req.LevelNumber)
	if err != nil {
		return domain.Generation{}, ports.Stats{}, err
	}
	colors, err := g.colors(req.CustomColors, params.Colors)
	if err != nil {
		return domain.Generation{}, ports.Stats{}, err
	}
	emptyTubes := params.EmptyTubes
	if req.CustomEmptyTubes != nil {
		if *req.CustomEmptyTubes < 0 {
			return domain.Generation{}, ports.Stats{}, fmt.Errorf("%w: got %d", ErrInvalidEmptyTubes, *req.CustomEmptyTubes)
		}
		emptyTubes = *req.CustomEmptyTubes
	}

	tubes := distribute(segments(colors, random), emptyTubes, random)
	attempts := 1
	for !pour.Solvable(tubes) && attempts <= g.maxAttempts {
		if err := ctx.Err(); err != nil {
			return domain.Generation{}, ports.Stats{Attempts: attempts, Duration: time.Since(start)}, err
		}
		tubes = distribute(segments(colors, random), emptyTubes, random)
		attempts++
	}
	outcome := domain.Converged
	if !pour.Solvable(tubes) {
		outcome = domain.Degraded
	}
	tubes = optimize(tubes, random)

	level := domain.LevelConfig{
		LevelNumber: req.LevelNumber,
		Colors:      colors,
		Tubes:       tubes,
		EmptyTubes:  emptyTubes,
		Difficulty:  tier,
		Moves:       params.Moves,
		Description: describe(req.LevelNumber, tier, len(colors)),
	}
	gen := domain.Generation{Level: level, Outcome: outcome, Attempts: attempts, Seed: seed}
	return gen, ports.Stats{Attempts: attempts, Duration: time.Since(start)}, nil
}

func (g *LevelGenerator) colors(custom []domain.Color, n int) ([]domain.Color, error) {
	if custom == nil {
		if n > len(g.palette) {
			return nil, fmt.Errorf("%w: need %d colors, palette has %d", ErrInvalidColors, n, len(g.palette))
		}
		return append([]domain.Color(nil), g.palette[:n]...), nil
	}
	if len(custom) == 0 {
		return nil, fmt.Errorf("%w: custom color list is empty", ErrInvalidColors)
	}
	seen := make(map[domain.Color]bool, len(custom))
	for _, c := range custom {
		if c == "" {
			return nil, fmt.Errorf("%w: blank color name", ErrInvalidColors)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate color %q", ErrInvalidColors, c)
		}
		seen[c] = true
	}
	return append([]domain.Color(nil), custom...), nil
}

// segments returns a full tube's worth of every color, shuffled.
func segments(colors []domain.Color, random *rng.Seeded) []domain.LiquidSegment {
	out := make([]domain.LiquidSegment, 0, len(colors)*domain.SegmentCapacity)
	for _, c := range colors {
		for i := 0; i < domain.SegmentCapacity; i++ {
			out = append(out, domain.LiquidSegment{Color: c, Height: domain.SegmentHeight})
		}
	}
	return rng.Shuffle(random, out)
}

// distribute packs segments into tubes in order, appends the empty tubes
// and shuffles tube order. IDs follow packing order.
func distribute(segs []domain.LiquidSegment, emptyTubes int, random *rng.Seeded) []domain.TestTube {
	filled := (len(segs) + domain.SegmentCapacity - 1) / domain.SegmentCapacity
	tubes := make([]domain.TestTube, 0, filled+emptyTubes)
	for i := 0; i < filled; i++ {
		lo := i * domain.SegmentCapacity
		hi := min(lo+domain.SegmentCapacity, len(segs))
		liquids := make([]domain.LiquidSegment, hi-lo, domain.SegmentCapacity)
		copy(liquids, segs[lo:hi])
		tubes = append(tubes, domain.TestTube{ID: i, Liquids: liquids})
	}
	for i := 0; i < emptyTubes; i++ {
		tubes = append(tubes, domain.TestTube{ID: filled + i, Liquids: make([]domain.LiquidSegment, 0, domain.SegmentCapacity)})
	}
	return rng.Shuffle(random, tubes)
}

// optimize reshuffles tube order once when some top color is exposed on
// three or more tubes. It does not iterate to a fixed point.
func optimize(tubes []domain.TestTube, random *rng.Seeded) []domain.TestTube {
	for i, t := range tubes {
		top, ok := t.Top()
		if !ok {
			continue
		}
		same := 0
		for j, o := range tubes {
			if j == i {
				continue
			}
			if ot, ok := o.Top(); ok && ot.Color == top.Color {
				same++
			}
		}
		if same > 1 {
			return rng.Shuffle(random, tubes)
		}
	}
	return tubes
}

func describe(levelNumber int, tier domain.Difficulty, colorCount int) string {
	return fmt.Sprintf("Level %d - %s Challenge. Sort %d different colored liquids into matching tubes.",
		levelNumber, tier.Title(), colorCount)
}
