package generator

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/watersort/internal/difficulty"
	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/ports"
	"svw.info/watersort/internal/pour"
	"svw.info/watersort/internal/rng"
)

func generate(t *testing.T, g *LevelGenerator, req ports.LevelRequest) domain.Generation {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	gen, st, err := g.Generate(ctx, req)
	require.NoError(t, err)
	require.Equal(t, gen.Attempts, st.Attempts)
	return gen
}

func TestGenerateStructuralInvariants(t *testing.T) {
	g := New(nil)
	for level := 1; level <= 200; level++ {
		gen := generate(t, g, ports.LevelRequest{LevelNumber: level})
		l := gen.Level

		total := 0
		ids := map[int]bool{}
		allowed := map[domain.Color]bool{}
		for _, c := range l.Colors {
			allowed[c] = true
		}
		empty := 0
		for _, tube := range l.Tubes {
			require.LessOrEqual(t, tube.Len(), domain.SegmentCapacity, "level %d", level)
			require.False(t, ids[tube.ID], "level %d duplicate id %d", level, tube.ID)
			ids[tube.ID] = true
			if tube.IsEmpty() {
				empty++
			}
			for _, s := range tube.Liquids {
				require.True(t, allowed[s.Color], "level %d color %s", level, s.Color)
				require.Equal(t, domain.SegmentHeight, s.Height)
			}
			total += tube.Len()
		}
		require.Equal(t, len(l.Colors)*domain.SegmentCapacity, total, "level %d", level)
		require.Equal(t, l.EmptyTubes, empty, "level %d", level)
		require.Len(t, l.Tubes, len(l.Colors)+l.EmptyTubes, "level %d", level)
		if gen.Outcome == domain.Converged {
			require.True(t, pour.Solvable(l.Tubes), "level %d", level)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, b := New(nil), New(nil)
	for _, level := range []int{1, 2, 9, 33, 77, 500, 1000} {
		x := generate(t, a, ports.LevelRequest{LevelNumber: level})
		y := generate(t, b, ports.LevelRequest{LevelNumber: level})
		if diff := cmp.Diff(x, y); diff != "" {
			t.Fatalf("level %d differs (-first +second):\n%s", level, diff)
		}
	}
}

func TestGenerateUsesTierParams(t *testing.T) {
	g := New(nil)
	p := difficulty.DefaultPolicy()
	for _, level := range []int{3, 8, 9, 15, 42, 99} {
		gen := generate(t, g, ports.LevelRequest{LevelNumber: level})
		tier, params, err := p.Resolve(level)
		require.NoError(t, err)
		assert.Equal(t, tier, gen.Level.Difficulty)
		assert.Equal(t, params.Moves, gen.Level.Moves)
		assert.Equal(t, params.EmptyTubes, gen.Level.EmptyTubes)
		assert.Equal(t, domain.Palette()[:params.Colors], gen.Level.Colors)
		assert.Equal(t, Seed(level), gen.Seed)
	}
}

func TestEarlyLevelsRampColors(t *testing.T) {
	g := New(nil)
	for level := 1; level <= 8; level++ {
		gen := generate(t, g, ports.LevelRequest{LevelNumber: level})
		assert.Len(t, gen.Level.Colors, min(level+2, 8), "level %d", level)
	}
}

func TestGenerateOverrides(t *testing.T) {
	g := New(nil)
	empty := 3
	seed := int64(4242)
	colors := []domain.Color{"red", "gold", "silver"}
	gen := generate(t, g, ports.LevelRequest{
		LevelNumber:      12,
		CustomColors:     colors,
		CustomEmptyTubes: &empty,
		Seed:             &seed,
	})
	assert.Equal(t, colors, gen.Level.Colors)
	assert.Equal(t, 3, gen.Level.EmptyTubes)
	assert.Len(t, gen.Level.Tubes, 6)
	assert.Equal(t, seed, gen.Seed)
	assert.Contains(t, gen.Level.Description, "Level 12 - ")
	assert.Contains(t, gen.Level.Description, "Sort 3 different colored liquids")

	again := generate(t, g, ports.LevelRequest{LevelNumber: 12, CustomColors: colors, CustomEmptyTubes: &empty, Seed: &seed})
	assert.Equal(t, gen, again)
}

func TestGenerateRejectsBadRequests(t *testing.T) {
	g := New(nil)
	ctx := context.Background()
	neg := -1

	_, _, err := g.Generate(ctx, ports.LevelRequest{LevelNumber: 0})
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, _, err = g.Generate(ctx, ports.LevelRequest{LevelNumber: 1, CustomEmptyTubes: &neg})
	assert.ErrorIs(t, err, ErrInvalidEmptyTubes)

	_, _, err = g.Generate(ctx, ports.LevelRequest{LevelNumber: 1, CustomColors: []domain.Color{"red", "red"}})
	assert.ErrorIs(t, err, ErrInvalidColors)

	_, _, err = g.Generate(ctx, ports.LevelRequest{LevelNumber: 1, CustomColors: []domain.Color{}})
	assert.ErrorIs(t, err, ErrInvalidColors)

	small := New(&Options{Palette: []domain.Color{"red", "blue"}})
	_, _, err = small.Generate(ctx, ports.LevelRequest{LevelNumber: 5})
	assert.ErrorIs(t, err, ErrInvalidColors)
}

func TestDegradedWhenNoLegalMoveIsPossible(t *testing.T) {
	// One color and no empty tubes: the single full tube can never pour.
	g := New(&Options{MaxAttempts: 3})
	none := 0
	gen := generate(t, g, ports.LevelRequest{
		LevelNumber:      20,
		CustomColors:     []domain.Color{"red"},
		CustomEmptyTubes: &none,
	})
	assert.Equal(t, domain.Degraded, gen.Outcome)
	assert.Equal(t, 4, gen.Attempts)
	assert.Len(t, gen.Level.Tubes, 1)
}

func TestConvergedOnFirstAttemptWithEmptyTubes(t *testing.T) {
	gen := generate(t, New(nil), ports.LevelRequest{LevelNumber: 30})
	assert.Equal(t, domain.Converged, gen.Outcome)
	assert.Equal(t, 1, gen.Attempts)
}

func TestDistributeChunksAndIDs(t *testing.T) {
	r := rng.New(1)
	segs := segments([]domain.Color{"red", "blue"}, r)
	tubes := distribute(segs, 2, r)
	require.Len(t, tubes, 4)
	ids := []int{}
	for _, tube := range tubes {
		ids = append(ids, tube.ID)
	}
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, ids)
	for _, tube := range tubes {
		if tube.ID >= 2 {
			assert.True(t, tube.IsEmpty())
		} else {
			assert.True(t, tube.IsFull())
		}
	}
}

func TestOptimizeReshufflesOnClusteredTops(t *testing.T) {
	tube := func(id int, c domain.Color) domain.TestTube {
		return domain.TestTube{ID: id, Liquids: []domain.LiquidSegment{{Color: c, Height: 25}}}
	}
	clustered := []domain.TestTube{tube(0, "red"), tube(1, "red"), tube(2, "red"), tube(3, "blue")}
	out := optimize(clustered, rng.New(5))
	assert.ElementsMatch(t, clustered, out)
	assert.Equal(t, rng.Shuffle(rng.New(5), clustered), out)

	spread := []domain.TestTube{tube(0, "red"), tube(1, "red"), tube(2, "blue")}
	assert.Equal(t, spread, optimize(spread, rng.New(5)))
}

func TestBatchMatchesSingleGeneration(t *testing.T) {
	g := New(nil)
	batch, err := g.Batch(context.Background(), 40, 5)
	require.NoError(t, err)
	require.Len(t, batch, 5)
	for i, gen := range batch {
		assert.Equal(t, 40+i, gen.Level.LevelNumber)
		single := generate(t, g, ports.LevelRequest{LevelNumber: 40 + i})
		assert.Equal(t, single, gen)
	}

	_, err = g.Batch(context.Background(), 0, 2)
	assert.ErrorIs(t, err, ErrInvalidLevel)
	_, err = g.Batch(context.Background(), 1, -1)
	assert.Error(t, err)
}
