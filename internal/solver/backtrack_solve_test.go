package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/generator"
	"svw.info/watersort/internal/ports"
	"svw.info/watersort/internal/pour"
)

func tube(id int, colors ...domain.Color) domain.TestTube {
	t := domain.TestTube{ID: id}
	for _, c := range colors {
		t.Liquids = append(t.Liquids, domain.LiquidSegment{Color: c, Height: domain.SegmentHeight})
	}
	return t
}

// replay applies moves and reports whether the board ends won.
func replay(t *testing.T, tubes []domain.TestTube, moves []domain.Move) bool {
	t.Helper()
	board := tubes
	for i, m := range moves {
		next, _, ok := pour.Apply(board, m)
		require.True(t, ok, "move %d %+v is illegal", i, m)
		board = next
	}
	return pour.Won(board)
}

func TestSolveGeneratedLevels(t *testing.T) {
	g := generator.New(nil)
	s := NewBacktrackingSolver()
	for _, level := range []int{1, 2, 5, 8, 15} {
		gen, _, err := g.Generate(context.Background(), ports.LevelRequest{LevelNumber: level})
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		moves, st, err := s.Solve(ctx, gen.Level.Tubes)
		cancel()
		if err != nil {
			t.Logf("level %d: %v after %d nodes", level, err, st.Nodes)
			continue
		}
		assert.True(t, replay(t, gen.Level.Tubes, moves), "level %d", level)
		t.Logf("level %d solved in %d moves, %d nodes, %v", level, len(moves), st.Nodes, st.Duration)
	}
}

func TestSolveSmallBoard(t *testing.T) {
	board := []domain.TestTube{
		tube(0, "blue", "red", "blue", "red"),
		tube(1, "red", "blue", "red", "blue"),
		tube(2),
		tube(3),
	}
	moves, st, err := NewBacktrackingSolver().Solve(context.Background(), board)
	require.NoError(t, err)
	assert.Positive(t, st.Nodes)
	assert.True(t, replay(t, board, moves))
	// input untouched
	assert.Len(t, board[2].Liquids, 0)
}

func TestSolveAlreadyWon(t *testing.T) {
	moves, _, err := NewBacktrackingSolver().Solve(context.Background(), []domain.TestTube{tube(0, "red", "red", "red", "red"), tube(1)})
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestSolveUnsolvable(t *testing.T) {
	board := []domain.TestTube{
		tube(0, "blue", "red", "blue", "red"),
		tube(1, "red", "blue", "red", "blue"),
	}
	_, _, err := NewBacktrackingSolver().Solve(context.Background(), board)
	assert.ErrorIs(t, err, ErrUnsolvable)
}

func TestSolveNodeLimitAndCancel(t *testing.T) {
	board := []domain.TestTube{
		tube(0, "blue", "red", "green", "red"),
		tube(1, "green", "blue", "red", "blue"),
		tube(2, "red", "green", "blue", "green"),
		tube(3),
		tube(4),
	}
	_, _, err := (&BacktrackingSolver{MaxNodes: 1}).Solve(context.Background(), board)
	assert.ErrorIs(t, err, ErrNodeLimit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = NewBacktrackingSolver().Solve(ctx, board)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBoardKeyIgnoresOrderAndIDs(t *testing.T) {
	a := []domain.TestTube{tube(0, "red"), tube(1, "blue")}
	b := []domain.TestTube{tube(7, "blue"), tube(3, "red")}
	assert.Equal(t, BoardKey(a), BoardKey(b))
	assert.NotEqual(t, BoardKey(a), BoardKey([]domain.TestTube{tube(0, "red", "blue"), tube(1)}))
}
