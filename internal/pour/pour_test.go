package pour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/watersort/internal/domain"
)

func tube(id int, colors ...domain.Color) domain.TestTube {
	t := domain.TestTube{ID: id, Liquids: []domain.LiquidSegment{}}
	for _, c := range colors {
		t.Liquids = append(t.Liquids, domain.LiquidSegment{Color: c, Height: domain.SegmentHeight})
	}
	return t
}

func colorsOf(t domain.TestTube) []domain.Color {
	out := []domain.Color{}
	for _, l := range t.Liquids {
		out = append(out, l.Color)
	}
	return out
}

func TestIsValidPour(t *testing.T) {
	cases := []struct {
		name     string
		from, to domain.TestTube
		want     bool
	}{
		{"empty source", tube(0), tube(1), false},
		{"empty source onto match", tube(0), tube(1, "red"), false},
		{"full destination", tube(0, "red"), tube(1, "red", "red", "red", "red"), false},
		{"empty destination", tube(0, "blue", "red"), tube(1), true},
		{"matching top", tube(0, "red"), tube(1, "blue", "red"), true},
		{"mismatched top", tube(0, "red"), tube(1, "red", "blue"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidPour(tc.from, tc.to))
		})
	}
}

func TestCountPourableSegments(t *testing.T) {
	assert.Equal(t, 0, CountPourableSegments(tube(0)))
	assert.Equal(t, 2, CountPourableSegments(tube(0, "red", "red", "blue", "blue")))
	assert.Equal(t, 4, CountPourableSegments(tube(0, "red", "red", "red", "red")))
	assert.Equal(t, 1, CountPourableSegments(tube(0, "red", "blue", "blue", "red")))
}

func TestPourFullRunIntoEmpty(t *testing.T) {
	a := tube(0, "red", "red", "red", "red")
	b := tube(1)
	require.Equal(t, 4, Count(a, b))

	a2, b2, n, ok := Pour(a, b)
	require.True(t, ok)
	assert.Equal(t, 4, n)
	assert.Empty(t, a2.Liquids)
	assert.Equal(t, []domain.Color{"red", "red", "red", "red"}, colorsOf(b2))
	assert.True(t, b2.IsSolved())

	// inputs untouched
	assert.Len(t, a.Liquids, 4)
	assert.Empty(t, b.Liquids)
}

func TestPourBoundedByFreeSpace(t *testing.T) {
	a := tube(0, "blue", "red")
	b := tube(1, "blue", "red", "red")
	assert.Equal(t, 1, CountPourableSegments(a))
	assert.Equal(t, 1, Count(a, b))

	a2, b2, n, ok := Pour(a, b)
	require.True(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, []domain.Color{"blue"}, colorsOf(a2))
	assert.Equal(t, []domain.Color{"blue", "red", "red", "red"}, colorsOf(b2))
	for _, l := range b2.Liquids {
		assert.Equal(t, domain.SegmentHeight, l.Height)
	}
}

func TestPourPartialRun(t *testing.T) {
	a := tube(0, "green", "red", "red", "red")
	b := tube(1, "blue", "blue", "red")
	a2, b2, n, ok := Pour(a, b)
	require.True(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, []domain.Color{"green", "red", "red"}, colorsOf(a2))
	assert.Equal(t, []domain.Color{"blue", "blue", "red", "red"}, colorsOf(b2))
}

func TestPourIllegalIsNoop(t *testing.T) {
	a := tube(0, "red")
	b := tube(1, "blue")
	a2, b2, n, ok := Pour(a, b)
	assert.False(t, ok)
	assert.Zero(t, n)
	assert.Equal(t, a, a2)
	assert.Equal(t, b, b2)
}

func TestApplyReturnsNewSnapshot(t *testing.T) {
	board := []domain.TestTube{tube(3, "red", "blue"), tube(7), tube(5, "blue")}
	out, n, ok := Apply(board, domain.Move{From: 3, To: 5})
	require.True(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, []domain.Color{"red"}, colorsOf(out[0]))
	assert.Equal(t, []domain.Color{"blue", "blue"}, colorsOf(out[2]))
	assert.Empty(t, out[1].Liquids)

	// original board untouched, tube order kept
	assert.Equal(t, []domain.Color{"red", "blue"}, colorsOf(board[0]))
	assert.Equal(t, []domain.Color{"blue"}, colorsOf(board[2]))
	assert.Equal(t, 7, out[1].ID)
}

func TestApplyRejects(t *testing.T) {
	board := []domain.TestTube{tube(0, "red"), tube(1, "blue")}
	for name, m := range map[string]domain.Move{
		"self":        {From: 0, To: 0},
		"unknown":     {From: 0, To: 9},
		"color clash": {From: 0, To: 1},
	} {
		t.Run(name, func(t *testing.T) {
			out, n, ok := Apply(board, m)
			assert.False(t, ok)
			assert.Zero(t, n)
			assert.Nil(t, out)
		})
	}
}

func TestStepsEndAtApplyResult(t *testing.T) {
	board := []domain.TestTube{tube(0, "blue", "red", "red", "red"), tube(1)}
	steps := Steps(board, domain.Move{From: 0, To: 1})
	require.Len(t, steps, 3)
	assert.Equal(t, []domain.Color{"blue", "red", "red"}, colorsOf(steps[0][0]))
	assert.Equal(t, []domain.Color{"red"}, colorsOf(steps[0][1]))

	final, _, ok := Apply(board, domain.Move{From: 0, To: 1})
	require.True(t, ok)
	assert.Equal(t, final, steps[2])
	assert.Nil(t, Steps(board, domain.Move{From: 1, To: 0}))
}

func TestSolvable(t *testing.T) {
	assert.True(t, Solvable([]domain.TestTube{tube(0, "red"), tube(1)}))
	assert.True(t, Solvable([]domain.TestTube{tube(0, "red", "blue"), tube(1, "green", "blue")}))
	assert.False(t, Solvable([]domain.TestTube{
		tube(0, "red", "blue", "red", "blue"),
		tube(1, "blue", "red", "blue", "red"),
	}))
	assert.False(t, Solvable([]domain.TestTube{tube(0, "red"), tube(1, "blue")}))
	assert.False(t, Solvable(nil))
}

func TestWon(t *testing.T) {
	assert.True(t, Won([]domain.TestTube{tube(0, "red", "red", "red", "red"), tube(1)}))
	assert.False(t, Won([]domain.TestTube{tube(0, "red", "red", "red"), tube(1, "red")}))
	assert.False(t, Won([]domain.TestTube{tube(0, "red", "red", "blue", "red")}))
}
