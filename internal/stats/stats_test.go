package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"svw.info/watersort/internal/domain"
)

func full(id int, c domain.Color) domain.TestTube {
	t := domain.TestTube{ID: id}
	for i := 0; i < domain.SegmentCapacity; i++ {
		t.Liquids = append(t.Liquids, domain.LiquidSegment{Color: c, Height: domain.SegmentHeight})
	}
	return t
}

func TestComputeFourColorsSixTubes(t *testing.T) {
	level := &domain.LevelConfig{
		Colors:     []domain.Color{"red", "blue", "green", "yellow"},
		Tubes:      []domain.TestTube{full(0, "red"), full(1, "blue"), {ID: 4}, full(2, "green"), full(3, "yellow"), {ID: 5}},
		EmptyTubes: 2,
	}
	s := Compute(level)
	assert.Equal(t, 6, s.TotalTubes)
	assert.Equal(t, 4, s.FilledTubes)
	assert.Equal(t, 2, s.EmptyTubes)
	assert.Equal(t, map[domain.Color]int{"red": 4, "blue": 4, "green": 4, "yellow": 4}, s.ColorDistribution)
	assert.Equal(t, 30, s.DifficultyScore)
}

func TestScoreClamps(t *testing.T) {
	assert.Equal(t, 30, Score(4, 6, 2))
	assert.Equal(t, 100, Score(12, 14, 2))
	assert.Equal(t, 0, Score(1, 4, 3))
}

func TestEmptyTubesCountsActualBoard(t *testing.T) {
	mixed := domain.TestTube{ID: 0, Liquids: []domain.LiquidSegment{{Color: "red", Height: 25}, {Color: "blue", Height: 25}}}
	level := &domain.LevelConfig{
		Colors:     []domain.Color{"red", "blue"},
		Tubes:      []domain.TestTube{mixed, {ID: 1}, {ID: 2}},
		EmptyTubes: 1,
	}
	s := Compute(level)
	assert.Equal(t, 1, s.FilledTubes)
	assert.Equal(t, 2, s.EmptyTubes)
	// 20 + (3-1)*5 - 15
	assert.Equal(t, 15, s.DifficultyScore)
}
