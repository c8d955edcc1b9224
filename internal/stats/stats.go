// Package stats summarises generated levels.
package stats

import "svw.info/watersort/internal/domain"

// Compute returns tube counts, per-color segment counts and a 0-100
// difficulty score for level.
func Compute(level *domain.LevelConfig) domain.LevelStats {
	s := domain.LevelStats{
		TotalTubes:        len(level.Tubes),
		ColorDistribution: make(map[domain.Color]int, len(level.Colors)),
	}
	for _, t := range level.Tubes {
		if !t.IsEmpty() {
			s.FilledTubes++
		}
		for _, l := range t.Liquids {
			s.ColorDistribution[l.Color]++
		}
	}
	s.EmptyTubes = s.TotalTubes - s.FilledTubes
	s.DifficultyScore = Score(len(level.Colors), len(level.Tubes), level.EmptyTubes)
	return s
}

// Score weighs colors and filled tubes against the configured empty tubes.
func Score(colors, tubes, emptyTubes int) int {
	score := colors*10 + (tubes-emptyTubes)*5 - emptyTubes*15
	return max(0, min(100, score))
}
