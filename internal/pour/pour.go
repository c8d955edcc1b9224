// Package pour holds the game rules for moving liquid between tubes.
// Every function here is pure: inputs are never modified.
package pour

import "svw.info/watersort/internal/domain"

// IsValidPour reports whether any liquid may move from one tube to another.
func IsValidPour(from, to domain.TestTube) bool {
	fromTop, ok := from.Top()
	if !ok {
		return false
	}
	if to.IsFull() {
		return false
	}
	toTop, ok := to.Top()
	if !ok {
		return true
	}
	return toTop.Color == fromTop.Color
}

// CountPourableSegments counts the same-color run at the top of a tube.
func CountPourableSegments(from domain.TestTube) int {
	top, ok := from.Top()
	if !ok {
		return 0
	}
	n := 0
	for i := len(from.Liquids) - 1; i >= 0; i-- {
		if from.Liquids[i].Color != top.Color {
			break
		}
		n++
	}
	return n
}

// Count is how many segments a pour would move, bounded by free space.
// It does not check legality.
func Count(from, to domain.TestTube) int {
	free := domain.SegmentCapacity - to.Len()
	if free < 0 {
		free = 0
	}
	return min(CountPourableSegments(from), free)
}

// Pour returns the two tubes after pouring from into to, and the number of
// segments moved. ok is false and the tubes are returned unchanged copies
// when the pour is illegal.
func Pour(from, to domain.TestTube) (domain.TestTube, domain.TestTube, int, bool) {
	from, to = from.Clone(), to.Clone()
	if !IsValidPour(from, to) {
		return from, to, 0, false
	}
	n := Count(from, to)
	cut := len(from.Liquids) - n
	to.Liquids = append(to.Liquids, from.Liquids[cut:]...)
	from.Liquids = from.Liquids[:cut]
	return from, to, n, true
}

// Apply executes m on a copy of tubes. The returned board is a fresh
// snapshot; tubes is not modified. ok is false for unknown tube IDs, a
// self-move or an illegal pour.
func Apply(tubes []domain.TestTube, m domain.Move) ([]domain.TestTube, int, bool) {
	fi, ti, found := indexes(tubes, m)
	if !found {
		return nil, 0, false
	}
	if !IsValidPour(tubes[fi], tubes[ti]) {
		return nil, 0, false
	}
	out := domain.CloneTubes(tubes)
	from, to, n, _ := Pour(tubes[fi], tubes[ti])
	out[fi], out[ti] = from, to
	return out, n, true
}

// Steps returns one snapshot per segment moved by m: after the first
// segment, after the second, and so on. The last snapshot equals the
// board Apply returns. It returns nil for an illegal move.
func Steps(tubes []domain.TestTube, m domain.Move) [][]domain.TestTube {
	fi, ti, found := indexes(tubes, m)
	if !found || !IsValidPour(tubes[fi], tubes[ti]) {
		return nil
	}
	n := Count(tubes[fi], tubes[ti])
	steps := make([][]domain.TestTube, 0, n)
	working := domain.CloneTubes(tubes)
	for i := 0; i < n; i++ {
		from, to := &working[fi], &working[ti]
		last := from.Liquids[len(from.Liquids)-1]
		from.Liquids = from.Liquids[:len(from.Liquids)-1]
		to.Liquids = append(to.Liquids, last)
		steps = append(steps, domain.CloneTubes(working))
	}
	return steps
}

// Solvable is the one-step check: true when at least one legal pour exists.
// It does not prove the level can be finished.
func Solvable(tubes []domain.TestTube) bool {
	for i := range tubes {
		if tubes[i].IsEmpty() {
			continue
		}
		for j := range tubes {
			if i != j && IsValidPour(tubes[i], tubes[j]) {
				return true
			}
		}
	}
	return false
}

// Won reports a finished board: every tube is empty or solved.
func Won(tubes []domain.TestTube) bool {
	for _, t := range tubes {
		if !t.IsEmpty() && !t.IsSolved() {
			return false
		}
	}
	return true
}

func indexes(tubes []domain.TestTube, m domain.Move) (int, int, bool) {
	if m.From == m.To {
		return 0, 0, false
	}
	fi, ti := -1, -1
	for i, t := range tubes {
		switch t.ID {
		case m.From:
			fi = i
		case m.To:
			ti = i
		}
	}
	return fi, ti, fi >= 0 && ti >= 0
}
