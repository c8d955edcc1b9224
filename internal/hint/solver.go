package hint

import (
	"context"
	"sort"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/pour"
)

const (
	completeBonus  = 1000
	runWeight      = 10
	emptyDestBonus = 5
)

// Solver ranks legal pours with a one-move heuristic.
type Solver struct{}

func NewSolver() *Solver { return &Solver{} }

// Hint returns the best scoring move for the board, if any.
func (s *Solver) Hint(ctx context.Context, tubes []domain.TestTube) (domain.Hint, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Hint{}, false, err
	}
	h, ok := Recommend(tubes)
	return h, ok, nil
}

// Recommend picks the highest scoring legal pour. Ties go to the first
// candidate in Candidates order.
func Recommend(tubes []domain.TestTube) (domain.Hint, bool) {
	var best domain.Hint
	found := false
	for _, c := range Candidates(tubes) {
		if !found || c.Score > best.Score {
			best, found = c, true
		}
	}
	return best, found
}

// Candidates scores every legal pour. Sources are visited in ascending tube
// ID, and for each source the destinations are visited in ascending tube ID.
func Candidates(tubes []domain.TestTube) []domain.Hint {
	order := make([]int, len(tubes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return tubes[order[a]].ID < tubes[order[b]].ID })

	var out []domain.Hint
	for _, fi := range order {
		from := tubes[fi]
		if from.IsEmpty() {
			continue
		}
		for _, ti := range order {
			if ti == fi {
				continue
			}
			to := tubes[ti]
			if !pour.IsValidPour(from, to) {
				continue
			}
			out = append(out, score(from, to))
		}
	}
	return out
}

func score(from, to domain.TestTube) domain.Hint {
	_, dest, n, _ := pour.Pour(from, to)
	h := domain.Hint{
		Move:          domain.Move{From: from.ID, To: to.ID},
		Count:         n,
		CompletesTube: dest.IsSolved(),
	}
	if h.CompletesTube {
		h.Score += completeBonus
	}
	h.Score += runWeight * topRun(dest)
	if to.IsEmpty() {
		h.Score += emptyDestBonus
	}
	h.Score += min(n, domain.SegmentCapacity)
	return h
}

// topRun is the same-color run length at the top of t.
func topRun(t domain.TestTube) int {
	return pour.CountPourableSegments(t)
}
