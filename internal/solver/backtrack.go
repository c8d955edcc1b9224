package solver

import (
	"sort"
	"strings"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/hint"
	"svw.info/watersort/internal/pour"
)

// DefaultMaxNodes bounds a search when the solver is built without a limit.
const DefaultMaxNodes = 200000

// BacktrackingSolver is a depth-first search over pours with a visited set.
// It proves a board can be finished, which the one-step check cannot.
type BacktrackingSolver struct {
	MaxNodes int
}

func NewBacktrackingSolver() *BacktrackingSolver {
	return &BacktrackingSolver{MaxNodes: DefaultMaxNodes}
}

// --- helpers shared by Solve and game.Autoplay ---

// BoardKey identifies a position regardless of tube order and IDs.
func BoardKey(tubes []domain.TestTube) string {
	parts := make([]string, len(tubes))
	for i, t := range tubes {
		var b strings.Builder
		for _, l := range t.Liquids {
			b.WriteString(string(l.Color))
			b.WriteByte(',')
		}
		parts[i] = b.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// Moves orders legal pours best-first and drops the ones that cannot help:
// pouring a single-color tube into an empty one only relabels it.
func Moves(tubes []domain.TestTube) []domain.Move {
	byID := make(map[int]domain.TestTube, len(tubes))
	for _, t := range tubes {
		byID[t.ID] = t
	}
	cands := hint.Candidates(tubes)
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })

	out := make([]domain.Move, 0, len(cands))
	for _, c := range cands {
		from, to := byID[c.Move.From], byID[c.Move.To]
		if to.IsEmpty() && pour.CountPourableSegments(from) == from.Len() {
			continue
		}
		if from.IsSolved() {
			continue
		}
		out = append(out, c.Move)
	}
	return out
}
