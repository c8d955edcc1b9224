package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/ports"
	"svw.info/watersort/internal/pour"
)

var (
	ErrUnsolvable = errors.New("board cannot be solved")
	ErrNodeLimit  = errors.New("search node limit reached")
)

// Solve returns a move sequence that wins the board. The input is not modified.
func (s *BacktrackingSolver) Solve(ctx context.Context, tubes []domain.TestTube) ([]domain.Move, ports.Stats, error) {
	start := time.Now()
	limit := s.MaxNodes
	if limit <= 0 {
		limit = DefaultMaxNodes
	}
	seen := map[string]bool{}
	var path []domain.Move
	nodes := 0
	var stop error

	var dfs func(board []domain.TestTube) bool
	dfs = func(board []domain.TestTube) bool {
		if pour.Won(board) {
			return true
		}
		if err := ctx.Err(); err != nil {
			stop = err
			return false
		}
		if nodes >= limit {
			stop = ErrNodeLimit
			return false
		}
		nodes++
		key := BoardKey(board)
		if seen[key] {
			return false
		}
		seen[key] = true
		for _, m := range Moves(board) {
			next, _, ok := pour.Apply(board, m)
			if !ok {
				continue
			}
			path = append(path, m)
			if dfs(next) {
				return true
			}
			path = path[:len(path)-1]
			if stop != nil {
				return false
			}
		}
		return false
	}

	solved := dfs(domain.CloneTubes(tubes))
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if solved {
		return path, st, nil
	}
	if stop != nil {
		return nil, st, stop
	}
	return nil, st, ErrUnsolvable
}
