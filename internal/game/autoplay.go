package game

import (
	"svw.info/watersort/internal/pour"
	"svw.info/watersort/internal/solver"
)

// Autoplay plays greedy best-first pours until the board is won, no move
// remains or limit moves have been played. Each move spends a hint.
// Moving a single-color tube into an empty one and returning to a board
// already seen are skipped, so play cannot cycle.
func (s *Session) Autoplay(limit int, each func(Result)) (bool, error) {
	seen := map[string]bool{solver.BoardKey(s.tubes): true}
	for i := 0; i < limit && !s.Won(); i++ {
		if s.hintLimit > 0 && s.hintsUsed >= s.hintLimit {
			return false, nil
		}
		played := false
		for _, m := range solver.Moves(s.tubes) {
			next, _, ok := pour.Apply(s.tubes, m)
			if !ok || seen[solver.BoardKey(next)] {
				continue
			}
			res, err := s.Pour(m)
			if err != nil {
				return false, err
			}
			s.hintsUsed++
			seen[solver.BoardKey(s.tubes)] = true
			if each != nil {
				each(res)
			}
			played = true
			break
		}
		if !played {
			return false, nil
		}
	}
	return s.Won(), nil
}
