// Package game is the reference board controller: it owns a working copy
// of a level's tubes and records immutable snapshots for undo.
package game

import (
	"errors"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/hint"
	"svw.info/watersort/internal/pour"
)

var (
	ErrIllegalPour = errors.New("illegal pour")
	ErrNoMove      = errors.New("no move available")
	ErrNoHintsLeft = errors.New("no hints left")
)

// Result describes one executed pour.
type Result struct {
	Move  domain.Move `json:"move"`
	Count int         `json:"count"`
	Won   bool        `json:"won"`
}

// Session is one play-through of a level. It is not safe for concurrent use.
type Session struct {
	level     domain.LevelConfig
	tubes     []domain.TestTube
	history   [][]domain.TestTube
	moves     int
	hintLimit int
	hintsUsed int
}

// New starts a session on a copy of level's tubes. hintLimit 0 means unlimited hints.
func New(level domain.LevelConfig, hintLimit int) *Session {
	s := &Session{hintLimit: hintLimit}
	s.Reset(level)
	return s
}

// Reset restarts on level, which callers regenerate from the same request.
// History, move count and hint usage are cleared.
func (s *Session) Reset(level domain.LevelConfig) {
	s.level = level
	s.tubes = domain.CloneTubes(level.Tubes)
	s.history = nil
	s.moves = 0
	s.hintsUsed = 0
}

func (s *Session) Level() domain.LevelConfig { return s.level }

// Tubes returns a copy of the current board.
func (s *Session) Tubes() []domain.TestTube { return domain.CloneTubes(s.tubes) }

func (s *Session) Moves() int { return s.moves }

// HintsLeft returns -1 when hints are unlimited.
func (s *Session) HintsLeft() int {
	if s.hintLimit <= 0 {
		return -1
	}
	return s.hintLimit - s.hintsUsed
}

// UndoDepth is how many single-segment steps can be undone.
func (s *Session) UndoDepth() int { return len(s.history) }

func (s *Session) Won() bool { return pour.Won(s.tubes) }

// Pour moves liquid between two tubes. An illegal move changes nothing.
func (s *Session) Pour(m domain.Move) (Result, error) {
	steps := pour.Steps(s.tubes, m)
	if len(steps) == 0 {
		return Result{}, ErrIllegalPour
	}
	// Undo walks back one segment at a time: the pre-pour board sits
	// below the intermediate boards on the stack.
	s.history = append(s.history, s.tubes)
	s.history = append(s.history, steps[:len(steps)-1]...)
	s.tubes = steps[len(steps)-1]
	s.moves++
	return Result{Move: m, Count: len(steps), Won: s.Won()}, nil
}

// Undo steps back one segment. It reports false when there is nothing to undo.
func (s *Session) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	last := len(s.history) - 1
	s.tubes = s.history[last]
	s.history = s.history[:last]
	return true
}

// Hint plays the recommended move, spending one hint.
func (s *Session) Hint() (Result, domain.Hint, error) {
	if s.hintLimit > 0 && s.hintsUsed >= s.hintLimit {
		return Result{}, domain.Hint{}, ErrNoHintsLeft
	}
	h, ok := hint.Recommend(s.tubes)
	if !ok {
		return Result{}, domain.Hint{}, ErrNoMove
	}
	res, err := s.Pour(h.Move)
	if err != nil {
		return Result{}, h, err
	}
	s.hintsUsed++
	return res, h, nil
}
