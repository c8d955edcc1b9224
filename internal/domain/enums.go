package domain

import (
	"fmt"
	"strings"
)

// Difficulty labels the tier a level was generated for.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	VeryHard
	Expert
)

// Difficulties lists every tier from easiest to hardest.
var Difficulties = []Difficulty{Easy, Medium, Hard, VeryHard, Expert}

var difficultyNames = [...]string{"easy", "medium", "hard", "very-hard", "expert"}

func (d Difficulty) String() string {
	if d < Easy || d > Expert {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// Title is the player-facing name used in level descriptions.
func (d Difficulty) Title() string {
	switch d {
	case Easy:
		return "Beginner"
	case Medium:
		return "Intermediate"
	case Hard:
		return "Advanced"
	case VeryHard:
		return "Expert"
	default:
		return "Master"
	}
}

// ParseDifficulty accepts the tier names used on the wire ("very-hard", "veryhard" and "very_hard" all work).
func ParseDifficulty(s string) (Difficulty, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	if key == "veryhard" {
		key = "very-hard"
	}
	for i, name := range difficultyNames {
		if name == key {
			return Difficulty(i), nil
		}
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if d < Easy || d > Expert {
		return nil, fmt.Errorf("invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Outcome tags whether generation reached a board with a legal first move.
type Outcome int

const (
	// Converged means the returned board passed the solvability check.
	Converged Outcome = iota
	// Degraded means every attempt failed and the last candidate was kept.
	Degraded
)

func (o Outcome) String() string {
	if o == Degraded {
		return "degraded"
	}
	return "converged"
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Outcome) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "converged":
		*o = Converged
	case "degraded":
		*o = Degraded
	default:
		return fmt.Errorf("unknown outcome %q", string(b))
	}
	return nil
}
