package difficulty

import (
	"errors"
	"fmt"

	"svw.info/watersort/internal/domain"
)

// Params are the board dimensions for one tier.
type Params struct {
	Colors     int `yaml:"colors" json:"colors"`
	EmptyTubes int `yaml:"empty_tubes" json:"emptyTubes"`
	Moves      int `yaml:"moves" json:"moves"`
}

// Weight is one entry of a rule's weighted draw.
type Weight struct {
	Tier   domain.Difficulty `yaml:"tier"`
	Weight int               `yaml:"weight"`
}

// Promotion upgrades a drawn tier when an extra draw exceeds Threshold.
type Promotion struct {
	From      domain.Difficulty `yaml:"from"`
	To        domain.Difficulty `yaml:"to"`
	Threshold float64           `yaml:"threshold"`
}

// Rule covers levels MinLevel..MaxLevel inclusive. MaxLevel 0 means unbounded.
type Rule struct {
	MinLevel  int        `yaml:"min_level"`
	MaxLevel  int        `yaml:"max_level"`
	Weights   []Weight   `yaml:"weights"`
	Promotion *Promotion `yaml:"promotion,omitempty"`
}

func (r Rule) covers(level int) bool {
	return level >= r.MinLevel && (r.MaxLevel == 0 || level <= r.MaxLevel)
}

// OnRamp overrides color and empty-tube counts for the first levels.
type OnRamp struct {
	MaxLevel    int `yaml:"max_level"`
	ColorOffset int `yaml:"color_offset"`
	MaxColors   int `yaml:"max_colors"`
	EmptyTubes  int `yaml:"empty_tubes"`
}

// Table is the full, immutable difficulty configuration.
type Table struct {
	Rules  []Rule                       `yaml:"rules"`
	Params map[domain.Difficulty]Params `yaml:"params"`
	OnRamp OnRamp                       `yaml:"on_ramp"`
}

// DefaultTable returns the stock progression.
func DefaultTable() Table {
	w := func(e, m, h, vh int) []Weight {
		return []Weight{
			{domain.Easy, e},
			{domain.Medium, m},
			{domain.Hard, h},
			{domain.VeryHard, vh},
		}
	}
	return Table{
		Rules: []Rule{
			{MinLevel: 1, MaxLevel: 10, Weights: w(70, 25, 5, 0)},
			{MinLevel: 11, MaxLevel: 20, Weights: w(40, 40, 20, 0)},
			{MinLevel: 21, MaxLevel: 30, Weights: w(20, 50, 25, 5)},
			{MinLevel: 31, MaxLevel: 40, Weights: w(10, 30, 40, 20)},
			{MinLevel: 41, MaxLevel: 50, Weights: w(0, 20, 45, 35)},
			{MinLevel: 51, Weights: w(0, 10, 30, 60),
				Promotion: &Promotion{From: domain.VeryHard, To: domain.Expert, Threshold: 0.7}},
		},
		Params: map[domain.Difficulty]Params{
			domain.Easy:     {Colors: 3, EmptyTubes: 2, Moves: 20},
			domain.Medium:   {Colors: 4, EmptyTubes: 2, Moves: 25},
			domain.Hard:     {Colors: 5, EmptyTubes: 2, Moves: 30},
			domain.VeryHard: {Colors: 6, EmptyTubes: 2, Moves: 35},
			domain.Expert:   {Colors: 8, EmptyTubes: 2, Moves: 40},
		},
		OnRamp: OnRamp{MaxLevel: 8, ColorOffset: 2, MaxColors: 8, EmptyTubes: 2},
	}
}

var ErrInvalidTable = errors.New("invalid difficulty table")

// Validate checks that every rule can draw a tier and every tier has params.
func (t Table) Validate() error {
	if len(t.Rules) == 0 {
		return fmt.Errorf("%w: no rules", ErrInvalidTable)
	}
	for i, r := range t.Rules {
		if r.MinLevel < 1 || (r.MaxLevel != 0 && r.MaxLevel < r.MinLevel) {
			return fmt.Errorf("%w: rule %d has range %d..%d", ErrInvalidTable, i, r.MinLevel, r.MaxLevel)
		}
		total := 0
		for _, w := range r.Weights {
			if w.Weight < 0 {
				return fmt.Errorf("%w: rule %d has negative weight for %s", ErrInvalidTable, i, w.Tier)
			}
			if _, ok := t.Params[w.Tier]; !ok && w.Weight > 0 {
				return fmt.Errorf("%w: rule %d draws %s which has no params", ErrInvalidTable, i, w.Tier)
			}
			total += w.Weight
		}
		if total == 0 {
			return fmt.Errorf("%w: rule %d has zero total weight", ErrInvalidTable, i)
		}
		if p := r.Promotion; p != nil {
			if _, ok := t.Params[p.To]; !ok {
				return fmt.Errorf("%w: rule %d promotes to %s which has no params", ErrInvalidTable, i, p.To)
			}
		}
	}
	for d, p := range t.Params {
		if p.Colors < 1 || p.EmptyTubes < 0 || p.Moves < 0 {
			return fmt.Errorf("%w: params for %s out of range", ErrInvalidTable, d)
		}
	}
	return nil
}
