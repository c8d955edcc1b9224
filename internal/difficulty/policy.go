// Package difficulty maps level numbers to tiers and tier parameters.
package difficulty

import (
	"fmt"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/rng"
)

// Policy classifies levels against an injected Table.
type Policy struct {
	table Table
}

// NewPolicy validates table and returns a policy over it.
func NewPolicy(table Table) (*Policy, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Policy{table: table}, nil
}

// DefaultPolicy uses DefaultTable.
func DefaultPolicy() *Policy {
	return &Policy{table: DefaultTable()}
}

// Table returns the table the policy was built from.
func (p *Policy) Table() Table { return p.table }

// Classify draws the tier for a level. The draw is seeded with the level
// number, so a level always lands on the same tier.
func (p *Policy) Classify(level int) domain.Difficulty {
	rule, ok := p.ruleFor(level)
	if !ok {
		return domain.Easy
	}
	r := rng.New(int64(level))
	tier := draw(r, rule.Weights)
	if pr := rule.Promotion; pr != nil && tier == pr.From && r.Next() > pr.Threshold {
		tier = pr.To
	}
	return tier
}

// Params returns the table entry for tier.
func (p *Policy) Params(tier domain.Difficulty) (Params, error) {
	params, ok := p.table.Params[tier]
	if !ok {
		return Params{}, fmt.Errorf("no params for difficulty %s", tier)
	}
	return params, nil
}

// Resolve classifies level and applies the early-level on-ramp to its params.
func (p *Policy) Resolve(level int) (domain.Difficulty, Params, error) {
	tier := p.Classify(level)
	params, err := p.Params(tier)
	if err != nil {
		return tier, Params{}, err
	}
	if ramp := p.table.OnRamp; level <= ramp.MaxLevel {
		params.Colors = min(level+ramp.ColorOffset, ramp.MaxColors)
		params.EmptyTubes = ramp.EmptyTubes
	}
	return tier, params, nil
}

func (p *Policy) ruleFor(level int) (Rule, bool) {
	for _, r := range p.table.Rules {
		if r.covers(level) {
			return r, true
		}
	}
	return Rule{}, false
}

func draw(r *rng.Seeded, weights []Weight) domain.Difficulty {
	total := 0
	for _, w := range weights {
		total += w.Weight
	}
	roll := r.Next() * float64(total)
	cumulative := 0
	var last domain.Difficulty
	for _, w := range weights {
		if w.Weight <= 0 {
			continue
		}
		cumulative += w.Weight
		last = w.Tier
		if roll < float64(cumulative) {
			return w.Tier
		}
	}
	return last
}
