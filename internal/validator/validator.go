package validator

import (
	"context"
	"fmt"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/pour"
)

// LevelValidator runs the offline structural checks on a level.
type LevelValidator struct{}

func New() *LevelValidator { return &LevelValidator{} }

func (v *LevelValidator) Validate(ctx context.Context, level *domain.LevelConfig) (domain.ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ValidationResult{}, err
	}
	return Check(level), nil
}

// Check collects every violation instead of stopping at the first one.
func Check(level *domain.LevelConfig) domain.ValidationResult {
	errs := make([]string, 0, 4)
	if level == nil {
		return domain.ValidationResult{IsValid: false, Errors: []string{"level is missing"}}
	}

	allowed := make(map[domain.Color]bool, len(level.Colors))
	for _, c := range level.Colors {
		allowed[c] = true
	}
	ids := make(map[int]int, len(level.Tubes))
	total := 0
	for i, tube := range level.Tubes {
		if prev, dup := ids[tube.ID]; dup {
			errs = append(errs, fmt.Sprintf("Tube %d reuses id %d of tube %d", i, tube.ID, prev))
		} else {
			ids[tube.ID] = i
		}
		if tube.Len() > domain.SegmentCapacity {
			errs = append(errs, fmt.Sprintf("Tube %d has too many liquids (%d)", i, tube.Len()))
		}
		for j, l := range tube.Liquids {
			if !allowed[l.Color] {
				errs = append(errs, fmt.Sprintf("Tube %d, liquid %d has invalid color: %s", i, j, l.Color))
			}
			if l.Height <= 0 || l.Height > 100 {
				errs = append(errs, fmt.Sprintf("Tube %d, liquid %d has invalid height: %d", i, j, l.Height))
			}
		}
		total += tube.Len()
	}

	if !pour.Solvable(level.Tubes) {
		errs = append(errs, "Level is not solvable")
	}
	if want := len(level.Colors) * domain.SegmentCapacity; total != want {
		errs = append(errs, fmt.Sprintf("Expected %d liquids, got %d", want, total))
	}
	return domain.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
