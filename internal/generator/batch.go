package generator

import (
	"context"
	"fmt"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/ports"
)

// Batch generates count consecutive levels starting at start, in order.
func (g *LevelGenerator) Batch(ctx context.Context, start, count int) ([]domain.Generation, error) {
	if count < 0 {
		return nil, fmt.Errorf("batch count must not be negative: %d", count)
	}
	out := make([]domain.Generation, 0, count)
	for i := 0; i < count; i++ {
		gen, _, err := g.Generate(ctx, ports.LevelRequest{LevelNumber: start + i})
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", start+i, err)
		}
		out = append(out, gen)
	}
	return out, nil
}
