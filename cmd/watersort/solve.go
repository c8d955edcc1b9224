package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/ports"
)

var (
	solveLevel int
	solveFile  string
	solveJSON  bool
)

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Search a full winning move sequence for a level",
		RunE:  runSolve,
	}
	solveCmd.Flags().IntVarP(&solveLevel, "level", "l", 1, "Level number to generate")
	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "Read the level from a JSON file instead")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "Print moves as JSON")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	uc, closeStore, err := newService(false)
	if err != nil {
		return err
	}
	defer closeStore()

	var level *domain.LevelConfig
	if solveFile != "" {
		if level, err = readLevel(solveFile); err != nil {
			return err
		}
	} else {
		gen, _, err := uc.Generate(cmd.Context(), ports.LevelRequest{LevelNumber: solveLevel})
		if err != nil {
			return err
		}
		level = &gen.Level
	}

	ctx := cmd.Context()
	if d, _ := cfg.SolverTimeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	moves, st, err := uc.Solve(ctx, level.Tubes)
	if err != nil {
		return fmt.Errorf("level %d: %w (after %d nodes)", level.LevelNumber, err, st.Nodes)
	}
	logger.Info("solved",
		zap.Int("level", level.LevelNumber),
		zap.Int("moves", len(moves)),
		zap.Int("nodes", st.Nodes),
		zap.Duration("took", st.Duration))

	out := cmd.OutOrStdout()
	if solveJSON {
		return json.NewEncoder(out).Encode(moves)
	}
	for i, m := range moves {
		fmt.Fprintf(out, "%3d. #%d -> #%d\n", i+1, m.From, m.To)
	}
	fmt.Fprintf(out, "%d moves (budget %d)\n", len(moves), level.Moves)
	return nil
}
