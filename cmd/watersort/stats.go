package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/ports"
)

var (
	statsLevel int
	statsFile  string
	statsJSON  bool
)

func init() {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show tube counts, color distribution and difficulty score",
		RunE:  runStats,
	}
	statsCmd.Flags().IntVarP(&statsLevel, "level", "l", 1, "Level number to generate")
	statsCmd.Flags().StringVarP(&statsFile, "file", "f", "", "Read the level from a JSON file instead")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	uc, closeStore, err := newService(false)
	if err != nil {
		return err
	}
	defer closeStore()

	var level *domain.LevelConfig
	if statsFile != "" {
		if level, err = readLevel(statsFile); err != nil {
			return err
		}
	} else {
		gen, _, err := uc.Generate(cmd.Context(), ports.LevelRequest{LevelNumber: statsLevel})
		if err != nil {
			return err
		}
		level = &gen.Level
	}

	st := uc.Stats(level)
	out := cmd.OutOrStdout()
	if statsJSON {
		return json.NewEncoder(out).Encode(st)
	}
	fmt.Fprintf(out, "level %d (%s)\n", level.LevelNumber, level.Difficulty)
	fmt.Fprintf(out, "  tubes=%d filled=%d empty=%d score=%d\n", st.TotalTubes, st.FilledTubes, st.EmptyTubes, st.DifficultyScore)
	colors := make([]string, 0, len(st.ColorDistribution))
	for c := range st.ColorDistribution {
		colors = append(colors, string(c))
	}
	sort.Strings(colors)
	for _, c := range colors {
		fmt.Fprintf(out, "  %-10s %d\n", c, st.ColorDistribution[domain.Color(c)])
	}
	return nil
}
