package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/ports"
)

var (
	genLevel  int
	genCount  int
	genSeed   int64
	genColors []string
	genEmpty  int
	genSave   bool
	genName   string
	genJSON   bool
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate levels",
		Long: `Generate one or more levels.

Examples:
  watersort gen --level 12
  watersort gen -l 1 -n 50 --save --name starter-pack
  watersort gen -l 7 --colors red,blue,gold --empty 1 --seed 99 --json`,
		RunE: runGen,
	}

	genCmd.Flags().IntVarP(&genLevel, "level", "l", 1, "First level number")
	genCmd.Flags().IntVarP(&genCount, "number", "n", 1, "Number of consecutive levels")
	genCmd.Flags().Int64Var(&genSeed, "seed", 0, "Custom seed (single level only)")
	genCmd.Flags().StringSliceVar(&genColors, "colors", nil, "Custom colors (single level only)")
	genCmd.Flags().IntVar(&genEmpty, "empty", -1, "Custom empty tube count (single level only)")
	genCmd.Flags().BoolVar(&genSave, "save", false, "Store generated levels in the configured storage")
	genCmd.Flags().StringVar(&genName, "name", "", "Name recorded with saved levels")
	genCmd.Flags().BoolVar(&genJSON, "json", false, "Print levels as JSON")

	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	uc, closeStore, err := newService(genSave)
	if err != nil {
		return err
	}
	defer closeStore()

	custom := cmd.Flags().Changed("seed") || cmd.Flags().Changed("colors") || cmd.Flags().Changed("empty")
	if custom && genCount != 1 {
		return fmt.Errorf("--seed, --colors and --empty apply to a single level; got -n %d", genCount)
	}

	var levels []domain.Generation
	if custom {
		req := ports.LevelRequest{LevelNumber: genLevel}
		if cmd.Flags().Changed("seed") {
			req.Seed = &genSeed
		}
		if cmd.Flags().Changed("empty") {
			req.CustomEmptyTubes = &genEmpty
		}
		for _, c := range genColors {
			req.CustomColors = append(req.CustomColors, domain.Color(strings.TrimSpace(c)))
		}
		gen, _, err := uc.Generate(cmd.Context(), req)
		if err != nil {
			return err
		}
		levels = append(levels, gen)
	} else {
		levels, err = uc.GenerateBatch(cmd.Context(), genLevel, genCount)
		if err != nil {
			return err
		}
	}

	if genSave {
		for _, gen := range levels {
			saved := &domain.SavedLevel{
				ID:        uuid.NewString(),
				Name:      genName,
				Level:     gen.Level,
				Outcome:   gen.Outcome,
				CreatedAt: time.Now().UnixNano(),
			}
			if err := uc.Save(cmd.Context(), saved); err != nil {
				return fmt.Errorf("save level %d: %w", gen.Level.LevelNumber, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "saved level %d as %s\n", gen.Level.LevelNumber, saved.ID)
		}
	}

	out := cmd.OutOrStdout()
	if genJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if len(levels) == 1 {
			return enc.Encode(levels[0])
		}
		return enc.Encode(levels)
	}
	for _, gen := range levels {
		printGeneration(out, gen)
	}
	return nil
}

func printGeneration(w io.Writer, gen domain.Generation) {
	l := gen.Level
	fmt.Fprintf(w, "%s\n", l.Description)
	fmt.Fprintf(w, "  difficulty=%s moves=%d seed=%d outcome=%s attempts=%d\n",
		l.Difficulty, l.Moves, gen.Seed, gen.Outcome, gen.Attempts)
	printTubes(w, l.Tubes)
}

func printTubes(w io.Writer, tubes []domain.TestTube) {
	for _, t := range tubes {
		names := make([]string, 0, len(t.Liquids))
		for _, s := range t.Liquids {
			names = append(names, string(s.Color))
		}
		fmt.Fprintf(w, "  #%-2d [%s]\n", t.ID, strings.Join(names, " "))
	}
}

func readLevel(path string) (*domain.LevelConfig, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	// Accept either a bare level or a generation/saved wrapper with a "level" key.
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	var wrapped struct {
		Level *domain.LevelConfig `json:"level"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Level != nil {
		return wrapped.Level, nil
	}
	var l domain.LevelConfig
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &l, nil
}
