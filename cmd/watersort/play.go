package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"svw.info/watersort/internal/game"
	"svw.info/watersort/internal/ports"
)

var (
	playLevel int
	playLimit int
)

func init() {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Autoplay a level by following hints",
		RunE:  runPlay,
	}
	playCmd.Flags().IntVarP(&playLevel, "level", "l", 1, "Level number")
	playCmd.Flags().IntVar(&playLimit, "limit", 200, "Maximum moves before giving up")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	uc, closeStore, err := newService(false)
	if err != nil {
		return err
	}
	defer closeStore()

	// Autoplay ignores the configured hint allowance.
	uc.HintLimit = 0
	sess, err := uc.NewSession(cmd.Context(), ports.LevelRequest{LevelNumber: playLevel})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, sess.Level().Description)
	printTubes(out, sess.Tubes())

	won, err := sess.Autoplay(playLimit, func(r game.Result) {
		fmt.Fprintf(out, "%3d. #%d -> #%d (%d)\n", sess.Moves(), r.Move.From, r.Move.To, r.Count)
	})
	if err != nil {
		return err
	}
	printTubes(out, sess.Tubes())
	logger.Info("autoplay finished",
		zap.Int("level", playLevel),
		zap.Bool("won", won),
		zap.Int("moves", sess.Moves()),
		zap.Int("budget", sess.Level().Moves))
	if won {
		fmt.Fprintf(out, "solved in %d moves (budget %d)\n", sess.Moves(), sess.Level().Moves)
	} else {
		fmt.Fprintf(out, "not solved after %d moves\n", sess.Moves())
	}
	return nil
}
