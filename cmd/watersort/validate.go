package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	validateCmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check level JSON files (use - for stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidate,
	}
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	uc, closeStore, err := newService(false)
	if err != nil {
		return err
	}
	defer closeStore()

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		level, err := readLevel(path)
		if err != nil {
			return err
		}
		res, err := uc.Validate(cmd.Context(), level)
		if err != nil {
			return err
		}
		if res.IsValid {
			fmt.Fprintf(out, "%s: ok\n", path)
			continue
		}
		failed++
		for _, e := range res.Errors {
			fmt.Fprintf(out, "%s: %s\n", path, e)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d invalid level(s)", failed)
	}
	return nil
}
