package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all fill-ups and reinstall the sample data",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	if !flagResetYes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Discard all %d fill-ups?", s.repo.Len())).
			Description("Export first if you want a backup.").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirmed {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	if err := s.repo.Reset(cmd.Context()); err != nil {
		return saved(err)
	}
	note("Reset to %d sample fill-ups", s.repo.Len())
	return nil
}
