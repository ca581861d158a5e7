package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/fuel"
	"github.com/theirongolddev/fuelsync/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagRmYes bool

var rmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete a fill-up",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	rmCmd.Flags().BoolVarP(&flagRmYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	target, ok := s.repo.Get(id)
	if !ok {
		return fmt.Errorf("entry %d: %w", id, fuel.ErrNotFound)
	}

	if !flagRmYes {
		confirmed := false
		if err := tui.NewDeleteConfirm(target, s.units, &confirmed).Run(); err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirmed {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	removed, err := s.repo.Delete(cmd.Context(), id)
	if err != nil && !fuel.IsPersistence(err) {
		return err
	}

	fmt.Printf("\n  Deleted fill-up #%d (%s)\n", removed.ID, cli.FormatDate(removed.Date))
	// The first entry on or after the removed date now measures from a new predecessor.
	for _, e := range s.repo.Chronological() {
		if !e.Date.Before(removed.Date) {
			fmt.Println(cli.RenderLabel("Recomputed",
				fmt.Sprintf("#%d trip %s, %s", e.ID, s.units.Distance(e.TripDistance), s.units.Mileage(e.Mileage))))
			break
		}
	}
	fmt.Println()
	return saved(err)
}
