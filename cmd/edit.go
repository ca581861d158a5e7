package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/fuelsync/internal/fuel"
	"github.com/theirongolddev/fuelsync/internal/model"
	"github.com/theirongolddev/fuelsync/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change a fill-up; unset flags keep their current values",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	registerEntryFlags(editCmd)
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	current, ok := s.repo.Get(id)
	if !ok {
		return fmt.Errorf("entry %d: %w", id, fuel.ErrNotFound)
	}

	var in model.EntryInput
	if flagEntryInteractive {
		vals := tui.NewEntryFormValues(&current)
		if err := tui.NewEntryForm(fmt.Sprintf("Edit #%d", id), &vals, nil, s.units).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("  Cancelled.")
				return nil
			}
			return err
		}
		if in, err = vals.Input(); err != nil {
			return err
		}
	} else {
		if in, err = entryInputFromFlags(cmd, current.Input()); err != nil {
			return err
		}
	}

	updated, err := s.repo.Update(cmd.Context(), id, in)
	if err != nil && !fuel.IsPersistence(err) {
		return err
	}

	fmt.Println()
	printEntry(s.units, updated)
	printSuccessor(s, updated.ID)
	fmt.Println()
	if err := saved(err); err != nil {
		return err
	}
	note("Updated fill-up #%d", id)
	return nil
}
