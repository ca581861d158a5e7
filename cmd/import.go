package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/fuelsync/internal/fuel"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the fill-up log with an exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	res, err := fuel.Decode(data)
	if err != nil {
		return err
	}
	if len(res.BadDates) > 0 {
		return fmt.Errorf("%d entries in %s have unreadable dates (ids %v)", len(res.BadDates), args[0], res.BadDates)
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.repo.Import(cmd.Context(), res.Entries); err != nil {
		s.log.Warn("import rejected", "file", args[0], "error", err)
		return saved(err)
	}
	note("Imported %d fill-ups from %s", s.repo.Len(), args[0])
	return nil
}
