package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write the fill-up log as JSON (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := s.repo.Export()
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}

	if len(args) == 0 {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	if err := os.WriteFile(args[0], data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	note("Exported %d fill-ups to %s", s.repo.Len(), args[0])
	return nil
}
