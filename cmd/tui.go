package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/fuelsync/internal/config"
	"github.com/theirongolddev/fuelsync/internal/tui"
	"github.com/theirongolddev/fuelsync/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Long:  "Dashboard, entry list and weekly trend with add, edit and delete.",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// The alternate screen owns the terminal, so logs go to a file.
	logFile, err := openTUILog()
	if err == nil {
		defer logFile.Close()
		logOutput = logFile
	}
	flagQuiet = true

	s, err := openSession(context.Background())
	if err != nil {
		return err
	}
	defer s.Close()

	theme.SetActive(s.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	tuiLog := s.log.WithComponent("tui")
	tuiLog.Info("dashboard started", "entries", s.repo.Len(), "days", s.days())

	app := tui.NewApp(s.repo, s.cfg, s.units, s.days())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		tuiLog.Error("dashboard exited", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

func openTUILog() (*os.File, error) {
	dir := config.DataDir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
