package cmd

import (
	"fmt"

	"github.com/theirongolddev/fuelsync/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	dbPath := cfg.DBPath()
	if flagDBPath != "" {
		dbPath = flagDBPath + " (--db)"
	}
	fmt.Printf("    Database:     %s\n", dbPath)
	if cfg.General.DefaultDays > 0 {
		fmt.Printf("    Default days: %d\n", cfg.General.DefaultDays)
	} else {
		fmt.Println("    Default days: all history")
	}
	fmt.Println()

	fmt.Println("  [Vehicle]")
	fmt.Printf("    Name:       %s\n", cfg.Vehicle.Name)
	fmt.Printf("    Gauge full: %.1f %s/%s\n", cfg.Vehicle.GaugeMaxMileage, cfg.Units.Distance, cfg.Units.Volume)
	fmt.Println()

	fmt.Println("  [Units]")
	fmt.Printf("    Currency: %s\n", cfg.Units.Currency)
	fmt.Printf("    Distance: %s\n", cfg.Units.Distance)
	fmt.Printf("    Volume:   %s\n", cfg.Units.Volume)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `fuelsync setup` to reconfigure.")
	return nil
}
