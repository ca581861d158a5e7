package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/fuel"
	"github.com/theirongolddev/fuelsync/internal/pipeline"
	"github.com/theirongolddev/fuelsync/internal/store"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Fuel spend, distance and mileage summary",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	result := s.load()
	if result.TotalEntries == 0 {
		fmt.Println("\n  No fill-ups logged yet.")
		fmt.Println("  Add one with `fuelsync add -i`.")
		return nil
	}

	stats := result.Aggregates
	if stats.TotalEntries == 0 {
		fmt.Println("\n  No fill-ups in the selected time range.")
		return nil
	}

	u := s.units
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", s.cfg.Vehicle.Name, s.windowLabel())))
	fmt.Println()

	lastMileage := u.Mileage(stats.LastMileage)
	if stats.LastMileage > 0 && stats.AverageMileage > 0 {
		lastMileage += fmt.Sprintf("  (%s vs avg)", cli.FormatDelta(stats.LastMileage, stats.AverageMileage))
	}

	rows := [][]string{
		{"Fill-ups", cli.FormatNumber(int64(stats.TotalEntries))},
		{"Period", fmt.Sprintf("%s to %s", cli.FormatDate(stats.FirstDate), cli.FormatDate(stats.LastDate))},
		{"---"},
		{"Total Fuel Cost", u.Cost(stats.TotalFuelCost)},
		{"Fuel Used", u.Volume(stats.TotalFuelUsed)},
		{"Distance", u.Distance(stats.TotalDistance)},
		{"---"},
		{"Average Mileage", u.Mileage(stats.AverageMileage)},
		{"Last Mileage", lastMileage},
		{"Cost/" + u.DistanceUnit, u.PerDistance(stats.CostPerDistance)},
		{"Average Price", u.Price(stats.AveragePrice)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	fmt.Println()
	level := pipeline.GaugeLevel(stats.AverageMileage, s.cfg.Vehicle.GaugeMaxMileage)
	fmt.Println(cli.RenderLabel("Efficiency", cli.RenderGauge(level, 30)))
	if stats.LastMileage > 0 {
		fmt.Println(cli.RenderLabel("Latest fill-up", cli.RenderComparison(stats.LatestAboveAverage)))
	}
	if result.HasLast {
		fmt.Println(cli.RenderLabel("Last logged", cli.FormatRelative(result.Last.Date, time.Now())))
	}
	if at, ok := lastSaved(cmd.Context(), s.kv); ok {
		fmt.Println(cli.RenderLabel("Last saved", cli.FormatRelative(at, time.Now())))
	}
	if result.Undated > 0 {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("%d entries have unreadable dates", result.Undated)))
	}
	fmt.Println()

	return nil
}

// lastSaved reports when the entry log was last written to the database.
func lastSaved(ctx context.Context, kv *store.KV) (time.Time, bool) {
	at, err := kv.UpdatedAt(ctx, fuel.DefaultKey)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}
