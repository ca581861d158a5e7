package cmd

import (
	"fmt"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/pipeline"

	"github.com/spf13/cobra"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Weekly mileage trend",
	RunE:  runTrend,
}

func init() {
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	points := s.load().Trend
	if len(points) == 0 {
		fmt.Println("\n  Not enough fill-ups for a trend yet.")
		fmt.Println("  Mileage appears from the second fill-up onwards.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WEEKLY MILEAGE  %s", s.windowLabel())))
	fmt.Println()

	values := pipeline.TrendValues(points)
	fmt.Printf("  %s\n\n", cli.RenderSparkline(values))

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	for _, p := range points {
		fmt.Println(cli.RenderHorizontalBar(p.Label, p.Value, peak, 30))
	}
	fmt.Println()

	rows := make([][]string, 0, len(points))
	for i, p := range points {
		delta := ""
		if i > 0 {
			delta = cli.FormatDelta(p.Value, points[i-1].Value)
		}
		rows = append(rows, []string{
			"Week of " + p.Label,
			s.units.Mileage(p.Value),
			cli.FormatNumber(int64(p.Entries)),
			delta,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Week", "Avg Mileage", "Fill-ups", "Change"},
		Rows:    rows,
	}))
	return nil
}
