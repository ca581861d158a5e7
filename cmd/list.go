package cmd

import (
	"fmt"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/model"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Fill-ups, newest first",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	result := s.load()
	if len(result.Entries) == 0 {
		fmt.Println("\n  No fill-ups in the selected time range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FILL-UPS  %s", s.windowLabel())))
	fmt.Println()

	rows := make([][]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		rows = append(rows, entryRow(s.units, e))
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"ID", "Date", "Day", "Odometer", "Fuel", "Price", "Cost", "Trip", "Mileage"},
		Rows:     rows,
		LeftCols: 3,
	}))
	return nil
}

func entryRow(u cli.Units, e model.FuelEntry) []string {
	trip := ""
	if e.TripDistance > 0 {
		trip = u.Distance(e.TripDistance)
	}
	day := ""
	if !e.Date.IsZero() {
		day = cli.FormatDayOfWeek(int(e.Date.Weekday()))
	}
	return []string{
		fmt.Sprintf("%d", e.ID),
		cli.FormatDate(e.Date),
		day,
		cli.FormatOdometer(e.OdometerReading),
		u.Volume(e.FuelQuantity),
		u.Price(e.PricePerLiter),
		u.Cost(e.TotalCost),
		trip,
		u.Mileage(e.Mileage),
	}
}
