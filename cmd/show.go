package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/fuel"
	"github.com/theirongolddev/fuelsync/internal/model"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one fill-up",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	e, ok := s.repo.Get(id)
	if !ok {
		return fmt.Errorf("entry %d: %w", id, fuel.ErrNotFound)
	}

	fmt.Println()
	printEntry(s.units, e)
	fmt.Println()
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", arg)
	}
	return id, nil
}

func printEntry(u cli.Units, e model.FuelEntry) {
	day := ""
	if !e.Date.IsZero() {
		day = "  " + e.Date.Weekday().String()
	}
	fmt.Println(cli.RenderLabel("Entry", fmt.Sprintf("#%d", e.ID)))
	fmt.Println(cli.RenderLabel("Date", cli.FormatDate(e.Date)+day))
	fmt.Println(cli.RenderLabel("Odometer", cli.FormatOdometer(e.OdometerReading)+" "+u.DistanceUnit))
	fmt.Println(cli.RenderLabel("Fuel", u.Volume(e.FuelQuantity)))
	fmt.Println(cli.RenderLabel("Price", u.Price(e.PricePerLiter)))
	fmt.Println(cli.RenderLabel("Total Cost", u.Cost(e.TotalCost)))
	if e.TripDistance > 0 {
		fmt.Println(cli.RenderLabel("Trip", u.Distance(e.TripDistance)))
	}
	fmt.Println(cli.RenderLabel("Mileage", u.Mileage(e.Mileage)))
}
