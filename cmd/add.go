package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/fuel"
	"github.com/theirongolddev/fuelsync/internal/model"
	"github.com/theirongolddev/fuelsync/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagEntryDate        string
	flagEntryOdometer    float64
	flagEntryFuel        float64
	flagEntryPrice       float64
	flagEntryInteractive bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a fill-up",
	Example: `  fuelsync add --odometer 13990 --fuel 4.8 --price 102.9
  fuelsync add -i`,
	RunE: runAdd,
}

func init() {
	registerEntryFlags(addCmd)
	rootCmd.AddCommand(addCmd)
}

func registerEntryFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagEntryDate, "date", "", "Fill-up date, YYYY-MM-DD (default today)")
	c.Flags().Float64Var(&flagEntryOdometer, "odometer", 0, "Odometer reading")
	c.Flags().Float64Var(&flagEntryFuel, "fuel", 0, "Fuel added")
	c.Flags().Float64Var(&flagEntryPrice, "price", 0, "Price per unit of fuel")
	c.Flags().BoolVarP(&flagEntryInteractive, "interactive", "i", false, "Fill in a form")
}

func runAdd(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	var last *model.FuelEntry
	if e, ok := s.repo.LastEntry(); ok {
		last = &e
	}

	var in model.EntryInput
	if flagEntryInteractive {
		vals := tui.NewEntryFormValues(nil)
		if err := tui.NewEntryForm("New fill-up", &vals, last, s.units).Run(); err != nil {
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
		base := model.EntryInput{Date: time.Now()}
		if in, err = entryInputFromFlags(cmd, base); err != nil {
			return err
		}
	}

	created, err := s.repo.Create(cmd.Context(), in)
	if err != nil && !fuel.IsPersistence(err) {
		return err
	}

	fmt.Println()
	printEntry(s.units, created)
	printSuccessor(s, created.ID)
	fmt.Println()
	if err := saved(err); err != nil {
		return err
	}
	note("Saved fill-up #%d", created.ID)
	return nil
}

// entryInputFromFlags overlays the flags that were set onto base.
func entryInputFromFlags(cmd *cobra.Command, base model.EntryInput) (model.EntryInput, error) {
	in := base
	flags := cmd.Flags()
	if flags.Changed("date") {
		d, err := time.Parse("2006-01-02", flagEntryDate)
		if err != nil {
			return in, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", flagEntryDate)
		}
		in.Date = d
	}
	if flags.Changed("odometer") {
		in.OdometerReading = flagEntryOdometer
	}
	if flags.Changed("fuel") {
		in.FuelQuantity = flagEntryFuel
	}
	if flags.Changed("price") {
		in.PricePerLiter = flagEntryPrice
	}
	return in, nil
}

// printSuccessor shows the entry that follows id in date order, whose
// trip and mileage depend on it.
func printSuccessor(s *session, id int) {
	asc := s.repo.Chronological()
	for i, e := range asc {
		if e.ID == id && i+1 < len(asc) {
			next := asc[i+1]
			fmt.Println(cli.RenderLabel("Next fill-up",
				fmt.Sprintf("#%d now %s, %s", next.ID, s.units.Distance(next.TripDistance), s.units.Mileage(next.Mileage))))
			return
		}
	}
}
