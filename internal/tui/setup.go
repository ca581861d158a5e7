package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/theirongolddev/fuelsync/internal/config"
	"github.com/theirongolddev/fuelsync/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the setup wizard.
type SetupValues struct {
	VehicleName string
	GaugeMax    string
	Currency    string
	Days        int
	Theme       string
}

// NewSetupValues prefills the wizard from cfg.
func NewSetupValues(cfg config.Config) SetupValues {
	return SetupValues{
		VehicleName: cfg.Vehicle.Name,
		GaugeMax:    strconv.FormatFloat(cfg.Vehicle.GaugeMaxMileage, 'f', -1, 64),
		Currency:    cfg.Units.Currency,
		Days:        cfg.General.DefaultDays,
		Theme:       cfg.Appearance.Theme,
	}
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	if name := strings.TrimSpace(v.VehicleName); name != "" {
		cfg.Vehicle.Name = name
	}
	if g, err := strconv.ParseFloat(strings.TrimSpace(v.GaugeMax), 64); err == nil && g > 0 {
		cfg.Vehicle.GaugeMaxMileage = g
	}
	if c := strings.TrimSpace(v.Currency); c != "" {
		cfg.Units.Currency = c
	}
	cfg.General.DefaultDays = v.Days
	cfg.Appearance.Theme = v.Theme
}

// NewSetupForm builds the first-run wizard bound to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fuelsync").
				Description("Log fill-ups, track mileage and fuel spend.\nA few settings first."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Vehicle").
				Description("Shown on the dashboard").
				Value(&vals.VehicleName),
			huh.NewInput().
				Title("Gauge full at (mileage)").
				Description("The efficiency gauge reads 100% at this mileage").
				Value(&vals.GaugeMax).
				Validate(func(s string) error {
					if g, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil || g <= 0 {
						return errors.New("enter a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Currency symbol").
				Value(&vals.Currency),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Default time range").
				Options(
					huh.NewOption("All history", 0),
					huh.NewOption("30 days", 30),
					huh.NewOption("90 days", 90),
					huh.NewOption("365 days", 365),
				).
				Value(&vals.Days),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithShowHelp(true)
}
