package crops

import (
	"fmt"
	"strings"

	"github.com/krishimitra/krishi/internal/cli"
	"github.com/krishimitra/krishi/internal/constants"
	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/models"
	"github.com/krishimitra/krishi/internal/utils"
)

type CropAddCmd struct {
	Crop    string  `arg:"" help:"Crop name, e.g. \"Rice (Paddy)\". See 'krishi crop types'."`
	Planted string  `short:"p" help:"Planting date (YYYY-MM-DD). Defaults to today."`
	Area    float64 `short:"a" help:"Area in acres." required:""`
}

func (c *CropAddCmd) Validate() error {
	if !utils.ValidArea(c.Area) {
		return fmt.Errorf("area must be a positive number of acres")
	}
	return nil
}

func (c *CropAddCmd) Run(ctx *cli.Context) error {
	if ctx.User == "" {
		return cli.ErrNoUser
	}

	planted := ctx.Today()
	if c.Planted != "" {
		d, err := utils.ParseDate(c.Planted)
		if err != nil {
			return err
		}
		planted = d
	}

	holding, err := ctx.Farm.AddCrop(ctx.User, c.Crop, planted, c.Area)
	if err != nil {
		return fmt.Errorf("failed to add crop: %w", err)
	}

	cal := ctx.Projector.Project(holding.Name, planted)
	fmt.Printf("✓ Added %s planted %s on %.2f acres\n", holding.Name, holding.PlantingDate, holding.AreaAcres)
	if !ctx.Catalog.Has(holding.Name) {
		fmt.Printf("  ⚠ %q is not in the crop catalog; using the %s schedule\n", holding.Name, ctx.Catalog.DefaultKey())
	}
	fmt.Printf("  Expected harvest: %s\n", utils.FormatDate(cal.HarvestDate))
	return nil
}

type CropListCmd struct{}

func (c *CropListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	if len(user.Crops) == 0 {
		fmt.Println("No crops recorded")
		return nil
	}

	fmt.Println("Crops:")
	for i, st := range ctx.Scheduler.Overview(user, ctx.Today()) {
		fmt.Printf("  %d. %s - %.2f acres, planted %s (day %d)\n",
			i+1, st.Holding.Name, st.Holding.AreaAcres, st.Holding.PlantingDate, st.DaysSince)
		if st.Harvested {
			fmt.Printf("      Stage: %s (harvest was %s)\n", st.CurrentStage, utils.FormatDate(st.Calendar.HarvestDate))
		} else {
			fmt.Printf("      Stage: %s, harvest in %d days (%s)\n", st.CurrentStage, st.DaysToHarvest, utils.FormatDate(st.Calendar.HarvestDate))
		}
	}
	return nil
}

type CropCalendarCmd struct {
	Index   int    `arg:"" optional:"" help:"Crop number from 'krishi crop list'."`
	Crop    string `help:"Project a crop that is not recorded yet."`
	Planted string `help:"Planting date for --crop (YYYY-MM-DD). Defaults to today."`
}

func (c *CropCalendarCmd) Run(ctx *cli.Context) error {
	cal, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	PrintCalendar(cal)
	return nil
}

func (c *CropCalendarCmd) resolve(ctx *cli.Context) (models.CropCalendar, error) {
	if c.Crop != "" {
		return ctx.Projector.ProjectString(c.Crop, c.Planted)
	}

	user, err := ctx.CurrentUser()
	if err != nil {
		return models.CropCalendar{}, err
	}
	if c.Index < 1 || c.Index > len(user.Crops) {
		return models.CropCalendar{}, apperrors.InvalidArgumentf("crop number must be between 1 and %d", len(user.Crops))
	}
	holding := user.Crops[c.Index-1]
	return ctx.Projector.ProjectString(holding.Name, holding.PlantingDate)
}

// PrintCalendar writes a crop calendar to stdout.
func PrintCalendar(cal models.CropCalendar) {
	fmt.Printf("%s: planted %s, harvest %s (%d days)\n\n",
		cal.Crop, utils.FormatDate(cal.PlantingDate), utils.FormatDate(cal.HarvestDate), cal.TotalDurationDays)

	fmt.Println("Stages:")
	for _, s := range cal.Timeline {
		fmt.Printf("  %s → %s  %-24s %3dd  %s\n",
			utils.FormatDate(s.StartDate), utils.FormatDate(s.EndDate), s.Stage, s.DurationDays, strings.Join(s.Activities, ", "))
	}

	if len(cal.FertilizerSchedule) > 0 {
		fmt.Println("\nFertilizer:")
		for _, f := range cal.FertilizerSchedule {
			fmt.Printf("  %s  %s (%s)\n", utils.FormatDate(f.Date), f.Fertilizer, f.Stage)
		}
	}

	if cal.HarvestMismatch() {
		fmt.Println("\n⚠ Stage durations do not add up to the crop duration; the last stage ends on a different day than harvest.")
	}
}

type CropTypesCmd struct{}

func (c *CropTypesCmd) Run(ctx *cli.Context) error {
	fmt.Println("Crops with a schedule:")
	for _, key := range ctx.Catalog.Keys() {
		def := ctx.Catalog.Lookup(key)
		marker := ""
		if key == ctx.Catalog.DefaultKey() {
			marker = " (default)"
		}
		fmt.Printf("  %-16s %4d days, %d stages, %d fertilizer applications%s\n",
			key, def.DurationDays, len(def.Stages), len(def.Fertilizer), marker)
	}
	fmt.Printf("\nOther crop names are recorded as given and scheduled like %s.\n", constants.DefaultCropKey)
	return nil
}
