package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tourplan/internal/app"
	"tourplan/internal/config"
	"tourplan/internal/modules/itinerary"
	"tourplan/internal/types"
)

func init() {
	RootCmd.AddCommand(newPlanCmd())
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate, resolve and price an itinerary",
		RunE:  runPlan,
	}

	cmd.Flags().StringArrayP("attraction", "a", nil, "Attraction to include (repeatable, required)")
	cmd.Flags().String("start", "", "Start date YYYY-MM-DD (required)")
	cmd.Flags().String("end", "", "End date YYYY-MM-DD (required)")
	cmd.Flags().Int("adults", 1, "Number of adults")
	cmd.Flags().Int("children", 0, "Number of children")
	cmd.Flags().Int("infants", 0, "Number of infants")
	cmd.Flags().Int("seniors", 0, "Number of seniors")
	cmd.Flags().Bool("bypass-timeout", false, "Do not bound individual completion calls")
	cmd.Flags().Bool("skip-catalog", false, "Print the plan without resolving catalog prices")

	cmd.MarkFlagRequired("attraction")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func tripFromFlags(cmd *cobra.Command) (itinerary.TripRequest, error) {
	attractions, _ := cmd.Flags().GetStringArray("attraction")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	adults, _ := cmd.Flags().GetInt("adults")
	children, _ := cmd.Flags().GetInt("children")
	infants, _ := cmd.Flags().GetInt("infants")
	seniors, _ := cmd.Flags().GetInt("seniors")

	start, err := types.ParseDate(startStr)
	if err != nil {
		return itinerary.TripRequest{}, fmt.Errorf("--start: %w", err)
	}
	end, err := types.ParseDate(endStr)
	if err != nil {
		return itinerary.TripRequest{}, fmt.Errorf("--end: %w", err)
	}
	trip := itinerary.TripRequest{
		Attractions: attractions,
		StartDate:   start,
		EndDate:     end,
		Travelers:   itinerary.Travelers{Adults: adults, Children: children, Infants: infants, Seniors: seniors},
	}
	return trip, trip.Validate()
}

func runPlan(cmd *cobra.Command, _ []string) error {
	trip, err := tripFromFlags(cmd)
	if err != nil {
		return err
	}
	bypass, _ := cmd.Flags().GetBool("bypass-timeout")
	skipCatalog, _ := cmd.Flags().GetBool("skip-catalog")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// A CLI run keeps its session in memory and does not write the interaction log.
	cfg.DB.DSN = ""
	cfg.Redis.Addr = ""

	ctx := cmd.Context()
	deps, err := app.InitDependencies(ctx, cfg, newLogger())
	if err != nil {
		return err
	}
	defer deps.Close()

	sess, err := deps.Planner.NewSession(ctx, trip)
	if err != nil {
		return err
	}
	sess, err = deps.Planner.GenerateItinerary(ctx, sess.ID, bypass)
	if err != nil {
		return err
	}
	if !sess.Result.Success {
		fmt.Fprintln(cmd.ErrOrStderr(), sess.Result.RawText)
		return errors.New(sess.Result.Error)
	}
	if sess.Result.Fallback {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", itinerary.FallbackRawText)
	}

	if !skipCatalog {
		if _, err := deps.Planner.ResolveCatalog(ctx, sess.ID); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: catalog unavailable:", err)
		}
	}

	plan, err := deps.Planner.BuildPlan(ctx, sess.ID)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), plan)
}
