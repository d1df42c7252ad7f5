package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"journey-planner-service/internal/adapters/flight"
	"journey-planner-service/internal/adapters/providers"
	"journey-planner-service/internal/adapters/tz"
	"journey-planner-service/internal/config"
	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/ports"
	"journey-planner-service/internal/services"
)

// journeyctl plans a journey from the command line using the same engine as
// the HTTP server. Handy for trying providers without standing up the API.
func main() {
	// A .env file is optional for the CLI.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "journeyctl",
		Short:         "Plan multi-stop journeys from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPlanCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type planFlags struct {
	configPath string
	from       string
	flightCode string
	to         string
	stops      []string
	buffers    []int
	provider   string
	tzMode     string
}

func newPlanCmd() *cobra.Command {
	flags := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Geocode, route and schedule a journey",
		Example: `  journeyctl plan --from "Union Station, Denver" --stop "REI, Denver" --to "Boulder, CO"
  journeyctl plan --flight UA123 --stop "In-N-Out, Daly City" --buffer 20 --to "San Jose, CA"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to config file")
	cmd.Flags().StringVar(&flags.from, "from", "", "start address")
	cmd.Flags().StringVar(&flags.flightCode, "flight", "", "arriving flight IATA code (alternative to --from)")
	cmd.Flags().StringVar(&flags.to, "to", "", "final destination address")
	cmd.Flags().StringArrayVar(&flags.stops, "stop", nil, "intermediate stop address (repeatable, visited in order)")
	cmd.Flags().IntSliceVar(&flags.buffers, "buffer", nil, "minutes spent at the matching --stop (repeatable)")
	cmd.Flags().StringVar(&flags.provider, "provider", "", "routing provider: google, mapbox or osrm")
	cmd.Flags().StringVar(&flags.tzMode, "tz-mode", "", "display timezone: origin or destination")

	return cmd
}

func runPlan(cmd *cobra.Command, flags *planFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	providerName := flags.provider
	if providerName == "" {
		providerName = cfg.Planning.DefaultProvider
	}
	provider, err := buildProvider(cfg, providerName)
	if err != nil {
		return err
	}

	mode := domain.StartFromAddress
	if flags.flightCode != "" {
		mode = domain.StartFromFlight
	}

	var flights ports.FlightLookup
	if mode == domain.StartFromFlight {
		flights, err = flight.NewAviationStack(cfg.Providers.AviationStackKey)
		if err != nil {
			return err
		}
	}

	timezones, err := tz.NewLocator()
	if err != nil {
		return err
	}

	stops := make([]services.StopRequest, 0, len(flags.stops))
	for i, addr := range flags.stops {
		buffer := 0
		if i < len(flags.buffers) {
			buffer = flags.buffers[i]
		}
		stops = append(stops, services.StopRequest{Address: addr, BufferMinutes: buffer})
	}

	tzMode := cfg.Planning.DefaultTimezoneMode
	if flags.tzMode != "" {
		tzMode = flags.tzMode
	}

	planner := &services.Planner{
		Provider:             provider,
		Flights:              flights,
		Timezones:            timezones,
		AirportBufferMinutes: cfg.Planning.AirportBufferMinutes,
	}

	itinerary, err := planner.Plan(cmd.Context(), services.PlanRequest{
		StartMode:    mode,
		StartAddress: flags.from,
		FlightCode:   flags.flightCode,
		Stops:        stops,
		Destination:  flags.to,
		TimezoneMode: domain.TimezoneMode(tzMode),
	})
	if err != nil {
		return err
	}

	printItinerary(cmd, itinerary, domain.TimezoneMode(tzMode))
	return nil
}

func buildProvider(cfg *config.Config, name string) (ports.RouteProvider, error) {
	switch name {
	case "osrm":
		return providers.NewOSRM(cfg.Providers.OSRMBaseURL, cfg.Providers.NominatimBaseURL), nil
	case "google":
		return providers.NewGoogle(cfg.Providers.GoogleAPIKey)
	case "mapbox":
		return providers.NewMapbox(cfg.Providers.MapboxToken)
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}

func printItinerary(cmd *cobra.Command, it *domain.Itinerary, mode domain.TimezoneMode) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Route: %d min, %.1f km\n",
		it.Route.TotalDurationMinutes, float64(it.Route.TotalDistanceMeters)/1000)
	fmt.Fprintf(out, "Times shown in %s\n\n", it.DisplayTimezone(mode))

	fmt.Fprintln(out, "Timeline (as entered):")
	printTimeline(out, it.Timeline, it.DisplayTimezone(mode))

	if it.Optimization != nil {
		fmt.Fprintf(out, "\nSuggested stop order: %s\n", strings.Join(it.Optimization.Labels, " -> "))
		if it.OptimizedRoute != nil {
			fmt.Fprintf(out, "Optimized route: %d min, %.1f km\n",
				it.OptimizedRoute.TotalDurationMinutes, float64(it.OptimizedRoute.TotalDistanceMeters)/1000)
		}
		fmt.Fprintln(out, "\nTimeline (optimized):")
		printTimeline(out, it.OptimizedTimeline, it.DisplayTimezone(mode))
	}
}

func printTimeline(out io.Writer, events []domain.TimelineEvent, zone string) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = nil
	}
	for _, e := range events {
		t := e.Time
		if loc != nil {
			t = t.In(loc)
		}
		line := fmt.Sprintf("  %s  %s", t.Format("15:04"), e.Label)
		if e.Detail != "" {
			line += "  (" + e.Detail + ")"
		}
		fmt.Fprintln(out, line)
	}
}
