// README: Command-line client; validates a travel request and runs all provider pipelines in-process.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tripbrief/internal/app"
	"tripbrief/internal/config"
	"tripbrief/internal/infra"
	"tripbrief/internal/modules/tripbrief"
)

var summaryFlag bool

var rootCmd = &cobra.Command{
	Use:   "tripbrief",
	Short: "Compare trip briefs from three AI providers",
	Long: `tripbrief sends one travel request to Anthropic, OpenAI and Gemini at the same
time and prints the three resulting trip briefs with latency and token metrics.

Examples:
  tripbrief validate "Kyoto with my family of 4, kids ages 8 and 11"
  tripbrief plan "Planning a trip to Kyoto with my family of 4, 2 adults and 2 kids ages 8 and 11"
  tripbrief plan --summary "Solo trip to Lisbon, I am 30 years old"`,
	SilenceUsage: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate <request>",
	Short: "Check a request for destination, traveler count and ages",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tripbrief.Validate(strings.Join(args, " ")); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "valid")
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <request>",
	Short: "Generate trip briefs from all providers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().BoolVarP(&summaryFlag, "summary", "s", false, "Print a compact text summary instead of JSON")
	rootCmd.AddCommand(validateCmd, planCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var verr *tripbrief.ValidationError
		if errors.As(err, &verr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Logs go to stderr so stdout stays machine-readable.
	logger, err := infra.NewLogger(cfg.Log.Level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.Warn("image cache unavailable", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	images := app.NewImageService(cfg, rdb, logger)
	planner, err := app.NewPlanner(cfg, app.InProcessGenerators(images), logger, nil)
	if err != nil {
		return err
	}

	results, err := planner.Plan(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	records := tripbrief.Present(results)
	if summaryFlag {
		printSummary(cmd.OutOrStdout(), records)
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func printSummary(w io.Writer, records []tripbrief.DisplayRecord) {
	for _, r := range records {
		fmt.Fprintf(w, "== %s (%s) ==\n", r.Metrics.ProviderName, r.Metrics.ModelLabel)
		fmt.Fprintf(w, "latency: %dms  tokens in/out: %s/%s\n",
			r.Metrics.LatencyMs, r.Metrics.InputTokens, r.Metrics.OutputTokens)
		if !r.OK {
			fmt.Fprintf(w, "error: %s\n\n", r.Error)
			continue
		}
		fmt.Fprintf(w, "destination: %s\n", r.Destination)
		fmt.Fprintf(w, "best season: %s\n", r.BestSeason)
		for i, a := range r.Attractions {
			fmt.Fprintf(w, "  %2d. %s\n", i+1, a.Name)
		}
		fmt.Fprintln(w)
	}
}
