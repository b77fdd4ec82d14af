package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tenure/internal/driver"
	"tenure/internal/report"
	"tenure/internal/trendfit"
)

var trendCmd = &cobra.Command{
	Use:   "trend [flags] [input]",
	Short: "Fit a linear trend to the annual reappointment proportions",
	Long:  `Trend prints the government-wide annual proportion series and the least-squares line fitted through it, with slope, R-squared and a two-sided p-value`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTrend,
}

func init() {
	trendCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type trendPayload struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r_squared"`
	PValue    float64 `json:"p_value"`
	Years     int     `json:"years"`
}

func runTrend(cmd *cobra.Command, args []string) error {
	s, err := collectPipelineSettings(cmd, args)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	res, err := driver.Run(cmd.Context(), s.input, s.opts)
	if err != nil {
		return err
	}
	fit, err := trendfit.Linear(res.Annual)
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		if err := report.WriteAnnualProportions(os.Stdout, res.Annual); err != nil {
			return fmt.Errorf("failed to write annual proportions: %w", err)
		}
		fmt.Fprintf(os.Stdout, "\ntrend over %d years with appointments\n", fit.N)
		fmt.Fprintf(os.Stdout, "  slope:     %+.6f per year\n", fit.Slope)
		fmt.Fprintf(os.Stdout, "  intercept: %.6f\n", fit.Intercept)
		fmt.Fprintf(os.Stdout, "  r-squared: %.4f\n", fit.R2)
		fmt.Fprintf(os.Stdout, "  p-value:   %.4f\n", fit.PValue)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(trendPayload{
			Slope:     fit.Slope,
			Intercept: fit.Intercept,
			R2:        fit.R2,
			PValue:    fit.PValue,
			Years:     fit.N,
		}); err != nil {
			return fmt.Errorf("failed to encode trend: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if s.timings {
		fmt.Fprint(os.Stderr, res.Timing.Summary())
	}
	return nil
}
