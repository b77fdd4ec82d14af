package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tenure/internal/driver"
	"tenure/internal/report"
)

var ratesCmd = &cobra.Command{
	Use:   "rates [flags] [input]",
	Short: "Show the dense organization-by-year rate grid",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().String("output", "", "write the grid to a file instead of stdout")
	ratesCmd.Flags().Bool("pivot", false, "render a text pivot instead of CSV")
	ratesCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	ratesCmd.Flags().Bool("show-info", false, "include info-level diagnostics in output")
	ratesCmd.Flags().Int("jobs", 0, "max parallel workers for the rate grid (0=auto)")
}

func runRates(cmd *cobra.Command, args []string) error {
	s, err := collectPipelineSettings(cmd, args)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	pivot, err := cmd.Flags().GetBool("pivot")
	if err != nil {
		return fmt.Errorf("failed to get pivot flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showInfo, err := cmd.Flags().GetBool("show-info")
	if err != nil {
		return fmt.Errorf("failed to get show-info flag: %w", err)
	}
	s.opts.Jobs, err = cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	res, err := driver.Run(cmd.Context(), s.input, s.opts)
	if err != nil {
		return err
	}

	render := func(f *os.File) error {
		if pivot {
			report.Pivot(f, res.Grid)
			return nil
		}
		return report.WriteOrgYearRates(f, res.Grid)
	}
	if output != "" {
		if err := writeCSVFile(output, render); err != nil {
			return err
		}
	} else if err := render(os.Stdout); err != nil {
		return fmt.Errorf("failed to write rate grid: %w", err)
	}

	if err := printDiagnostics(res, s, format, showInfo); err != nil {
		return err
	}
	if s.timings {
		fmt.Fprint(os.Stderr, res.Timing.Summary())
	}
	if res.Bag.HasErrors() {
		return silentExit(cmd)
	}
	return nil
}
