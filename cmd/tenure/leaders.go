package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tenure/internal/driver"
	"tenure/internal/report"
)

var leadersCmd = &cobra.Command{
	Use:   "leaders [flags] [input]",
	Short: "Show the maximum-rate organization per year",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLeaders,
}

func init() {
	leadersCmd.Flags().String("output", "", "write the table to a file instead of stdout")
	leadersCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	leadersCmd.Flags().Bool("show-info", false, "include info-level diagnostics in output")
}

func runLeaders(cmd *cobra.Command, args []string) error {
	s, err := collectPipelineSettings(cmd, args)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showInfo, err := cmd.Flags().GetBool("show-info")
	if err != nil {
		return fmt.Errorf("failed to get show-info flag: %w", err)
	}

	res, err := driver.Run(cmd.Context(), s.input, s.opts)
	if err != nil {
		return err
	}

	if output != "" {
		if err := writeCSVFile(output, func(f *os.File) error {
			return report.WriteLeaders(f, res.Leaders)
		}); err != nil {
			return err
		}
	} else if err := report.WriteLeaders(os.Stdout, res.Leaders); err != nil {
		return fmt.Errorf("failed to write leaders: %w", err)
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
