package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tenure/internal/driver"
	"tenure/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [input]",
	Short: "Run the full pipeline and write the result tables",
	Long:  `Run ingests appointment records, resolves identities, marks reappointments and writes org_year_rates.csv and annual_proportions.csv to the output directory`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().String("out", "", "output directory (default: manifest [output].dir or \"out\")")
	runCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	runCmd.Flags().String("ui", "auto", "stage progress UI (auto|on|off)")
	runCmd.Flags().Bool("disk-cache", false, "reuse normalization results from previous runs")
	runCmd.Flags().Bool("show-info", false, "include info-level diagnostics in output")
	runCmd.Flags().Int("jobs", 0, "max parallel workers for the rate grid (0=auto)")
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := collectPipelineSettings(cmd, args)
	if err != nil {
		return err
	}

	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	enableDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	showInfo, err := cmd.Flags().GetBool("show-info")
	if err != nil {
		return fmt.Errorf("failed to get show-info flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = "out"
		if s.manifest != nil && s.manifest.Config.Output.Dir != "" {
			outDir = filepath.Join(s.manifest.Root, filepath.FromSlash(s.manifest.Config.Output.Dir))
		}
	}

	s.opts.EnableDiskCache = enableDiskCache
	s.opts.Jobs = jobs

	var res *driver.Result
	if shouldUseTUI(mode) && !s.quiet {
		res, err = runPipelineWithUI(cmd.Context(), "tenure run", s.input, s.opts)
	} else {
		res, err = driver.Run(cmd.Context(), s.input, s.opts)
	}
	if err != nil {
		return err
	}

	if err := writeResultTables(outDir, res); err != nil {
		return err
	}

	if err := printDiagnostics(res, s, format, showInfo); err != nil {
		return err
	}
	if !s.quiet && format == "pretty" {
		res.Summary.Render(os.Stdout, s.useColor)
	}
	if s.timings {
		fmt.Fprint(os.Stderr, res.Timing.Summary())
	}

	if res.Bag.HasErrors() {
		return silentExit(cmd)
	}
	return nil
}

func writeResultTables(outDir string, res *driver.Result) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeCSVFile(filepath.Join(outDir, "org_year_rates.csv"), func(f *os.File) error {
		return report.WriteOrgYearRates(f, res.Grid)
	}); err != nil {
		return err
	}
	return writeCSVFile(filepath.Join(outDir, "annual_proportions.csv"), func(f *os.File) error {
		return report.WriteAnnualProportions(f, res.Annual)
	})
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
