package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tenure/internal/diagfmt"
	"tenure/internal/driver"
)

// pipelineSettings collects everything a pipeline-running subcommand needs
// from flags and the optional project manifest.
type pipelineSettings struct {
	input    string
	manifest *projectManifest
	opts     driver.Options
	useColor bool
	quiet    bool
	timings  bool
}

// collectPipelineSettings resolves the input path and builds driver options
// from persistent flags and the manifest. CLI arguments override the manifest.
func collectPipelineSettings(cmd *cobra.Command, args []string) (pipelineSettings, error) {
	var s pipelineSettings

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return s, err
	}
	s.manifest = manifest

	s.input, err = resolveInput(args, manifest)
	if err != nil {
		return s, err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	s.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	s.timings, err = cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return s, fmt.Errorf("failed to get color flag: %w", err)
	}
	s.useColor = colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	s.opts = driver.Options{
		Years:          manifestYears(manifest),
		Rules:          manifestRules(manifest),
		Columns:        manifestColumns(manifest),
		MaxDiagnostics: maxDiagnostics,
	}
	return s, nil
}

// printDiagnostics renders the bag and returns whether it held errors.
func printDiagnostics(res *driver.Result, s pipelineSettings, format string, showInfo bool) error {
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stderr, res.Bag, diagfmt.PrettyOpts{Color: s.useColor, ShowInfo: showInfo})
	case "json":
		if err := diagfmt.JSON(os.Stdout, res.Bag, diagfmt.JSONOpts{ShowInfo: showInfo}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

// silentExit suppresses cobra's usage output for an already-reported failure.
func silentExit(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("")
}
