package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tenure/internal/normalize"
	"tenure/internal/table"
)

const noTenureTomlMessage = "no tenure.toml found\nplease specify the input explicitly, e.g.:\n  tenure run path/to/appointments.csv"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Dataset   datasetConfig   `toml:"dataset"`
	Output    outputConfig    `toml:"output"`
	Normalize normalizeConfig `toml:"normalize"`
	Columns   columnsConfig   `toml:"columns"`
}

type datasetConfig struct {
	Input     string `toml:"input"`
	FirstYear int    `toml:"first_year"`
	LastYear  int    `toml:"last_year"`
}

type outputConfig struct {
	Dir string `toml:"dir"`
}

type normalizeConfig struct {
	Honorifics []string `toml:"honorifics"`
	Suffixes   []string `toml:"suffixes"`
}

type columnsConfig struct {
	Name         string `toml:"name"`
	Position     string `toml:"position"`
	Organization string `toml:"organization"`
	Year         string `toml:"year"`
	Reappointed  string `toml:"reappointed"`
}

func findTenureToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "tenure.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findTenureToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("dataset") {
		return projectConfig{}, fmt.Errorf("%s: missing [dataset]", path)
	}
	if !meta.IsDefined("dataset", "input") || strings.TrimSpace(cfg.Dataset.Input) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [dataset].input", path)
	}
	hasFirst := meta.IsDefined("dataset", "first_year")
	hasLast := meta.IsDefined("dataset", "last_year")
	if hasFirst != hasLast {
		return projectConfig{}, fmt.Errorf("%s: first_year and last_year must be set together", path)
	}
	if hasFirst && cfg.Dataset.FirstYear > cfg.Dataset.LastYear {
		return projectConfig{}, fmt.Errorf("%s: first_year %d is after last_year %d",
			path, cfg.Dataset.FirstYear, cfg.Dataset.LastYear)
	}
	return cfg, nil
}

// resolveInput picks the dataset path: an explicit argument wins, then the
// manifest's [dataset].input relative to the manifest root.
func resolveInput(args []string, manifest *projectManifest) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if manifest == nil {
		return "", errors.New(noTenureTomlMessage)
	}
	return filepath.Join(manifest.Root, filepath.FromSlash(manifest.Config.Dataset.Input)), nil
}

// manifestYears returns the configured year window, or the zero range when
// the manifest does not pin one.
func manifestYears(manifest *projectManifest) table.YearRange {
	if manifest == nil || manifest.Config.Dataset.FirstYear == 0 {
		return table.YearRange{}
	}
	return table.YearRange{
		First: manifest.Config.Dataset.FirstYear,
		Last:  manifest.Config.Dataset.LastYear,
	}
}

func manifestRules(manifest *projectManifest) *normalize.RuleSet {
	if manifest == nil {
		return nil
	}
	nc := manifest.Config.Normalize
	if len(nc.Honorifics) == 0 && len(nc.Suffixes) == 0 {
		return nil
	}
	return normalize.Default().Extend(nc.Honorifics, nc.Suffixes)
}

func manifestColumns(manifest *projectManifest) table.Overrides {
	if manifest == nil {
		return table.Overrides{}
	}
	cc := manifest.Config.Columns
	return table.Overrides{
		Name:         cc.Name,
		Position:     cc.Position,
		Organization: cc.Organization,
		Year:         cc.Year,
		Reappointed:  cc.Reappointed,
	}
}
