package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "tenure.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "minimal",
			body: "[dataset]\ninput = \"data/appointments\"\n",
		},
		{
			name: "full",
			body: `[dataset]
input = "data"
first_year = 2013
last_year = 2024

[output]
dir = "reports"

[normalize]
honorifics = ["hon"]
suffixes = ["phd"]

[columns]
organization = "org_name"
`,
		},
		{
			name:    "missing dataset",
			body:    "[output]\ndir = \"out\"\n",
			wantErr: true,
		},
		{
			name:    "missing input",
			body:    "[dataset]\nfirst_year = 2013\nlast_year = 2024\n",
			wantErr: true,
		},
		{
			name:    "half a year window",
			body:    "[dataset]\ninput = \"data\"\nfirst_year = 2013\n",
			wantErr: true,
		},
		{
			name:    "inverted year window",
			body:    "[dataset]\ninput = \"data\"\nfirst_year = 2024\nlast_year = 2013\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			cfg, err := loadProjectConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Dataset.Input == "" {
				t.Error("input not decoded")
			}
		})
	}
}

func TestFindTenureTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[dataset]\ninput = \"data\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findTenureToml(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if want := filepath.Join(root, "tenure.toml"); path != want {
		t.Errorf("found %s, want %s", path, want)
	}
}

func TestResolveInputPrecedence(t *testing.T) {
	manifest := &projectManifest{
		Root:   "/proj",
		Config: projectConfig{Dataset: datasetConfig{Input: "data/appointments"}},
	}

	got, err := resolveInput([]string{"explicit.csv"}, manifest)
	if err != nil || got != "explicit.csv" {
		t.Errorf("explicit argument: got (%q, %v)", got, err)
	}

	got, err = resolveInput(nil, manifest)
	if err != nil || got != filepath.Join("/proj", "data", "appointments") {
		t.Errorf("manifest fallback: got (%q, %v)", got, err)
	}

	if _, err = resolveInput(nil, nil); err == nil {
		t.Error("expected an error without argument and manifest")
	}
}
