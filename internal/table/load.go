package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var fileYearRe = regexp.MustCompile(`(20\d{2})`)

// Load ingests a single delimited file, or every *.csv file under a
// directory concatenated in sorted path order. Row indices are assigned
// across the whole ingest so that later stages have a stable tie-break key.
func Load(path string, overrides Overrides) (*Table, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}
	if st.IsDir() {
		return LoadDir(path, overrides)
	}
	rows, err := loadFile(path, overrides, 0)
	if err != nil {
		return nil, err
	}
	return NewTable(rows), nil
}

// LoadDir concatenates every *.csv file under dir. A 4-digit year embedded in
// a file name (e.g. appointments_2016.csv) backfills rows whose year cell is
// empty, mirroring the per-year raw exports the dataset ships as.
func LoadDir(dir string, overrides Overrides) (*Table, error) {
	files, err := listCSVFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no *.csv files found under %s", dir)
	}
	var rows []Row
	for _, path := range files {
		fileRows, err := loadFile(path, overrides, len(rows))
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}
	return NewTable(rows), nil
}

// listCSVFiles returns a sorted list of all *.csv files under dir. Sorting
// keeps the ingest order, and therefore every downstream tie-break,
// deterministic.
func listCSVFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func loadFile(path string, overrides Overrides, baseIndex int) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1 // ragged rows are row-level defects, not fatal

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: file is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", path, err)
	}
	cols, err := ResolveColumns(header, overrides)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	fileYear := fileYearRe.FindString(filepath.Base(path))

	var rows []Row
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read record: %w", path, err)
		}
		line++
		row := Row{
			Index:        baseIndex + len(rows),
			File:         path,
			Line:         line,
			Name:         cell(record, cols.Name),
			Position:     cell(record, cols.Position),
			Organization: cell(record, cols.Organization),
			Year:         cell(record, cols.Year),
			Reappointed:  cell(record, cols.Reappointed),
		}
		if strings.TrimSpace(row.Year) == "" && fileYear != "" {
			row.Year = fileYear
			row.YearFromFile = true
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cell fetches a field by index, tolerating short records.
func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
