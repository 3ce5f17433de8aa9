// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/place-scout/pkg/types"
)

// Document is the JSON output file.
type Document struct {
	SearchCenter types.LatLng       `json:"search_center"`
	Places       []types.FlatRecord `json:"places"`
}

// Paths holds the output file paths for one run.
type Paths struct {
	JSON   string
	CSV    string
	SQLite string
}

// timestampFmt is the run timestamp used in output file names.
const timestampFmt = "20060102T150405"

// Output file extensions.
const (
	ExtJSON   = "json"
	ExtCSV    = "csv"
	ExtSQLite = "db"
)

// BaseName reduces an --out value such as "results/places_full.json" to
// the stem "places_full".
func BaseName(out string) string {
	base := filepath.Base(out)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "places"
	}
	return base
}

// OutputPaths returns <dir>/<base>_<timestamp>.<ext> for each format.
func OutputPaths(dir, base string, now time.Time) Paths {
	stem := filepath.Join(dir, base+"_"+now.Format(timestampFmt))
	return Paths{
		JSON:   stem + "." + ExtJSON,
		CSV:    stem + "." + ExtCSV,
		SQLite: stem + "." + ExtSQLite,
	}
}

// WriteJSON writes the primary output document. The file is written to a
// temporary name and renamed so a failed write leaves no partial file.
func WriteJSON(path string, center types.LatLng, records []types.FlatRecord) error {
	if records == nil {
		records = []types.FlatRecord{}
	}
	data, err := json.MarshalIndent(Document{SearchCenter: center, Places: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeAtomic(path, data)
}

// WriteCSV writes the tabular output with the fixed Header.
func WriteCSV(path string, records []types.FlatRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			f.Close()
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return f.Close()
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
