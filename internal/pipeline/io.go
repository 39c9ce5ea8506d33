package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// Stage file names inside the work directory.
const (
	CitiesFile     = "cities.json"
	VerifiedFile   = "verified.json"
	RecordsFile    = "records.json"
	CrosscheckFile = "crosscheck_report.json"
	ValidationFile = "validation_report.json"
)

// ReadJSONFile reads a whole JSON file into v.
func ReadJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// WriteJSONFile writes v as indented JSON, creating the directory when
// needed. The write goes through a temp file and rename so an interrupted
// stage never leaves a half-written file for the next stage to choke on.
func WriteJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}
