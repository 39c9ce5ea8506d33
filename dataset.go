package aerofix

import (
	"bytes"
	"compress/bzip2"
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/TomiHiltunen/geohash-golang"
)

// DataSourceID identifies a reference data source.
type DataSourceID string

const (
	DataSourceAirports  DataSourceID = "ourairportsAirports"
	DataSourceCountries DataSourceID = "ourairportsCountries"
)

// DataSource defines one downloadable reference file.
type DataSource struct {
	URL  string
	Path string
	ID   DataSourceID
}

// dataSetFiles lists the OurAirports exports the loader needs. airports.csv
// carries the records themselves; countries.csv maps ISO codes to country
// names so candidate records (which carry names, not codes) can be compared.
var dataSetFiles = []DataSource{
	{URL: "https://davidmegginson.github.io/ourairports-data/airports.csv", Path: "airports.csv", ID: DataSourceAirports},
	{URL: "https://davidmegginson.github.io/ourairports-data/countries.csv", Path: "countries.csv", ID: DataSourceCountries},
}

// airportTypes are the OurAirports type values kept in the reference set.
// Heliports, seaplane bases, balloonports and closed airports are not
// reconciliation targets.
var airportTypes = map[string]bool{
	"small_airport":  true,
	"medium_airport": true,
	"large_airport":  true,
}

// geohashDedupePrecision groups airports within roughly a kilometre. The
// dataset occasionally lists the same field twice under different idents;
// the first record wins within a cell.
const geohashDedupePrecision = 6

// minReferenceRecords is a sanity floor for a successfully parsed dataset.
// OurAirports carries tens of thousands of airports; far fewer means a
// truncated download or format change.
const minReferenceRecords = 10000

// ReferenceSetConfig contains directory options for the loader.
type ReferenceSetConfig struct {
	DataDir  string // raw CSV downloads (default "./aerofix-data")
	CacheDir string // gob cache (default "./aerofix-cache")
}

// Option is a functional option for LoadReferenceSet.
type Option func(*ReferenceSetConfig)

// WithDataDir sets the directory for raw data files.
func WithDataDir(dir string) Option {
	return func(c *ReferenceSetConfig) { c.DataDir = dir }
}

// WithCacheDir sets the directory for cache files.
func WithCacheDir(dir string) Option {
	return func(c *ReferenceSetConfig) { c.CacheDir = dir }
}

func defaultReferenceSetConfig() *ReferenceSetConfig {
	return &ReferenceSetConfig{
		DataDir:  "./aerofix-data",
		CacheDir: "./aerofix-cache",
	}
}

// downloadMu protects data file downloads and cache generation from racing
// when concurrent callers load the reference set with a cold cache.
var downloadMu sync.Mutex

// httpClient is shared by all downloads.
var httpClient = &http.Client{
	Timeout: 60 * time.Second,
}

// LoadReferenceSet returns the parsed OurAirports reference set, using the
// gob cache when present and downloading + parsing the raw CSVs otherwise.
//
//	refs, err := aerofix.LoadReferenceSet(aerofix.WithDataDir("/var/data"))
func LoadReferenceSet(opts ...Option) ([]ReferenceRecord, error) {
	cfg := defaultReferenceSetConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	refs, err := loadCachedReferenceSet(cfg.CacheDir)
	if err == nil && len(refs) >= minReferenceRecords {
		return refs, nil
	}
	if err != nil {
		log.Printf("info: reference cache not usable, rebuilding: %v", err)
	}

	if err := downloadDataSets(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("failed to download data sets: %w", err)
	}
	refs, err = parseDataSets(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to parse data sets: %w", err)
	}
	if len(refs) < minReferenceRecords {
		return nil, fmt.Errorf("reference set too small: got %d records, want >= %d", len(refs), minReferenceRecords)
	}
	if err := storeReferenceSet(cfg.CacheDir, refs); err != nil {
		log.Printf("warning: failed to store reference cache: %v", err)
	}
	return refs, nil
}

// RegenerateReferenceCache forces a re-parse of the raw CSV files and
// rewrites the gob cache. The raw files must already exist in the data
// directory.
func RegenerateReferenceCache(opts ...Option) error {
	cfg := defaultReferenceSetConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	refs, err := parseDataSets(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to parse data sets: %w", err)
	}
	if err := storeReferenceSet(cfg.CacheDir, refs); err != nil {
		return fmt.Errorf("failed to store reference cache: %w", err)
	}
	return nil
}

// downloadDataSets fetches the raw CSV files that are not already present.
func downloadDataSets(dataDir string) error {
	downloadMu.Lock()
	defer downloadMu.Unlock()

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	for _, f := range dataSetFiles {
		localPath := filepath.Join(dataDir, f.Path)
		// Re-check existence inside the lock; another goroutine may have
		// completed the download while this one was waiting.
		if _, err := os.Stat(localPath); err == nil {
			continue
		}
		if err := downloadFile(f.URL, localPath); err != nil {
			return fmt.Errorf("downloading %s: %w", f.ID, err)
		}
	}
	return nil
}

func downloadFile(url, path string) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP GET %s: status %d", url, resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}

	// Track success so the deferred cleanup removes partial files on error
	// and Close errors on the success path are not lost.
	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(path)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", path, err)
	}
	success = true
	return nil
}

// parseDataSets reads the raw CSV files and assembles the reference set.
func parseDataSets(dataDir string) ([]ReferenceRecord, error) {
	countries, err := parseCountriesFile(filepath.Join(dataDir, "countries.csv"))
	if err != nil {
		return nil, fmt.Errorf("loading countries: %w", err)
	}
	refs, err := parseAirportsFile(filepath.Join(dataDir, "airports.csv"), countries)
	if err != nil {
		return nil, fmt.Errorf("loading airports: %w", err)
	}
	return refs, nil
}

func parseCountriesFile(path string) (map[string]string, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer fi.Close()
	return parseCountries(fi)
}

// parseCountries reads OurAirports countries.csv and returns ISO code →
// country name. Malformed rows are skipped, not fatal.
func parseCountries(r io.Reader) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	countries := make(map[string]string, 260)
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		if first {
			first = false // header
			continue
		}
		if len(row) < 3 || row[1] == "" || row[2] == "" {
			continue
		}
		countries[strings.ToUpper(row[1])] = row[2]
	}
	return countries, nil
}

// Column positions in OurAirports airports.csv.
const (
	colIdent        = 1
	colType         = 2
	colName         = 3
	colLatitude     = 4
	colLongitude    = 5
	colElevation    = 6
	colISOCountry   = 8
	colMunicipality = 10
	colGpsCode      = 12
	colIataCode     = 13
)

func parseAirportsFile(path string, countries map[string]string) ([]ReferenceRecord, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer fi.Close()
	return parseAirports(fi, countries)
}

// parseAirports reads OurAirports airports.csv, keeping small, medium and
// large airports. Records with unparseable coordinates are skipped rather
// than stored at (0,0), and co-located duplicates are collapsed by geohash
// cell with the first record winning.
func parseAirports(r io.Reader, countries map[string]string) ([]ReferenceRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var refs []ReferenceRecord
	locationDedupeIdx := make(map[string]bool)
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		if first {
			first = false // header
			continue
		}
		if len(row) <= colIataCode {
			continue
		}
		if !airportTypes[row[colType]] {
			continue
		}

		lat, errLat := strconv.ParseFloat(row[colLatitude], 64)
		lng, errLng := strconv.ParseFloat(row[colLongitude], 64)
		if errLat != nil || errLng != nil {
			continue
		}
		elev, _ := strconv.ParseFloat(row[colElevation], 64) // 0 is acceptable

		name := strings.TrimSpace(row[colName])
		if name == "" {
			continue
		}

		cell := geohash.EncodeWithPrecision(lat, lng, geohashDedupePrecision)
		if locationDedupeIdx[cell] {
			continue
		}
		locationDedupeIdx[cell] = true

		refs = append(refs, ReferenceRecord{
			ID:        row[colIdent],
			Name:      name,
			IATA:      strings.ToUpper(strings.TrimSpace(row[colIataCode])),
			ICAO:      icaoFromRow(row),
			City:      strings.TrimSpace(row[colMunicipality]),
			Country:   countries[strings.ToUpper(row[colISOCountry])],
			Latitude:  lat,
			Longitude: lng,
			Elevation: elev,
		})
	}
	return refs, nil
}

// icaoFromRow picks the ICAO code for an airport row: the gps_code column
// when it has the 4-letter shape, else the ident column when it does.
func icaoFromRow(row []string) string {
	if code := strings.ToUpper(strings.TrimSpace(row[colGpsCode])); isICAOShaped(code) {
		return code
	}
	if code := strings.ToUpper(strings.TrimSpace(row[colIdent])); isICAOShaped(code) {
		return code
	}
	return ""
}

func isICAOShaped(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// storeReferenceSet writes the parsed reference set to the gob cache.
func storeReferenceSet(cacheDir string, refs []ReferenceRecord) error {
	downloadMu.Lock()
	defer downloadMu.Unlock()

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	b := new(bytes.Buffer)
	if err := gob.NewEncoder(b).Encode(refs); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cacheDir, "refs.dmp"), b.Bytes(), 0644)
}

// loadCachedReferenceSet reads the gob cache, accepting either a plain or a
// bzip2-compressed dump (compressed dumps are convenient for checking the
// cache into a repo or image).
func loadCachedReferenceSet(cacheDir string) ([]ReferenceRecord, error) {
	fh, cleanup, err := openOptionallyBzippedFile(filepath.Join(cacheDir, "refs.dmp"))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var refs []ReferenceRecord
	if err := gob.NewDecoder(fh).Decode(&refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func openOptionallyBzippedFile(file string) (io.Reader, func() error, error) {
	if fh, err := os.Open(file + ".bz2"); err == nil {
		return bzip2.NewReader(fh), fh.Close, nil
	}
	fh, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", file, err)
	}
	return fh, fh.Close, nil
}
