package aerofix

import (
	"strings"
	"testing"
)

const countriesCSV = `"id","code","name","continent","wikipedia_link","keywords"
302755,"US","United States","NA","https://en.wikipedia.org/wiki/United_States",
302672,"MD","Moldova","EU","https://en.wikipedia.org/wiki/Moldova",
`

const airportsCSV = `"id","ident","type","name","latitude_deg","longitude_deg","elevation_ft","continent","iso_country","iso_region","municipality","scheduled_service","gps_code","iata_code","local_code","home_link","wikipedia_link","keywords"
6523,"00A","heliport","Total RF Heliport",40.0708,-74.9336,11,"NA","US","US-PA","Bensalem","no","K00A",,"00A",,,
3754,"KLAX","large_airport","Los Angeles International Airport",33.9425,-118.408,125,"NA","US","US-CA","Los Angeles","yes","KLAX","LAX","LAX",,,
3755,"XLAX","small_airport","Los Angeles Duplicate Strip",33.9425,-118.408,125,"NA","US","US-CA","Los Angeles","no",,,,,,
9001,"LUKK","medium_airport","Chișinău International Airport",46.9277,28.931,399,"EU","MD","MD-C","Chișinău","yes","LUKK","KIV",,,,
9002,"BAD1","small_airport","Bad Coordinates Field","abc","def",0,"EU","MD","MD-C","Nowhere","no",,,,,,
9003,"ZZ99","small_airport","Orphan Country Strip",10.5,20.5,40,"AF","ZZ","ZZ-X","Orphantown","no","ZZ99",,,,,,
`

func TestParseCountries(t *testing.T) {
	countries, err := parseCountries(strings.NewReader(countriesCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(countries) != 2 {
		t.Fatalf("parsed %d countries, want 2", len(countries))
	}
	if countries["US"] != "United States" || countries["MD"] != "Moldova" {
		t.Errorf("unexpected country map: %v", countries)
	}
}

func TestParseAirports(t *testing.T) {
	countries, err := parseCountries(strings.NewReader(countriesCSV))
	if err != nil {
		t.Fatal(err)
	}
	refs, err := parseAirports(strings.NewReader(airportsCSV), countries)
	if err != nil {
		t.Fatal(err)
	}

	// Heliport filtered, bad coordinates skipped, co-located duplicate
	// collapsed: LAX, LUKK and the orphan strip remain.
	if len(refs) != 3 {
		t.Fatalf("parsed %d records, want 3: %+v", len(refs), refs)
	}

	lax := refs[0]
	if lax.ID != "KLAX" || lax.IATA != "LAX" || lax.ICAO != "KLAX" {
		t.Errorf("unexpected first record: %+v", lax)
	}
	if lax.Country != "United States" {
		t.Errorf("country join failed: %q", lax.Country)
	}
	if lax.City != "Los Angeles" || lax.Elevation != 125 {
		t.Errorf("carried fields wrong: %+v", lax)
	}

	kiv := refs[1]
	if kiv.Name != "Chișinău International Airport" || kiv.Country != "Moldova" {
		t.Errorf("unexpected second record: %+v", kiv)
	}

	// Unknown ISO code joins to an empty country name, not an error.
	if orphan := refs[2]; orphan.Country != "" || orphan.ID != "ZZ99" {
		t.Errorf("unexpected third record: %+v", orphan)
	}
}

func TestIcaoFromRowPrefersGpsCode(t *testing.T) {
	row := make([]string, colIataCode+1)
	row[colIdent] = "US-0571"
	row[colGpsCode] = "KTXW"
	if got := icaoFromRow(row); got != "KTXW" {
		t.Errorf("icaoFromRow = %q, want KTXW", got)
	}

	row[colGpsCode] = ""
	row[colIdent] = "EGLL"
	if got := icaoFromRow(row); got != "EGLL" {
		t.Errorf("icaoFromRow = %q, want EGLL (ident fallback)", got)
	}

	row[colIdent] = "US-0571" // not ICAO-shaped
	if got := icaoFromRow(row); got != "" {
		t.Errorf("icaoFromRow = %q, want empty", got)
	}
}

func TestIsICAOShaped(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"KLAX", true},
		{"LUKK", true},
		{"7AK2", true},
		{"lax", false},
		{"TOOLONG", false},
		{"K-AX", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isICAOShaped(tt.code); got != tt.want {
			t.Errorf("isICAOShaped(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
