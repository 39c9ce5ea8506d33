package aerofix

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Los Angeles International Airport", "los angeles"},
		{"Austin-Bergstrom International Airport", "austinbergstrom"}, // punctuation is dropped, not spaced
		{"Inter-National Terminal", "terminal"},                        // hyphen removal exposes a stop phrase
		{"Heathrow Airport", "heathrow"},
		{"RAF Mildenhall Air Base", "raf mildenhall"},
		{"Old Warden Aerodrome", "old warden"},
		{"Sywell Airfield", "sywell"},
		{"Chișinău International Airport", "chiinu"}, // diacritics are dropped, not folded
		{"  Pearson   International  ", "pearson"},
		{"St. John's International Airport", "st johns"},
		{"Terminal 2B", "terminal 2b"},
		{"", ""},
		{"   ", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{
		"Los Angeles International Airport",
		"Chișinău International Airport",
		"RAF Mildenhall Air Base",
		"already normalized",
		"",
		"Zürich Kloten",
		"Inter-National Terminal",
		"Austin-Bergstrom International Airport",
	}
	for _, in := range inputs {
		once := NormalizeName(in)
		twice := NormalizeName(once)
		if once != twice {
			t.Errorf("NormalizeName not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeCountry(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Republic of Moldova", "moldova"},
		{"Kingdom of Spain", "spain"},
		{"Democratic Republic of the Congo", "the congo"},
		{"People's Democratic Republic of Algeria", "algeria"},
		{"United States", "united states"},
		{"USA", "usa"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeCountry(tt.in); got != tt.want {
			t.Errorf("NormalizeCountry(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeCountryIdempotent(t *testing.T) {
	inputs := []string{"Republic of Moldova", "United States", "côte d'ivoire", "Re-public of Freedonia"}
	for _, in := range inputs {
		once := NormalizeCountry(in)
		if twice := NormalizeCountry(once); once != twice {
			t.Errorf("NormalizeCountry not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
