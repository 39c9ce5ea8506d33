package pipeline

import (
	"context"
	"log"
	"strings"

	"github.com/aerofix/aerofix"
	"github.com/aerofix/aerofix/internal/llm"
)

// IcaoSearcher is the Wikipedia lookup the enrichment cascade depends on;
// tests substitute a canned implementation.
type IcaoSearcher interface {
	IcaoForAirport(ctx context.Context, airport, city, country string) (string, error)
}

// seedICAO maps normalized airport names to known-good ICAO codes. These
// are the high-traffic airports the original lookup tables carried; the
// seed exists so the cascade resolves them without touching the network.
var seedICAO = map[string]string{
	"los angeles":                "KLAX",
	"john f kennedy":             "KJFK",
	"heathrow":                   "EGLL",
	"charles de gaulle":          "LFPG",
	"frankfurt":                  "EDDF",
	"schiphol":                   "EHAM",
	"amsterdam schiphol":         "EHAM",
	"madrid barajas":             "LEMD",
	"adolfo surez madridbarajas": "LEMD",
	"haneda":                     "RJTT",
	"tokyo haneda":               "RJTT",
	"narita":                     "RJAA",
	"changi":                     "WSSS",
	"singapore changi":           "WSSS",
	"dubai":                      "OMDB",
	"hong kong":                  "VHHH",
	"sydney kingsford smith":     "YSSY",
	"chiinu":                     "LUKK",
	"otopeni":                    "LROP",
	"henri coand":                "LROP",
	"sheremetyevo":               "UUEE",
	"indira gandhi":              "VIDP",
	"oliver reginald tambo":      "FAOR",
	"or tambo":                   "FAOR",
	"benito jurez":               "MMMX",
	"guarulhos":                  "SBGR",
	"so pauloguarulhos":          "SBGR",
	"toronto pearson":            "CYYZ",
	"pearson":                    "CYYZ",
	"incheon":                    "RKSI",
	"beijing capital":            "ZBAA",
}

// iataPrefixByCountry lists countries whose ICAO codes are, with very few
// exceptions, the national prefix letter plus the IATA code. Only the US
// rule is reliable enough to infer from; everywhere else the ICAO code has
// no systematic relationship to the IATA code.
var iataPrefixByCountry = map[string]string{
	"united states": "K",
}

// Enrich fills missing ICAO codes through a cascade of sources, cheapest
// first; the first source that yields a code wins and is recorded in
// IcaoSource:
//
//  1. the static seed table and national-prefix IATA inference;
//  2. the authoritative reference indexes;
//  3. Wikipedia article search;
//  4. the language model, as last resort.
//
// Records that already carry an ICAO code pass through untouched. A source
// that errors is skipped for that record, not retried.
func Enrich(ctx context.Context, records []Record, names *aerofix.NameIndex, iatas *aerofix.IataIndex, searcher IcaoSearcher, g llm.Generator, cfg aerofix.MatcherConfig) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = rec
		if rec.ICAO != "" {
			continue
		}

		if code, source := staticICAO(rec); code != "" {
			out[i].ICAO = code
			out[i].IcaoSource = source
			continue
		}

		if m := aerofix.Match(rec.CandidateRecord, names, iatas, cfg); m.Matched() && m.Record.ICAO != "" {
			out[i].ICAO = m.Record.ICAO
			out[i].IcaoSource = IcaoSourceReference
			continue
		}

		if searcher != nil {
			code, err := searcher.IcaoForAirport(ctx, rec.Name, rec.City, rec.Country)
			if err != nil {
				log.Printf("warning: enrich %s via wikipedia: %v", rec.Name, err)
			} else if code != "" {
				out[i].ICAO = code
				out[i].IcaoSource = IcaoSourceWikipedia
				continue
			}
		}

		if g != nil {
			code, err := llm.IcaoCode(ctx, g, rec.Name, rec.City, rec.Country)
			if err != nil {
				log.Printf("warning: enrich %s via llm: %v", rec.Name, err)
			} else if code != "" {
				out[i].ICAO = code
				out[i].IcaoSource = IcaoSourceLLM
			}
		}
	}
	return out
}

// staticICAO resolves a record against the offline sources: the seed table
// by normalized name, then national-prefix inference from the IATA code.
func staticICAO(rec Record) (string, string) {
	if code, ok := seedICAO[aerofix.NormalizeName(rec.Name)]; ok {
		return code, IcaoSourceSeed
	}

	iata := strings.ToUpper(strings.TrimSpace(rec.IATA))
	if len(iata) == 3 {
		if prefix, ok := iataPrefixByCountry[aerofix.NormalizeCountry(rec.Country)]; ok {
			return prefix + iata, IcaoSourceInferred
		}
	}
	return "", ""
}
