// Package pipeline implements the offline batch stages that build, enrich
// and clean the airport dataset. Stages communicate through flat JSON files
// in the work directory; each stage reads its predecessor's output and
// writes its own, so a run can be resumed or re-done from any point.
//
// Individual record failures (an LLM call that errors, an answer that does
// not parse) are skipped and counted, never fatal.
package pipeline

import "github.com/aerofix/aerofix"

// City is one discovered city, the unit of the verify stage.
type City struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// VerifiedCity is a city annotated with the language model's airport
// answer.
type VerifiedCity struct {
	City
	HasAirport  bool   `json:"hasAirport"`
	AirportName string `json:"airportName,omitempty"`
	IataCode    string `json:"iataCode,omitempty"`
}

// Runway categories assigned by the categorize stage.
const (
	RunwayLong    = "long"   // >= 10000 ft, intercontinental capable
	RunwayMedium  = "medium" // >= 7000 ft
	RunwayShort   = "short"
	RunwayUnknown = "unknown"
)

// ICAO code provenance, recorded by the enrichment cascade.
const (
	IcaoSourceSeed      = "seed_table"
	IcaoSourceInferred  = "iata_inference"
	IcaoSourceReference = "reference_dataset"
	IcaoSourceWikipedia = "wikipedia"
	IcaoSourceLLM       = "llm"
)

// Record is the flat airport record flowing through the later stages. The
// embedded candidate fields are what the reconciliation core operates on;
// the rest is stage bookkeeping.
type Record struct {
	aerofix.CandidateRecord

	RunwayLengthFt int    `json:"runwayLengthFt,omitempty"`
	RunwayCategory string `json:"runwayCategory,omitempty"`
	IcaoSource     string `json:"icaoSource,omitempty"`

	// RefID is set by the crosscheck stage when the record matched a
	// reference airport; the validation stage uses it to look coordinates
	// back up.
	RefID string `json:"refId,omitempty"`
}

// CategoryForLength maps a longest-runway length in feet to its category.
func CategoryForLength(ft int) string {
	switch {
	case ft >= 10000:
		return RunwayLong
	case ft >= 7000:
		return RunwayMedium
	case ft > 0:
		return RunwayShort
	default:
		return RunwayUnknown
	}
}
