// Package aerofix reconciles noisy airport records against an authoritative
// reference dataset.
//
// The core pipeline is: normalize free-text name/country fields into
// comparable keys, index the reference set by normalized name and IATA code,
// match each candidate record through a fixed strategy cascade (exact name
// with country tie-break, partial token overlap, IATA fallback), and emit a
// reconciliation outcome describing what, if anything, should be corrected.
//
// The reference set is loaded once per run (see LoadReferenceSet) and the
// indexes built from it are read-only afterwards, so any number of
// goroutines may call Match concurrently over the same indexes.
package aerofix

import (
	"fmt"
	"strings"
)

// CandidateRecord describes one airport as known prior to reconciliation.
// Empty string fields mean "not known"; there are no error sentinels.
type CandidateRecord struct {
	Name    string `json:"name"`
	IATA    string `json:"iataCode,omitempty"`
	ICAO    string `json:"icaoCode,omitempty"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// ReferenceRecord is a record from the authoritative source. It carries an
// opaque identifier and geographic attributes that pass through the
// reconciler untouched.
type ReferenceRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	IATA      string  `json:"iataCode,omitempty"`
	ICAO      string  `json:"icaoCode,omitempty"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

// MatchStrategy identifies which matching strategy produced a hit.
type MatchStrategy string

const (
	StrategyExactNameCountry MatchStrategy = "exact_name_country"
	StrategyExactName        MatchStrategy = "exact_name"
	StrategyPartialName      MatchStrategy = "partial_name"
	StrategyIata             MatchStrategy = "iata"
)

// MatchResult is the outcome of one Match call. A nil Record means no
// strategy succeeded; Strategy is only meaningful when Record is non-nil.
type MatchResult struct {
	Record   *ReferenceRecord
	Strategy MatchStrategy
}

// Matched reports whether any strategy found a reference record.
func (m MatchResult) Matched() bool { return m.Record != nil }

// OutcomeStatus classifies a reconciliation outcome.
type OutcomeStatus string

const (
	StatusNoCorrection OutcomeStatus = "no_correction_needed"
	StatusCorrected    OutcomeStatus = "corrected"
	StatusUnverified   OutcomeStatus = "unverified"
)

// FieldChange records one corrected field for the audit trail.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// String renders the change in the report format, e.g. "ICAO: XXXX → KLAX".
func (fc FieldChange) String() string {
	return fmt.Sprintf("%s: %s → %s", fc.Field, orBlank(fc.Old), orBlank(fc.New))
}

func orBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(empty)"
	}
	return s
}

// Outcome is the final output unit of the reconciliation core, one per
// candidate. Updated equals Original unless Status is StatusCorrected.
type Outcome struct {
	Status   OutcomeStatus   `json:"status"`
	Original CandidateRecord `json:"original"`
	Updated  CandidateRecord `json:"updated"`
	Changes  []FieldChange   `json:"changedFields,omitempty"`
	Strategy MatchStrategy   `json:"matchStrategy,omitempty"`
	// RefID carries the matched reference record's identifier so later
	// stages can look the record back up (e.g. the geographic sanity check
	// in the validation pass).
	RefID string `json:"refId,omitempty"`
}
