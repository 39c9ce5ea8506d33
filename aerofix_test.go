package aerofix

import (
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type ReconcileSuite struct {
	refs []ReferenceRecord
}

var _ = Suite(&ReconcileSuite{})

func (s *ReconcileSuite) SetUpSuite(c *C) {
	s.refs = []ReferenceRecord{
		{
			ID: "KLAX", Name: "Los Angeles International Airport",
			IATA: "LAX", ICAO: "KLAX",
			City: "Los Angeles", Country: "United States",
			Latitude: 33.9425, Longitude: -118.408, Elevation: 125,
		},
		{
			ID: "KAUS", Name: "Austin-Bergstrom International Airport",
			IATA: "AUS", ICAO: "KAUS",
			City: "Austin", Country: "United States",
			Latitude: 30.1945, Longitude: -97.6699, Elevation: 542,
		},
		{
			ID: "LUKK", Name: "Chișinău International Airport",
			IATA: "KIV", ICAO: "LUKK",
			City: "Chișinău", Country: "Moldova",
			Latitude: 46.9277, Longitude: 28.931, Elevation: 399,
		},
		{
			ID: "KMUN1", Name: "Municipal Airport",
			IATA: "", ICAO: "KMUN",
			City: "Springfield", Country: "United States",
		},
		{
			ID: "CMUN2", Name: "Municipal Airport",
			IATA: "", ICAO: "CMUN",
			City: "Red Deer", Country: "Canada",
		},
	}
}

func (s *ReconcileSuite) run(c CandidateRecord) Outcome {
	outcomes := ReconcileAll([]CandidateRecord{c}, s.refs, DefaultMatcherConfig())
	return outcomes[0]
}

// A candidate that agrees with its reference on every compared field needs
// no correction.
func (s *ReconcileSuite) TestNoCorrectionNeeded(c *C) {
	out := s.run(CandidateRecord{
		Name: "Los Angeles International Airport",
		IATA: "LAX", ICAO: "KLAX",
		City: "Los Angeles", Country: "United States",
	})
	c.Assert(out.Status, Equals, StatusNoCorrection)
	c.Assert(out.Strategy, Equals, StrategyExactNameCountry)
	c.Assert(out.Changes, HasLen, 0)
	c.Assert(out.Updated, Equals, out.Original)
}

// "USA" and "United States" normalize to different country keys, so the
// match degrades to plain ExactName, and the wrong ICAO is the only change.
func (s *ReconcileSuite) TestExactNameWithCountrySpelledDifferently(c *C) {
	out := s.run(CandidateRecord{
		Name: "Los Angeles International Airport",
		IATA: "LAX", ICAO: "XXXX",
		City: "Los Angeles", Country: "USA",
	})
	c.Assert(out.Status, Equals, StatusCorrected)
	c.Assert(out.Strategy, Equals, StrategyExactName)
	c.Assert(out.Changes, HasLen, 1)
	c.Assert(out.Changes[0].String(), Equals, "ICAO: XXXX → KLAX")
	// Whole-record overwrite: country is replaced too.
	c.Assert(out.Updated.Country, Equals, "United States")
}

// Diacritics keep "chisinau" and "Chișinău" in different name buckets, so
// the match falls through to the IATA strategy.
func (s *ReconcileSuite) TestDiacriticsFallThroughToIata(c *C) {
	out := s.run(CandidateRecord{
		Name: "Chisinau Airport",
		IATA: "KIV",
		City: "Chisinau", Country: "Moldova",
	})
	c.Assert(out.Status, Equals, StatusCorrected)
	c.Assert(out.Strategy, Equals, StrategyIata)
	c.Assert(out.Updated.ICAO, Equals, "LUKK")
	c.Assert(out.Updated.Name, Equals, "Chișinău International Airport")
	c.Assert(out.Updated.City, Equals, "Chișinău")
}

// A candidate with no name and no IATA code can never match anything, and
// that is an outcome, not an error.
func (s *ReconcileSuite) TestEmptyCandidateIsUnverified(c *C) {
	out := s.run(CandidateRecord{City: "Nowhere", Country: "Atlantis"})
	c.Assert(out.Status, Equals, StatusUnverified)
	c.Assert(out.Updated, Equals, out.Original)
	c.Assert(out.Changes, HasLen, 0)
}

// Partial match: "Bergstrom International" shares a token with the indexed
// "austinbergstrom" key, and the country agrees.
func (s *ReconcileSuite) TestPartialMatchWithCountry(c *C) {
	out := s.run(CandidateRecord{
		Name:    "Bergstrom International",
		City:    "Austin",
		Country: "United States",
	})
	c.Assert(out.Status, Equals, StatusCorrected)
	c.Assert(out.Strategy, Equals, StrategyPartialName)
	c.Assert(out.Updated.IATA, Equals, "AUS")
}

// Output order matches input order regardless of outcome mix.
func (s *ReconcileSuite) TestBatchPreservesOrder(c *C) {
	cands := []CandidateRecord{
		{Name: "Chisinau Airport", IATA: "KIV", Country: "Moldova"},
		{Name: "No Such Place Intl"},
		{Name: "Los Angeles International Airport", IATA: "LAX", ICAO: "KLAX", City: "Los Angeles", Country: "United States"},
	}
	outcomes := ReconcileAll(cands, s.refs, DefaultMatcherConfig())
	c.Assert(outcomes, HasLen, 3)
	c.Assert(outcomes[0].Original.Name, Equals, "Chisinau Airport")
	c.Assert(outcomes[1].Status, Equals, StatusUnverified)
	c.Assert(outcomes[2].Status, Equals, StatusNoCorrection)
}
