package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aerofix/aerofix"
)

type fakeSearcher struct {
	code string
	err  error
	hits int
}

func (f *fakeSearcher) IcaoForAirport(context.Context, string, string, string) (string, error) {
	f.hits++
	return f.code, f.err
}

func enrichRefs() []aerofix.ReferenceRecord {
	return []aerofix.ReferenceRecord{
		{ID: "LUKK", Name: "Chișinău International Airport", IATA: "KIV", ICAO: "LUKK", City: "Chișinău", Country: "Moldova"},
	}
}

func TestEnrichSeedTableWinsFirst(t *testing.T) {
	names, iatas := aerofix.BuildIndexes(enrichRefs())
	searcher := &fakeSearcher{code: "XXXX"}

	records := []Record{{CandidateRecord: aerofix.CandidateRecord{
		Name: "Heathrow Airport", City: "London", Country: "United Kingdom",
	}}}
	out := Enrich(context.Background(), records, names, iatas, searcher, nil, aerofix.DefaultMatcherConfig())

	assert.Equal(t, "EGLL", out[0].ICAO)
	assert.Equal(t, IcaoSourceSeed, out[0].IcaoSource)
	assert.Zero(t, searcher.hits, "cascade must stop at the seed table")
}

func TestEnrichIataInference(t *testing.T) {
	names, iatas := aerofix.BuildIndexes(nil)

	records := []Record{{CandidateRecord: aerofix.CandidateRecord{
		Name: "Waco Regional Airport", IATA: "ACT", City: "Waco", Country: "United States",
	}}}
	out := Enrich(context.Background(), records, names, iatas, nil, nil, aerofix.DefaultMatcherConfig())

	assert.Equal(t, "KACT", out[0].ICAO, "US codes are K + IATA")
	assert.Equal(t, IcaoSourceInferred, out[0].IcaoSource)
}

func TestEnrichReferenceDataset(t *testing.T) {
	names, iatas := aerofix.BuildIndexes(enrichRefs())

	records := []Record{{CandidateRecord: aerofix.CandidateRecord{
		Name: "Chisinau Airport", IATA: "KIV", City: "Chisinau", Country: "Moldova",
	}}}
	out := Enrich(context.Background(), records, names, iatas, nil, nil, aerofix.DefaultMatcherConfig())

	assert.Equal(t, "LUKK", out[0].ICAO)
	assert.Equal(t, IcaoSourceReference, out[0].IcaoSource)
}

func TestEnrichWikipediaFallback(t *testing.T) {
	names, iatas := aerofix.BuildIndexes(nil)
	searcher := &fakeSearcher{code: "LROP"}

	records := []Record{{CandidateRecord: aerofix.CandidateRecord{
		Name: "Some Obscure Airport", City: "Somewhere", Country: "Romania",
	}}}
	out := Enrich(context.Background(), records, names, iatas, searcher, nil, aerofix.DefaultMatcherConfig())

	assert.Equal(t, "LROP", out[0].ICAO)
	assert.Equal(t, IcaoSourceWikipedia, out[0].IcaoSource)
	assert.Equal(t, 1, searcher.hits)
}

func TestEnrichLLMLastResort(t *testing.T) {
	names, iatas := aerofix.BuildIndexes(nil)
	searcher := &fakeSearcher{err: errors.New("api down")}
	g := &scriptedGenerator{script: map[string]string{
		"Some Obscure Airport": `{"icaoCode": "LRBS"}`,
	}}

	records := []Record{{CandidateRecord: aerofix.CandidateRecord{
		Name: "Some Obscure Airport", City: "Somewhere", Country: "Romania",
	}}}
	out := Enrich(context.Background(), records, names, iatas, searcher, g, aerofix.DefaultMatcherConfig())

	assert.Equal(t, "LRBS", out[0].ICAO, "wikipedia failure falls through to the model")
	assert.Equal(t, IcaoSourceLLM, out[0].IcaoSource)
}

func TestEnrichLeavesExistingCodesAlone(t *testing.T) {
	names, iatas := aerofix.BuildIndexes(enrichRefs())
	searcher := &fakeSearcher{code: "XXXX"}

	records := []Record{{CandidateRecord: aerofix.CandidateRecord{
		Name: "Chisinau Airport", IATA: "KIV", ICAO: "LUKK", City: "Chisinau", Country: "Moldova",
	}}}
	out := Enrich(context.Background(), records, names, iatas, searcher, nil, aerofix.DefaultMatcherConfig())

	assert.Equal(t, "LUKK", out[0].ICAO)
	assert.Empty(t, out[0].IcaoSource)
	assert.Zero(t, searcher.hits)
}

func TestEnrichNoSourceYieldsNothing(t *testing.T) {
	names, iatas := aerofix.BuildIndexes(nil)

	records := []Record{{CandidateRecord: aerofix.CandidateRecord{
		Name: "Totally Unknown Strip", City: "Nowhere", Country: "Atlantis",
	}}}
	out := Enrich(context.Background(), records, names, iatas, nil, nil, aerofix.DefaultMatcherConfig())

	assert.Empty(t, out[0].ICAO, "missing code is reported by validation, not invented here")
}
