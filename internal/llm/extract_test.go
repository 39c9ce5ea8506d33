package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	text := "Sure! Here is the answer:\n```json\n{\"hasAirport\": true, \"airportName\": \"Henri Coandă\"}\n```\nLet me know if you need more."
	var ans CityAnswer
	require.NoError(t, ExtractJSON(text, &ans))
	assert.True(t, ans.HasAirport)
	assert.Equal(t, "Henri Coandă", ans.AirportName)
}

func TestExtractJSONArray(t *testing.T) {
	var cities []string
	require.NoError(t, ExtractJSON(`The cities are: ["Paris", "Lyon", "Nice"].`, &cities))
	assert.Equal(t, []string{"Paris", "Lyon", "Nice"}, cities)
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	var ans struct {
		Name string `json:"name"`
	}
	require.NoError(t, ExtractJSON(`{"name": "Weird {brace} \"quoted\" value"}`, &ans))
	assert.Equal(t, `Weird {brace} "quoted" value`, ans.Name)
}

func TestExtractJSONNested(t *testing.T) {
	var ans struct {
		Data struct {
			Codes []string `json:"codes"`
		} `json:"data"`
	}
	require.NoError(t, ExtractJSON(`prefix {"data": {"codes": ["KLAX", "KJFK"]}} suffix`, &ans))
	assert.Equal(t, []string{"KLAX", "KJFK"}, ans.Data.Codes)
}

func TestExtractJSONErrors(t *testing.T) {
	var v any
	assert.Error(t, ExtractJSON("no json here at all", &v))
	assert.Error(t, ExtractJSON(`{"unbalanced": true`, &v))
}

// fakeGenerator returns canned responses keyed by substring of the prompt.
type fakeGenerator struct {
	responses map[string]string
	err       error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for needle, resp := range f.responses {
		if needle == "" || strings.Contains(prompt, needle) {
			return resp, nil
		}
	}
	return "", nil
}

func TestIcaoCodeRejectsMalformedAnswers(t *testing.T) {
	g := &fakeGenerator{responses: map[string]string{"": `{"icaoCode": "not-a-code"}`}}
	code, err := IcaoCode(context.Background(), g, "Some Airport", "Some City", "Somewhere")
	require.NoError(t, err)
	assert.Empty(t, code, "malformed codes are treated as unknown")

	g.responses[""] = `{"icaoCode": "lukk"}`
	code, err = IcaoCode(context.Background(), g, "A", "B", "C")
	require.NoError(t, err)
	assert.Equal(t, "LUKK", code, "answers are uppercased")
}

func TestHasAirportNormalizesFields(t *testing.T) {
	g := &fakeGenerator{responses: map[string]string{
		"": `{"hasAirport": true, "airportName": "  Otopeni  ", "iataCode": "otp"}`,
	}}
	ans, err := HasAirport(context.Background(), g, "Bucharest", "Romania")
	require.NoError(t, err)
	assert.Equal(t, CityAnswer{HasAirport: true, AirportName: "Otopeni", IataCode: "OTP"}, ans)
}

func TestCitiesDropsBlankEntries(t *testing.T) {
	g := &fakeGenerator{responses: map[string]string{
		"": `["Paris", "  ", "Lyon", ""]`,
	}}
	cities, err := Cities(context.Background(), g, "France", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Lyon"}, cities)
}
