package llm

import (
	"context"
	"fmt"
	"strings"
)

// Prompt templates. The wording is fixed: answers are parsed by shape, so
// rephrasing a template means re-validating a full pipeline run against it.
const (
	citiesPrompt = `List the %d largest cities in %s.
Respond with only a JSON array of city names, e.g. ["Paris","Lyon"].`

	hasAirportPrompt = `Does the city %s in %s have a commercial airport with scheduled passenger service?
Respond with only a JSON object like {"hasAirport": true, "airportName": "...", "iataCode": "..."}.
Use null for unknown fields.`

	runwayPrompt = `What is the length in feet of the longest runway at %s serving %s, %s?
Respond with only a JSON object like {"runwayLengthFt": 12000}.`

	icaoPrompt = `What is the 4-letter ICAO code of %s serving %s, %s?
Respond with only a JSON object like {"icaoCode": "KLAX"}.`
)

// CityAnswer is the parsed reply to the has-airport question.
type CityAnswer struct {
	HasAirport  bool   `json:"hasAirport"`
	AirportName string `json:"airportName"`
	IataCode    string `json:"iataCode"`
}

// Cities asks for the n largest cities of a country.
func Cities(ctx context.Context, g Generator, country string, n int) ([]string, error) {
	text, err := g.Generate(ctx, fmt.Sprintf(citiesPrompt, n, country))
	if err != nil {
		return nil, err
	}
	var cities []string
	if err := ExtractJSON(text, &cities); err != nil {
		return nil, err
	}
	out := cities[:0]
	for _, c := range cities {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out, nil
}

// HasAirport asks whether a city has a commercial airport.
func HasAirport(ctx context.Context, g Generator, city, country string) (CityAnswer, error) {
	text, err := g.Generate(ctx, fmt.Sprintf(hasAirportPrompt, city, country))
	if err != nil {
		return CityAnswer{}, err
	}
	var ans CityAnswer
	if err := ExtractJSON(text, &ans); err != nil {
		return CityAnswer{}, err
	}
	ans.AirportName = strings.TrimSpace(ans.AirportName)
	ans.IataCode = strings.ToUpper(strings.TrimSpace(ans.IataCode))
	return ans, nil
}

// RunwayLengthFt asks for the longest runway at an airport. Zero means the
// model did not know.
func RunwayLengthFt(ctx context.Context, g Generator, airport, city, country string) (int, error) {
	text, err := g.Generate(ctx, fmt.Sprintf(runwayPrompt, airport, city, country))
	if err != nil {
		return 0, err
	}
	var ans struct {
		RunwayLengthFt int `json:"runwayLengthFt"`
	}
	if err := ExtractJSON(text, &ans); err != nil {
		return 0, err
	}
	if ans.RunwayLengthFt < 0 {
		return 0, nil
	}
	return ans.RunwayLengthFt, nil
}

// IcaoCode asks for an airport's ICAO code. The answer is accepted only
// when it has the 4-character code shape; anything else is treated as
// unknown, because models happily invent codes.
func IcaoCode(ctx context.Context, g Generator, airport, city, country string) (string, error) {
	text, err := g.Generate(ctx, fmt.Sprintf(icaoPrompt, airport, city, country))
	if err != nil {
		return "", err
	}
	var ans struct {
		IcaoCode string `json:"icaoCode"`
	}
	if err := ExtractJSON(text, &ans); err != nil {
		return "", err
	}
	code := strings.ToUpper(strings.TrimSpace(ans.IcaoCode))
	if !isCodeShaped(code, 4) {
		return "", nil
	}
	return code, nil
}

func isCodeShaped(code string, n int) bool {
	if len(code) != n {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
