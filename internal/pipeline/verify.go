package pipeline

import (
	"context"
	"log"

	"github.com/aerofix/aerofix/internal/llm"
)

// Verify asks the language model, city by city, whether a commercial
// airport exists. Failed queries are skipped ("fail and skip" is the only
// retry policy); the answer for every reachable city is kept, positive or
// negative, so a later run can re-ask only the gaps.
func Verify(ctx context.Context, g llm.Generator, cities []City) []VerifiedCity {
	out := make([]VerifiedCity, 0, len(cities))
	skipped := 0
	for _, city := range cities {
		ans, err := llm.HasAirport(ctx, g, city.Name, city.Country)
		if err != nil {
			log.Printf("warning: verify %s, %s: %v", city.Name, city.Country, err)
			skipped++
			continue
		}
		out = append(out, VerifiedCity{
			City:        city,
			HasAirport:  ans.HasAirport,
			AirportName: ans.AirportName,
			IataCode:    ans.IataCode,
		})
	}
	if skipped > 0 {
		log.Printf("verify: skipped %d of %d cities", skipped, len(cities))
	}
	return out
}
