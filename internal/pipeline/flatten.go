package pipeline

import (
	"strings"

	"github.com/aerofix/aerofix"
)

// Flatten reshapes the verify output into flat candidate records: negatives
// are dropped, and a positive answer without an airport name falls back to
// "<city> Airport" so the record still has a matchable name.
func Flatten(verified []VerifiedCity) []Record {
	var out []Record
	for _, vc := range verified {
		if !vc.HasAirport {
			continue
		}
		name := strings.TrimSpace(vc.AirportName)
		if name == "" {
			if strings.TrimSpace(vc.Name) == "" {
				continue
			}
			name = vc.Name + " Airport"
		}
		out = append(out, Record{
			CandidateRecord: aerofix.CandidateRecord{
				Name:    name,
				IATA:    strings.ToUpper(strings.TrimSpace(vc.IataCode)),
				City:    vc.Name,
				Country: vc.Country,
			},
		})
	}
	return out
}
