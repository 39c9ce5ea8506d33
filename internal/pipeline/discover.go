package pipeline

import (
	"context"
	"log"
	"strings"

	"github.com/aerofix/aerofix/internal/llm"
)

// Discover asks the language model for the largest cities of each country.
// A failed country is logged and skipped; the stage never aborts the batch.
// Duplicate city names within a country are collapsed case-insensitively.
func Discover(ctx context.Context, g llm.Generator, countries []string, perCountry int) []City {
	var out []City
	for _, country := range countries {
		names, err := llm.Cities(ctx, g, country, perCountry)
		if err != nil {
			log.Printf("warning: discover %s: %v", country, err)
			continue
		}

		seen := make(map[string]bool, len(names))
		for _, name := range names {
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, City{Name: name, Country: country})
		}
		log.Printf("discover: %s: %d cities", country, len(names))
	}
	return out
}
