package pipeline

import (
	"context"
	"log"

	"github.com/aerofix/aerofix/internal/llm"
)

// Categorize annotates each record with a runway-length category obtained
// from the language model. Records whose query fails keep RunwayUnknown and
// the stage moves on.
func Categorize(ctx context.Context, g llm.Generator, records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = rec
		out[i].RunwayCategory = RunwayUnknown

		ft, err := llm.RunwayLengthFt(ctx, g, rec.Name, rec.City, rec.Country)
		if err != nil {
			log.Printf("warning: categorize %s: %v", rec.Name, err)
			continue
		}
		out[i].RunwayLengthFt = ft
		out[i].RunwayCategory = CategoryForLength(ft)
	}
	return out
}
