package pipeline

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/aerofix/aerofix"
)

// CrosscheckReport is the audit output of the correction pass.
type CrosscheckReport struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`

	Total       int `json:"total"`
	Corrected   int `json:"corrected"`
	Unchanged   int `json:"unchanged"`
	Unverified  int `json:"unverified"`
	FieldsFixed int `json:"fieldsFixed"`

	ByStrategy map[aerofix.MatchStrategy]int `json:"byStrategy"`

	// Audit lists every applied correction as "record — field: old → new"
	// lines, in input order.
	Audit []string `json:"audit"`
}

// Crosscheck runs the reconciliation core over every record and applies the
// corrections. Unverified records pass through unmodified but are counted;
// a later manual pass decides their fate.
func Crosscheck(records []Record, refs []aerofix.ReferenceRecord, cfg aerofix.MatcherConfig) ([]Record, CrosscheckReport) {
	report := CrosscheckReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Total:       len(records),
		ByStrategy:  make(map[aerofix.MatchStrategy]int),
	}

	cands := make([]aerofix.CandidateRecord, len(records))
	for i, rec := range records {
		cands[i] = rec.CandidateRecord
	}
	outcomes := aerofix.ReconcileAll(cands, refs, cfg)

	out := make([]Record, len(records))
	for i, oc := range outcomes {
		out[i] = records[i]
		out[i].CandidateRecord = oc.Updated
		out[i].RefID = oc.RefID

		switch oc.Status {
		case aerofix.StatusCorrected:
			report.Corrected++
			report.ByStrategy[oc.Strategy]++
			report.FieldsFixed += len(oc.Changes)
			for _, ch := range oc.Changes {
				report.Audit = append(report.Audit, oc.Original.Name+" — "+ch.String())
			}
		case aerofix.StatusNoCorrection:
			report.Unchanged++
			report.ByStrategy[oc.Strategy]++
		case aerofix.StatusUnverified:
			report.Unverified++
		}
	}

	log.Printf("crosscheck: %d records, %d corrected, %d unchanged, %d unverified",
		report.Total, report.Corrected, report.Unchanged, report.Unverified)
	return out, report
}
