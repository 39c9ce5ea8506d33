package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang/geo/s2"
	"github.com/google/uuid"

	"github.com/aerofix/aerofix"
)

var (
	iataShape = regexp.MustCompile(`^[A-Z]{3}$`)
	icaoShape = regexp.MustCompile(`^[A-Z][A-Z0-9]{3}$`)
)

// earthRadiusKm converts s2 angles on the unit sphere to kilometres.
const earthRadiusKm = 6371.0

// Issue is one validation finding, tied to the record that raised it.
type Issue struct {
	Record  string `json:"record"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Issue codes.
const (
	IssueMissingName    = "missing_name"
	IssueMissingCountry = "missing_country"
	IssueBadIATA        = "bad_iata"
	IssueBadICAO        = "bad_icao"
	IssueMissingICAO    = "missing_icao"
	IssueDuplicateIATA  = "duplicate_iata"
	IssueDuplicateICAO  = "duplicate_icao"
	IssueColocated      = "colocated_airports"
)

// ValidationReport is the output of the final pass.
type ValidationReport struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Total       int       `json:"total"`
	Clean       int       `json:"clean"`
	Issues      []Issue   `json:"issues"`
}

// Validate runs the final checks over the corrected dataset: field shape,
// required fields, duplicate codes, and a proximity scan that flags records
// matched to distinct reference airports standing within duplicateRadiusKm
// of each other (one physical airport listed under two cities).
func Validate(records []Record, refs []aerofix.ReferenceRecord, duplicateRadiusKm float64) ValidationReport {
	report := ValidationReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Total:       len(records),
	}

	refByID := make(map[string]*aerofix.ReferenceRecord, len(refs))
	for i := range refs {
		refByID[refs[i].ID] = &refs[i]
	}

	seenIATA := make(map[string]string)
	seenICAO := make(map[string]string)
	dirty := make(map[int]bool)

	flag := func(i int, code, format string, args ...any) {
		report.Issues = append(report.Issues, Issue{
			Record:  records[i].Name,
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		})
		dirty[i] = true
	}

	for i, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			flag(i, IssueMissingName, "record has no airport name")
		}
		if strings.TrimSpace(rec.Country) == "" {
			flag(i, IssueMissingCountry, "record has no country")
		}

		if rec.IATA != "" {
			if !iataShape.MatchString(rec.IATA) {
				flag(i, IssueBadIATA, "IATA code %q is not three uppercase letters", rec.IATA)
			} else if prev, dup := seenIATA[rec.IATA]; dup {
				flag(i, IssueDuplicateIATA, "IATA code %s already used by %q", rec.IATA, prev)
			} else {
				seenIATA[rec.IATA] = rec.Name
			}
		}

		switch {
		case rec.ICAO == "":
			flag(i, IssueMissingICAO, "record has no ICAO code after enrichment")
		case !icaoShape.MatchString(rec.ICAO):
			flag(i, IssueBadICAO, "ICAO code %q is not four characters starting with a letter", rec.ICAO)
		default:
			if prev, dup := seenICAO[rec.ICAO]; dup {
				flag(i, IssueDuplicateICAO, "ICAO code %s already used by %q", rec.ICAO, prev)
			} else {
				seenICAO[rec.ICAO] = rec.Name
			}
		}
	}

	// Proximity scan over the matched reference coordinates. Quadratic, but
	// the dataset is thousands of records and this runs once per batch.
	for i := 0; i < len(records); i++ {
		ri, ok := refByID[records[i].RefID]
		if !ok || records[i].RefID == "" {
			continue
		}
		lli := s2.LatLngFromDegrees(ri.Latitude, ri.Longitude)
		for j := i + 1; j < len(records); j++ {
			rj, ok := refByID[records[j].RefID]
			if !ok || records[j].RefID == records[i].RefID || records[j].RefID == "" {
				continue
			}
			distKm := lli.Distance(s2.LatLngFromDegrees(rj.Latitude, rj.Longitude)).Radians() * earthRadiusKm
			if distKm < duplicateRadiusKm {
				flag(i, IssueColocated, "reference airports %s and %s are %.1f km apart (records %q / %q)",
					records[i].RefID, records[j].RefID, distKm, records[i].Name, records[j].Name)
			}
		}
	}

	report.Clean = report.Total - len(dirty)
	return report
}
