package aerofix

// Reconcile compares a candidate against its match result and decides what,
// if anything, to correct. Every candidate yields a well-formed Outcome;
// there is no error path.
//
// Field diffs are computed in a fixed order (IATA, ICAO, city, name). Codes
// and city compare by raw string equality; names compare by normalized key,
// so a name differing only in case, punctuation or descriptor words is not
// reported as changed.
func Reconcile(c CandidateRecord, m MatchResult) Outcome {
	if !m.Matched() {
		return Outcome{Status: StatusUnverified, Original: c, Updated: c}
	}

	ref := m.Record
	var changes []FieldChange

	if c.IATA != ref.IATA {
		changes = append(changes, FieldChange{Field: "IATA", Old: c.IATA, New: ref.IATA})
	}
	if c.ICAO != ref.ICAO {
		changes = append(changes, FieldChange{Field: "ICAO", Old: c.ICAO, New: ref.ICAO})
	}
	if c.City != ref.City {
		changes = append(changes, FieldChange{Field: "city", Old: c.City, New: ref.City})
	}
	if NormalizeName(c.Name) != NormalizeName(ref.Name) {
		changes = append(changes, FieldChange{Field: "name", Old: c.Name, New: ref.Name})
	}

	if len(changes) == 0 {
		return Outcome{
			Status:   StatusNoCorrection,
			Original: c,
			Updated:  c,
			Strategy: m.Strategy,
			RefID:    ref.ID,
		}
	}

	// Once any field disagrees, the reference record is trusted for the
	// whole identity-bearing field set. Patching only the differing field
	// could leave a record mixing two airports' identities.
	updated := c
	updated.Name = ref.Name
	updated.IATA = ref.IATA
	updated.ICAO = ref.ICAO
	updated.City = ref.City
	updated.Country = ref.Country

	return Outcome{
		Status:   StatusCorrected,
		Original: c,
		Updated:  updated,
		Changes:  changes,
		Strategy: m.Strategy,
		RefID:    ref.ID,
	}
}

// ReconcileAll runs the match+reconcile pipeline over a batch of candidates.
// Output order matches input order. The indexes are built once from the
// reference set; candidates are independent of each other, so outcomes are
// identical under any processing order.
func ReconcileAll(cands []CandidateRecord, refs []ReferenceRecord, cfg MatcherConfig) []Outcome {
	names, iatas := BuildIndexes(refs)
	outcomes := make([]Outcome, len(cands))
	for i, c := range cands {
		outcomes[i] = Reconcile(c, Match(c, names, iatas, cfg))
	}
	return outcomes
}
