package aerofix

import "strings"

// MatcherConfig holds the partial-match thresholds. The defaults reproduce
// the established behavior; they are knobs because the overlap heuristic has
// no proven accuracy target, only parity with prior runs.
type MatcherConfig struct {
	// PartialMinNameLen is the minimum normalized-name length required
	// before the partial strategy is attempted at all. Shorter keys are too
	// ambiguous to fuzzy-match.
	PartialMinNameLen int `yaml:"partial_min_name_len" json:"partialMinNameLen"`
	// PartialMinTokenLen is the minimum token length considered during
	// partial matching; shorter tokens ("de", "of", "st") carry no signal.
	PartialMinTokenLen int `yaml:"partial_min_token_len" json:"partialMinTokenLen"`
	// PartialOverlapCap caps the required token overlap: a bucket is a hit
	// when overlap >= min(cap, ceil(candidateTokens/2)).
	PartialOverlapCap int `yaml:"partial_overlap_cap" json:"partialOverlapCap"`
}

// DefaultMatcherConfig returns the thresholds used by the original pipeline.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		PartialMinNameLen:  4,
		PartialMinTokenLen: 3,
		PartialOverlapCap:  2,
	}
}

// Match runs the strategy cascade for one candidate, first success wins:
//
//  1. exact normalized-name match, preferring an entry from the candidate's
//     own country;
//  2. partial token-overlap match, country match required;
//  3. IATA code lookup.
//
// Name strategies come first deliberately: names are the most semantically
// stable field, while codes are what this system exists to correct. Absence
// of a match is a normal outcome, not an error.
func Match(c CandidateRecord, names *NameIndex, iatas *IataIndex, cfg MatcherConfig) MatchResult {
	nameKey := NormalizeName(c.Name)
	countryKey := NormalizeCountry(c.Country)

	// Strategy 1: exact normalized-name match.
	if bucket := names.Lookup(nameKey); len(bucket) > 0 {
		for _, rec := range bucket {
			if NormalizeCountry(rec.Country) == countryKey {
				return MatchResult{Record: rec, Strategy: StrategyExactNameCountry}
			}
		}
		return MatchResult{Record: bucket[0], Strategy: StrategyExactName}
	}

	// Strategy 2: partial match over token overlap.
	if rec := partialMatch(nameKey, countryKey, names, cfg); rec != nil {
		return MatchResult{Record: rec, Strategy: StrategyPartialName}
	}

	// Strategy 3: IATA fallback.
	if c.IATA != "" {
		if rec := iatas.Lookup(c.IATA); rec != nil {
			return MatchResult{Record: rec, Strategy: StrategyIata}
		}
	}

	return MatchResult{}
}

// partialMatch scans every name bucket for sufficient token overlap with the
// candidate's normalized name. Buckets are visited in index key order, and a
// hit bucket only yields a record when one of its entries matches the
// candidate's country; otherwise the scan continues with the next bucket.
func partialMatch(nameKey, countryKey string, names *NameIndex, cfg MatcherConfig) *ReferenceRecord {
	if len(nameKey) < cfg.PartialMinNameLen {
		return nil
	}

	candTokens := significantTokens(nameKey, cfg.PartialMinTokenLen)
	if len(candTokens) == 0 {
		return nil
	}
	need := overlapThreshold(len(candTokens), cfg.PartialOverlapCap)

	for _, key := range names.Keys() {
		keyTokens := significantTokens(key, cfg.PartialMinTokenLen)
		if len(keyTokens) == 0 {
			continue
		}

		overlap := 0
		for _, ct := range candTokens {
			if tokenOverlaps(ct, keyTokens) {
				overlap++
			}
		}
		if overlap < need {
			continue
		}

		for _, rec := range names.Lookup(key) {
			if NormalizeCountry(rec.Country) == countryKey {
				return rec
			}
		}
	}
	return nil
}

// significantTokens splits a normalized key and drops tokens shorter than
// minLen.
func significantTokens(key string, minLen int) []string {
	fields := strings.Fields(key)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= minLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// tokenOverlaps reports whether tok contains, or is contained by, any token
// in the set. The bidirectional substring test lets "chisinau" pair with
// "chisinaus" and "bergstrom" with "austinbergstrom".
func tokenOverlaps(tok string, set []string) bool {
	for _, other := range set {
		if strings.Contains(tok, other) || strings.Contains(other, tok) {
			return true
		}
	}
	return false
}

// overlapThreshold is min(cap, ceil(n/2)) for n candidate tokens.
func overlapThreshold(n, cap int) int {
	half := (n + 1) / 2
	if half < cap {
		return half
	}
	return cap
}
