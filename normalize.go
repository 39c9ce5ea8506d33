package aerofix

import "strings"

// nameStopPhrases are stripped from airport names before comparison. These
// are descriptor words, not identity: "Heathrow Airport" and "Heathrow"
// must produce the same key. Punctuation is removed, not replaced with a
// space, so "Austin-Bergstrom" keys as "austinbergstrom".
//
// "air base" is listed before "airfield" so the two-word phrase is removed
// as a unit; phrase removal is substring-based, so ordering matters when one
// phrase is a prefix of another.
var nameStopPhrases = []string{
	"international",
	"air base",
	"airport",
	"airfield",
	"aerodrome",
}

// countryStopPhrases are additionally stripped from country names, so that
// "Republic of Moldova" and "Moldova" compare equal.
var countryStopPhrases = []string{
	"people's democratic republic of",
	"democratic republic of",
	"republic of",
	"kingdom of",
}

// NormalizeName canonicalizes a free-text airport name into a comparable
// key: lowercase, stop phrases removed, every rune that is not an ASCII
// letter, digit or whitespace dropped, whitespace collapsed, trimmed.
//
// The function is pure, total and idempotent. Empty input yields the empty
// key; there is no failure path.
func NormalizeName(text string) string {
	return normalizeWith(text, nameStopPhrases)
}

// NormalizeCountry is NormalizeName with the country-specific strip list
// applied in addition to the shared one.
func NormalizeCountry(text string) string {
	s := text
	for {
		lower := strings.ToLower(s)
		for _, p := range countryStopPhrases {
			lower = strings.ReplaceAll(lower, p, " ")
		}
		next := normalizeWith(lower, nameStopPhrases)
		if next == s {
			return next
		}
		s = next
	}
}

// normalizeWith repeats the lowercase/strip/filter pass until the key is
// stable. A single pass is not enough: rune removal can fuse fragments into
// a new stop phrase ("Inter-National" becomes "international").
func normalizeWith(text string, phrases []string) string {
	s := text
	for {
		next := normalizeOnce(s, phrases)
		if next == s {
			return next
		}
		s = next
	}
}

func normalizeOnce(text string, phrases []string) string {
	s := strings.ToLower(text)
	for _, p := range phrases {
		s = strings.ReplaceAll(s, p, " ")
	}

	// Keep ASCII letters, digits and whitespace only. Diacritics are
	// deliberately NOT folded to their ASCII base letter: the original
	// dataset treats "Chișinău" and "Chisinau" as distinct keys and the
	// IATA fallback strategy exists to bridge exactly that gap.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
