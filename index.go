package aerofix

import "strings"

// NameIndex maps normalized airport names to the reference records sharing
// that key. Buckets keep reference-set order, and the index remembers key
// insertion order so that partial matching walks the keys deterministically
// (Go map iteration order is randomized).
//
// Built once per run by BuildIndexes and read-only afterwards; safe for
// concurrent readers.
type NameIndex struct {
	buckets map[string][]*ReferenceRecord
	keys    []string // insertion order, one entry per distinct key
}

// Lookup returns the bucket for a normalized key, or nil.
func (ni *NameIndex) Lookup(key string) []*ReferenceRecord {
	return ni.buckets[key]
}

// Keys returns the index keys in insertion order. Callers must not mutate
// the returned slice.
func (ni *NameIndex) Keys() []string { return ni.keys }

// Len returns the number of distinct normalized keys.
func (ni *NameIndex) Len() int { return len(ni.keys) }

// IataIndex maps uppercase IATA codes to a single reference record. The
// reference set is assumed internally deduplicated, so duplicate codes are
// resolved last-write-wins: the newest entry is authoritative.
type IataIndex struct {
	records map[string]*ReferenceRecord
}

// Lookup returns the record for an IATA code (any case), or nil.
func (ii *IataIndex) Lookup(code string) *ReferenceRecord {
	return ii.records[strings.ToUpper(code)]
}

// Len returns the number of indexed codes.
func (ii *IataIndex) Len() int { return len(ii.records) }

// BuildIndexes walks the reference set once and builds both lookup
// structures. Records with an empty name are left out of the name index and
// records with an empty IATA code out of the IATA index; a malformed record
// never aborts the build.
func BuildIndexes(refs []ReferenceRecord) (*NameIndex, *IataIndex) {
	ni := &NameIndex{buckets: make(map[string][]*ReferenceRecord, len(refs))}
	ii := &IataIndex{records: make(map[string]*ReferenceRecord, len(refs))}

	for i := range refs {
		rec := &refs[i]

		if rec.Name != "" {
			key := NormalizeName(rec.Name)
			if key != "" {
				if _, seen := ni.buckets[key]; !seen {
					ni.keys = append(ni.keys, key)
				}
				ni.buckets[key] = append(ni.buckets[key], rec)
			}
		}

		if rec.IATA != "" {
			ii.records[strings.ToUpper(rec.IATA)] = rec
		}
	}

	return ni, ii
}
