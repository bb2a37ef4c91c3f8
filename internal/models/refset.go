package models

// ReferenceSet is the session-scoped lookup table of known currencies used
// to validate product currency tokens. It is built once from a currencies
// fetch and read-only afterwards, so it may be shared across goroutines
// without locking.
type ReferenceSet struct {
	currencies map[string]Currency
}

// BuildReferenceSet constructs the id-to-currency mapping. Duplicate ids
// are not expected in practice; when they do occur the last record wins.
func BuildReferenceSet(currencies []Currency) *ReferenceSet {
	set := &ReferenceSet{
		currencies: make(map[string]Currency, len(currencies)),
	}
	for _, c := range currencies {
		set.currencies[c.ID] = c
	}
	return set
}

// Lookup returns the currency with the given id. The match is exact and
// case-sensitive: no trimming, no case folding. Absence is reported via
// the second return, never papered over with a default.
func (s *ReferenceSet) Lookup(id string) (Currency, bool) {
	c, ok := s.currencies[id]
	return c, ok
}

// Len returns the number of known currencies.
func (s *ReferenceSet) Len() int {
	return len(s.currencies)
}

// Currencies returns the known currencies in unspecified order.
func (s *ReferenceSet) Currencies() []Currency {
	out := make([]Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		out = append(out, c)
	}
	return out
}
