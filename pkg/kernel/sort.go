package kernel

import "slices"

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Sort is a single-key, two-way sort selection.
type Sort struct {
	Key   string    `json:"key"`
	Order SortOrder `json:"order"`
}

// Toggle returns the sort state after selecting key: selecting the active
// key flips the direction, selecting a new key resets to ascending.
func (s Sort) Toggle(key string) Sort {
	if s.Key == key {
		if s.Order == SortAsc {
			return Sort{Key: key, Order: SortDesc}
		}
		return Sort{Key: key, Order: SortAsc}
	}
	return Sort{Key: key, Order: SortAsc}
}

// Normalize validates the sort against a key whitelist, falling back to
// defaultKey ascending. Unrecognized orders become ascending.
func (s Sort) Normalize(allowed []string, defaultKey string) Sort {
	if !slices.Contains(allowed, s.Key) {
		s.Key = defaultKey
	}
	if s.Order != SortAsc && s.Order != SortDesc {
		s.Order = SortAsc
	}
	return s
}
