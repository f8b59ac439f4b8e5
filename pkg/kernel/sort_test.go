package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortToggle(t *testing.T) {
	s := Sort{Key: "name", Order: SortAsc}

	s = s.Toggle("name")
	require.Equal(t, Sort{Key: "name", Order: SortDesc}, s)

	s = s.Toggle("name")
	require.Equal(t, Sort{Key: "name", Order: SortAsc}, s)

	// A new key resets to ascending
	s = Sort{Key: "name", Order: SortDesc}
	s = s.Toggle("position")
	require.Equal(t, Sort{Key: "position", Order: SortAsc}, s)
}

func TestSortNormalize(t *testing.T) {
	allowed := []string{"name", "position"}

	s := Sort{Key: "drop table", Order: "sideways"}.Normalize(allowed, "name")
	require.Equal(t, Sort{Key: "name", Order: SortAsc}, s)

	s = Sort{Key: "position", Order: SortDesc}.Normalize(allowed, "name")
	require.Equal(t, Sort{Key: "position", Order: SortDesc}, s)
}

func TestNormalizeSearch(t *testing.T) {
	require.Equal(t, "chief officer", NormalizeSearch("  Chief Officer "))
	require.Equal(t, "", NormalizeSearch("   "))
}
