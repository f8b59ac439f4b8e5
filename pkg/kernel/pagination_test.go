package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   PaginationOptions
		want PaginationOptions
	}{
		{"defaults", PaginationOptions{}, PaginationOptions{Page: 1, PageSize: DefaultPageSize}},
		{"negative page", PaginationOptions{Page: -3, PageSize: 10}, PaginationOptions{Page: 1, PageSize: 10}},
		{"oversized page size", PaginationOptions{Page: 2, PageSize: 500}, PaginationOptions{Page: 2, PageSize: MaxPageSize}},
		{"valid passthrough", PaginationOptions{Page: 3, PageSize: 25}, PaginationOptions{Page: 3, PageSize: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	require.Equal(t, 0, PaginationOptions{Page: 1, PageSize: 20}.Offset())
	require.Equal(t, 40, PaginationOptions{Page: 3, PageSize: 20}.Offset())
}

func TestNewPage(t *testing.T) {
	page := NewPage(PaginationOptions{Page: 2, PageSize: 20}, 45)
	require.Equal(t, 2, page.Number)
	require.Equal(t, 45, page.Total)
	require.Equal(t, 3, page.Pages)

	empty := NewPage(PaginationOptions{Page: 1, PageSize: 20}, 0)
	require.Equal(t, 0, empty.Pages)
}
