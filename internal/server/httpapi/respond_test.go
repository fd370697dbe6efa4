package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		page    int
		perPage int
		want    Pagination
	}{
		{
			name: "empty", total: 0, page: 1, perPage: 20,
			want: Pagination{Total: 0, Pages: 0, CurrentPage: 1, PerPage: 20},
		},
		{
			name: "exact fit", total: 40, page: 2, perPage: 20,
			want: Pagination{Total: 40, Pages: 2, CurrentPage: 2, PerPage: 20, HasPrev: true},
		},
		{
			name: "partial last page", total: 41, page: 2, perPage: 20,
			want: Pagination{Total: 41, Pages: 3, CurrentPage: 2, PerPage: 20, HasNext: true, HasPrev: true},
		},
		{
			name: "defaults applied", total: 10, page: 0, perPage: 0,
			want: Pagination{Total: 10, Pages: 1, CurrentPage: 1, PerPage: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.total, tt.page, tt.perPage))
		})
	}
}
