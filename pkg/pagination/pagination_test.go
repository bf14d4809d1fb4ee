package pagination

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query   string
		page    int
		perPage int
		offset  int
	}{
		{"", 1, 20, 0},
		{"?page=3&per_page=10", 3, 10, 20},
		{"?page=0&per_page=-4", 1, 20, 0},
		{"?page=abc", 1, 20, 0},
		{"?per_page=500", 1, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p := FromRequest(httptest.NewRequest(http.MethodGet, "/api/v1/businesses"+tt.query, nil))
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.perPage, p.PerPage)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestNewResult(t *testing.T) {
	r := NewResult([]string{"a", "b"}, 5, Params{Page: 2, PerPage: 2})
	assert.Equal(t, 3, r.TotalPages)
	assert.True(t, r.HasNext)
	assert.True(t, r.HasPrev)

	empty := NewResult[string](nil, 0, DefaultParams())
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestPaginate(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	first := Paginate(all, Params{Page: 1, PerPage: 2})
	assert.Equal(t, []int{1, 2}, first.Data)
	assert.Equal(t, 5, first.TotalCount)

	last := Paginate(all, Params{Page: 3, PerPage: 2})
	assert.Equal(t, []int{5}, last.Data)
	assert.False(t, last.HasNext)

	beyond := Paginate(all, Params{Page: 9, PerPage: 2})
	assert.Empty(t, beyond.Data)
	assert.Equal(t, 3, beyond.TotalPages)
}

func TestPaginate_HugePageNumber(t *testing.T) {
	q := "?page=" + strconv.Itoa(math.MaxInt) + "&per_page=100"
	p := FromRequest(httptest.NewRequest(http.MethodGet, "/api/v1/businesses"+q, nil))
	assert.Equal(t, math.MaxInt, p.Page)
	assert.Equal(t, math.MaxInt, p.Offset)

	var r Result[int]
	assert.NotPanics(t, func() { r = Paginate([]int{1, 2, 3}, p) })
	assert.Empty(t, r.Data)
	assert.Equal(t, 3, r.TotalCount)
	assert.False(t, r.HasNext)
	assert.True(t, r.HasPrev)
}
