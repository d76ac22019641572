package pagination

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		limit   string
		want    Params
		wantErr bool
	}{
		{name: "defaults", want: Params{Page: 1, Limit: 10}},
		{name: "explicit", page: "3", limit: "25", want: Params{Page: 3, Limit: 25}},
		{name: "whitespace", page: " 2 ", limit: "5", want: Params{Page: 2, Limit: 5}},
		{name: "only limit", limit: "7", want: Params{Page: 1, Limit: 7}},
		{name: "zero page", page: "0", wantErr: true},
		{name: "negative limit", limit: "-4", wantErr: true},
		{name: "non numeric", page: "abc", wantErr: true},
		{name: "trailing junk", limit: "10x", wantErr: true},
		{name: "offset overflow", page: "3", limit: "4611686018427387904", wantErr: true},
		{name: "huge limit first page", page: "1", limit: fmt.Sprint(math.MaxInt), want: Params{Page: 1, Limit: math.MaxInt}},
		{name: "out of int range", limit: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.page, tt.limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParams)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{19, 10, 2},
		{19, 1, 19},
		{5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit))
		})
	}
}

// slicing every page of a set must reconstruct it exactly once.
func TestPagesCoverSetExactlyOnce(t *testing.T) {
	for n := 0; n <= 23; n++ {
		for limit := 1; limit <= 7; limit++ {
			set := make([]int, n)
			for i := range set {
				set[i] = i
			}

			var seen []int
			pages := TotalPages(int64(n), limit)
			for page := 1; page <= pages; page++ {
				p := Params{Page: page, Limit: limit}
				end := p.Offset() + p.Limit
				if end > n {
					end = n
				}
				seen = append(seen, set[p.Offset():end]...)
			}

			assert.Equal(t, set, append([]int{}, seen...), "n=%d limit=%d", n, limit)
		}
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage[string](nil, 19, Params{Page: 1, Limit: 10})
	assert.Equal(t, int64(19), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)

	raw, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalItems":19,"totalPages":2,"currentPage":1,"data":[]}`, string(raw))
}
