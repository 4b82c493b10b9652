package paginate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		total    int
		wantPage int
		wantNum  int
	}{
		{"blank defaults to first page", "", 7, 1, 3},
		{"explicit first page", "1", 7, 1, 3},
		{"middle page", "2", 7, 2, 3},
		{"exact last page", "3", 7, 3, 3},
		{"beyond last page clamps", "9999", 6, 2, 2},
		{"integer overflowing int clamps", "99999999999999999999", 6, 2, 2},
		{"negative overflowing int clamps", "-99999999999999999999", 7, 3, 3},
		{"non-integer defaults to first page", "abc", 7, 1, 3},
		{"float defaults to first page", "2.5", 7, 1, 3},
		{"zero goes to last page", "0", 7, 3, 3},
		{"negative goes to last page", "-4", 7, 3, 3},
		{"last keyword", "last", 7, 3, 3},
		{"surrounding whitespace ignored", " 2 ", 7, 2, 3},
		{"empty result set has one page", "5", 0, 1, 1},
		{"empty result set blank page", "", 0, 1, 1},
		{"exact multiple of page size", "2", 6, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Resolve(tt.raw, tt.total, 3)
			assert.Equal(t, tt.wantPage, p.Number, "page number")
			assert.Equal(t, tt.wantNum, p.NumPages, "page count")
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, 3, p.PerPage)
		})
	}
}

func TestResolveNonPositivePerPage(t *testing.T) {
	p := Resolve("2", 3, 0)
	assert.Equal(t, 1, p.PerPage)
	assert.Equal(t, 3, p.NumPages)
	assert.Equal(t, 2, p.Number)
}

func TestPageNavigation(t *testing.T) {
	first := Resolve("1", 7, 3)
	assert.False(t, first.HasPrevious())
	assert.True(t, first.HasNext())
	assert.Equal(t, 0, first.Offset())
	assert.Equal(t, 3, first.Limit())
	assert.Equal(t, 2, first.NextNumber())

	middle := Resolve("2", 7, 3)
	assert.True(t, middle.HasPrevious())
	assert.True(t, middle.HasNext())
	assert.Equal(t, 3, middle.Offset())
	assert.Equal(t, 1, middle.PreviousNumber())
	assert.Equal(t, 3, middle.NextNumber())

	last := Resolve("last", 7, 3)
	assert.True(t, last.HasPrevious())
	assert.False(t, last.HasNext())
	assert.Equal(t, 6, last.Offset())
}
