package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	p, err := ParsePage("")
	require.NoError(t, err)
	assert.Equal(t, 1, p)

	p, err = ParsePage("3")
	require.NoError(t, err)
	assert.Equal(t, 3, p)

	for _, raw := range []string{"0", "-1", "abc", "1.5"} {
		_, err = ParsePage(raw)
		assert.ErrorIs(t, err, ErrInvalidPage, raw)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, Paginate(items, 1, 3))
	assert.Equal(t, []int{7}, Paginate(items, 3, 3))
	assert.Equal(t, []int{}, Paginate(items, 4, 3))
	assert.Equal(t, items, Paginate(items, 2, 0))
}

func TestPager(t *testing.T) {
	p := NewPager(2, 5, 11, "x")
	assert.Equal(t, 3, p.NumPages())
	assert.True(t, p.Valid())
	assert.True(t, p.IsPaginated())
	assert.True(t, p.HasPrevious())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.Previous())
	assert.Equal(t, 3, p.Next())

	empty := NewPager(1, 5, 0, "")
	assert.Equal(t, 1, empty.NumPages())
	assert.True(t, empty.Valid())
	assert.False(t, empty.IsPaginated())

	assert.False(t, NewPager(4, 5, 11, "").Valid())
}
