package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	id   int
	name string
}

func itemName(i item) string { return i.name }

func TestFilter(t *testing.T) {
	items := []item{
		{1, "test_model_X"},
		{2, "test_model_Y"},
		{3, "another_x"},
	}

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "empty query returns all", query: "", want: []int{1, 2, 3}},
		{name: "blank query returns all", query: "   ", want: []int{1, 2, 3}},
		{name: "case insensitive", query: "x", want: []int{1, 3}},
		{name: "upper query", query: "MODEL_Y", want: []int{2}},
		{name: "no match", query: "z", want: []int{}},
		{name: "query is trimmed", query: " y ", want: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(items, tt.query, itemName)
			ids := make([]int, 0, len(got))
			for _, g := range got {
				ids = append(ids, g.id)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := []item{{1, "a"}, {2, "b"}}
	_ = Filter(items, "b", itemName)
	assert.Equal(t, []item{{1, "a"}, {2, "b"}}, items)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\x`, EscapeLike(`c:\x`))
	assert.Equal(t, "plain", EscapeLike("plain"))
}
