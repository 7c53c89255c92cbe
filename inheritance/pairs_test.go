package inheritance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairsInIndexOrder(t *testing.T) {
	pairs, err := Pairs([]string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, []Pair[string]{
		{"a", "b"},
		{"a", "c"},
		{"b", "c"},
	}, pairs)
}

func TestPairEnumeratorCount(t *testing.T) {
	for n := 2; n < 8; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		p, err := NewPairEnumerator(items)
		require.NoError(t, err)

		seen := 0
		for pair, ok := p.Next(); ok; pair, ok = p.Next() {
			assert.Less(t, pair.First, pair.Second)
			seen++
		}
		assert.Equal(t, n*(n-1)/2, seen)
		assert.Equal(t, seen, p.Len())
	}
}

func TestPairEnumeratorRestarts(t *testing.T) {
	p, err := NewPairEnumerator([]int{1, 2, 3, 4})
	require.NoError(t, err)

	var first, second []Pair[int]
	for pair, ok := p.Next(); ok; pair, ok = p.Next() {
		first = append(first, pair)
	}
	_, ok := p.Next()
	assert.False(t, ok)

	p.Reset()
	for pair, ok := p.Next(); ok; pair, ok = p.Next() {
		second = append(second, pair)
	}

	assert.Equal(t, first, second)
}

func TestPairEnumeratorNeedsTwo(t *testing.T) {
	for _, items := range [][]string{nil, {}, {"a"}} {
		_, err := NewPairEnumerator(items)
		assert.True(t, errors.Is(err, ErrInvalidInput), "%v", items)
	}
}

func TestPairEnumeratorCopiesInput(t *testing.T) {
	items := []string{"a", "b"}
	p, err := NewPairEnumerator(items)
	require.NoError(t, err)

	items[0] = "z"
	pair, ok := p.Next()
	require.True(t, ok)
	assert.Equal(t, "a", pair.First)
}
