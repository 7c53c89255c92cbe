package phase

import (
	"errors"
	"testing"

	"github.com/carbocation/pedmodels/genotype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, gt string) genotype.Call {
	c, err := genotype.Parse(gt)
	require.NoError(t, err)
	return c
}

func TestIndexFind(t *testing.T) {
	ix := NewIndex(
		Block{ID: 1, Chrom: "1", Start: 100, End: 200},
		Block{ID: 2, Chrom: "1", Start: 300, End: 300},
		Block{ID: 3, Chrom: "2", Start: 100, End: 200},
	)

	for _, v := range []struct {
		Chrom string
		Pos   int
		ID    uint64
		Found bool
	}{
		{"1", 100, 1, true},
		{"1", 150, 1, true},
		{"1", 200, 1, true},
		{"1", 99, 0, false},
		{"1", 201, 0, false},
		{"1", 300, 2, true},
		{"1", 301, 0, false},
		{"2", 150, 3, true},
		{"X", 150, 0, false},
	} {
		id, found := ix.Find(v.Chrom, v.Pos)
		assert.Equal(t, v.Found, found, "%s:%d", v.Chrom, v.Pos)
		assert.Equal(t, v.ID, id, "%s:%d", v.Chrom, v.Pos)
	}
}

func TestSetMissingIndividual(t *testing.T) {
	s := Set{"kid": NewIndex(Block{ID: 1, Chrom: "1", Start: 1, End: 10})}

	id, found, err := s.Find("kid", "1", 5)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(1), id)

	_, _, err = s.Find("mom", "1", 5)
	assert.True(t, errors.Is(err, ErrNoIndex))
	assert.False(t, s.Has("mom"))
}

func TestBuilderBreaksOnUnphasedHet(t *testing.T) {
	b := NewBuilder()
	b.Add("kid", "1", 100, call(t, "0|1"), "")
	b.Add("kid", "1", 150, call(t, "0/0"), "")
	b.Add("kid", "1", 200, call(t, "1|0"), "")
	b.Add("kid", "1", 250, call(t, "0/1"), "")
	b.Add("kid", "1", 300, call(t, "1|0"), "")

	s := b.Set()

	first, found, err := s.Find("kid", "1", 100)
	require.NoError(t, err)
	require.True(t, found)

	second, found, _ := s.Find("kid", "1", 200)
	require.True(t, found)
	assert.Equal(t, first, second, "an unphased homozygous call should not break the block")

	_, found, _ = s.Find("kid", "1", 250)
	assert.False(t, found, "the unphased heterozygous call is not inside any block")

	third, found, _ := s.Find("kid", "1", 300)
	require.True(t, found)
	assert.NotEqual(t, first, third)
}

func TestBuilderBreaksOnChromosome(t *testing.T) {
	b := NewBuilder()
	b.Add("kid", "1", 100, call(t, "0|1"), "")
	b.Add("kid", "2", 100, call(t, "0|1"), "")

	s := b.Set()
	a, _, _ := s.Find("kid", "1", 100)
	c, _, _ := s.Find("kid", "2", 100)
	assert.NotEqual(t, a, c)
}

func TestBuilderPhaseSets(t *testing.T) {
	b := NewBuilder()
	b.Add("kid", "1", 100, call(t, "0|1"), "100")
	b.Add("kid", "1", 200, call(t, "0|1"), "200")
	b.Add("kid", "1", 300, call(t, "1|0"), "100")

	s := b.Set()
	a, found, _ := s.Find("kid", "1", 100)
	require.True(t, found)
	c, found, _ := s.Find("kid", "1", 300)
	require.True(t, found)
	assert.Equal(t, a, c)
}

func TestBuilderRegistersEveryIndividual(t *testing.T) {
	b := NewBuilder()
	b.Add("mom", "1", 100, call(t, "0/0"), "")

	s := b.Set()
	assert.True(t, s.Has("mom"))
	_, found, err := s.Find("mom", "1", 100)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBuilderPruneKeepsLiveBlocks(t *testing.T) {
	b := NewBuilder()
	b.Add("kid", "1", 100, call(t, "0|1"), "")
	b.Add("kid", "1", 200, call(t, "0/1"), "")
	b.Add("kid", "1", 300, call(t, "0|1"), "300")
	b.Add("kid", "2", 50, call(t, "0|1"), "")
	b.Add("kid", "2", 80, call(t, "1|0"), "")

	b.Prune("2", 50)

	s := b.Set()
	assert.Equal(t, 1, s["kid"].Len())

	_, found, err := s.Find("kid", "1", 100)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, _ = s.Find("kid", "2", 80)
	assert.True(t, found)
	assert.True(t, b.Has("kid"))
}

func TestBuilderPruneWithinChromosome(t *testing.T) {
	b := NewBuilder()
	b.Add("kid", "1", 100, call(t, "0|1"), "")
	b.Add("kid", "1", 150, call(t, "0/1"), "")
	b.Add("kid", "1", 200, call(t, "0|1"), "200")
	b.Add("kid", "1", 900, call(t, "0|1"), "200")

	b.Prune("1", 500)

	s := b.Set()
	assert.Equal(t, 1, s["kid"].Len())
	_, found, _ := s.Find("kid", "1", 900)
	assert.True(t, found, "the phase set block ends after the cut")
}
