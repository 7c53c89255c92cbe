package annotate

import (
	"io"
	"testing"

	"github.com/carbocation/pedmodels/chrpos"
	"github.com/carbocation/pedmodels/inheritance"
	"github.com/carbocation/vcfgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceIterator struct {
	vals []*vcfgo.Variant
}

func (it *sliceIterator) Next() (*vcfgo.Variant, error) {
	if len(it.vals) == 0 {
		return nil, io.EOF
	}

	v := it.vals[0]
	it.vals = it.vals[1:]
	return v, nil
}

func (it *sliceIterator) Close() error {
	return nil
}

// inMemoryRegions answers region queries from the variants of a VCF body.
func inMemoryRegions(t *testing.T, rdr *vcfgo.Reader) regionQuery {
	t.Helper()

	var all []*vcfgo.Variant
	for v := rdr.Read(); v != nil; v = rdr.Read() {
		all = append(all, v)
	}
	require.NoError(t, rdr.Error())

	return func(locus chrpos.TabixLocus) (variantIterator, error) {
		it := &sliceIterator{}
		for _, v := range all {
			if locus.Contains(v.Chrom(), int(v.Pos)) {
				it.vals = append(it.vals, v)
			}
		}
		return it, nil
	}
}

func TestRegionSourceKeepsGeneTogether(t *testing.T) {
	body := vcfLine("1", "100", "rs1", "A", "G", "GT", "0/0", "0/1", "0/1", "1/1") +
		vcfLine("1", "200", "rs2", "C", "T", "GT", "0/1", "0/0", "0/1", "1/1") +
		vcfLine("1", "5000", ".", "G", "A", "GT", "0/0", "0/0", "0/1", "0/0")

	rdr := newReader(t, body)

	// Out of order, and the first and last loci both cut through GENE1.
	loci := []chrpos.TabixLocus{
		chrpos.MakeTabixLocus("1", 149, 300),
		chrpos.MakeTabixLocus("1", 3999, 6000),
		chrpos.MakeTabixLocus("1", 49, 120),
	}

	recs := runSource(t, rdr.Header, newRegionSource(inMemoryRegions(t, rdr), loci), inheritance.Options{})
	require.Len(t, recs, 3)

	assert.Equal(t, 100, recs[0].Variant.Pos)
	assert.Equal(t, 200, recs[1].Variant.Pos)
	assert.Equal(t, 5000, recs[2].Variant.Pos)

	assert.True(t, recs[0].Variant.Models.Has(inheritance.ARcomp))
	assert.Equal(t, map[string]int{"1_200_C_T": 0}, recs[0].Variant.Compounds)
	assert.Equal(t, map[string]int{"1_100_A_G": 0}, recs[1].Variant.Compounds)
}

func TestRegionSourceSkipsRepeats(t *testing.T) {
	body := vcfLine("1", "100", "rs1", "A", "G", "GT", "0/0", "0/1", "0/1", "1/1")

	rdr := newReader(t, body)
	query := inMemoryRegions(t, rdr)

	// Disjoint loci that both return the same record, as a query for a
	// long deletion would.
	src := newRegionSource(func(locus chrpos.TabixLocus) (variantIterator, error) {
		return query(chrpos.MakeTabixLocus("1", 0, 1000))
	}, []chrpos.TabixLocus{
		chrpos.MakeTabixLocus("1", 0, 10),
		chrpos.MakeTabixLocus("1", 500, 510),
	})

	v, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(100), v.Pos)

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}
